package s3

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/base64"
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestClient_PutObject(t *testing.T) {
	payload := []byte("hello world")
	sum := md5.Sum(payload)
	expectMD5 := base64.StdEncoding.EncodeToString(sum[:])

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if e, a := http.MethodPut, r.Method; e != a {
			t.Errorf("expect %v method, got %v", e, a)
		}
		if e, a := "/mybucket/docs/a%26b.txt", r.URL.EscapedPath(); e != a {
			t.Errorf("expect %v path, got %v", e, a)
		}
		if e, a := int64(len(payload)), r.ContentLength; e != a {
			t.Errorf("expect %v content length, got %v", e, a)
		}
		if e, a := expectMD5, r.Header.Get("Content-Md5"); e != a {
			t.Errorf("expect %v content md5, got %v", e, a)
		}
		if e, a := "text/plain", r.Header.Get("Content-Type"); e != a {
			t.Errorf("expect %v content type, got %v", e, a)
		}
		if e, a := "public-read", r.Header.Get("X-Amz-Acl"); e != a {
			t.Errorf("expect %v acl, got %v", e, a)
		}
		if e, a := "ops", r.Header.Get("X-Amz-Meta-Owner"); e != a {
			t.Errorf("expect %v metadata, got %v", e, a)
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("expect no read error, got %v", err)
		}
		if e, a := string(payload), string(body); e != a {
			t.Errorf("expect %v body, got %v", e, a)
		}

		w.Header().Set("ETag", `"etag"`)
		w.Header().Set("X-Amz-Version-Id", "v2")
	})

	out, err := client.PutObject(context.Background(), &PutObjectInput{
		Key:               "docs/a&b.txt",
		Body:              bytes.NewReader(payload),
		ContentType:       "text/plain",
		ComputeContentMD5: true,
		ACL:               ObjectCannedACLPublicRead,
		Metadata:          map[string]string{"owner": "ops"},
	})
	if err != nil {
		t.Fatalf("expect no error, got %v", err)
	}
	if e, a := `"etag"`, out.ETag; e != a {
		t.Errorf("expect %v etag, got %v", e, a)
	}
	if e, a := "v2", out.VersionID; e != a {
		t.Errorf("expect %v version, got %v", e, a)
	}
}

func TestClient_PutObject_ExplicitLength(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if e, a := int64(3), r.ContentLength; e != a {
			t.Errorf("expect %v content length, got %v", e, a)
		}
		if v := r.Header.Get("Content-Md5"); len(v) != 0 {
			t.Errorf("expect no content md5, got %v", v)
		}
	})

	_, err := client.PutObject(context.Background(), &PutObjectInput{
		Key:           "k",
		Body:          io.LimitReader(strings.NewReader("abcdef"), 3),
		ContentLength: 3,
	})
	if err != nil {
		t.Fatalf("expect no error, got %v", err)
	}
}

func TestClient_PutObject_UnknownLength(t *testing.T) {
	client := New(testConfigFor("localhost"), func(o *Options) {
		o.HTTPClient = failingClient(t)
	})

	_, err := client.PutObject(context.Background(), &PutObjectInput{
		Key:  "k",
		Body: io.LimitReader(strings.NewReader("abc"), 3),
	})
	if err == nil {
		t.Fatalf("expect error, got none")
	}
	if e, a := "content length", err.Error(); !strings.Contains(a, e) {
		t.Errorf("expect %q in error, got %v", e, a)
	}
}

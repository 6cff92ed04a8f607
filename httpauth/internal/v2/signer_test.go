package v2

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/objkit/objkit-go/httpauth/credentials"
	v2 "github.com/objkit/objkit-go/httpauth/v2"
	"github.com/objkit/objkit-go/logging"
)

// Tests herein verify the canonical string and signature components. The
// full flow is covered by the sigv2 package tests.

const scenarioDate = "Tue, 01 Jan 2013 00:00:00 GMT"

var testCreds = credentials.Credentials{
	AccessKeyID:     "AKID",
	SecretAccessKey: "SECRET",
}

func newRequest(t *testing.T, method, rawURL string, opts ...func(*http.Request)) *http.Request {
	t.Helper()
	req, err := http.NewRequest(method, rawURL, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, opt := range opts {
		opt(req)
	}
	return req
}

func newSigner(req *http.Request) *Signer {
	s := &Signer{
		Request:     req,
		Credentials: testCreds,
	}
	s.init()
	return s
}

func TestBuildCanonicalString(t *testing.T) {
	cases := map[string]struct {
		Method  string
		URL     string
		Options func(*http.Request)
		Expect  string
	}{
		"object get": {
			Method: http.MethodGet,
			URL:    "https://s3.example.com/mybucket/foo.txt",
			Expect: "GET\n\n\n" + scenarioDate + "\n/mybucket/foo.txt",
		},
		"sub-resources filtered and sorted": {
			Method: http.MethodGet,
			URL:    "https://s3.example.com/mybucket/?prefix=abc&acl=",
			Expect: "GET\n\n\n" + scenarioDate + "\n/mybucket/?acl",
		},
		"sub-resource with value": {
			Method: http.MethodGet,
			URL:    "https://s3.example.com/mybucket/foo.txt?versionId=3&marker=x&acl",
			Expect: "GET\n\n\n" + scenarioDate + "\n/mybucket/foo.txt?acl&versionId=3",
		},
		"only unsigned query": {
			Method: http.MethodGet,
			URL:    "https://s3.example.com/mybucket/?prefix=a&max-keys=10&delimiter=%2F",
			Expect: "GET\n\n\n" + scenarioDate + "\n/mybucket/",
		},
		"put with content headers": {
			Method: http.MethodPut,
			URL:    "https://s3.example.com/mybucket/photos/puppy.jpg",
			Options: func(r *http.Request) {
				r.Header.Set("Content-Type", "image/jpeg")
				r.Header.Set("Content-MD5", "kAFQmDzST7DWlj99KOF/cg==")
			},
			Expect: "PUT\nkAFQmDzST7DWlj99KOF/cg==\nimage/jpeg\n" + scenarioDate + "\n/mybucket/photos/puppy.jpg",
		},
		"vendor headers": {
			Method: http.MethodPut,
			URL:    "https://s3.example.com/mybucket/foo.txt",
			Options: func(r *http.Request) {
				r.Header.Set("X-Amz-Meta-Reviewed-By", " joe ")
				r.Header.Add("X-Amz-Meta-Reviewed-By", "jane")
				r.Header.Set("X-Amz-Acl", "public-read")
				r.Header.Set("User-Agent", "not-signed")
			},
			Expect: "PUT\n\n\n" + scenarioDate + "\n" +
				"x-amz-acl:public-read\n" +
				"x-amz-meta-reviewed-by:joe,jane\n" +
				"/mybucket/foo.txt",
		},
		"response override headers": {
			Method: http.MethodGet,
			URL:    "https://s3.example.com/mybucket/foo.txt",
			Options: func(r *http.Request) {
				r.Header.Set("Response-Content-Type", "text/plain")
				r.Header.Set("Response-Unknown", "x")
			},
			Expect: "GET\n\n\n" + scenarioDate + "\n" +
				"response-content-type:text/plain\n" +
				"/mybucket/foo.txt",
		},
		"escaped key": {
			Method: http.MethodDelete,
			URL:    "https://s3.example.com/mybucket/my%20file%2Bv1.txt",
			Expect: "DELETE\n\n\n" + scenarioDate + "\n/mybucket/my%20file%2Bv1.txt",
		},
		"empty path": {
			Method: http.MethodGet,
			URL:    "https://s3.example.com",
			Expect: "GET\n\n\n" + scenarioDate + "\n/",
		},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			var opts []func(*http.Request)
			if c.Options != nil {
				opts = append(opts, c.Options)
			}
			s := newSigner(newRequest(t, c.Method, c.URL, opts...))

			actual := s.BuildCanonicalString(scenarioDate)
			if diff := cmp.Diff(c.Expect, actual); diff != "" {
				t.Errorf("expect canonical string match\n%s", diff)
			}
		})
	}
}

func TestBuildCanonicalString_OrderIndependent(t *testing.T) {
	headers := [][2]string{
		{"X-Amz-Meta-B", "2"},
		{"X-Amz-Meta-A", "1"},
		{"Content-Type", "text/plain"},
		{"X-Amz-Acl", "private"},
		{"Response-Expires", "0"},
	}
	queries := []string{"versionId=7", "acl", "prefix=p", "uploadId=u"}

	build := func(headerOrder, queryOrder []int) string {
		var qs []string
		for _, i := range queryOrder {
			qs = append(qs, queries[i])
		}
		req := newRequest(t, http.MethodGet, "https://s3.example.com/bucket/key?"+strings.Join(qs, "&"))
		for _, i := range headerOrder {
			req.Header.Set(headers[i][0], headers[i][1])
		}
		return newSigner(req).BuildCanonicalString(scenarioDate)
	}

	expect := build([]int{0, 1, 2, 3, 4}, []int{0, 1, 2, 3})
	for _, order := range []struct{ headers, queries []int }{
		{headers: []int{4, 3, 2, 1, 0}, queries: []int{3, 2, 1, 0}},
		{headers: []int{2, 0, 4, 1, 3}, queries: []int{1, 3, 0, 2}},
		{headers: []int{1, 3, 0, 4, 2}, queries: []int{2, 0, 3, 1}},
	} {
		if diff := cmp.Diff(expect, build(order.headers, order.queries)); diff != "" {
			t.Errorf("expect order %v to produce same canonical string\n%s", order, diff)
		}
	}

	expectString := "GET\n\ntext/plain\n" + scenarioDate + "\n" +
		"response-expires:0\n" +
		"x-amz-acl:private\n" +
		"x-amz-meta-a:1\n" +
		"x-amz-meta-b:2\n" +
		"/bucket/key?acl&uploadId=u&versionId=7"
	if diff := cmp.Diff(expectString, expect); diff != "" {
		t.Errorf("expect canonical string match\n%s", diff)
	}
}

func TestBuildCanonicalString_MixedCaseHeaderKeys(t *testing.T) {
	expect := "PUT\n\n\n" + scenarioDate + "\n" +
		"x-amz-meta-a:upper,lower\n" +
		"/bucket/key"

	for i := 0; i < 50; i++ {
		req := newRequest(t, http.MethodPut, "https://s3.example.com/bucket/key")
		req.Header["x-amz-meta-a"] = []string{"lower"}
		req.Header["X-Amz-Meta-A"] = []string{"upper"}

		if diff := cmp.Diff(expect, newSigner(req).BuildCanonicalString(scenarioDate)); diff != "" {
			t.Fatalf("expect canonical string match on run %d\n%s", i, diff)
		}
	}
}

func TestBuildCanonicalString_AdditionalSubResources(t *testing.T) {
	req := newRequest(t, http.MethodGet,
		"https://s3.example.com/bucket/key?response-content-type=text%2Fplain&prefix=x")
	s := &Signer{
		Request:     req,
		Credentials: testCreds,
		Options: v2.SignerOptions{
			AdditionalSubResources: []string{"response-content-type"},
		},
	}
	s.init()

	expect := "GET\n\n\n" + scenarioDate + "\n/bucket/key?response-content-type=text/plain"
	if diff := cmp.Diff(expect, s.BuildCanonicalString(scenarioDate)); diff != "" {
		t.Errorf("expect canonical string match\n%s", diff)
	}
}

func TestSignString(t *testing.T) {
	canonical := "GET\n\n\n" + scenarioDate + "\n/mybucket/foo.txt"

	mac := hmac.New(sha1.New, []byte("SECRET"))
	mac.Write([]byte(canonical))
	expect := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	actual := SignString(canonical, "SECRET")
	if e, a := expect, actual; e != a {
		t.Errorf("expect %v, got %v", e, a)
	}
	if e, a := actual, SignString(canonical, "SECRET"); e != a {
		t.Errorf("expect deterministic signature, %v != %v", e, a)
	}
	if strings.ContainsAny(actual, "\r\n") {
		t.Errorf("expect no line terminators in %q", actual)
	}
	if e, a := 28, len(actual); e != a {
		t.Errorf("expect %v byte signature, got %v", e, a)
	}
	if actual == SignString(canonical, "OTHER") {
		t.Errorf("expect different secret to change the signature")
	}
}

func TestDo_Header(t *testing.T) {
	req := newRequest(t, http.MethodGet, "https://s3.example.com/mybucket/foo.txt")

	var logged []string
	s := &Signer{
		Request:     req,
		Credentials: testCreds,
		Time:        time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC),
		Options: v2.SignerOptions{
			LogSigning: true,
			Logger: logging.LoggerFunc(func(c logging.Classification, format string, v ...interface{}) {
				logged = append(logged, string(c))
			}),
		},
	}
	if err := s.Do(); err != nil {
		t.Fatalf("expect no error, got %v", err)
	}

	if e, a := scenarioDate, req.Header.Get("Date"); e != a {
		t.Errorf("expect %v date, got %v", e, a)
	}

	canonical := "GET\n\n\n" + scenarioDate + "\n/mybucket/foo.txt"
	expect := "AWS AKID:" + SignString(canonical, "SECRET")
	if e, a := expect, req.Header.Get("Authorization"); e != a {
		t.Errorf("expect %v authorization, got %v", e, a)
	}

	if diff := cmp.Diff([]string{string(logging.Debug)}, logged); diff != "" {
		t.Errorf("expect one debug log entry\n%s", diff)
	}
}

func TestDo_QueryString(t *testing.T) {
	req := newRequest(t, http.MethodGet, "https://s3.example.com/mybucket/foo.txt?versionId=2")
	expires := time.Unix(1356998400, 0)

	s := &Signer{
		Request:       req,
		Credentials:   testCreds,
		Expires:       expires,
		SignatureType: v2.SignatureTypeQueryString,
	}
	if err := s.Do(); err != nil {
		t.Fatalf("expect no error, got %v", err)
	}

	if v := req.Header.Get("Authorization"); len(v) != 0 {
		t.Errorf("expect no authorization header, got %v", v)
	}
	if v := req.Header.Get("Date"); len(v) != 0 {
		t.Errorf("expect no date header, got %v", v)
	}

	query := req.URL.Query()
	canonical := "GET\n\n\n1356998400\n/mybucket/foo.txt?versionId=2"
	if e, a := SignString(canonical, "SECRET"), query.Get("Signature"); e != a {
		t.Errorf("expect %v signature, got %v", e, a)
	}
	if e, a := "AKID", query.Get("AWSAccessKeyId"); e != a {
		t.Errorf("expect %v access key, got %v", e, a)
	}
	if e, a := "1356998400", query.Get("Expires"); e != a {
		t.Errorf("expect %v expires, got %v", e, a)
	}
	if e, a := "2", query.Get("versionId"); e != a {
		t.Errorf("expect original query kept, got %v", a)
	}
}

func TestDo_Errors(t *testing.T) {
	cases := map[string]*Signer{
		"missing secret": {
			Credentials: credentials.Credentials{AccessKeyID: "AKID"},
		},
		"missing expires": {
			Credentials:   testCreds,
			SignatureType: v2.SignatureTypeQueryString,
		},
	}

	for name, s := range cases {
		t.Run(name, func(t *testing.T) {
			s.Request = newRequest(t, http.MethodGet, "https://s3.example.com/b/k")
			if err := s.Do(); err == nil {
				t.Fatalf("expect error, got none")
			}
		})
	}
}

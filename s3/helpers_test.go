package s3

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/objkit/objkit-go/config"
	"github.com/objkit/objkit-go/httpauth/credentials"
	objkittesting "github.com/objkit/objkit-go/testing"
	objkithttp "github.com/objkit/objkit-go/transport/http"
)

var testCreds = credentials.Credentials{
	AccessKeyID:     "AKID",
	SecretAccessKey: "SECRET/key+1",
}

var testTime = time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC)

const testDate = "Tue, 01 Jan 2013 00:00:00 GMT"

// responseOverrides are the query parameters the client signs besides the
// published sub-resources.
var responseOverrides = []string{
	"response-content-type",
	"response-content-language",
	"response-expires",
	"response-cache-control",
	"response-content-disposition",
	"response-content-encoding",
}

// newTestServer starts a server that rejects requests whose Authorization
// header does not verify for testCreds, and passes the rest to handler.
func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := objkittesting.VerifyAuthorizationV2(r, testCreds.AccessKeyID, testCreds.SecretAccessKey, responseOverrides...); err != nil {
			w.WriteHeader(http.StatusForbidden)
			fmt.Fprint(w, `<Error><Code>SignatureDoesNotMatch</Code><Message>signature mismatch</Message></Error>`)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(server.Close)
	return server
}

func testConfig(t *testing.T, server *httptest.Server) config.ConnectionConfig {
	t.Helper()
	u, err := url.Parse(server.URL)
	if err != nil {
		t.Fatalf("expect valid server URL, %v", err)
	}
	return config.ConnectionConfig{
		AccessKeyID:     testCreds.AccessKeyID,
		SecretAccessKey: testCreds.SecretAccessKey,
		Host:            u.Host,
		Bucket:          "mybucket",
		Scheme:          u.Scheme,
	}
}

// newTestClient returns a client for a verifying test server running
// handler, signing with the fixed testTime.
func newTestClient(t *testing.T, handler http.HandlerFunc, optFns ...func(*Options)) *Client {
	t.Helper()
	server := newTestServer(t, handler)

	fns := []func(*Options){func(o *Options) {
		o.HTTPClient = server.Client()
		o.Clock = func() time.Time { return testTime }
	}}
	return New(testConfig(t, server), append(fns, optFns...)...)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/xml")
	w.Header().Set("X-Amz-Request-Id", "REQ-"+code)
	w.WriteHeader(status)
	fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>`+
		`<Error><Code>%s</Code><Message>%s</Message><Resource>/mybucket</Resource><RequestId>REQ-%s</RequestId><HostId>HOST</HostId></Error>`,
		code, message, code)
}

// failingClient fails the test if a request is sent.
func failingClient(t *testing.T) objkithttp.ClientDo {
	return objkithttp.ClientDoFunc(func(r *http.Request) (*http.Response, error) {
		t.Errorf("expect no request to be sent, got %v %v", r.Method, r.URL)
		return nil, fmt.Errorf("unexpected request")
	})
}

func testConfigFor(host string) config.ConnectionConfig {
	return config.ConnectionConfig{
		AccessKeyID:     testCreds.AccessKeyID,
		SecretAccessKey: testCreds.SecretAccessKey,
		Host:            host,
		Bucket:          "mybucket",
		Scheme:          "https",
	}
}

package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	objkit "github.com/objkit/objkit-go"
)

func newTestRequest(t *testing.T, endpoint string) *Request {
	t.Helper()
	u, err := url.Parse(endpoint)
	if err != nil {
		t.Fatalf("expect valid endpoint, %v", err)
	}
	req := NewStackRequest().(*Request)
	req.URL = u
	return req
}

func TestClientHandler_Handle(t *testing.T) {
	cases := map[string]struct {
		Context   context.Context
		Endpoint  string
		Client    ClientDo
		ExpectErr func(error) error
	}{
		"no error": {
			Context:  context.Background(),
			Endpoint: "https://s3.example.com/bucket/key",
			Client: ClientDoFunc(func(*http.Request) (*http.Response, error) {
				return &http.Response{StatusCode: 200, Body: http.NoBody}, nil
			}),
		},
		"send error": {
			Context:  context.Background(),
			Endpoint: "https://s3.example.com/bucket/key",
			Client: ClientDoFunc(func(*http.Request) (*http.Response, error) {
				return nil, fmt.Errorf("some error")
			}),
			ExpectErr: func(err error) error {
				var sendError *RequestSendError
				if !errors.As(err, &sendError) {
					return fmt.Errorf("expect error to be %T, %v", sendError, err)
				}

				var cancelError *objkit.CanceledError
				if errors.As(err, &cancelError) {
					return fmt.Errorf("expect error to not be %T, %v", cancelError, err)
				}

				return nil
			},
		},
		"canceled error": {
			Context: func() context.Context {
				ctx, fn := context.WithCancel(context.Background())
				fn()
				return ctx
			}(),
			Endpoint: "https://s3.example.com/bucket/key",
			Client: ClientDoFunc(func(*http.Request) (*http.Response, error) {
				return nil, fmt.Errorf("some error")
			}),
			ExpectErr: func(err error) error {
				var sendError *RequestSendError
				if errors.As(err, &sendError) {
					return fmt.Errorf("expect error to not be %T, %v", sendError, err)
				}

				var cancelError *objkit.CanceledError
				if !errors.As(err, &cancelError) {
					return fmt.Errorf("expect error to be %T, %v", cancelError, err)
				}
				if !errors.Is(cancelError.Err, context.Canceled) {
					return fmt.Errorf("expect underlying error to be context.Canceled, got %v", cancelError.Err)
				}
				return nil
			},
		},
		"context deadline": {
			Context: func() context.Context {
				ctx, fn := context.WithDeadline(context.Background(), time.Now().Add(50*time.Millisecond))
				fn()
				return ctx
			}(),
			Endpoint: "https://s3.example.com/bucket/key",
			Client: ClientDoFunc(func(req *http.Request) (*http.Response, error) {
				select {
				case <-time.After(500 * time.Millisecond):
					return &http.Response{}, nil
				case <-req.Context().Done():
					return nil, req.Context().Err()
				}
			}),
			ExpectErr: func(err error) error {
				var cancelError *objkit.CanceledError
				if !errors.As(err, &cancelError) {
					return fmt.Errorf("expect error to be %T, %v", cancelError, err)
				}
				return nil
			},
		},
		"invalid host": {
			Context:  context.Background(),
			Endpoint: "https://bad_host/bucket",
			Client: ClientDoFunc(func(*http.Request) (*http.Response, error) {
				return nil, fmt.Errorf("client must not be called")
			}),
			ExpectErr: func(err error) error {
				if !strings.Contains(err.Error(), "invalid request host") {
					return fmt.Errorf("expect invalid host error, got %v", err)
				}
				return nil
			},
		},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			handler := NewClientHandler(c.Client)
			resp, _, err := handler.Handle(c.Context, newTestRequest(t, c.Endpoint))

			if c.ExpectErr != nil {
				if err == nil {
					t.Fatalf("expect error, got none")
				}

				if err = c.ExpectErr(err); err != nil {
					t.Fatalf("expect error match failed, %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expect no error, got %v", err)
			}

			if _, ok := resp.(*Response); !ok {
				t.Fatalf("expect Response type, got %T", resp)
			}
		})
	}
}

func TestClientHandler_StreamsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		w.Header().Set("X-Echo-Length", fmt.Sprint(len(b)))
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, "payload:"+string(b))
	}))
	defer server.Close()

	req := newTestRequest(t, server.URL+"/bucket/key")
	req.Method = http.MethodPut
	req.ContentLength = 5
	req, err := req.SetStream(strings.NewReader("hello"))
	if err != nil {
		t.Fatalf("expect no error, got %v", err)
	}

	out, _, err := NewClientHandler(server.Client()).Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("expect no error, got %v", err)
	}

	resp := out.(*Response)
	defer resp.Body.Close()

	if e, a := "5", resp.Header.Get("X-Echo-Length"); e != a {
		t.Errorf("expect %v echo length, got %v", e, a)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("expect no error reading body, got %v", err)
	}
	if e, a := "payload:hello", string(b); e != a {
		t.Errorf("expect %v body, got %v", e, a)
	}
}

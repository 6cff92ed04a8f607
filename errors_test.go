package objkit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestServiceError(t *testing.T) {
	cases := map[string]struct {
		Err         *ServiceError
		ExpectFault ErrorFault
		ExpectMsg   string
	}{
		"conflict": {
			Err: &ServiceError{
				Kind:       ErrorKindFor("BucketAlreadyExists"),
				StatusCode: 409,
				Message:    "x",
			},
			ExpectFault: FaultClient,
			ExpectMsg:   "api error BucketAlreadyExists: x",
		},
		"internal": {
			Err: &ServiceError{
				Kind:       ErrorKindFor("InternalError"),
				StatusCode: 500,
				Message:    "try again",
			},
			ExpectFault: FaultServer,
			ExpectMsg:   "api error InternalError: try again",
		},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			if e, a := c.ExpectFault, c.Err.ErrorFault(); e != a {
				t.Errorf("expect fault %v, got %v", e, a)
			}
			if e, a := c.ExpectMsg, c.Err.Error(); e != a {
				t.Errorf("expect message %q, got %q", e, a)
			}

			var apiErr APIError
			wrapped := &OperationError{ServiceID: "S3", OperationName: "PutObject", Err: c.Err}
			if !errors.As(wrapped, &apiErr) {
				t.Fatalf("expect wrapped error to be APIError")
			}
			if e, a := c.Err.Kind.Code(), apiErr.ErrorCode(); e != a {
				t.Errorf("expect code %q, got %q", e, a)
			}
			if !errors.Is(wrapped, c.Err.Kind) {
				t.Errorf("expect errors.Is to match kind %v", c.Err.Kind)
			}
			if errors.Is(wrapped, ErrorKindFor("SomethingElse")) {
				t.Errorf("expect errors.Is not to match another kind")
			}
		})
	}
}

func TestIsNotFound(t *testing.T) {
	notFound := &OperationError{
		ServiceID:     "S3",
		OperationName: "DeleteObject",
		Err:           &ServiceError{Kind: KindNoSuchKey, StatusCode: 404},
	}
	if !IsNotFound(notFound) {
		t.Errorf("expect not found")
	}
	if IsNotFound(&ServiceError{Kind: KindAccessDenied, StatusCode: 403}) {
		t.Errorf("expect access denied not to be not found")
	}
	if IsNotFound(fmt.Errorf("plain")) {
		t.Errorf("expect plain error not to be not found")
	}
}

func TestOperationError(t *testing.T) {
	err := &OperationError{
		ServiceID:     "S3",
		OperationName: "GetObject",
		Err:           &CanceledError{Err: context.Canceled},
	}

	if e, a := "operation error S3: GetObject, canceled, context canceled", err.Error(); e != a {
		t.Errorf("expect %q, got %q", e, a)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expect unwrap to context.Canceled")
	}
}

func TestConfigError(t *testing.T) {
	err := &ConfigError{Reason: "missing bucket", Err: fmt.Errorf("boom")}
	if e, a := "invalid connection descriptor, missing bucket, boom", err.Error(); e != a {
		t.Errorf("expect %q, got %q", e, a)
	}
}

func TestProtocolError(t *testing.T) {
	err := &ProtocolError{StatusCode: 500, Reason: "malformed error document"}
	if e, a := "status 500 Internal Server Error", err.Error(); !strings.Contains(a, e) {
		t.Errorf("expect %q in %q", e, a)
	}
}

func TestInvalidParamsError(t *testing.T) {
	invalid := InvalidParamsError{Context: "PutObjectInput"}
	invalid.Add(NewErrParamRequired("Key"))
	invalid.Add(NewErrParamValue("ContentLength", "must not be negative"))

	if e, a := 2, invalid.Len(); e != a {
		t.Fatalf("expect %d errors, got %d", e, a)
	}
	expect := "2 validation error(s) found.\n" +
		"- missing required field, PutObjectInput.Key.\n" +
		"- must not be negative, PutObjectInput.ContentLength.\n"
	if e, a := expect, invalid.Error(); e != a {
		t.Errorf("expect\n%s\ngot\n%s", e, a)
	}
}

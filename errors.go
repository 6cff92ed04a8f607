package objkit

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError provides the generic, protocol agnostic error type every error
// reported by the object storage service implements.
type APIError interface {
	error

	// ErrorCode returns the error code string assigned by the service.
	ErrorCode() string
	// ErrorMessage returns the human readable message of the error.
	ErrorMessage() string
	// ErrorFault returns whether the fault lies with the client or server.
	ErrorFault() ErrorFault
}

// ErrorFault provides the type for a Smithy-style API error fault.
type ErrorFault int

// ErrorFault enumeration values
const (
	FaultUnknown ErrorFault = iota
	FaultServer
	FaultClient
)

func (f ErrorFault) String() string {
	switch f {
	case FaultServer:
		return "server"
	case FaultClient:
		return "client"
	default:
		return "unknown"
	}
}

// ServiceError is an explicit rejection by the service, carried by a non-2xx
// HTTP status and a structured error document. Kind identifies the service
// error code and is comparable with ==.
type ServiceError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string

	RequestID string
	HostID    string
	Resource  string
}

var _ APIError = (*ServiceError)(nil)

func (e *ServiceError) Error() string {
	return fmt.Sprintf("api error %s: %s", e.Kind.Code(), e.Message)
}

// ErrorCode returns the service assigned error code.
func (e *ServiceError) ErrorCode() string { return e.Kind.Code() }

// ErrorMessage returns the message reported by the service.
func (e *ServiceError) ErrorMessage() string { return e.Message }

// ErrorFault derives the fault from the HTTP status code.
func (e *ServiceError) ErrorFault() ErrorFault {
	switch {
	case e.StatusCode >= 500:
		return FaultServer
	case e.StatusCode >= 400:
		return FaultClient
	default:
		return FaultUnknown
	}
}

// Is reports whether target is the ErrorKind of this error, allowing
// errors.Is(err, objkit.KindNoSuchKey).
func (e *ServiceError) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == e.Kind
}

// ConfigError is returned when a connection descriptor is missing or
// malformed. It is not retryable.
type ConfigError struct {
	Descriptor string
	Reason     string
	Err        error
}

func (e *ConfigError) Error() string {
	msg := "invalid connection descriptor"
	if len(e.Reason) != 0 {
		msg += ", " + e.Reason
	}
	if e.Err != nil {
		msg += ", " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error { return e.Err }

// ProtocolError is returned when a response does not have the shape the
// protocol requires, e.g. an error body that is not an error document. It is
// distinct from a failure reported by the service.
type ProtocolError struct {
	StatusCode int
	Reason     string
	Snapshot   []byte
	Err        error
}

func (e *ProtocolError) Error() string {
	msg := fmt.Sprintf("protocol error, status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	if len(e.Reason) != 0 {
		msg += ", " + e.Reason
	}
	if e.Err != nil {
		msg += ", " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *ProtocolError) Unwrap() error { return e.Err }

// OperationError decorates an underlying error with the service and
// operation that produced it.
type OperationError struct {
	ServiceID     string
	OperationName string
	Err           error
}

// Service returns the name of the API service the error occurred with.
func (e *OperationError) Service() string { return e.ServiceID }

// Operation returns the name of the API operation the error occurred with.
func (e *OperationError) Operation() string { return e.OperationName }

// Unwrap returns the nested error if any, or nil.
func (e *OperationError) Unwrap() error { return e.Err }

func (e *OperationError) Error() string {
	return fmt.Sprintf("operation error %s: %s, %v", e.ServiceID, e.OperationName, e.Err)
}

// CanceledError is the error that will be returned by an API request that
// was canceled through its context.
type CanceledError struct {
	Err error
}

// CanceledError returns true to satisfy interfaces checking for canceled errors.
func (*CanceledError) CanceledError() bool { return true }

// Unwrap returns the underlying error, if there was one.
func (e *CanceledError) Unwrap() error { return e.Err }

func (e *CanceledError) Error() string {
	return fmt.Sprintf("canceled, %v", e.Err)
}

// IsNotFound reports whether err is a ServiceError for a missing bucket, key
// or a bodiless 404.
func IsNotFound(err error) bool {
	var se *ServiceError
	if !errors.As(err, &se) {
		return false
	}
	return se.StatusCode == http.StatusNotFound
}

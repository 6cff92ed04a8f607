package s3

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/objkit/objkit-go"
	objkithttp "github.com/objkit/objkit-go/transport/http"
	objkitxml "github.com/objkit/objkit-go/xml"
)

// Outcome is the classification of an operation response.
type Outcome int

// Enumeration values for Outcome
const (
	OutcomeSuccess Outcome = iota
	OutcomeNotFound
	OutcomeServiceFailure
	OutcomeProtocolFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "Success"
	case OutcomeNotFound:
		return "NotFound"
	case OutcomeServiceFailure:
		return "ServiceFailure"
	case OutcomeProtocolFailure:
		return "ProtocolFailure"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

const (
	requestIDHeader = "X-Amz-Request-Id"
	hostIDHeader    = "X-Amz-Id-2"

	// maxErrorBodySize bounds how much of an error response is buffered.
	maxErrorBodySize = 64 * 1024
	// maxSnapshotSize bounds the body kept on a ProtocolError.
	maxSnapshotSize = 1024
)

// Classify interprets the status of resp. A 2xx status is a success and a
// 404 is NotFound; neither reads the body. Any other status reads the body as
// an error document and returns a *objkit.ServiceError, or a
// *objkit.ProtocolError when the body is not an error document.
func Classify(resp *objkithttp.Response) (Outcome, error) {
	switch code := resp.StatusCode; {
	case code >= 200 && code < 300:
		return OutcomeSuccess, nil
	case code == http.StatusNotFound:
		return OutcomeNotFound, nil
	}

	err := decodeServiceError(resp)
	if _, ok := err.(*objkit.ServiceError); ok {
		return OutcomeServiceFailure, err
	}
	return OutcomeProtocolFailure, err
}

// decodeServiceError reads the error document of resp. Responses to HEAD
// requests and 304 responses to conditional requests carry no body, the error
// code is derived from the status text.
func decodeServiceError(resp *objkithttp.Response) error {
	var body []byte
	if resp.Body != nil {
		var err error
		body, err = io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		if err != nil {
			return &objkit.ProtocolError{
				StatusCode: resp.StatusCode,
				Reason:     "failed to read error response body",
				Err:        err,
			}
		}
	}

	if len(bytes.TrimSpace(body)) == 0 && (isHeadResponse(resp) || resp.StatusCode == http.StatusNotModified) {
		return &objkit.ServiceError{
			Kind:       objkit.ErrorKindFor(statusErrorCode(resp.StatusCode)),
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			RequestID:  resp.Header.Get(requestIDHeader),
			HostID:     resp.Header.Get(hostIDHeader),
		}
	}

	doc, err := objkitxml.DecodeErrorDocument(bytes.NewReader(body))
	if err != nil {
		return &objkit.ProtocolError{
			StatusCode: resp.StatusCode,
			Reason:     "error response is not an error document",
			Snapshot:   snapshot(body),
			Err:        err,
		}
	}
	if len(doc.Code) == 0 {
		return &objkit.ProtocolError{
			StatusCode: resp.StatusCode,
			Reason:     "error document has no Code",
			Snapshot:   snapshot(body),
		}
	}

	serviceErr := &objkit.ServiceError{
		Kind:       objkit.ErrorKindFor(doc.Code),
		StatusCode: resp.StatusCode,
		Message:    doc.Message,
		RequestID:  doc.RequestID,
		HostID:     doc.HostID,
		Resource:   doc.Resource,
	}
	if len(serviceErr.RequestID) == 0 {
		serviceErr.RequestID = resp.Header.Get(requestIDHeader)
	}
	if len(serviceErr.HostID) == 0 {
		serviceErr.HostID = resp.Header.Get(hostIDHeader)
	}
	return serviceErr
}

// notFoundError returns the error for a 404 of an operation where absence is
// not a result. The body's error document is used when it has one.
func notFoundError(resp *objkithttp.Response) error {
	if err := decodeServiceError(resp); err != nil {
		if _, ok := err.(*objkit.ServiceError); ok {
			return err
		}
	}
	return &objkit.ServiceError{
		Kind:       objkit.KindNotFound,
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
		RequestID:  resp.Header.Get(requestIDHeader),
		HostID:     resp.Header.Get(hostIDHeader),
	}
}

func isHeadResponse(resp *objkithttp.Response) bool {
	return resp.Request != nil && resp.Request.Method == http.MethodHead
}

// statusErrorCode returns the status text without spaces, e.g. "Forbidden".
func statusErrorCode(status int) string {
	text := http.StatusText(status)
	if len(text) == 0 {
		return fmt.Sprintf("Status%d", status)
	}
	return strings.ReplaceAll(text, " ", "")
}

func snapshot(body []byte) []byte {
	if len(body) > maxSnapshotSize {
		body = body[:maxSnapshotSize]
	}
	return append([]byte(nil), body...)
}

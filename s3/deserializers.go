package s3

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/objkit/objkit-go"
	"github.com/objkit/objkit-go/middleware"
	"github.com/objkit/objkit-go/middleware/id"
	objkithttp "github.com/objkit/objkit-go/transport/http"
)

const metaHeaderPrefix = "X-Amz-Meta-"

// notFoundPolicy selects how a 404 response is reported.
type notFoundPolicy int

const (
	// notFoundIsError reports a 404 as a *objkit.ServiceError.
	notFoundIsError notFoundPolicy = iota
	// notFoundIsAbsent reports a 404 as a nil output and nil error.
	notFoundIsAbsent
)

type operationDeserializer struct {
	notFound notFoundPolicy
	decode   func(*objkithttp.Response) (interface{}, error)
}

func addOperationDeserializer(stack *middleware.Stack, notFound notFoundPolicy, decode func(*objkithttp.Response) (interface{}, error)) error {
	return stack.Deserialize.Add(&operationDeserializer{notFound: notFound, decode: decode}, middleware.After)
}

func (*operationDeserializer) ID() string { return id.OperationDeserializer }

func (m *operationDeserializer) HandleDeserialize(ctx context.Context, in middleware.DeserializeInput, next middleware.DeserializeHandler) (
	out middleware.DeserializeOutput, metadata middleware.Metadata, err error,
) {
	out, metadata, err = next.HandleDeserialize(ctx, in)
	if err != nil {
		return out, metadata, err
	}

	response, ok := out.RawResponse.(*objkithttp.Response)
	if !ok {
		return out, metadata, fmt.Errorf("unknown transport type %T", out.RawResponse)
	}
	objkithttp.SetResponseStatusCode(&metadata, response.StatusCode)
	if v := response.Header.Get(requestIDHeader); len(v) != 0 {
		objkithttp.SetRequestID(&metadata, v)
	}

	outcome, err := Classify(response)
	switch outcome {
	case OutcomeSuccess:
	case OutcomeNotFound:
		if m.notFound == notFoundIsAbsent {
			// the body is never handed to the caller, release the connection
			_, _ = io.Copy(io.Discard, response.Body)
			response.Body.Close()
			response.Body = http.NoBody
			out.Result = nil
			return out, metadata, nil
		}
		return out, metadata, &objkithttp.ResponseError{Response: response, Err: notFoundError(response)}
	default:
		if se, ok := err.(*objkit.ServiceError); ok && len(se.RequestID) != 0 {
			objkithttp.SetRequestID(&metadata, se.RequestID)
		}
		return out, metadata, &objkithttp.ResponseError{Response: response, Err: err}
	}

	out.Result, err = m.decode(response)
	if err != nil {
		return out, metadata, &objkithttp.ResponseError{
			Response: response,
			Err: &objkit.ProtocolError{
				StatusCode: response.StatusCode,
				Reason:     "failed to decode response",
				Err:        err,
			},
		}
	}

	return out, metadata, nil
}

// objectHeaders is the object description carried by response headers.
type objectHeaders struct {
	ContentLength int64
	ContentType   string
	ContentRange  string
	ETag          string
	LastModified  *time.Time
	VersionID     string
	DeleteMarker  bool
	Metadata      map[string]string
}

func decodeObjectHeaders(header http.Header) (objectHeaders, error) {
	v := objectHeaders{
		ContentType:  header.Get("Content-Type"),
		ContentRange: header.Get("Content-Range"),
		ETag:         header.Get("ETag"),
		VersionID:    header.Get("X-Amz-Version-Id"),
	}

	if s := header.Get("Content-Length"); len(s) != 0 {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return v, fmt.Errorf("invalid Content-Length header %q, %w", s, err)
		}
		v.ContentLength = n
	}

	if s := header.Get("Last-Modified"); len(s) != 0 {
		t, err := objkithttp.ParseTime(s)
		if err != nil {
			return v, fmt.Errorf("invalid Last-Modified header %q, %w", s, err)
		}
		v.LastModified = &t
	}

	if s := header.Get("X-Amz-Delete-Marker"); len(s) != 0 {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return v, fmt.Errorf("invalid X-Amz-Delete-Marker header %q, %w", s, err)
		}
		v.DeleteMarker = b
	}

	for name, values := range header {
		if !strings.HasPrefix(name, metaHeaderPrefix) || len(values) == 0 {
			continue
		}
		if v.Metadata == nil {
			v.Metadata = map[string]string{}
		}
		v.Metadata[strings.ToLower(name[len(metaHeaderPrefix):])] = values[0]
	}

	return v, nil
}

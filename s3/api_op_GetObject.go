package s3

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/objkit/objkit-go"
	"github.com/objkit/objkit-go/middleware"
	objkittime "github.com/objkit/objkit-go/time"
	objkithttp "github.com/objkit/objkit-go/transport/http"
)

// GetObject retrieves an object. The body of the output streams from the
// connection and must be closed by the caller.
//
// A missing object is not an error: GetObject returns a nil output and a nil
// error.
func (c *Client) GetObject(ctx context.Context, params *GetObjectInput, optFns ...func(*Options)) (*GetObjectOutput, error) {
	if params == nil {
		params = &GetObjectInput{}
	}

	result, metadata, err := c.invokeOperation(ctx, "GetObject", params, optFns, c.addOperationGetObjectMiddlewares)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}

	out := result.(*GetObjectOutput)
	out.ResultMetadata = metadata
	return out, nil
}

// GetObjectInput is the input of GetObject.
type GetObjectInput struct {
	// The key of the object. This member is required.
	Key string

	// Version of the object to retrieve.
	VersionID string

	// Byte range to retrieve, e.g. "bytes=0-99".
	Range string

	IfMatch           string
	IfNoneMatch       string
	IfModifiedSince   *time.Time
	IfUnmodifiedSince *time.Time

	// Overrides of the response headers. They are sent as query parameters
	// and take part in the signature.
	ResponseCacheControl       string
	ResponseContentDisposition string
	ResponseContentEncoding    string
	ResponseContentLanguage    string
	ResponseContentType        string
	ResponseExpires            string
}

func (in *GetObjectInput) validate() error {
	invalidParams := objkit.InvalidParamsError{Context: "GetObjectInput"}
	validateKey(&invalidParams, in.Key)
	return validationResult(&invalidParams)
}

func (in *GetObjectInput) requestDescriptor() (*RequestDescriptor, error) {
	return in.descriptor(VerbGet), nil
}

func (in *GetObjectInput) descriptor(verb Verb) *RequestDescriptor {
	desc := &RequestDescriptor{
		Method: verb,
		Key:    in.Key,
		Query:  url.Values{},
		Header: http.Header{},
	}

	setQueryIfNotEmpty(desc.Query, "versionId", in.VersionID)
	setQueryIfNotEmpty(desc.Query, "response-cache-control", in.ResponseCacheControl)
	setQueryIfNotEmpty(desc.Query, "response-content-disposition", in.ResponseContentDisposition)
	setQueryIfNotEmpty(desc.Query, "response-content-encoding", in.ResponseContentEncoding)
	setQueryIfNotEmpty(desc.Query, "response-content-language", in.ResponseContentLanguage)
	setQueryIfNotEmpty(desc.Query, "response-content-type", in.ResponseContentType)
	setQueryIfNotEmpty(desc.Query, "response-expires", in.ResponseExpires)

	setHeaderIfNotEmpty(desc.Header, "Range", in.Range)
	setHeaderIfNotEmpty(desc.Header, "If-Match", in.IfMatch)
	setHeaderIfNotEmpty(desc.Header, "If-None-Match", in.IfNoneMatch)
	if in.IfModifiedSince != nil {
		desc.Header.Set("If-Modified-Since", objkittime.FormatHTTPDate(*in.IfModifiedSince))
	}
	if in.IfUnmodifiedSince != nil {
		desc.Header.Set("If-Unmodified-Since", objkittime.FormatHTTPDate(*in.IfUnmodifiedSince))
	}

	return desc
}

// GetObjectOutput is the output of GetObject.
type GetObjectOutput struct {
	// Object data.
	Body io.ReadCloser

	ContentLength int64
	ContentType   string
	ContentRange  string
	ETag          string
	LastModified  *time.Time
	VersionID     string

	// User metadata, the x-amz-meta-* headers keyed by lower case name
	// without the prefix.
	Metadata map[string]string

	// Metadata pertaining to the operation's result.
	ResultMetadata middleware.Metadata
}

func decodeGetObjectOutput(resp *objkithttp.Response) (interface{}, error) {
	h, err := decodeObjectHeaders(resp.Header)
	if err != nil {
		return nil, err
	}

	return &GetObjectOutput{
		Body:          resp.Body,
		ContentLength: h.ContentLength,
		ContentType:   h.ContentType,
		ContentRange:  h.ContentRange,
		ETag:          h.ETag,
		LastModified:  h.LastModified,
		VersionID:     h.VersionID,
		Metadata:      h.Metadata,
	}, nil
}

func (c *Client) addOperationGetObjectMiddlewares(stack *middleware.Stack, options Options) error {
	if err := addOperationDeserializer(stack, notFoundIsAbsent, decodeGetObjectOutput); err != nil {
		return err
	}
	return addClientMiddlewares(stack, options)
}

package s3

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	v2 "github.com/objkit/objkit-go/httpauth/v2"
	"github.com/objkit/objkit-go/middleware"
	"github.com/objkit/objkit-go/middleware/id"
	objkithttp "github.com/objkit/objkit-go/transport/http"
)

const aclHeader = "X-Amz-Acl"

// descriptorBuilder is implemented by every operation input.
type descriptorBuilder interface {
	requestDescriptor() (*RequestDescriptor, error)
}

type serializeDescriptor struct {
	endpoint *url.URL
	bucket   string
}

func addSerializeDescriptorMiddleware(stack *middleware.Stack, endpoint *url.URL, bucket string) error {
	return stack.Serialize.Add(&serializeDescriptor{endpoint: endpoint, bucket: bucket}, middleware.After)
}

func (*serializeDescriptor) ID() string { return id.OperationSerializer }

func (m *serializeDescriptor) HandleSerialize(ctx context.Context, in middleware.SerializeInput, next middleware.SerializeHandler) (
	out middleware.SerializeOutput, metadata middleware.Metadata, err error,
) {
	request, ok := in.Request.(*objkithttp.Request)
	if !ok {
		return out, metadata, fmt.Errorf("unknown transport type %T", in.Request)
	}

	input, ok := in.Parameters.(descriptorBuilder)
	if !ok {
		return out, metadata, fmt.Errorf("unknown input parameters type %T", in.Parameters)
	}

	desc, err := input.requestDescriptor()
	if err != nil {
		return out, metadata, fmt.Errorf("failed to build request descriptor, %w", err)
	}

	if request, err = serializeRequest(request, m.endpoint, m.bucket, desc); err != nil {
		return out, metadata, err
	}
	in.Request = request

	return next.HandleSerialize(ctx, in)
}

// serializeRequest populates request from the descriptor. The object key is
// escaped once and kept as the URL's raw path, so the dispatched path and the
// signed resource are the same bytes.
func serializeRequest(request *objkithttp.Request, endpoint *url.URL, bucket string, desc *RequestDescriptor) (*objkithttp.Request, error) {
	method := desc.Method.Method()
	if len(method) == 0 {
		return nil, fmt.Errorf("unsupported request verb %v", desc.Method)
	}
	request.Method = method

	path, rawPath := resourcePath(bucket, desc.Key)
	request.URL.Scheme = endpoint.Scheme
	request.URL.Host = endpoint.Host
	request.URL.Path = path
	request.URL.RawPath = rawPath
	request.URL.RawQuery = desc.Query.Encode()

	for name, values := range desc.Header {
		for _, v := range values {
			request.Header.Add(name, v)
		}
	}
	if len(desc.ContentType) != 0 {
		request.Header.Set("Content-Type", desc.ContentType)
	}

	if desc.Body != nil {
		var err error
		if request, err = request.SetStream(desc.Body); err != nil {
			return nil, fmt.Errorf("failed to set request body, %w", err)
		}
	}
	if desc.ContentLength > 0 {
		request.ContentLength = desc.ContentLength
	}

	return request, nil
}

// resourcePath returns the path style resource of the key in bucket, in
// decoded and escaped form. An empty key addresses the bucket, "/bucket/".
func resourcePath(bucket, key string) (path, rawPath string) {
	path = "/" + bucket + "/" + key
	rawPath = "/" + v2.EscapePath(bucket) + "/" + v2.EscapePath(key)
	return path, rawPath
}

func setHeaderIfNotEmpty(header http.Header, name, value string) {
	if len(value) != 0 {
		header.Set(name, value)
	}
}

func setQueryIfNotEmpty(query url.Values, name, value string) {
	if len(value) != 0 {
		query.Set(name, value)
	}
}

func setMetadataHeaders(header http.Header, metadata map[string]string) {
	for k, v := range metadata {
		header.Set(metaHeaderPrefix+k, v)
	}
}

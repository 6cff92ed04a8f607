package http

import "github.com/objkit/objkit-go/middleware"

type (
	responseStatusCodeKey struct{}
	requestIDKey          struct{}
)

// GetResponseStatusCode retrieves the HTTP status code of the operation's
// response from the metadata.
func GetResponseStatusCode(metadata middleware.MetadataReader) (v int, ok bool) {
	v, ok = metadata.Get(responseStatusCodeKey{}).(int)
	return v, ok
}

// SetResponseStatusCode sets the HTTP status code of the operation's response
// on the metadata.
func SetResponseStatusCode(metadata *middleware.Metadata, code int) {
	metadata.Set(responseStatusCodeKey{}, code)
}

// GetRequestID retrieves the service assigned request id from the metadata.
func GetRequestID(metadata middleware.MetadataReader) (v string, ok bool) {
	v, ok = metadata.Get(requestIDKey{}).(string)
	return v, ok
}

// SetRequestID sets the service assigned request id on the metadata.
func SetRequestID(metadata *middleware.Metadata, id string) {
	metadata.Set(requestIDKey{}, id)
}

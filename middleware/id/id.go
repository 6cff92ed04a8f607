// Package id holds the slot IDs of the middleware the object store client
// registers on an operation stack.
package id

const (
	// ComputeContentLength is the slot ID for middleware that determines the transport body's content length
	ComputeContentLength = "ComputeContentLength"
	// ContentMD5 is the slot ID for middleware that computes the Content-MD5 digest of a seekable body.
	ContentMD5 = "ContentMD5"
	// CloseResponseBody is the slot ID for middleware that handles closing the transport layer response body.
	CloseResponseBody = "CloseResponseBody"
	// ErrorCloseResponseBody is the slot ID for middleware that handles closing the transport layer response body if an error occurred.
	ErrorCloseResponseBody = "ErrorCloseResponseBody"
	// OperationDeserializer is the slot ID for middleware that interprets the response of an operation.
	OperationDeserializer = "OperationDeserializer"
	// OperationInputValidation is the slot ID for middleware that validates operation input.
	OperationInputValidation = "OperationInputValidation"
	// OperationSerializer is the slot ID for middleware that builds the request of an operation.
	OperationSerializer = "OperationSerializer"
	// RequestSigner is the slot ID for middleware that signs the outgoing request.
	RequestSigner = "RequestSigner"
	// RequestResponseLogger is the slot ID for middleware that logs the wire request and response.
	RequestResponseLogger = "RequestResponseLogger"
	// UserAgent is the slot ID for middleware that sets the User-Agent header.
	UserAgent = "UserAgent"
	// OperationTracing is the slot ID for middleware that records an operation span.
	OperationTracing = "OperationTracing"
	// OperationMetrics is the slot ID for middleware that records operation metrics.
	OperationMetrics = "OperationMetrics"
)

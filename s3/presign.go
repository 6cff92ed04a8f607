package s3

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/objkit/objkit-go"
	"github.com/objkit/objkit-go/httpauth/credentials"
	"github.com/objkit/objkit-go/httpauth/sigv2"
	v2 "github.com/objkit/objkit-go/httpauth/v2"
	"github.com/objkit/objkit-go/middleware"
	"github.com/objkit/objkit-go/middleware/id"
	objkithttp "github.com/objkit/objkit-go/transport/http"
)

// PresignedHTTPRequest is a request authenticated by its query string. It can
// be handed to a party without credentials until it expires.
type PresignedHTTPRequest struct {
	URL    string
	Method string

	// Headers the request must be sent with. They were part of the
	// signature.
	SignedHeader http.Header
}

// PresignGetObject returns a GetObject request valid for expires from the
// client's clock. No request is sent.
func (c *Client) PresignGetObject(ctx context.Context, params *GetObjectInput, expires time.Duration, optFns ...func(*Options)) (*PresignedHTTPRequest, error) {
	if params == nil {
		params = &GetObjectInput{}
	}
	if expires <= 0 {
		return nil, &objkit.OperationError{
			ServiceID:     ServiceID,
			OperationName: "GetObject",
			Err:           fmt.Errorf("presign expiry must be positive, got %v", expires),
		}
	}

	result, _, err := c.invokeOperation(ctx, "GetObject", params, optFns,
		func(stack *middleware.Stack, options Options) error {
			return addPresignMiddlewares(stack, options, expires)
		})
	if err != nil {
		return nil, err
	}
	return result.(*PresignedHTTPRequest), nil
}

func addPresignMiddlewares(stack *middleware.Stack, options Options, expires time.Duration) error {
	endpoint, err := url.Parse(options.Endpoint)
	if err != nil {
		return &objkit.ConfigError{Reason: "invalid endpoint", Err: err}
	}
	if err := addValidateInputMiddleware(stack); err != nil {
		return err
	}
	if err := addSerializeDescriptorMiddleware(stack, endpoint, options.Bucket); err != nil {
		return err
	}
	return stack.Finalize.Add(&presignRequest{
		signer:      newSigner(),
		credentials: options.Credentials,
		expires:     options.Clock().Add(expires),
		logSigning:  options.ClientLogMode.IsSigning(),
	}, middleware.After)
}

// presignRequest signs the request's query string and returns the result
// without sending the request.
type presignRequest struct {
	signer      *sigv2.Signer
	credentials credentials.Credentials
	expires     time.Time
	logSigning  bool
}

func (*presignRequest) ID() string { return id.RequestSigner }

func (m *presignRequest) HandleFinalize(ctx context.Context, in middleware.FinalizeInput, next middleware.FinalizeHandler) (
	out middleware.FinalizeOutput, metadata middleware.Metadata, err error,
) {
	req, ok := in.Request.(*objkithttp.Request)
	if !ok {
		return out, metadata, fmt.Errorf("unexpected transport type %T", in.Request)
	}

	signed, err := m.signer.PresignRequest(&sigv2.PresignRequestInput{
		Request:     req.Request,
		Credentials: m.credentials,
		Expires:     m.expires,
	}, func(o *v2.SignerOptions) {
		o.Logger = middleware.GetLogger(ctx)
		o.LogSigning = m.logSigning
	})
	if err != nil {
		return out, metadata, fmt.Errorf("failed to presign request, %w", err)
	}

	out.Result = &PresignedHTTPRequest{
		URL:          signed,
		Method:       req.Method,
		SignedHeader: req.Header.Clone(),
	}
	return out, metadata, nil
}

package s3

import (
	"context"
	"fmt"
	"time"

	"github.com/objkit/objkit-go/httpauth/credentials"
	"github.com/objkit/objkit-go/httpauth/sigv2"
	v2 "github.com/objkit/objkit-go/httpauth/v2"
	"github.com/objkit/objkit-go/middleware"
	"github.com/objkit/objkit-go/middleware/id"
	objkithttp "github.com/objkit/objkit-go/transport/http"
)

// signRequest signs the request in the finalize step. The signing time is
// read from the clock once per attempt and used for both the Date header and
// the signature.
type signRequest struct {
	signer      *sigv2.Signer
	credentials credentials.Credentials
	clock       func() time.Time
	logSigning  bool
}

func addSignRequestMiddleware(stack *middleware.Stack, options Options) error {
	return stack.Finalize.Add(&signRequest{
		signer:      newSigner(),
		credentials: options.Credentials,
		clock:       options.Clock,
		logSigning:  options.ClientLogMode.IsSigning(),
	}, middleware.After)
}

// newSigner returns a signer that also signs the response override query
// parameters GetObject sends.
func newSigner() *sigv2.Signer {
	return sigv2.New(func(o *v2.SignerOptions) {
		o.AdditionalSubResources = v2.ResponseOverrides
	})
}

func (*signRequest) ID() string { return id.RequestSigner }

func (m *signRequest) HandleFinalize(ctx context.Context, in middleware.FinalizeInput, next middleware.FinalizeHandler) (
	out middleware.FinalizeOutput, metadata middleware.Metadata, err error,
) {
	req, ok := in.Request.(*objkithttp.Request)
	if !ok {
		return out, metadata, fmt.Errorf("unexpected transport type %T", in.Request)
	}

	err = m.signer.SignRequest(&sigv2.SignRequestInput{
		Request:     req.Request,
		Credentials: m.credentials,
		Time:        m.clock(),
	}, func(o *v2.SignerOptions) {
		o.Logger = middleware.GetLogger(ctx)
		o.LogSigning = m.logSigning
	})
	if err != nil {
		return out, metadata, fmt.Errorf("failed to sign request, %w", err)
	}

	return next.HandleFinalize(ctx, in)
}

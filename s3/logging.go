package s3

import (
	"context"
	"net/http/httputil"

	"github.com/objkit/objkit-go/logging"
	"github.com/objkit/objkit-go/middleware"
	"github.com/objkit/objkit-go/middleware/id"
	objkithttp "github.com/objkit/objkit-go/transport/http"
)

// requestResponseLogger logs the wire request and response headers. Bodies
// are never logged, they may be object payloads.
type requestResponseLogger struct {
	logRequest  bool
	logResponse bool
}

func addRequestResponseLogging(stack *middleware.Stack, options Options) error {
	mode := options.ClientLogMode
	if !mode.IsRequest() && !mode.IsResponse() {
		return nil
	}
	return stack.Deserialize.Add(&requestResponseLogger{
		logRequest:  mode.IsRequest(),
		logResponse: mode.IsResponse(),
	}, middleware.After)
}

func (*requestResponseLogger) ID() string { return id.RequestResponseLogger }

func (m *requestResponseLogger) HandleDeserialize(ctx context.Context, in middleware.DeserializeInput, next middleware.DeserializeHandler) (
	out middleware.DeserializeOutput, metadata middleware.Metadata, err error,
) {
	logger := middleware.GetLogger(ctx)

	if m.logRequest {
		if req, ok := in.Request.(*objkithttp.Request); ok {
			dump, err := httputil.DumpRequestOut(req.Build(ctx), false)
			if err != nil {
				logger.Logf(logging.Debug, "failed to dump HTTP request, %v", err)
			} else {
				logger.Logf(logging.Debug, "Request\n%s", dump)
			}
		}
	}

	out, metadata, err = next.HandleDeserialize(ctx, in)
	if err != nil {
		return out, metadata, err
	}

	if m.logResponse {
		if resp, ok := out.RawResponse.(*objkithttp.Response); ok {
			dump, err := httputil.DumpResponse(resp.Response, false)
			if err != nil {
				logger.Logf(logging.Debug, "failed to dump HTTP response, %v", err)
			} else {
				logger.Logf(logging.Debug, "Response\n%s", dump)
			}
		}
	}

	return out, metadata, err
}


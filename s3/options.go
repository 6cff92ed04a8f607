package s3

import (
	"net/http"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/objkit/objkit-go/httpauth/credentials"
	"github.com/objkit/objkit-go/logging"
	"github.com/objkit/objkit-go/metrics"
	"github.com/objkit/objkit-go/middleware"
	objkithttp "github.com/objkit/objkit-go/transport/http"
)

// ClientLogMode represents the logging mode of the client's operations.
type ClientLogMode uint64

// Supported ClientLogMode bits that can be configured to toggle logging of
// specific client operations.
const (
	LogSigning ClientLogMode = 1 << (64 - 1 - iota)
	LogRequest
	LogResponse
)

// IsSigning returns whether the Signing logging mode bit is set
func (m ClientLogMode) IsSigning() bool {
	return m&LogSigning != 0
}

// IsRequest returns whether the Request logging mode bit is set
func (m ClientLogMode) IsRequest() bool {
	return m&LogRequest != 0
}

// IsResponse returns whether the Response logging mode bit is set
func (m ClientLogMode) IsResponse() bool {
	return m&LogResponse != 0
}

// Options are the client options.
type Options struct {
	// The credentials requests are signed with.
	Credentials credentials.Credentials

	// The base URL requests are dispatched to, scheme and host.
	Endpoint string

	// The bucket every operation addresses.
	Bucket string

	// The HTTP client to invoke API calls with. Defaults to a new
	// *http.Client.
	HTTPClient objkithttp.ClientDo

	// The logger writer interface to write logging messages to.
	Logger logging.Logger

	// Configures the events that will be sent to the configured logger.
	ClientLogMode ClientLogMode

	// The tracer provider operation spans are recorded with. Spans are not
	// recorded when nil.
	TracerProvider trace.TracerProvider

	// The meter provider call metrics are recorded with. Metrics are not
	// recorded when nil.
	MeterProvider metric.MeterProvider

	// An application specific token appended to the User-Agent header.
	AppID string

	// Set of options to modify how an operation is invoked. These apply to all
	// operations invoked for this client. Use functional options on operation
	// call to modify this list for per operation behavior.
	APIOptions []func(*middleware.Stack) error

	// Clock returns the signing time. Defaults to time.Now.
	Clock func() time.Time

	operationMetrics *metrics.OperationMetrics
}

// Copy creates a clone where the APIOptions list is deep copied.
func (o Options) Copy() Options {
	to := o
	to.APIOptions = make([]func(*middleware.Stack) error, len(o.APIOptions))
	copy(to.APIOptions, o.APIOptions)

	return to
}

// WithAPIOptions returns a functional option for setting the Client's
// APIOptions option.
func WithAPIOptions(optFns ...func(*middleware.Stack) error) func(*Options) {
	return func(o *Options) {
		o.APIOptions = append(o.APIOptions, optFns...)
	}
}

func resolveDefaults(o *Options) {
	if o.HTTPClient == nil {
		o.HTTPClient = &http.Client{}
	}
	if o.Logger == nil {
		o.Logger = logging.Noop{}
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
}

package s3

import (
	"context"
	"fmt"
	"time"

	"github.com/objkit/objkit-go/logging"
	"github.com/objkit/objkit-go/middleware"
	"github.com/objkit/objkit-go/waiter"
)

// HeadObjectAPIClient is a client that implements the HeadObject operation.
type HeadObjectAPIClient interface {
	HeadObject(context.Context, *HeadObjectInput, ...func(*Options)) (*HeadObjectOutput, error)
}

var _ HeadObjectAPIClient = (*Client)(nil)

// ObjectExistsWaiterOptions are waiter options for ObjectExistsWaiter and
// ObjectNotExistsWaiter.
type ObjectExistsWaiterOptions struct {

	// Set of options to modify how an operation is invoked. These apply to all
	// operations invoked for this client. Use functional options on operation
	// call to modify this list for per operation behavior.
	APIOptions []func(*middleware.Stack) error

	// Functional options to be passed to all operations invoked by this client.
	ClientOptions []func(*Options)

	// MinDelay is the minimum amount of time to delay between retries. If
	// unset, defaults to 5 seconds.
	MinDelay time.Duration

	// MaxDelay is the maximum amount of time to delay between retries. If
	// unset or set to zero, defaults to 120 seconds.
	MaxDelay time.Duration

	// LogWaitAttempts is used to enable logging for waiter retry attempts
	LogWaitAttempts bool

	// Logger the attempts are logged to. Defaults to the client's logger.
	Logger logging.Logger
}

func resolveWaiterOptions(client HeadObjectAPIClient, optFns []func(*ObjectExistsWaiterOptions)) ObjectExistsWaiterOptions {
	options := ObjectExistsWaiterOptions{
		MinDelay: 5 * time.Second,
		MaxDelay: 120 * time.Second,
	}
	if c, ok := client.(*Client); ok {
		options.Logger = c.options.Logger
	}
	for _, fn := range optFns {
		fn(&options)
	}
	if options.Logger == nil {
		options.Logger = logging.Noop{}
	}
	return options
}

// ObjectExistsWaiter defines the waiters for ObjectExists
type ObjectExistsWaiter struct {
	client HeadObjectAPIClient

	options ObjectExistsWaiterOptions
}

// NewObjectExistsWaiter constructs a ObjectExistsWaiter.
func NewObjectExistsWaiter(client HeadObjectAPIClient, optFns ...func(*ObjectExistsWaiterOptions)) *ObjectExistsWaiter {
	return &ObjectExistsWaiter{
		client:  client,
		options: resolveWaiterOptions(client, optFns),
	}
}

// Wait calls the waiter function for ObjectExists waiter. The maxWaitDur is
// the maximum wait duration the waiter will wait. The maxWaitDur is required
// and must be greater than zero.
func (w *ObjectExistsWaiter) Wait(ctx context.Context, params *HeadObjectInput, maxWaitDur time.Duration, optFns ...func(*ObjectExistsWaiterOptions)) error {
	_, err := w.WaitForOutput(ctx, params, maxWaitDur, optFns...)
	return err
}

// WaitForOutput calls the waiter function for ObjectExists waiter and returns
// the output of the successful operation.
func (w *ObjectExistsWaiter) WaitForOutput(ctx context.Context, params *HeadObjectInput, maxWaitDur time.Duration, optFns ...func(*ObjectExistsWaiterOptions)) (*HeadObjectOutput, error) {
	var out *HeadObjectOutput
	err := waitFor(ctx, "ObjectExists", w.client, w.options, params, maxWaitDur, optFns,
		func(o *HeadObjectOutput) bool {
			out = o
			return o != nil
		})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ObjectNotExistsWaiter defines the waiters for ObjectNotExists
type ObjectNotExistsWaiter struct {
	client HeadObjectAPIClient

	options ObjectExistsWaiterOptions
}

// NewObjectNotExistsWaiter constructs a ObjectNotExistsWaiter.
func NewObjectNotExistsWaiter(client HeadObjectAPIClient, optFns ...func(*ObjectExistsWaiterOptions)) *ObjectNotExistsWaiter {
	return &ObjectNotExistsWaiter{
		client:  client,
		options: resolveWaiterOptions(client, optFns),
	}
}

// Wait calls the waiter function for ObjectNotExists waiter. The maxWaitDur
// is the maximum wait duration the waiter will wait. The maxWaitDur is
// required and must be greater than zero.
func (w *ObjectNotExistsWaiter) Wait(ctx context.Context, params *HeadObjectInput, maxWaitDur time.Duration, optFns ...func(*ObjectExistsWaiterOptions)) error {
	return waitFor(ctx, "ObjectNotExists", w.client, w.options, params, maxWaitDur, optFns,
		func(o *HeadObjectOutput) bool {
			return o == nil
		})
}

// waitFor polls HeadObject until done reports the wanted state. Operation
// errors end the wait.
func waitFor(ctx context.Context, name string, client HeadObjectAPIClient, base ObjectExistsWaiterOptions,
	params *HeadObjectInput, maxWaitDur time.Duration, optFns []func(*ObjectExistsWaiterOptions),
	done func(*HeadObjectOutput) bool,
) error {
	if maxWaitDur <= 0 {
		return fmt.Errorf("maximum wait time for waiter must be greater than zero")
	}

	options := base
	options.APIOptions = append([]func(*middleware.Stack) error{}, base.APIOptions...)
	options.ClientOptions = append([]func(*Options){}, base.ClientOptions...)
	for _, fn := range optFns {
		fn(&options)
	}

	if options.MaxDelay <= 0 {
		options.MaxDelay = 120 * time.Second
	}

	if options.MinDelay > options.MaxDelay {
		return fmt.Errorf("minimum waiter delay %v must be lesser than or equal to maximum waiter delay of %v", options.MinDelay, options.MaxDelay)
	}

	ctx, cancelFn := context.WithTimeout(ctx, maxWaitDur)
	defer cancelFn()

	remainingTime := maxWaitDur

	var attempt int64
	for {
		attempt++
		apiOptions := options.APIOptions
		start := time.Now()

		if options.LogWaitAttempts {
			options.Logger.Logf(logging.Debug, "attempting waiter request, attempt count: %d", attempt)
		}

		out, err := client.HeadObject(ctx, params, func(o *Options) {
			o.APIOptions = append(o.APIOptions, apiOptions...)
			for _, opt := range options.ClientOptions {
				opt(o)
			}
		})
		if err != nil {
			return err
		}
		if done(out) {
			return nil
		}

		remainingTime -= time.Since(start)
		if remainingTime < options.MinDelay || remainingTime <= 0 {
			break
		}

		delay, _, err := waiter.ComputeDelay(attempt, options.MinDelay, options.MaxDelay, remainingTime)
		if err != nil {
			return fmt.Errorf("error computing waiter delay, %w", err)
		}

		remainingTime -= delay
		if err := waiter.SleepWithContext(ctx, delay); err != nil {
			return fmt.Errorf("request cancelled while waiting, %w", err)
		}
	}
	return fmt.Errorf("exceeded max wait time for %s waiter", name)
}

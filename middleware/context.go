package middleware

import (
	"context"

	"github.com/objkit/objkit-go/logging"
)

type (
	serviceIDKey     struct{}
	operationNameKey struct{}
	loggerKey        struct{}
)

// WithServiceID adds a service ID to the context.
func WithServiceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, serviceIDKey{}, id)
}

// GetServiceID retrieves the service id from the context.
func GetServiceID(ctx context.Context) (v string) {
	v, _ = ctx.Value(serviceIDKey{}).(string)
	return v
}

// WithOperationName adds the operation name to the context.
func WithOperationName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, operationNameKey{}, name)
}

// GetOperationName retrieves the operation name from the context.
func GetOperationName(ctx context.Context) (v string) {
	v, _ = ctx.Value(operationNameKey{}).(string)
	return v
}

// GetLogger takes a context to retrieve a Logger from. If no logger is present
// on the context a logging.Noop logger is returned. If the logger retrieved
// from context supports the ContextLogger interface, the context will be
// passed to the WithContext method and the resulting logger will be returned.
// Otherwise the stored logger is returned as is.
func GetLogger(ctx context.Context) logging.Logger {
	logger, ok := ctx.Value(loggerKey{}).(logging.Logger)
	if !ok || logger == nil {
		return logging.Noop{}
	}

	return logging.WithContext(ctx, logger)
}

// SetLogger sets the provided logger value on the provided ctx.
func SetLogger(ctx context.Context, logger logging.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

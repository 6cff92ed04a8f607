// Package zaplog adapts a zap logger to the logging.Logger interface used by
// the objkit clients.
//
//	zl, _ := zap.NewProduction()
//	client := s3.New(cfg, func(o *s3.Options) {
//		o.Logger = zaplog.New(zl)
//		o.ClientLogMode = s3.LogSigning
//	})
package zaplog

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/objkit/objkit-go/logging"
	"github.com/objkit/objkit-go/middleware"
)

// Logger writes objkit log entries to a zap logger. DEBUG entries map to
// zap's debug level, WARN to warn, anything else to info.
type Logger struct {
	logger *zap.Logger
}

var _ logging.Logger = (*Logger)(nil)
var _ logging.ContextLogger = (*Logger)(nil)

// New returns a Logger writing to l. A nil l is replaced by zap.NewNop().
func New(l *zap.Logger) *Logger {
	if l == nil {
		l = zap.NewNop()
	}
	return &Logger{logger: l}
}

// Logf formats the entry and writes it at the level matching classification.
func (l *Logger) Logf(classification logging.Classification, format string, v ...interface{}) {
	if ce := l.logger.Check(level(classification), fmt.Sprintf(format, v...)); ce != nil {
		ce.Write(zap.String("classification", string(classification)))
	}
}

// WithContext returns a logger annotated with the name of the operation
// being invoked, if ctx carries one.
func (l *Logger) WithContext(ctx context.Context) logging.Logger {
	op := middleware.GetOperationName(ctx)
	if len(op) == 0 {
		return l
	}
	return &Logger{logger: l.logger.With(zap.String("operation", op))}
}

func level(c logging.Classification) zapcore.Level {
	switch c {
	case logging.Debug:
		return zapcore.DebugLevel
	case logging.Warn:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}

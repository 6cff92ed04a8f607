package logging

import (
	"bytes"
	"context"
	"log"
	"testing"
)

type ctxKey struct{}

type contextLogger struct {
	ctx context.Context
	buf *bytes.Buffer
}

func (c contextLogger) WithContext(ctx context.Context) Logger {
	return contextLogger{ctx: ctx, buf: c.buf}
}

func (c contextLogger) Logf(_ Classification, format string, _ ...interface{}) {
	v, _ := c.ctx.Value(ctxKey{}).(string)
	c.buf.WriteString(v + ":" + format)
}

func TestStandardLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := StandardLogger{Logger: log.New(&buf, "", 0)}

	logger.Logf(Debug, "canonical %s", "GET")
	logger.Logf("", "plain")

	if e, a := "DEBUG canonical GET\nplain\n", buf.String(); e != a {
		t.Errorf("expect %q, got %q", e, a)
	}
}

func TestWithContext(t *testing.T) {
	if _, ok := WithContext(context.Background(), nil).(Noop); !ok {
		t.Errorf("expect nil logger to become Noop")
	}

	var buf bytes.Buffer
	ctx := context.WithValue(context.Background(), ctxKey{}, "req-1")
	WithContext(ctx, contextLogger{buf: &buf}).Logf(Warn, "hello")

	if e, a := "req-1:hello", buf.String(); e != a {
		t.Errorf("expect %q, got %q", e, a)
	}
}

func TestLoggerFunc(t *testing.T) {
	var got Classification
	LoggerFunc(func(c Classification, format string, v ...interface{}) {
		got = c
	}).Logf(Warn, "x")

	if e, a := Warn, got; e != a {
		t.Errorf("expect %v, got %v", e, a)
	}
}

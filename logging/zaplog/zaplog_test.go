package zaplog

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/objkit/objkit-go/logging"
	"github.com/objkit/objkit-go/middleware"
)

func TestLogger_Levels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := New(zap.New(core))

	logger.Logf(logging.Debug, "canonical string %q", "GET")
	logger.Logf(logging.Warn, "skewed clock")
	logger.Logf("", "plain")

	entries := logs.All()
	if e, a := 3, len(entries); e != a {
		t.Fatalf("expect %d entries, got %d", e, a)
	}

	expect := []struct {
		Level   zapcore.Level
		Message string
	}{
		{zapcore.DebugLevel, `canonical string "GET"`},
		{zapcore.WarnLevel, "skewed clock"},
		{zapcore.InfoLevel, "plain"},
	}
	for i, e := range expect {
		if e.Level != entries[i].Level {
			t.Errorf("%d: expect level %v, got %v", i, e.Level, entries[i].Level)
		}
		if e.Message != entries[i].Message {
			t.Errorf("%d: expect message %q, got %q", i, e.Message, entries[i].Message)
		}
	}
}

func TestLogger_WithContext(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := New(zap.New(core))

	ctx := middleware.WithOperationName(context.Background(), "GetObject")
	logging.WithContext(ctx, logger).Logf(logging.Debug, "hello")

	entries := logs.FilterField(zap.String("operation", "GetObject")).All()
	if e, a := 1, len(entries); e != a {
		t.Fatalf("expect %d annotated entry, got %d", e, a)
	}

	if a := logging.WithContext(context.Background(), logger); a != logger {
		t.Errorf("expect unannotated logger without operation name, got %v", a)
	}
}

func TestNew_Nil(t *testing.T) {
	New(nil).Logf(logging.Debug, "dropped")
}

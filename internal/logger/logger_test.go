package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capture routes the package logger into a buffer at debug level for the
// duration of the test.
func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := log
	t.Cleanup(func() { log = prev })

	var buf bytes.Buffer
	log = New(NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return &buf
}

func lastRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines[len(lines)-1], "nothing was logged")

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &rec))
	return rec
}

func TestInit(t *testing.T) {
	prev := log
	t.Cleanup(func() { log = prev })

	Init()
	assert.Same(t, log, slog.Default())
}

func TestLevels(t *testing.T) {
	tests := []struct {
		name  string
		emit  func()
		level string
		msg   string
	}{
		{"debug", func() { Debug("roster cache miss") }, "DEBUG", "roster cache miss"},
		{"debugf", func() { Debugf("class %d", 2) }, "DEBUG", "class 2"},
		{"info", func() { Info("scheduler started") }, "INFO", "scheduler started"},
		{"infof", func() { Infof("listening on %s", ":8080") }, "INFO", "listening on :8080"},
		{"warn", func() { Warn("email queue slow") }, "WARN", "email queue slow"},
		{"error", func() { Error("insert failed") }, "ERROR", "insert failed"},
		{"errorf", func() { Errorf("shutdown: %v", "timeout") }, "ERROR", "shutdown: timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t)
			tt.emit()

			rec := lastRecord(t, buf)
			assert.Equal(t, tt.level, rec["level"])
			assert.Equal(t, tt.msg, rec["msg"])
		})
	}
}

func TestInfo_KeyValues(t *testing.T) {
	buf := capture(t)

	Info("check-in recorded", "athlete_id", 7, "method", "QR_VERIFIED")

	rec := lastRecord(t, buf)
	assert.EqualValues(t, 7, rec["athlete_id"])
	assert.Equal(t, "QR_VERIFIED", rec["method"])
}

func TestWithError(t *testing.T) {
	buf := capture(t)

	WithError(assert.AnError).Warn("cache invalidation failed")

	rec := lastRecord(t, buf)
	assert.Equal(t, assert.AnError.Error(), rec["error"])
}

func TestWithFields(t *testing.T) {
	buf := capture(t)

	WithFields(map[string]any{"class_id": 2, "date": "2024-03-04"}).Info("roster built")

	rec := lastRecord(t, buf)
	assert.EqualValues(t, 2, rec["class_id"])
	assert.Equal(t, "2024-03-04", rec["date"])
}

func TestConfigure(t *testing.T) {
	prev := log
	t.Cleanup(func() { log = prev })

	Configure("error", "text")
	assert.False(t, log.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, log.Enabled(context.Background(), slog.LevelError))
	_, isText := log.Handler().(*slog.TextHandler)
	assert.True(t, isText)

	Configure("debug", "json")
	assert.True(t, log.Enabled(context.Background(), slog.LevelDebug))

	Configure("bogus", "json")
	assert.True(t, log.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, log.Enabled(context.Background(), slog.LevelDebug))
}

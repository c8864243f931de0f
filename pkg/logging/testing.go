package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// TestLogger captures log output for assertions in tests.
type TestLogger struct {
	*zerolog.Logger
	Buffer *bytes.Buffer
}

// NewTestLogger creates a trace-level JSON logger writing into a buffer.
// The global level is restored when the test finishes.
func NewTestLogger(t testing.TB) *TestLogger {
	t.Helper()

	buf := &bytes.Buffer{}
	old := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(old)
	})

	logger := zerolog.New(buf).Level(zerolog.TraceLevel)
	return &TestLogger{Logger: &logger, Buffer: buf}
}

// Output returns everything logged so far.
func (tl *TestLogger) Output() string {
	return tl.Buffer.String()
}

// Lines returns the captured output split into events.
func (tl *TestLogger) Lines() []string {
	out := strings.TrimSpace(tl.Output())
	if out == "" {
		return []string{}
	}
	return strings.Split(out, "\n")
}

// Contains reports whether the captured output contains substr.
func (tl *TestLogger) Contains(substr string) bool {
	return strings.Contains(tl.Output(), substr)
}

// Package testutils provides helpers shared by the package tests.
package testutils

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/nichevision/flyingsaucer-sub000/logger"
)

func AssertEqual(t *testing.T, got, exp interface{}) {
	t.Helper()
	if !reflect.DeepEqual(exp, got) {
		t.Fatalf("expected\n%v\n got \n%v", exp, got)
	}
}

// CapturedLogs stores the warnings emitted between [CaptureLogs]
// and one of its check methods.
type CapturedLogs struct {
	logs *observer.ObservedLogs

	progress, warning *zap.SugaredLogger
}

// CaptureLogs redirects the warnings to memory, until one
// of the check methods is called.
func CaptureLogs() *CapturedLogs {
	core, logs := observer.New(zapcore.WarnLevel)
	out := &CapturedLogs{logs: logs, progress: logger.ProgressLogger, warning: logger.WarningLogger}
	logger.SetLogger(zap.New(core))
	return out
}

// Logs restores the previous loggers and returns the captured messages.
func (c *CapturedLogs) Logs() []string {
	logger.ProgressLogger, logger.WarningLogger = c.progress, c.warning
	var out []string
	for _, entry := range c.logs.All() {
		out = append(out, entry.Message)
	}
	return out
}

func (c *CapturedLogs) AssertNoLogs(t *testing.T) {
	t.Helper()
	l := c.Logs()
	if len(l) > 0 {
		t.Fatalf("expected no logs, got (%d): \n%s", len(l), strings.Join(l, "\n"))
	}
}

// CheckLogs asserts that each captured message contains the corresponding
// expected substring.
func (c *CapturedLogs) CheckLogs(t *testing.T, expected ...string) {
	t.Helper()
	l := c.Logs()
	if len(l) != len(expected) {
		t.Fatalf("expected %d logs, got %d: \n%s", len(expected), len(l), strings.Join(l, "\n"))
	}
	for i, exp := range expected {
		if !strings.Contains(l[i], exp) {
			t.Fatalf("log %d: expected %q in \n%s", i, exp, l[i])
		}
	}
}

// IndentLogger prints nested debug traces.
type IndentLogger struct {
	indent int
}

func (il IndentLogger) Line(format string, args ...interface{}) {
	fmt.Println(strings.Repeat(" ", il.indent) + fmt.Sprintf(format, args...))
}

// LineWithIndent prints a line then increases the indentation.
func (il *IndentLogger) LineWithIndent(format string, args ...interface{}) {
	il.Line(format, args...)
	il.indent += 2
}

// LineWithDedent decreases the indentation then prints a line.
func (il *IndentLogger) LineWithDedent(format string, args ...interface{}) {
	il.indent -= 2
	if il.indent < 0 {
		il.indent = 0
	}
	il.Line(format, args...)
}

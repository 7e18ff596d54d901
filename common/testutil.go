package common

import (
	"bytes"
	"log"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	logRegexPrefix = "\\[Partita\\] [0-9]*/[0-1][0-9]/[0-3][0-9] [0-2][0-9]:[0-5][0-9]:[0-5][0-9] "
)

// TestLogger is a StdLogger that captures its output so tests can make
// assertions against it. Pass it wherever a package accepts a logger.
type TestLogger struct {
	buf *bytes.Buffer
	l   StdLogger
	t   *testing.T
}

// NewTestLogger constructs a test logger we can make assertions against.
func NewTestLogger(t *testing.T) *TestLogger {
	buf := bytes.NewBuffer(nil)
	return &TestLogger{
		buf: buf,
		l:   log.New(buf, "[Partita] ", log.LstdFlags),
		t:   t,
	}
}

// Print implements StdLogger.
func (tl *TestLogger) Print(v ...any) { tl.l.Print(v...) }

// Printf implements StdLogger.
func (tl *TestLogger) Printf(format string, v ...any) { tl.l.Printf(format, v...) }

// Println implements StdLogger.
func (tl *TestLogger) Println(v ...any) { tl.l.Println(v...) }

// SkipLogLine will jump over a log line we don't care about. If there's
// an error reading from the buffer the test will fail.
func (tl *TestLogger) SkipLogLine(reason string) {
	_, err := tl.buf.ReadString('\n')
	require.NoError(tl.t, err)
	tl.t.Logf("Skipping log line: %s", reason)
}

// LogLineMatches consumes one log line and asserts it matches the
// given regular expression, ignoring the standard prefix.
func (tl *TestLogger) LogLineMatches(match string) {
	content, err := tl.buf.ReadString('\n')
	require.NoError(tl.t, err)
	require.Regexp(tl.t, regexp.MustCompile(logRegexPrefix+match), content)
}

package logger

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultPath is the log file path, relative to the working directory.
const DefaultPath = "logs/preview.log"

// maxLines bounds the in-memory console history.
const maxLines = 500

// Logger writes structured entries to a log file through zap and keeps the recent entries as
// plain lines for the in-app console.
type Logger struct {
	*zap.Logger

	mu    sync.Mutex
	lines []string
}

// New returns a Logger appending JSON entries to path, creating its directory if needed.
// debug enables debug-level entries and the development encoder settings.
func New(path string, debug bool) (*Logger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
		cfg.Encoding = "json"
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}

	l := &Logger{lines: make([]string, 0, 64)}
	z, err := cfg.Build(zap.Hooks(l.record))
	if err != nil {
		return nil, err
	}
	l.Logger = z
	return l, nil
}

// Wrap returns a Logger around an existing zap logger (e.g. zaptest in tests).
func Wrap(z *zap.Logger) *Logger {
	l := &Logger{lines: make([]string, 0, 64)}
	l.Logger = z.WithOptions(zap.Hooks(l.record))
	return l
}

func (l *Logger) record(e zapcore.Entry) error {
	l.append(e.Time, e.Message)
	return nil
}

func (l *Logger) append(ts time.Time, msg string) {
	stamped := "[" + ts.Format("2006-01-02 15:04:05") + "] " + msg
	l.mu.Lock()
	l.lines = append(l.lines, stamped)
	if len(l.lines) > maxLines {
		l.lines = append(l.lines[:0], l.lines[len(l.lines)-maxLines:]...)
	}
	l.mu.Unlock()
}

// Log records a console line (e.g. typed input) at info level.
func (l *Logger) Log(line string) {
	l.Info(line)
}

// Lines returns a copy of the recent lines, oldest first.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

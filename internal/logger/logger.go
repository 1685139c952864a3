package logger

import (
	"fmt"
	"log"
	"os"
	"sync/atomic"
)

// Level controls which log lines are emitted.
type Level int32

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

var currentLevel atomic.Int32

func init() {
	currentLevel.Store(int32(LevelInfo))
	log.SetOutput(os.Stderr)
}

// SetLevel sets the minimum level that will be logged.
func SetLevel(level Level) {
	currentLevel.Store(int32(level))
}

func enabled(level Level) bool {
	return int32(level) >= currentLevel.Load()
}

func logf(level Level, tag, format string, args ...any) {
	if !enabled(level) {
		return
	}
	log.Output(3, tag+" "+fmt.Sprintf(format, args...))
}

// Tracef logs very verbose diagnostics.
func Tracef(format string, args ...any) { logf(LevelTrace, "TRACE", format, args...) }

// Debugf logs developer diagnostics.
func Debugf(format string, args ...any) { logf(LevelDebug, "DEBUG", format, args...) }

// Infof logs normal operational events.
func Infof(format string, args ...any) { logf(LevelInfo, "INFO", format, args...) }

// Warnf logs recoverable problems.
func Warnf(format string, args ...any) { logf(LevelWarn, "WARN", format, args...) }

// Errorf logs failures.
func Errorf(format string, args ...any) { logf(LevelError, "ERROR", format, args...) }

//go:build !ios && !android && (amd64 || arm64)

package newtongo

import (
	"fmt"
	"log/slog"
	"sync"
)

// LogLevel controls which wrapper diagnostics are emitted.
type LogLevel int32

// Log levels, least to most verbose.
const (
	LogQuiet   LogLevel = 0
	LogError   LogLevel = 1
	LogWarning LogLevel = 2
	LogInfo    LogLevel = 3
	LogDebug   LogLevel = 4
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LogQuiet:
		return "quiet"
	case LogError:
		return "error"
	case LogWarning:
		return "warning"
	case LogInfo:
		return "info"
	case LogDebug:
		return "debug"
	default:
		return "unknown"
	}
}

// LogCallback receives one wrapper diagnostic message. The wrapper only logs
// events the caller cannot observe otherwise: recovered callback panics,
// deferred destroys, and teardown of non-empty registries.
type LogCallback func(level LogLevel, message string)

var (
	logMu       sync.Mutex
	logLevel    = LogWarning
	logCallback LogCallback
)

// SetLogLevel sets the verbosity of wrapper diagnostics.
func SetLogLevel(level LogLevel) {
	logMu.Lock()
	defer logMu.Unlock()
	logLevel = level
}

// SetLogCallback installs a custom sink for wrapper diagnostics.
// Pass nil to restore the default slog sink.
func SetLogCallback(cb LogCallback) {
	logMu.Lock()
	defer logMu.Unlock()
	logCallback = cb
}

func logf(level LogLevel, format string, args ...any) {
	logMu.Lock()
	threshold, cb := logLevel, logCallback
	logMu.Unlock()

	if level > threshold || level == LogQuiet {
		return
	}

	msg := fmt.Sprintf(format, args...)
	if cb != nil {
		cb(level, msg)
		return
	}

	switch level {
	case LogError:
		slog.Error(msg)
	case LogWarning:
		slog.Warn(msg)
	case LogInfo:
		slog.Info(msg)
	default:
		slog.Debug(msg)
	}
}

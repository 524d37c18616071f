package msgtrans

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

const (
	ColorReset  = "\033[0m"
	ColorCyan   = "\033[36m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorRed    = "\033[31m"
	ColorPurple = "\033[35m"
)

var (
	logMu   sync.Mutex
	logFile *os.File
	logOut  io.Writer = os.Stderr
)

func InitLogFile(path string) error {
	logMu.Lock()
	defer logMu.Unlock()
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	logFile = f
	return nil
}

func CloseLogFile() {
	logMu.Lock()
	defer logMu.Unlock()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// SetLogOutput redirects console output; nil restores stderr.
func SetLogOutput(w io.Writer) {
	logMu.Lock()
	defer logMu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	logOut = w
}

// colorize reports whether w is a terminal that should receive ANSI colors.
func colorize(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func logLine(prefix, color, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	ts := time.Now().Format("15:04:05")

	logMu.Lock()
	defer logMu.Unlock()
	if os.Getenv("MSGTRANS_QUIET") == "" {
		if colorize(logOut) {
			fmt.Fprintf(logOut, "[%s] %s%s%s %s\n", ts, color, prefix, ColorReset, msg)
		} else {
			fmt.Fprintf(logOut, "[%s] %s %s\n", ts, prefix, msg)
		}
	}
	if logFile != nil {
		fmt.Fprintf(logFile, "[%s] %s %s\n", ts, prefix, msg)
	}
}

func LogInfo(format string, args ...any) {
	logLine("INFO", ColorCyan, format, args...)
}

func LogOK(format string, args ...any) {
	logLine(" OK ", ColorGreen, format, args...)
}

func LogWarn(format string, args ...any) {
	logLine("WARN", ColorYellow, format, args...)
}

func LogError(format string, args ...any) {
	logLine(" ERR", ColorRed, format, args...)
}

func LogNote(format string, args ...any) {
	logLine("NOTE", ColorPurple, format, args...)
}

// BasicLogger is the capability embedded by logger message interfaces.
// Generated logger types call Logf with the translated format string.
type BasicLogger interface {
	Logf(level Level, format string, args ...any)
}

// ConsoleLogger prints generated logger messages through the console logger.
type ConsoleLogger struct{}

func (ConsoleLogger) Logf(level Level, format string, args ...any) {
	switch level {
	case LevelDebug:
		if os.Getenv("MSGTRANS_DEBUG") != "" {
			LogNote(format, args...)
		}
	case LevelWarn:
		LogWarn(format, args...)
	case LevelError:
		LogError(format, args...)
	default:
		LogInfo(format, args...)
	}
}

package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the shared application logger. The TUI owns the terminal, so the
// logger writes to a file (or is discarded until Setup runs).
var Log = logrus.New()

func init() {
	Log.SetOutput(io.Discard)
}

// Setup points the logger at the given file and applies the level.
// An empty path falls back to ~/.discana/discana.log.
func Setup(path, level string) error {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		path = filepath.Join(home, ".discana", "discana.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	Log.SetOutput(f)
	SetLevel(level)
	return nil
}

// SetLevel maps a config string onto a logrus level. Unknown values keep info.
func SetLevel(level string) {
	switch strings.ToLower(level) {
	case "debug":
		Log.SetLevel(logrus.DebugLevel)
	case "warning", "warn":
		Log.SetLevel(logrus.WarnLevel)
	case "error":
		Log.SetLevel(logrus.ErrorLevel)
	default:
		Log.SetLevel(logrus.InfoLevel)
	}
}

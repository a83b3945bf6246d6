package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	lj "gopkg.in/natefinch/lumberjack.v2"
)

// Default rotation constants, lumberjack semantics.
const (
	DefaultMaxSizeMB  = 10 // MB
	DefaultMaxBackups = 3  // number of backup files
	DefaultMaxAgeDays = 7  // days
)

// Config describes where fishadm writes its own log output.
// Console output always goes to stderr; when Dir or Path is set a
// rotated file copy is kept as well.
type Config struct {
	Dir        string // base directory for logs; file becomes Dir/fishadm.log
	Path       string // explicit file path overrides Dir
	Level      string // debug|info|warn|error, default info
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// LogLevel parses the configured level, defaulting to info.
func (c Config) LogLevel() slog.Level {
	switch c.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// fileWriter returns the rotated file writer, or nil when no file
// destination is configured.
func (c Config) fileWriter() io.WriteCloser {
	path := c.Path
	if path == "" && c.Dir != "" {
		path = filepath.Join(c.Dir, "fishadm.log")
	}
	if path == "" {
		return nil
	}
	return &lj.Logger{
		Filename:   path,
		MaxSize:    valOr(c.MaxSizeMB, DefaultMaxSizeMB),
		MaxBackups: valOr(c.MaxBackups, DefaultMaxBackups),
		MaxAge:     valOr(c.MaxAgeDays, DefaultMaxAgeDays),
		Compress:   c.Compress,
	}
}

// New builds the tool logger: a colored text handler on stderr, teed to
// a lumberjack-rotated file when configured. The returned closer is nil
// when no file destination is configured.
func New(c Config) (*slog.Logger, io.Closer) {
	opts := &slog.HandlerOptions{Level: c.LogLevel()}
	fw := c.fileWriter()
	var w io.Writer = os.Stderr
	if fw != nil {
		w = io.MultiWriter(os.Stderr, fw)
	}
	l := slog.New(NewColorTextHandler(w, opts, true))
	if fw == nil {
		return l, nil
	}
	return l, fw
}

func valOr(v int, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

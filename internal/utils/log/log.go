package log

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	charmlog "github.com/charmbracelet/log"
)

var (
	defaultStylesOnce sync.Once
	defaultStyles     atomic.Pointer[Styles]
)

// initializeStyles pads every level label to the same width
func initializeStyles() *Styles {
	styles := charmlog.DefaultStyles()
	for _, ls := range levelStyles {
		levelStr := strings.ToUpper(ls.level.String())
		if len(levelStr) < ls.maxWidth {
			levelStr = levelStr + strings.Repeat(" ", ls.maxWidth-len(levelStr))
		}
		styles.Levels[ls.level] = ls.style.SetString(levelStr)
	}
	return styles
}

// DefaultStyles returns the shared level styles
func DefaultStyles() *Styles {
	defaultStylesOnce.Do(func() {
		defaultStyles.Store(initializeStyles())
	})
	return defaultStyles.Load()
}

// New creates a new logger with the given options
func New(opts ...Option) *slog.Logger {
	o := DefaultOptions()
	o.Apply(opts...)

	handler := charmlog.NewWithOptions(o.Writer, o.Options)
	handler.SetStyles(o.Styles)
	if len(o.Attrs) > 0 {
		handler = handler.With(o.Attrs...)
	}

	logger := slog.New(handler)
	if o.Default {
		charmlog.SetDefault(handler)
		slog.SetDefault(logger)
	}
	return logger
}

// Discard returns a logger that drops every record
func Discard(opts ...Option) *slog.Logger {
	return New(append(opts, UseOutput(io.Discard), UseLevel(FatalLevel))...)
}

// ParseLevel maps a config level name to a Level
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return DebugLevel, nil
	case "info", "":
		return InfoLevel, nil
	case "warn":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	default:
		return InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
}

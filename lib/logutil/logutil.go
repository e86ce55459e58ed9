package logutil

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Config controls process-wide logging. It is resolved exactly once, at
// Setup time.
type Config struct {
	// Verbose enables debug-level output.
	Verbose bool `json:"verbose" yaml:"verbose"`
	// Color forces colored output on or off. When nil, color is enabled
	// only if stderr is a terminal.
	Color *bool `json:"color" yaml:"color"`
}

// Setup installs the default slog logger: leveled, colored console
// output on stderr.
func Setup(config Config) {
	level := slog.LevelInfo
	if config.Verbose {
		level = slog.LevelDebug
	}

	color := isatty.IsTerminal(os.Stderr.Fd())
	if config.Color != nil {
		color = *config.Color
	}

	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		NoColor:    !color,
		TimeFormat: time.TimeOnly,
	})
	slog.SetDefault(slog.New(handler))
}

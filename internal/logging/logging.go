// Package logging initializes the process-wide slog logger.
package logging

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Supported log output formats.
const (
	JSON = "json"
	Text = "text"
	Tint = "tint"
	Auto = "auto"
)

// Init configures the default slog logger. The "auto" format picks the
// colorized tint handler on a terminal and plain text otherwise, so piped
// output stays machine-friendly.
func Init(format, levelName string) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelName)); err != nil {
		return fmt.Errorf("could not parse log level: %w", err)
	}

	if format == Auto {
		if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
			format = Tint
		} else {
			format = Text
		}
	}

	opts := slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch format {
	case JSON:
		handler = slog.NewJSONHandler(os.Stderr, &opts)
	case Text:
		handler = slog.NewTextHandler(os.Stderr, &opts)
	case Tint:
		handler = tint.NewHandler(os.Stderr, &tint.Options{Level: level})
	default:
		return fmt.Errorf("unknown log format: %s", format)
	}

	slog.SetDefault(slog.New(handler))
	return nil
}

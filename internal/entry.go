// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/starford/upfront/internal/apperr"
	"github.com/starford/upfront/internal/confirm"
	"github.com/starford/upfront/internal/diff"
	"github.com/starford/upfront/internal/noteservice"
	"github.com/starford/upfront/internal/storage"
)

const separator = "--------------------------------------------------"

// Run edits one frontmatter field of one note: it shows the change, asks for
// confirmation on stdin and writes the note back only on yes. A declined
// save is not an error.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config
	req := app.request
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrUsage, err)
	}

	logger := newLogger(cfg.App, app.stderr)
	slog.SetDefault(logger)

	logger.Debug("Configuration loaded",
		slog.String("log_level", cfg.App.LogLevel.String()),
		slog.String("color", cfg.Output.Color),
		slog.Bool("show_original", cfg.Output.ShowOriginal),
		slog.Bool("check_conflict", cfg.Write.CheckConflict))

	svc := noteservice.NewService(storage.NewFS(), logger,
		noteservice.WithConflictCheck(cfg.Write.CheckConflict))

	note, err := svc.Load(ctx, req.Path)
	if err != nil {
		if errors.Is(err, apperr.ErrNoFrontmatter) && note != nil {
			fmt.Fprintln(app.stdout, note.Content)
		}
		return err
	}

	change, err := svc.Plan(ctx, note, req)
	if err != nil {
		return err
	}

	out := app.stdout
	if cfg.Output.ShowOriginal {
		fmt.Fprintln(out, "Old content:")
		fmt.Fprint(out, withNewline(note.Content))
		fmt.Fprintf(out, "%s\n\n", separator)
	}
	fmt.Fprintln(out, "New content:")
	if err := diff.NewRenderer(out, cfg.Output.ColorMode()).Render(change.Segments); err != nil {
		return fmt.Errorf("render diff: %w", err)
	}

	if !diff.HasChanges(change.Segments) {
		fmt.Fprintf(out, "Field %q already holds this value; saving leaves the file as is\n", change.Field)
	}

	if !confirm.Ask(app.stdin, out, "Save changes?") {
		logger.Debug("save declined", slog.String("path", req.Path))
		fmt.Fprintln(out, "Changes discarded")
		return nil
	}

	if err := svc.Apply(ctx, change); err != nil {
		return err
	}
	fmt.Fprintf(out, "Field %q updated in %s\n", change.Field, change.Note.Path)
	return nil
}

func newLogger(cfg ApplicationConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func withNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

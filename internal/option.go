package internal

import (
	"io"

	"github.com/starford/upfront/internal/models"
)

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config  *Config
	request models.EditRequest
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithRequest sets the note, field and value to edit.
func WithRequest(req models.EditRequest) Option {
	return func(a *application) {
		a.request = req
	}
}

// WithIO replaces the standard streams. Nil arguments keep the default.
func WithIO(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(a *application) {
		if stdin != nil {
			a.stdin = stdin
		}
		if stdout != nil {
			a.stdout = stdout
		}
		if stderr != nil {
			a.stderr = stderr
		}
	}
}

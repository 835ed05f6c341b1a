package noteservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"unicode/utf8"

	"github.com/starford/upfront/internal/apperr"
	"github.com/starford/upfront/internal/checksum"
	"github.com/starford/upfront/internal/diff"
	"github.com/starford/upfront/internal/models"
	"github.com/starford/upfront/internal/parser"
	"github.com/starford/upfront/internal/storage"
	"github.com/starford/upfront/internal/yamlvalue"
)

// Change is a planned edit of one note, not yet written.
type Change struct {
	Note     *models.Note
	Field    string
	Value    string
	Content  string
	Segments []diff.Segment
}

// Service runs the read → edit → write pipeline for a single note.
type Service struct {
	store         storage.Provider
	logger        *slog.Logger
	checkConflict bool
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithConflictCheck makes Apply refuse to write when the file changed on
// disk after Load.
func WithConflictCheck(enabled bool) ServiceOption {
	return func(s *Service) {
		s.checkConflict = enabled
	}
}

// NewService creates a new note service.
func NewService(store storage.Provider, logger *slog.Logger, opts ...ServiceOption) *Service {
	s := &Service{store: store, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads a note and splits off its frontmatter. On ErrNoFrontmatter the
// note is still returned so the caller can show its content.
func (s *Service) Load(_ context.Context, path string) (*models.Note, error) {
	data, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", apperr.ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", apperr.ErrRead, path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", apperr.ErrEmptyFile, path)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: %s: not valid UTF-8", apperr.ErrRead, path)
	}

	content := string(data)
	doc := parser.Split(content)
	note := &models.Note{
		Path:        path,
		Content:     content,
		Frontmatter: doc.Frontmatter,
		Body:        doc.Body,
		Checksum:    checksum.Sum(data),
	}
	s.logger.Debug("note loaded",
		slog.String("path", path),
		slog.Int("bytes", len(data)),
		slog.Int("frontmatter_bytes", len(doc.Frontmatter)),
		slog.String("checksum", note.Checksum))

	if !note.HasFrontmatter() {
		return note, fmt.Errorf("%w in %s", apperr.ErrNoFrontmatter, path)
	}
	return note, nil
}

// Plan sets req.Field to req.Value as a string scalar and builds the new
// note content. The note itself is not modified.
func (s *Service) Plan(_ context.Context, note *models.Note, req models.EditRequest) (*Change, error) {
	root, err := yamlvalue.Parse(note.Frontmatter)
	if err != nil {
		return nil, fmt.Errorf("%w in %s: %v", apperr.ErrYAMLParse, note.Path, err)
	}
	if prev, ok := root.Lookup(req.Field); ok {
		s.logger.Debug("field found",
			slog.String("field", req.Field),
			slog.String("previous_kind", prev.Kind.String()))
	}
	if !root.Set(req.Field, yamlvalue.NewString(req.Value)) {
		return nil, fmt.Errorf("%w: %q in %s", apperr.ErrFieldNotFound, req.Field, note.Path)
	}

	frontmatter, err := yamlvalue.Marshal(root)
	if err != nil {
		return nil, fmt.Errorf("%w in %s: %v", apperr.ErrYAMLSerialize, note.Path, err)
	}

	content := parser.Assemble(frontmatter, note.Body)
	return &Change{
		Note:     note,
		Field:    req.Field,
		Value:    req.Value,
		Content:  content,
		Segments: diff.Lines(note.Content, content),
	}, nil
}

// Apply overwrites the note with the planned content in one atomic write.
func (s *Service) Apply(_ context.Context, c *Change) error {
	path := c.Note.Path
	if s.checkConflict {
		current, err := s.store.Read(path)
		if err != nil {
			return fmt.Errorf("%w: %v", apperr.ErrWrite, err)
		}
		if !checksum.Matches(current, c.Note.Checksum) {
			return fmt.Errorf("%w: %s changed on disk since it was read", apperr.ErrWrite, path)
		}
	}
	if err := s.store.Write(path, []byte(c.Content)); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrWrite, err)
	}
	s.logger.Debug("note written",
		slog.String("path", path),
		slog.String("field", c.Field),
		slog.String("value", c.Value),
		slog.Int("bytes", len(c.Content)))
	return nil
}

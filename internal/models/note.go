// Package models defines the domain types for upfront.
package models

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Note is a text file split into a YAML frontmatter block and an opaque body.
type Note struct {
	Path        string
	Content     string
	Frontmatter string
	Body        string
	Checksum    string
}

// HasFrontmatter reports whether a non-empty frontmatter block was found.
func (n *Note) HasFrontmatter() bool {
	return n.Frontmatter != ""
}

// EditRequest asks for one top-level frontmatter key to be set to Value.
type EditRequest struct {
	Path  string
	Field string
	Value string
}

// Validate validates the edit request. Value may be empty.
func (r *EditRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Path, validation.Required, validation.By(notBlank)),
		validation.Field(&r.Field, validation.Required, validation.By(notBlank)),
	)
}

func notBlank(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return validation.NewError("validation_blank", "cannot be blank")
	}
	return nil
}

// Package apperr defines the error kinds a run can fail with.
package apperr

import "errors"

var (
	ErrUsage         = errors.New("usage")
	ErrFileNotFound  = errors.New("file not found")
	ErrRead          = errors.New("failed to read file")
	ErrEmptyFile     = errors.New("file is empty")
	ErrNoFrontmatter = errors.New("no frontmatter found")
	ErrYAMLParse     = errors.New("failed to parse YAML")
	ErrFieldNotFound = errors.New("field not found")
	ErrYAMLSerialize = errors.New("failed to serialize YAML")
	ErrWrite         = errors.New("failed to write file")
)

// ExitCode maps a run result to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

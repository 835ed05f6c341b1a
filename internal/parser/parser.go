// Package parser splits a note into its YAML frontmatter block and body, and
// joins them back together.
package parser

import "strings"

// Delimiter is the line that opens and closes a frontmatter block.
const Delimiter = "---\n"

// Document is a note split at its frontmatter delimiters.
type Document struct {
	// Frontmatter is the raw YAML between the first and second delimiter.
	// Empty when the note has no (or an empty) frontmatter block.
	Frontmatter string
	// Body is everything after the second delimiter, byte for byte.
	Body string
}

// Split separates the frontmatter block from the body. With fewer than two
// delimiter lines the frontmatter is empty and Body holds the whole content.
func Split(content string) Document {
	open := delimiterIndex(content, 0)
	if open < 0 {
		return Document{Body: content}
	}
	start := open + len(Delimiter)
	end := delimiterIndex(content, start)
	if end < 0 || end == start {
		return Document{Body: content}
	}
	return Document{
		Frontmatter: content[start:end],
		Body:        content[end+len(Delimiter):],
	}
}

// Assemble rebuilds note content from a serialized frontmatter block and a
// body. The closing delimiter always sits on its own line.
func Assemble(frontmatter, body string) string {
	var b strings.Builder
	b.Grow(len(frontmatter) + len(body) + 2*len(Delimiter) + 1)
	b.WriteString(Delimiter)
	b.WriteString(frontmatter)
	if frontmatter != "" && !strings.HasSuffix(frontmatter, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString(Delimiter)
	b.WriteString(body)
	return b.String()
}

// delimiterIndex returns the offset of the first delimiter line at or after
// from, or -1. A delimiter only counts at the start of a line.
func delimiterIndex(s string, from int) int {
	for i := from; i < len(s); {
		j := strings.Index(s[i:], Delimiter)
		if j < 0 {
			return -1
		}
		at := i + j
		if at == 0 || s[at-1] == '\n' {
			return at
		}
		i = at + 1
	}
	return -1
}

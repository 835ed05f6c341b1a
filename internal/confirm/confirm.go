// Package confirm asks the user a yes/no question on a terminal.
package confirm

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Ask prints question followed by "[y/N]" and reads a single line from in.
// Only "y" or "yes" (any case) count as yes; everything else, including
// empty input and read errors, is a no.
func Ask(in io.Reader, out io.Writer, question string) bool {
	if question == "" {
		question = "Save changes?"
	}
	fmt.Fprintf(out, "%s [y/N] ", question)

	reader := bufio.NewReader(in)
	response, err := reader.ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	return IsYes(response)
}

// IsYes reports whether a response line is affirmative.
func IsYes(response string) bool {
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}

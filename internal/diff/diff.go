// Package diff computes line-based edit scripts between two texts.
package diff

import "strings"

// Op tags a segment of an edit script.
type Op int

const (
	Unchanged Op = iota
	Added
	Removed
)

func (o Op) String() string {
	switch o {
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return "unchanged"
	}
}

// Segment is a run of whole lines sharing one Op.
type Segment struct {
	Op    Op
	Lines []string
}

// Lines returns the edit script turning oldText into newText, in the order of the
// new text. Removed lines come before the lines added in their place.
func Lines(oldText, newText string) []Segment {
	a, b := splitLines(oldText), splitLines(newText)

	// Only the differing middle goes through the LCS table, so a small edit
	// in a long note stays cheap.
	pre := 0
	for pre < len(a) && pre < len(b) && a[pre] == b[pre] {
		pre++
	}
	suf := 0
	for suf < len(a)-pre && suf < len(b)-pre && a[len(a)-1-suf] == b[len(b)-1-suf] {
		suf++
	}

	var out []Segment
	emit := func(op Op, lines ...string) {
		if len(lines) == 0 {
			return
		}
		if n := len(out); n > 0 && out[n-1].Op == op {
			out[n-1].Lines = append(out[n-1].Lines, lines...)
			return
		}
		out = append(out, Segment{Op: op, Lines: append([]string(nil), lines...)})
	}

	emit(Unchanged, a[:pre]...)
	middle(a[pre:len(a)-suf], b[pre:len(b)-suf], emit)
	emit(Unchanged, a[len(a)-suf:]...)
	return out
}

// middle emits the LCS edit script of a and b.
func middle(a, b []string, emit func(Op, ...string)) {
	// lcs[i][j] is the LCS length of a[i:] and b[j:].
	lcs := make([][]int, len(a)+1)
	for i := range lcs {
		lcs[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			emit(Unchanged, a[i])
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			emit(Removed, a[i])
			i++
		default:
			emit(Added, b[j])
			j++
		}
	}
	emit(Removed, a[i:]...)
	emit(Added, b[j:]...)
}

// HasChanges reports whether any segment adds or removes lines.
func HasChanges(segs []Segment) bool {
	for _, s := range segs {
		if s.Op != Unchanged {
			return true
		}
	}
	return false
}

// splitLines splits s on "\n". A trailing newline does not start a new line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

package diff

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ColorMode selects when the renderer emits ANSI colour.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Renderer writes edit scripts to a terminal. With colour, added lines are
// green and removed lines red; without it they get "+ " and "- " prefixes.
type Renderer struct {
	out     io.Writer
	plain   bool
	added   lipgloss.Style
	removed lipgloss.Style
}

// NewRenderer returns a Renderer writing to w.
func NewRenderer(w io.Writer, mode ColorMode) *Renderer {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case ColorAlways:
		r.SetColorProfile(termenv.ANSI)
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	}
	base := r.NewStyle().TabWidth(lipgloss.NoTabConversion)
	return &Renderer{
		out:     w,
		plain:   r.ColorProfile() == termenv.Ascii,
		added:   base.Foreground(lipgloss.Color("2")),
		removed: base.Foreground(lipgloss.Color("1")),
	}
}

// Render writes every line of segs, one per output line.
func (r *Renderer) Render(segs []Segment) error {
	for _, s := range segs {
		for _, line := range s.Lines {
			if _, err := fmt.Fprintln(r.out, r.line(s.Op, line)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Renderer) line(op Op, text string) string {
	if r.plain {
		switch op {
		case Added:
			return "+ " + text
		case Removed:
			return "- " + text
		default:
			return "  " + text
		}
	}
	switch op {
	case Added:
		return r.added.Render(text)
	case Removed:
		return r.removed.Render(text)
	default:
		return text
	}
}

package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Console prints operator-facing progress lines. Colour is only emitted
// when the writer is a terminal.
type Console struct {
	out     io.Writer
	info    lipgloss.Style
	success lipgloss.Style
	warn    lipgloss.Style
	fail    lipgloss.Style
}

func NewConsole(w io.Writer) *Console {
	r := lipgloss.NewRenderer(w)
	return &Console{
		out:     w,
		info:    r.NewStyle().Foreground(ColorInfo),
		success: r.NewStyle().Foreground(ColorSuccess),
		warn:    r.NewStyle().Foreground(ColorWarning),
		fail:    r.NewStyle().Foreground(ColorFailure),
	}
}

func (c *Console) Writer() io.Writer { return c.out }

func (c *Console) Printf(format string, a ...any) {
	fmt.Fprintf(c.out, format+"\n", a...)
}

func (c *Console) Infof(format string, a ...any) {
	c.line(c.info, format, a...)
}

func (c *Console) Successf(format string, a ...any) {
	c.line(c.success, format, a...)
}

func (c *Console) Warnf(format string, a ...any) {
	c.line(c.warn, format, a...)
}

func (c *Console) Errorf(format string, a ...any) {
	c.line(c.fail, format, a...)
}

func (c *Console) line(s lipgloss.Style, format string, a ...any) {
	fmt.Fprintln(c.out, s.Render(fmt.Sprintf(format, a...)))
}

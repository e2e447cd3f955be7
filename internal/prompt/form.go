package prompt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/taxseq/internal/ui"
)

var ErrCancelled = errors.New("input cancelled")

// ---------------------------------------------------------------------------
// Field enum
// ---------------------------------------------------------------------------

type field int

const (
	fieldEmail field = iota
	fieldAPIKey
	fieldTaxID
	fieldMinLen
	fieldMaxLen
	fieldCount
)

var (
	labels = [fieldCount]string{"Email:", "API key:", "TaxID:", "Min length:", "Max length:"}

	placeholders = [fieldCount]string{"you@example.org", "optional", "e.g. 2697049", "e.g. 500", "e.g. 30000"}

	// Line-mode prompts, one per stdin line.
	questions = [fieldCount]string{
		"Enter NCBI email:",
		"Enter NCBI API key:",
		"Enter TaxID:",
		"Min sequence length:",
		"Max sequence length:",
	}
)

// ---------------------------------------------------------------------------
// Model
// ---------------------------------------------------------------------------

// Model is the Bubble Tea form collecting the five run inputs.
type Model struct {
	inputs    [fieldCount]textinput.Model
	focused   field
	submitted bool
	cancelled bool
	errMsg    string
	width     int
	height    int
}

// New builds a form pre-filled with v and focused on the first empty field.
func New(v Values) Model {
	var m Model
	for f := field(0); f < fieldCount; f++ {
		in := textinput.New()
		in.Placeholder = placeholders[f]
		in.CharLimit = 128
		in.Width = 30
		if f == fieldAPIKey {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '*'
		}
		in.SetValue(v.get(f))
		m.inputs[f] = in
	}

	m.focused = fieldCount - 1
	for f := field(0); f < fieldCount; f++ {
		if v.get(f) == "" {
			m.focused = f
			break
		}
	}
	m.inputs[m.focused].Focus()
	return m
}

// Values returns the trimmed contents of every field.
func (m Model) Values() Values {
	var v Values
	for f := field(0); f < fieldCount; f++ {
		v.set(f, strings.TrimSpace(m.inputs[f].Value()))
	}
	return v
}

func (m Model) Submitted() bool { return m.submitted }

func (m Model) Cancelled() bool { return m.cancelled }

// Init satisfies the tea.Model interface.
func (m Model) Init() tea.Cmd { return textinput.Blink }

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, ui.Keys.Quit):
			m.cancelled = true
			return m, tea.Quit
		case key.Matches(msg, ui.Keys.Next):
			return m, m.moveFocus(1)
		case key.Matches(msg, ui.Keys.Prev):
			return m, m.moveFocus(-1)
		case key.Matches(msg, ui.Keys.Submit):
			if m.focused < fieldCount-1 {
				return m, m.moveFocus(1)
			}
			if strings.TrimSpace(m.inputs[fieldTaxID].Value()) == "" {
				m.errMsg = "TaxID is required"
				return m, m.setFocus(fieldTaxID)
			}
			m.submitted = true
			return m, tea.Quit
		}
	}

	// Forward everything else to the focused input.
	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

func (m Model) View() string {
	if m.submitted || m.cancelled {
		return ""
	}

	labelStyle := lipgloss.NewStyle().Width(12).Foreground(ui.ColorMuted)
	focusedLabelStyle := lipgloss.NewStyle().Width(12).Bold(true).Foreground(ui.ColorPrimary)

	rows := make([]string, 0, int(fieldCount))
	for f := field(0); f < fieldCount; f++ {
		ls := labelStyle
		cursor := "  "
		if f == m.focused {
			ls = focusedLabelStyle
			cursor = lipgloss.NewStyle().Foreground(ui.ColorPrimary).Render("> ")
		}
		rows = append(rows, fmt.Sprintf("%s%s %s", cursor, ls.Render(labels[f]), m.inputs[f].View()))
	}

	parts := []string{
		ui.StyleTitle.MarginBottom(1).Render("NCBI nucleotide length survey"),
		strings.Join(rows, "\n"),
	}
	if m.errMsg != "" {
		parts = append(parts, ui.StyleFailure.MarginTop(1).Render(m.errMsg))
	}
	parts = append(parts, ui.StyleMuted.MarginTop(1).Render(ui.HelpLine()))

	box := ui.StyleBox.Width(60).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (m *Model) moveFocus(delta int) tea.Cmd {
	next := int(m.focused) + delta
	if next < 0 {
		next = int(fieldCount) - 1
	}
	if next >= int(fieldCount) {
		next = 0
	}
	return m.setFocus(field(next))
}

func (m *Model) setFocus(f field) tea.Cmd {
	m.inputs[m.focused].Blur()
	m.focused = f
	return m.inputs[f].Focus()
}

// Run shows the form on a terminal and returns the entered values.
func Run(v Values, in io.Reader, out io.Writer) (Values, error) {
	p := tea.NewProgram(New(v), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return v, fmt.Errorf("prompt: %w", err)
	}
	m, ok := final.(Model)
	if !ok || m.Cancelled() || !m.Submitted() {
		return v, ErrCancelled
	}
	return m.Values(), nil
}

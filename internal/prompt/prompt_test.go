package prompt

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altinukshini/taxseq/internal/config"
)

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	got, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return got
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	return update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestFormFocusesFirstEmptyField(t *testing.T) {
	m := New(Values{Email: "a@b.org", APIKey: "k"})
	assert.Equal(t, fieldTaxID, m.focused)

	m = New(Values{Email: "a@b.org", APIKey: "k", TaxID: "1", MinLen: "2", MaxLen: "3"})
	assert.Equal(t, fieldMaxLen, m.focused)
}

func TestFormFillAndSubmit(t *testing.T) {
	m := New(Values{})
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	for _, s := range []string{"me@example.org", "secret", "9606", "500", "1500"} {
		m = typeText(t, m, s)
		m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	}

	require.True(t, m.Submitted())
	assert.False(t, m.Cancelled())
	assert.Equal(t, Values{Email: "me@example.org", APIKey: "secret", TaxID: "9606", MinLen: "500", MaxLen: "1500"}, m.Values())
}

func TestFormRequiresTaxID(t *testing.T) {
	m := New(Values{Email: "a@b.org", MinLen: "1", MaxLen: "2"})
	// Jump to the last field and try to submit with TaxID empty.
	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, fieldMaxLen, m.focused)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.Submitted())
	assert.Equal(t, fieldTaxID, m.focused)
	assert.Contains(t, m.View(), "TaxID is required")
}

func TestFormCancel(t *testing.T) {
	m := New(Values{})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.Cancelled())
	assert.Empty(t, m.View())
}

func TestFormViewMasksAPIKey(t *testing.T) {
	m := New(Values{Email: "a@b.org", APIKey: "topsecret"})
	view := m.View()
	assert.NotContains(t, view, "topsecret")
	assert.Contains(t, view, "TaxID:")
}

func TestFormTabWraps(t *testing.T) {
	m := New(Values{Email: "a", APIKey: "b", TaxID: "c", MinLen: "d", MaxLen: "e"})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, fieldEmail, m.focused)
}

func TestReadLines(t *testing.T) {
	in := strings.NewReader("me@example.org\n\n562\n100\n2000")
	var out bytes.Buffer

	v, err := ReadLines(in, &out, Values{})
	require.NoError(t, err)
	assert.Equal(t, Values{Email: "me@example.org", TaxID: "562", MinLen: "100", MaxLen: "2000"}, v)
	assert.Equal(t, "Enter NCBI email: Enter NCBI API key: Enter TaxID: Min sequence length: Max sequence length: ", out.String())
}

func TestReadLinesSkipsProvided(t *testing.T) {
	in := strings.NewReader("10\n20\n")
	var out bytes.Buffer

	v, err := ReadLines(in, &out, Values{Email: "a@b.org", APIKey: "k", TaxID: "562"})
	require.NoError(t, err)
	assert.Equal(t, "10", v.MinLen)
	assert.Equal(t, "20", v.MaxLen)
	assert.NotContains(t, out.String(), "TaxID")
}

func TestReadLinesShortInput(t *testing.T) {
	_, err := ReadLines(strings.NewReader("me@example.org\n"), &bytes.Buffer{}, Values{})
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	cfg := config.Default()
	err := Values{Email: "a@b.org", APIKey: "k", TaxID: " 562 ", MinLen: "100", MaxLen: " 2000"}.Apply(&cfg)
	require.NoError(t, err)
	assert.Equal(t, "562", cfg.TaxID)
	assert.Equal(t, 100, cfg.MinLen)
	assert.Equal(t, 2000, cfg.MaxLen)
	assert.Equal(t, "k", cfg.APIKey)
}

func TestApplyRejectsNonInteger(t *testing.T) {
	tests := []Values{
		{TaxID: "1", MinLen: "abc", MaxLen: "10"},
		{TaxID: "1", MinLen: "1", MaxLen: ""},
		{TaxID: "1", MinLen: "1.5", MaxLen: "10"},
	}
	for _, v := range tests {
		cfg := config.Default()
		assert.Error(t, v.Apply(&cfg), "values %+v", v)
	}
}

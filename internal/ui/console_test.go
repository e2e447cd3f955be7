package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestConsolePlainOutputForNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	c.Printf("Fetching up to %d records out of %d available...", 10, 20)
	c.Infof("Organism: %s", "Escherichia coli")
	c.Successf("Saved %d records to %s", 2, "x.csv")
	c.Warnf("No results.")
	c.Errorf("Search error: %v", "boom")

	want := strings.Join([]string{
		"Fetching up to 10 records out of 20 available...",
		"Organism: Escherichia coli",
		"Saved 2 records to x.csv",
		"No results.",
		"Search error: boom",
		"",
	}, "\n")
	if buf.String() != want {
		t.Errorf("output =\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestHelpLine(t *testing.T) {
	got := HelpLine()
	for _, want := range []string{"enter: next / run", "tab: next field", "esc: quit"} {
		if !strings.Contains(got, want) {
			t.Errorf("HelpLine() = %q, missing %q", got, want)
		}
	}
}

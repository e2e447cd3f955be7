package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/altinukshini/taxseq/internal/config"
)

// Values are the raw operator inputs before integer parsing.
type Values struct {
	Email  string
	APIKey string
	TaxID  string
	MinLen string
	MaxLen string
}

func (v Values) get(f field) string {
	switch f {
	case fieldEmail:
		return v.Email
	case fieldAPIKey:
		return v.APIKey
	case fieldTaxID:
		return v.TaxID
	case fieldMinLen:
		return v.MinLen
	case fieldMaxLen:
		return v.MaxLen
	}
	return ""
}

func (v *Values) set(f field, s string) {
	switch f {
	case fieldEmail:
		v.Email = s
	case fieldAPIKey:
		v.APIKey = s
	case fieldTaxID:
		v.TaxID = s
	case fieldMinLen:
		v.MinLen = s
	case fieldMaxLen:
		v.MaxLen = s
	}
}

// Complete reports whether every field but the optional API key is set.
func (v Values) Complete() bool {
	return v.Email != "" && v.TaxID != "" && v.MinLen != "" && v.MaxLen != ""
}

// Apply copies the inputs into cfg. Length bounds must parse as integers.
func (v Values) Apply(cfg *config.Config) error {
	minLen, err := strconv.Atoi(strings.TrimSpace(v.MinLen))
	if err != nil {
		return fmt.Errorf("min sequence length: %w", err)
	}
	maxLen, err := strconv.Atoi(strings.TrimSpace(v.MaxLen))
	if err != nil {
		return fmt.Errorf("max sequence length: %w", err)
	}
	cfg.Email = v.Email
	cfg.APIKey = v.APIKey
	cfg.TaxID = strings.TrimSpace(v.TaxID)
	cfg.MinLen = minLen
	cfg.MaxLen = maxLen
	return nil
}

// ReadLines asks for each empty field in order, one line of input per
// question.
func ReadLines(in io.Reader, out io.Writer, v Values) (Values, error) {
	br := bufio.NewReader(in)
	for f := field(0); f < fieldCount; f++ {
		if v.get(f) != "" {
			continue
		}
		fmt.Fprint(out, questions[f]+" ")
		line, err := br.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return v, fmt.Errorf("read %s: %w", strings.TrimSuffix(labels[f], ":"), err)
		}
		v.set(f, strings.TrimSpace(line))
	}
	return v, nil
}

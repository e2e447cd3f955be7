package entrez

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"github.com/altinukshini/taxseq/internal/model"
)

type gbEntry struct {
	locusName   string
	locusLength int
	accession   string
	version     string
	definition  []string
	hasOrigin   bool
	residues    int
}

func (e *gbEntry) record() model.SequenceRecord {
	acc := e.version
	if acc == "" {
		acc = e.accession
	}
	if acc == "" {
		acc = e.locusName
	}
	length := e.locusLength
	if e.hasOrigin && e.residues > 0 {
		length = e.residues
	}
	desc := strings.TrimSuffix(strings.Join(e.definition, " "), ".")
	return model.SequenceRecord{Accession: acc, Length: length, Description: desc}
}

// ParseGenBank reads GenBank flat-file records. Only the header fields and
// the ORIGIN residue count are kept; features are skipped.
func ParseGenBank(r io.Reader) ([]model.SequenceRecord, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)

	var (
		out     []model.SequenceRecord
		cur     *gbEntry
		section string
		lineNo  int
	)
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "LOCUS"):
			if cur != nil {
				return out, fmt.Errorf("genbank line %d: LOCUS before end of record %q", lineNo, cur.locusName)
			}
			cur = &gbEntry{}
			if err := parseLocus(line, cur); err != nil {
				return out, fmt.Errorf("genbank line %d: %w", lineNo, err)
			}
			section = "LOCUS"
		case cur == nil:
			continue
		case strings.HasPrefix(line, "//"):
			out = append(out, cur.record())
			cur = nil
			section = ""
		case line != "" && line[0] != ' ':
			fields := strings.Fields(line)
			section = fields[0]
			switch section {
			case "DEFINITION":
				if rest := strings.TrimSpace(line[len(section):]); rest != "" {
					cur.definition = append(cur.definition, rest)
				}
			case "ACCESSION":
				if len(fields) > 1 {
					cur.accession = fields[1]
				}
			case "VERSION":
				if len(fields) > 1 {
					cur.version = fields[1]
				}
			case "ORIGIN":
				cur.hasOrigin = true
			}
		default:
			switch section {
			case "DEFINITION":
				if rest := strings.TrimSpace(line); rest != "" {
					cur.definition = append(cur.definition, rest)
				}
			case "ORIGIN":
				cur.residues += countResidues(line)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return out, fmt.Errorf("genbank: %w", err)
	}
	if cur != nil {
		return out, fmt.Errorf("genbank: record %q not terminated by //", cur.locusName)
	}
	return out, nil
}

func parseLocus(line string, e *gbEntry) error {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return fmt.Errorf("malformed LOCUS line %q", line)
	}
	e.locusName = fields[1]
	for i := 2; i < len(fields); i++ {
		if fields[i] != "bp" && fields[i] != "aa" {
			continue
		}
		n, err := strconv.Atoi(fields[i-1])
		if err != nil {
			return fmt.Errorf("bad LOCUS length %q: %w", fields[i-1], err)
		}
		e.locusLength = n
		return nil
	}
	return nil
}

func countResidues(line string) int {
	n := 0
	for _, r := range line {
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n
}

// ParseFASTA reads FASTA records; the accession is the header's first word
// and the description is the rest of the header.
func ParseFASTA(r io.Reader) ([]model.SequenceRecord, error) {
	sc := seqio.NewScanner(fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNAredundant)))

	var out []model.SequenceRecord
	for sc.Next() {
		s := sc.Seq()
		out = append(out, model.SequenceRecord{
			Accession:   s.Name(),
			Length:      s.Len(),
			Description: s.Description(),
		})
	}
	if err := sc.Error(); err != nil {
		return out, fmt.Errorf("fasta: %w", err)
	}
	return out, nil
}

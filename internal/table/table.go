package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/cli/go-gh/v2/pkg/tableprinter"

	"github.com/altinukshini/taxseq/internal/model"
)

var Header = []string{"accession", "length", "description"}

// Build projects records into rows sorted by length, longest first. Rows of
// equal length keep their input order.
func Build(records []model.SequenceRecord) model.Table {
	rows := make([]model.Row, len(records))
	for i, r := range records {
		rows[i] = model.Row{Accession: r.Accession, Length: r.Length, Description: r.Description}
	}
	SortByLength(rows)
	return model.Table{Rows: rows}
}

// SortByLength orders rows by length descending with a stable sort, so
// sorting an already sorted table is a no-op.
func SortByLength(rows []model.Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Length > rows[j].Length
	})
}

// WriteCSV writes the table with a header row, replacing any existing file.
func WriteCSV(t model.Table, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close csv: %w", cerr)
		}
	}()
	return Encode(f, t)
}

func Encode(w io.Writer, t model.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range t.Rows {
		if err := cw.Write([]string{r.Accession, strconv.Itoa(r.Length), r.Description}); err != nil {
			return fmt.Errorf("write csv row %s: %w", r.Accession, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// ReadCSV loads a table written by WriteCSV.
func ReadCSV(path string) (model.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Table{}, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

func Decode(r io.Reader) (model.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	head, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return model.Table{}, fmt.Errorf("read csv: missing header")
		}
		return model.Table{}, fmt.Errorf("read csv header: %w", err)
	}
	for i, h := range Header {
		if head[i] != h {
			return model.Table{}, fmt.Errorf("read csv: column %d is %q, want %q", i, head[i], h)
		}
	}

	var t model.Table
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return model.Table{}, fmt.Errorf("read csv: %w", err)
		}
		n, err := strconv.Atoi(rec[1])
		if err != nil {
			return model.Table{}, fmt.Errorf("read csv: bad length for %s: %w", rec[0], err)
		}
		t.Rows = append(t.Rows, model.Row{Accession: rec[0], Length: n, Description: rec[2]})
	}
	return t, nil
}

// Print renders up to limit rows as a terminal table. A limit of zero or
// less prints every row.
func Print(w io.Writer, t model.Table, isTTY bool, width, limit int) error {
	tp := tableprinter.New(w, isTTY, width)
	tp.AddHeader([]string{"ACCESSION", "LENGTH", "DESCRIPTION"})
	for i, r := range t.Rows {
		if limit > 0 && i >= limit {
			break
		}
		tp.AddField(r.Accession)
		tp.AddField(strconv.Itoa(r.Length))
		tp.AddField(r.Description)
		tp.EndRow()
	}
	return tp.Render()
}

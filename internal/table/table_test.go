package table

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altinukshini/taxseq/internal/filter"
	"github.com/altinukshini/taxseq/internal/model"
)

func TestBuildSortsDescendingStable(t *testing.T) {
	records := []model.SequenceRecord{
		{Accession: "A", Length: 300, Description: "first 300"},
		{Accession: "B", Length: 1200},
		{Accession: "C", Length: 300, Description: "second 300"},
		{Accession: "D", Length: 800},
		{Accession: "E", Length: 1200},
	}

	got := Build(records)
	want := []model.Row{
		{Accession: "B", Length: 1200},
		{Accession: "E", Length: 1200},
		{Accession: "D", Length: 800},
		{Accession: "A", Length: 300, Description: "first 300"},
		{Accession: "C", Length: 300, Description: "second 300"},
	}
	if diff := cmp.Diff(want, got.Rows); diff != "" {
		t.Errorf("Build mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "A", records[0].Accession, "input must not be reordered")
}

func TestSortByLengthIdempotent(t *testing.T) {
	tbl := Build([]model.SequenceRecord{
		{Accession: "A", Length: 5},
		{Accession: "B", Length: 9},
		{Accession: "C", Length: 5},
	})
	before := append([]model.Row(nil), tbl.Rows...)
	SortByLength(tbl.Rows)
	if diff := cmp.Diff(before, tbl.Rows); diff != "" {
		t.Errorf("re-sort changed order (-before +after):\n%s", diff)
	}
}

func TestBuildProperties(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("rows are non-increasing by length", prop.ForAll(
		func(lengths []int) bool {
			records := make([]model.SequenceRecord, len(lengths))
			for i, n := range lengths {
				records[i] = model.SequenceRecord{Accession: string(rune('A' + i%26)), Length: n}
			}
			rows := Build(records).Rows
			for i := 1; i < len(rows); i++ {
				if rows[i-1].Length < rows[i].Length {
					return false
				}
			}
			return len(rows) == len(records)
		},
		gen.SliceOf(gen.IntRange(0, 50)),
	))

	properties.Property("equal lengths keep input order", prop.ForAll(
		func(lengths []int) bool {
			records := make([]model.SequenceRecord, len(lengths))
			pos := make(map[string]int, len(lengths))
			for i, n := range lengths {
				acc := "R" + strings.Repeat("x", i)
				records[i] = model.SequenceRecord{Accession: acc, Length: n}
				pos[acc] = i
			}
			rows := Build(records).Rows
			for i := 1; i < len(rows); i++ {
				if rows[i-1].Length == rows[i].Length && pos[rows[i-1].Accession] > pos[rows[i].Accession] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 3)),
	))

	properties.TestingRun(t)
}

func TestCSVRoundTrip(t *testing.T) {
	tbl := Build([]model.SequenceRecord{
		{Accession: "MN908947.3", Length: 29903, Description: "Severe acute respiratory syndrome coronavirus 2 isolate Wuhan-Hu-1, complete genome"},
		{Accession: "OQ291490.1", Length: 24, Description: `quoted "fragment", with commas`},
		{Accession: "X.1", Length: 24, Description: ""},
	})
	path := filepath.Join(t.TempDir(), "out.csv")

	require.NoError(t, WriteCSV(tbl, path))
	got, err := ReadCSV(path)
	require.NoError(t, err)

	if diff := cmp.Diff(tbl, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteCSVOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("stale,data,here\n", 100)), 0o644))

	tbl := model.Table{Rows: []model.Row{{Accession: "A", Length: 1, Description: "d"}}}
	require.NoError(t, WriteCSV(tbl, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "accession,length,description\nA,1,d\n", string(data))
}

func TestEndToEndExample(t *testing.T) {
	fetched := []model.SequenceRecord{
		{Accession: "S1", Length: 1200, Description: "one"},
		{Accession: "S2", Length: 300, Description: "two"},
		{Accession: "S3", Length: 800, Description: "three"},
	}
	tbl := Build(filter.ByLength(fetched, 500, 1500))

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, tbl))
	assert.Equal(t, "accession,length,description\nS1,1200,one\nS3,800,three\n", buf.String())
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "empty", in: ""},
		{name: "wrong header", in: "id,len,desc\n"},
		{name: "bad length", in: "accession,length,description\nA,long,x\n"},
		{name: "short row", in: "accession,length,description\nA,1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.in))
			assert.Error(t, err)
		})
	}
}

func TestPrint(t *testing.T) {
	tbl := model.Table{Rows: []model.Row{
		{Accession: "A.1", Length: 900, Description: "alpha"},
		{Accession: "B.1", Length: 700, Description: "beta"},
		{Accession: "C.1", Length: 500, Description: "gamma"},
	}}

	var buf bytes.Buffer
	require.NoError(t, Print(&buf, tbl, false, 80, 2))

	out := buf.String()
	assert.Contains(t, out, "A.1")
	assert.Contains(t, out, "B.1")
	assert.NotContains(t, out, "C.1")
}

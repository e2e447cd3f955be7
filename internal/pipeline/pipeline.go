// Package pipeline drives one run: search, fetch, filter, then write the CSV
// and the plot.
package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/altinukshini/taxseq/internal/config"
	"github.com/altinukshini/taxseq/internal/filter"
	"github.com/altinukshini/taxseq/internal/model"
	"github.com/altinukshini/taxseq/internal/plot"
	"github.com/altinukshini/taxseq/internal/table"
	"github.com/altinukshini/taxseq/internal/ui"
)

// Source is the remote sequence database. *entrez.Client satisfies it.
type Source interface {
	Search(ctx context.Context, taxID string) model.SearchResult
	FetchRecords(ctx context.Context, maxRecords int) ([]model.SequenceRecord, error)
}

type Status int

const (
	StatusNoResults Status = iota
	StatusNoMatches
	StatusWritten
)

func (s Status) String() string {
	switch s {
	case StatusNoResults:
		return "no results"
	case StatusNoMatches:
		return "no matches"
	case StatusWritten:
		return "written"
	default:
		return "unknown"
	}
}

type Outcome struct {
	Status   Status
	Search   model.SearchResult
	Fetched  int
	Table    model.Table
	CSVPath  string
	PlotPath string
}

// Run executes the pipeline for cfg. Search failures and empty results end
// the run without error; fetch and output failures are returned.
func Run(ctx context.Context, cfg config.Config, src Source, console *ui.Console) (Outcome, error) {
	if err := cfg.Validate(); err != nil {
		return Outcome{}, err
	}

	res := src.Search(ctx, cfg.TaxID)
	out := Outcome{Status: StatusNoResults, Search: res}
	if res.Failed() {
		console.Errorf("Search error: %v", res.Err)
		console.Warnf("No results.")
		return out, nil
	}
	console.Infof("Organism: %s", res.Organism)
	if res.Count == 0 {
		console.Warnf("No results.")
		return out, nil
	}

	limit := min(cfg.MaxRecords, res.Count)
	console.Printf("Fetching up to %d records out of %d available...", limit, res.Count)
	records, err := src.FetchRecords(ctx, limit)
	if err != nil {
		return out, fmt.Errorf("fetch records for taxid %s: %w", cfg.TaxID, err)
	}
	out.Fetched = len(records)

	matched := filter.ByLength(records, cfg.MinLen, cfg.MaxLen)
	if len(matched) == 0 {
		out.Status = StatusNoMatches
		console.Warnf("No records match length criteria.")
		return out, nil
	}

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return out, fmt.Errorf("create output dir: %w", err)
	}

	out.Table = table.Build(matched)
	out.CSVPath = cfg.CSVPath()
	out.PlotPath = cfg.PlotPath()
	if err := table.WriteCSV(out.Table, out.CSVPath); err != nil {
		return out, err
	}
	if err := plot.Render(out.Table, out.PlotPath); err != nil {
		return out, err
	}
	out.Status = StatusWritten

	console.Successf("Saved %d records to %s", len(matched), out.CSVPath)
	console.Successf("Plot saved as %s", out.PlotPath)
	return out, nil
}

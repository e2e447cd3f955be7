package entrez

import (
	"context"
	"os"
	"testing"
)

func TestIntegrationSearchAndFetch(t *testing.T) {
	if os.Getenv("TAXSEQ_INTEGRATION") == "" {
		t.Skip("Set TAXSEQ_INTEGRATION=1 to run integration tests")
	}

	client, err := NewClient(Options{
		Email:  os.Getenv("TAXSEQ_EMAIL"),
		APIKey: os.Getenv("TAXSEQ_API_KEY"),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	res := client.Search(context.Background(), "2697049")
	if res.Failed() {
		t.Fatalf("Search: %v", res.Err)
	}
	if res.Count == 0 {
		t.Fatal("expected at least 1 record")
	}
	t.Logf("Organism %s: %d records", res.Organism, res.Count)

	recs, err := client.FetchRecords(context.Background(), 5)
	if err != nil {
		t.Fatalf("FetchRecords: %v", err)
	}
	if len(recs) == 0 {
		t.Error("expected records in response")
	}
	for _, r := range recs {
		t.Logf("  %s %d %s", r.Accession, r.Length, r.Description)
	}
}

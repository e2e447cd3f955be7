package model

// SearchContext carries the server-side history session of a nucleotide
// search so later pages can be fetched without resending the term.
type SearchContext struct {
	TaxID    string
	Organism string
	Count    int
	WebEnv   string
	QueryKey string
}

// Term returns the organism filter used for the nucleotide search.
func (s SearchContext) Term() string {
	return OrganismTerm(s.TaxID)
}

// OrganismTerm builds the Entrez organism filter for a taxonomic ID.
func OrganismTerm(taxID string) string {
	return "txid" + taxID + "[Organism]"
}

// SearchResult is the outcome of a taxonomy lookup plus nucleotide search.
// A failed call carries Err; a successful call with no hits has Count 0 and
// a nil Err.
type SearchResult struct {
	TaxID    string
	Organism string
	Count    int
	Err      error
}

func (r SearchResult) Failed() bool {
	return r.Err != nil
}

func (r SearchResult) Empty() bool {
	return r.Err == nil && r.Count == 0
}

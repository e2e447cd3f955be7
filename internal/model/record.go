package model

// SequenceRecord is one nucleotide entry returned by the sequence database.
type SequenceRecord struct {
	Accession   string `json:"accession"`
	Length      int    `json:"length"`
	Description string `json:"description"`
}

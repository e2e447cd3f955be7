package model

// Row is one line of the filtered summary table.
type Row struct {
	Accession   string
	Length      int
	Description string
}

// Table is the filtered, length-sorted summary shared by the CSV and the plot.
type Table struct {
	Rows []Row
}

func (t Table) Len() int {
	return len(t.Rows)
}

// Lengths returns the length column in row order.
func (t Table) Lengths() []int {
	out := make([]int, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Length
	}
	return out
}

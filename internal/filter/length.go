package filter

import (
	"math"

	"github.com/altinukshini/taxseq/internal/model"
)

// Bounds is an inclusive sequence length range.
type Bounds struct {
	Min int
	Max int
}

// Unbounded accepts every non-negative length.
var Unbounded = Bounds{Min: 0, Max: math.MaxInt}

func (b Bounds) Contains(n int) bool {
	return b.Min <= n && n <= b.Max
}

// ByLength keeps records with minLen <= Length <= maxLen, preserving order.
func ByLength(records []model.SequenceRecord, minLen, maxLen int) []model.SequenceRecord {
	return Records(records, Bounds{Min: minLen, Max: maxLen})
}

func Records(records []model.SequenceRecord, b Bounds) []model.SequenceRecord {
	var matched []model.SequenceRecord
	for _, r := range records {
		if !b.Contains(r.Length) {
			continue
		}
		matched = append(matched, r)
	}
	return matched
}

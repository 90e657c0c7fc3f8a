// Package engine draws words for a card while avoiding repeats until every word
// in a category has been shown.
package engine

import (
	"math/rand/v2"

	"things_future/words"
)

// Placeholder is drawn for a category that has no words.
const Placeholder = "Loading..."

// Source picks an index in [0, n). *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// DefaultSource draws from the shared math/rand/v2 generator.
var DefaultSource Source = globalSource{}

// NewSeeded returns a deterministic source, for tests and reproducible demos.
func NewSeeded(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Draw picks the next word for c. Words already in the exposure set are skipped;
// once every word has been shown the whole list is eligible again. Draw does not
// modify its arguments; record the result with RecordDraw.
func Draw(c words.Category, catalog words.Catalog, exposure Exposure, rng Source) string {
	all := catalog.Words(c)
	if len(all) == 0 {
		return Placeholder
	}
	if rng == nil {
		rng = DefaultSource
	}

	candidates := make([]string, 0, len(all))
	for _, w := range all {
		if !exposure.Has(c, w) {
			candidates = append(candidates, w)
		}
	}
	if len(candidates) == 0 {
		candidates = all
	}
	return candidates[rng.IntN(len(candidates))]
}

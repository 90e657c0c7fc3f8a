package engine

import (
	"slices"

	"things_future/words"
)

// Exposure records, per category, the words shown since that category last
// cycled, in order of first appearance.
type Exposure map[words.Category][]string

// NewExposure returns an empty exposure set for all categories.
func NewExposure() Exposure {
	e := make(Exposure, len(words.Categories))
	for _, c := range words.Categories {
		e[c] = []string{}
	}
	return e
}

// Has reports whether w was shown in the current cycle of c.
func (e Exposure) Has(c words.Category, w string) bool {
	return slices.Contains(e[c], w)
}

// Words returns the shown words for c. The slice must not be modified.
func (e Exposure) Words(c words.Category) []string {
	return e[c]
}

// Clone returns a deep copy.
func (e Exposure) Clone() Exposure {
	out := make(Exposure, len(e))
	for c, ws := range e {
		out[c] = slices.Clone(ws)
	}
	return out
}

// RecordDraw returns the exposure set after w was drawn for c. A word that was
// already shown means the category cycled, so its set collapses to just w.
// Other categories are shared with e, not copied.
func RecordDraw(c words.Category, w string, e Exposure) Exposure {
	out := make(Exposure, len(e)+1)
	for k, v := range e {
		out[k] = v
	}
	if e.Has(c, w) {
		out[c] = []string{w}
		return out
	}
	next := make([]string, len(e[c]), len(e[c])+1)
	copy(next, e[c])
	out[c] = append(next, w)
	return out
}

// Prune returns e with words no longer in the catalog dropped from c.
func (e Exposure) Prune(c words.Category, catalog words.Catalog) Exposure {
	kept := make([]string, 0, len(e[c]))
	for _, w := range e[c] {
		if catalog.Contains(c, w) {
			kept = append(kept, w)
		}
	}
	if len(kept) == len(e[c]) {
		return e
	}
	out := make(Exposure, len(e))
	for k, v := range e {
		out[k] = v
	}
	out[c] = kept
	return out
}

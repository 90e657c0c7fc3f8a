package session

import (
	"time"

	"github.com/oklog/ulid/v2"

	"things_future/words"
)

// DefaultHistorySize is how many completed prompts a session remembers.
const DefaultHistorySize = 10

// Record is one completed card from a full regeneration.
type Record struct {
	ID        string    `json:"id"`
	Future    string    `json:"future"`
	Thing     string    `json:"thing"`
	Theme     string    `json:"theme"`
	CreatedAt time.Time `json:"timestamp"`
}

// Selection returns the record's words as a selection.
func (r Record) Selection() Selection {
	return Selection{words.Future: r.Future, words.Thing: r.Thing, words.Theme: r.Theme}
}

// History keeps the most recent records, newest first.
type History struct {
	records []Record
	max     int
}

// NewHistory creates a history holding at most max records.
func NewHistory(max int) *History {
	if max <= 0 {
		max = DefaultHistorySize
	}
	return &History{records: make([]Record, 0, max), max: max}
}

// Add prepends a record for sel, evicting the oldest beyond capacity.
func (h *History) Add(sel Selection, at time.Time) Record {
	rec := Record{
		ID:        ulid.MustNew(ulid.Timestamp(at), ulid.DefaultEntropy()).String(),
		Future:    sel[words.Future],
		Thing:     sel[words.Thing],
		Theme:     sel[words.Theme],
		CreatedAt: at,
	}

	next := make([]Record, 0, h.max)
	next = append(next, rec)
	next = append(next, h.records...)
	if len(next) > h.max {
		next = next[:h.max]
	}
	h.records = next
	return rec
}

// Records returns a copy, newest first.
func (h *History) Records() []Record {
	return append([]Record(nil), h.records...)
}

// Find looks a record up by ID.
func (h *History) Find(id string) (Record, bool) {
	for _, r := range h.records {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}

// Package session owns the state behind one visitor's card: the word catalog,
// which words have been shown, the current selection and the prompt history.
package session

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"things_future/engine"
	"things_future/words"
)

var (
	// ErrBusy is returned when a regeneration is already running.
	ErrBusy = errors.New("generation in progress")

	// ErrRecordNotFound is returned for an unknown history record ID.
	ErrRecordNotFound = errors.New("history record not found")

	// ErrUnknownCategory is returned for a category outside future, thing, theme.
	ErrUnknownCategory = errors.New("unknown category")
)

// Status is the phase of a full regeneration.
type Status int

const (
	Idle Status = iota
	Animating
	Drawing
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Animating:
		return "animating"
	case Drawing:
		return "drawing"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// MarshalText renders the status by name in JSON.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Selection is the word shown for each category.
type Selection map[words.Category]string

// Complete reports whether every category has a non-empty word.
func (s Selection) Complete() bool {
	for _, c := range words.Categories {
		if s[c] == "" {
			return false
		}
	}
	return true
}

// Sentence renders the card as one line of text.
func (s Selection) Sentence() string {
	return fmt.Sprintf("In a %s future, there is a %s related to %s.",
		s[words.Future], s[words.Thing], s[words.Theme])
}

func (s Selection) clone() Selection {
	out := make(Selection, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Options configure a Session. Zero values fall back to defaults.
type Options struct {
	Delays      Delays
	Clock       Clock
	Source      engine.Source
	HistorySize int

	// Reconcile makes ReplaceWords drop exposed words that left the catalog and
	// redraw selected words that are no longer available. Off, replaced catalogs
	// leave exposure and selection alone until the next draw.
	Reconcile bool
}

// Session is the controller for one visitor. It is safe for concurrent use;
// the lock is never held across a delay.
type Session struct {
	ID string

	clock     Clock
	rng       engine.Source
	delays    Delays
	reconcile bool

	mu         sync.Mutex
	catalog    words.Catalog
	exposure   engine.Exposure
	selection  Selection
	history    *History
	status     Status
	generating bool
	animating  bool
}

// New creates a session over catalog showing placeholders. Call Seed to pick
// the first card.
func New(id string, catalog words.Catalog, opts Options) *Session {
	if opts.Clock == nil {
		opts.Clock = RealClock
	}
	if opts.Source == nil {
		opts.Source = engine.DefaultSource
	}
	if catalog == nil {
		catalog = words.NewCatalog()
	}

	return &Session{
		ID:        id,
		clock:     opts.Clock,
		rng:       opts.Source,
		delays:    opts.Delays,
		reconcile: opts.Reconcile,
		catalog:   catalog.Clone(),
		exposure:  engine.NewExposure(),
		selection: Selection{
			words.Future: engine.Placeholder,
			words.Thing:  engine.Placeholder,
			words.Theme:  engine.Placeholder,
		},
		history: NewHistory(opts.HistorySize),
	}
}

// Seed draws a first word for every category without delay or history.
func (s *Session) Seed() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range words.Categories {
		s.selection[c] = s.drawLocked(c)
	}
	return s.selection.clone()
}

// RegenerateOne draws a new word for c after a short pause. History is not
// touched.
func (s *Session) RegenerateOne(ctx context.Context, c words.Category) (string, error) {
	if !slices.Contains(words.Categories, c) {
		return "", errors.Wrapf(ErrUnknownCategory, "%q", string(c))
	}

	s.mu.Lock()
	if s.status != Idle || s.generating {
		s.mu.Unlock()
		return "", ErrBusy
	}
	s.generating = true
	s.mu.Unlock()

	if err := s.clock.Sleep(ctx, s.delays.One); err != nil {
		s.mu.Lock()
		s.generating = false
		s.mu.Unlock()
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.drawLocked(c)
	s.selection[c] = w
	s.generating = false
	return w, nil
}

// RegenerateAll runs a full card regeneration: animate, draw all three
// categories, swap them in together, record the prompt, then let the animation
// settle. Cancelling ctx before the swap leaves the session unchanged.
func (s *Session) RegenerateAll(ctx context.Context) (Selection, error) {
	s.mu.Lock()
	if s.status != Idle || s.generating {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	s.status = Animating
	s.animating = true
	s.mu.Unlock()

	if err := s.clock.Sleep(ctx, s.delays.Animate); err != nil {
		s.abort()
		return nil, err
	}

	s.mu.Lock()
	s.status = Drawing
	s.generating = true
	s.mu.Unlock()

	if err := s.clock.Sleep(ctx, s.delays.Settle); err != nil {
		s.abort()
		return nil, err
	}

	s.mu.Lock()
	drawn := make(Selection, len(words.Categories))
	for _, c := range words.Categories {
		drawn[c] = s.drawLocked(c)
	}
	for c, w := range drawn {
		s.selection[c] = w
	}
	if drawn.Complete() {
		s.history.Add(drawn, s.clock.Now())
	}
	s.generating = false
	s.mu.Unlock()

	// The swap already happened; a cancelled release only shortens the settle.
	_ = s.clock.Sleep(ctx, s.delays.Release)

	s.mu.Lock()
	s.animating = false
	s.status = Idle
	s.mu.Unlock()

	return drawn, nil
}

func (s *Session) abort() {
	s.mu.Lock()
	s.status = Idle
	s.animating = false
	s.generating = false
	s.mu.Unlock()
}

// drawLocked picks and records the next word for c. Exposed words that have
// left the catalog are dropped first.
func (s *Session) drawLocked(c words.Category) string {
	s.exposure = s.exposure.Prune(c, s.catalog)
	w := engine.Draw(c, s.catalog, s.exposure, s.rng)
	if len(s.catalog.Words(c)) > 0 {
		s.exposure = engine.RecordDraw(c, w, s.exposure)
	}
	return w
}

// Restore shows the words of a past prompt again.
func (s *Session) Restore(id string) (Selection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.history.Find(id)
	if !ok {
		return nil, errors.Wrapf(ErrRecordNotFound, "%q", id)
	}
	s.selection = rec.Selection()
	return s.selection.clone(), nil
}

// ReplaceWords installs a new catalog wholesale.
func (s *Session) ReplaceWords(catalog words.Catalog) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.catalog = catalog.Clone()
	if !s.reconcile {
		return
	}
	for _, c := range words.Categories {
		s.exposure = s.exposure.Prune(c, s.catalog)
		if !s.catalog.Contains(c, s.selection[c]) {
			s.selection[c] = s.drawLocked(c)
		}
	}
}

// Catalog returns a copy of the session's words.
func (s *Session) Catalog() words.Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Clone()
}

// Selection returns the words currently shown.
func (s *Session) Selection() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.clone()
}

// Status returns the regeneration phase.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// History returns past prompts, newest first.
func (s *Session) History() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Records()
}

// Snapshot is a consistent view of a session for rendering.
type Snapshot struct {
	ID         string                 `json:"id"`
	Selection  Selection              `json:"selection"`
	Status     Status                 `json:"status"`
	Generating bool                   `json:"generating"`
	Animating  bool                   `json:"animating"`
	Exposure   engine.Exposure        `json:"exposure"`
	History    []Record               `json:"history"`
	Counts     map[words.Category]int `json:"counts"`
	TakenAt    time.Time              `json:"taken_at"`
}

// Snapshot copies the whole session state under one lock.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		ID:         s.ID,
		Selection:  s.selection.clone(),
		Status:     s.status,
		Generating: s.generating,
		Animating:  s.animating,
		Exposure:   s.exposure.Clone(),
		History:    s.history.Records(),
		Counts:     s.catalog.Counts(),
		TakenAt:    s.clock.Now(),
	}
}

package session

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"things_future/words"
)

// ErrNotLoaded is returned when no word catalog has been loaded yet.
var ErrNotLoaded = errors.New("words not loaded")

type entry struct {
	sess     *Session
	lastSeen time.Time
}

// Manager hands out sessions keyed by an opaque ID and holds the default
// catalog new sessions start from.
type Manager struct {
	opts   Options
	ttl    time.Duration
	logger *zap.SugaredLogger

	mu       sync.Mutex
	defaults words.Catalog
	report   words.Report
	loadErr  error
	sessions map[string]*entry
}

// NewManager creates an empty manager. Sessions idle for longer than ttl are
// forgotten; ttl <= 0 keeps them forever.
func NewManager(opts Options, ttl time.Duration, logger *zap.SugaredLogger) *Manager {
	if opts.Clock == nil {
		opts.Clock = RealClock
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Manager{
		opts:     opts,
		ttl:      ttl,
		logger:   logger,
		loadErr:  ErrNotLoaded,
		sessions: make(map[string]*entry),
	}
}

// Load reads the default catalog from src. On failure the previous catalog, if
// any, stays in place and the error is remembered for the failure page.
func (m *Manager) Load(ctx context.Context, src string) error {
	cat, rep, err := words.Load(ctx, src)
	if err != nil {
		m.logger.Errorw("Failed to load words", "source", src, "error", err, "hints", errors.FlattenHints(err))
		m.mu.Lock()
		if m.defaults == nil {
			m.loadErr = err
		}
		m.mu.Unlock()
		return err
	}
	if rep.Dropped() > 0 {
		m.logger.Warnw("Dropped malformed word records",
			"source", src,
			"missing_fields", rep.MissingFields,
			"invalid_category", rep.InvalidCategory)
	}
	m.SetCatalog(cat, rep)
	return nil
}

// SetCatalog installs the default catalog for sessions created from now on.
func (m *Manager) SetCatalog(cat words.Catalog, rep words.Report) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.defaults = cat.Clone()
	m.report = rep
	m.loadErr = nil
	counts := m.defaults.Counts()
	m.logger.Infow("Word catalog ready",
		"future", counts[words.Future],
		"thing", counts[words.Thing],
		"theme", counts[words.Theme])
}

// Defaults returns the default catalog, or the load error when there is none.
func (m *Manager) Defaults() (words.Catalog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.defaults == nil {
		return nil, m.loadErr
	}
	return m.defaults.Clone(), nil
}

// Report returns the load report of the current default catalog.
func (m *Manager) Report() words.Report {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.report
}

// LoadErr is the reason no catalog is available, or nil.
func (m *Manager) LoadErr() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.defaults != nil {
		return nil
	}
	return m.loadErr
}

// Get returns the session for id, refreshing its idle timer.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.opts.Clock.Now()
	m.sweepLocked(now)
	e, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = now
	return e.sess, true
}

// Create starts a seeded session over the default catalog.
func (m *Manager) Create() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.defaults == nil {
		return nil, errors.Mark(m.loadErr, ErrNotLoaded)
	}

	now := m.opts.Clock.Now()
	m.sweepLocked(now)

	s := New(uuid.NewString(), m.defaults, m.opts)
	s.Seed()
	m.sessions[s.ID] = &entry{sess: s, lastSeen: now}
	m.logger.Debugw("Session created", "session", s.ID, "active", len(m.sessions))
	return s, nil
}

// GetOrCreate returns the session for id, creating a new one if id is unknown.
func (m *Manager) GetOrCreate(id string) (*Session, bool, error) {
	if s, ok := m.Get(id); ok {
		return s, false, nil
	}
	s, err := m.Create()
	if err != nil {
		return nil, false, err
	}
	return s, true, nil
}

// Len is the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) sweepLocked(now time.Time) {
	if m.ttl <= 0 {
		return
	}
	for id, e := range m.sessions {
		if now.Sub(e.lastSeen) > m.ttl {
			delete(m.sessions, id)
			m.logger.Debugw("Session expired", "session", id)
		}
	}
}

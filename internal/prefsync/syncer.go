// Package prefsync persists preference changes in the background so the
// tuning UI never waits on SQLite.
package prefsync

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/feedtune/internal/logger"
	"github.com/abhisek/feedtune/internal/prefs"
	"github.com/abhisek/feedtune/internal/store"
)

const (
	queueSize   = 64
	saveTimeout = 5 * time.Second
)

// Syncer subscribes to a prefs.Store and writes every change to the change
// log and the latest preferences to the profile row.
type Syncer struct {
	prefRepo   store.PreferenceRepo
	changeRepo store.ChangeRepo
	profile    string
	sessionID  string
	log        *logger.Logger

	pending chan prefs.Change
	done    chan struct{}

	mu          sync.Mutex
	unsubscribe func()
	closed      bool
}

// New creates a Syncer for profile and starts its write loop. Each Syncer
// gets a fresh session ID that groups its change log entries.
func New(prefRepo store.PreferenceRepo, changeRepo store.ChangeRepo, profile string, log *logger.Logger) *Syncer {
	s := &Syncer{
		prefRepo:   prefRepo,
		changeRepo: changeRepo,
		profile:    profile,
		sessionID:  uuid.NewString(),
		log:        log,
		pending:    make(chan prefs.Change, queueSize),
		done:       make(chan struct{}),
	}
	s.log = log.With("profile", profile, "tuning_session", s.sessionID)
	go s.processLoop()
	return s
}

// SessionID identifies this run in the change log.
func (s *Syncer) SessionID() string {
	return s.sessionID
}

// Attach subscribes to ps. Only one store may be attached at a time.
func (s *Syncer) Attach(ps *prefs.Store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	s.unsubscribe = ps.Subscribe(s.enqueue)
}

func (s *Syncer) enqueue(c prefs.Change) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.pending <- c:
	default:
		// Backlog full: the row still converges on the next change; only
		// this log entry is lost.
		s.log.Warn("preference change dropped, write queue full", "action", c.Action)
	}
}

func (s *Syncer) processLoop() {
	defer close(s.done)
	for c := range s.pending {
		s.write(c)
	}
}

func (s *Syncer) write(c prefs.Change) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if err := s.prefRepo.Save(ctx, s.profile, c.Preferences); err != nil {
		s.log.Error("save preferences failed", "error", err)
	}
	seq, err := s.changeRepo.Append(ctx, store.ChangeRecord{
		Profile:     s.profile,
		SessionID:   s.sessionID,
		Action:      c.Action,
		Detail:      c.Detail,
		Preferences: c.Preferences,
	})
	if err != nil {
		s.log.Error("append preference change failed", "error", err)
		return
	}
	s.log.Debug("preference change saved",
		"sequence", seq,
		"action", c.Action,
		"detail", c.Detail,
		"preset", c.Preferences.ActivePreset(),
	)
}

// Close unsubscribes and waits for queued writes to finish.
func (s *Syncer) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	close(s.pending)
	s.mu.Unlock()

	<-s.done
}

// Load returns the saved preferences for profile. Missing or invalid rows
// yield DefaultPreferences; an invalid row is logged, not returned as an error.
func Load(ctx context.Context, repo store.PreferenceRepo, profile string, log *logger.Logger) (prefs.FeedPreferences, error) {
	stored, err := repo.Load(ctx, profile)
	if err != nil {
		return prefs.DefaultPreferences(), err
	}
	if stored == nil {
		return prefs.DefaultPreferences(), nil
	}
	if err := stored.Preferences.Validate(); err != nil {
		log.Warn("stored preferences invalid, using defaults", "profile", profile, "error", err)
		return prefs.DefaultPreferences(), nil
	}
	return stored.Preferences, nil
}

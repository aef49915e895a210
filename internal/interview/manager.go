package interview

import (
	"errors"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned for unknown or expired session identifiers. It is
// deliberately distinct from validation and backend errors so callers can map
// it to a "not found" condition.
var ErrNotFound = errors.New("interview session not found")

const (
	// DefaultMaxInteractions is the number of guided turns before the
	// solution is revealed.
	DefaultMaxInteractions = 3

	// DefaultTimeout is how long an idle session survives.
	DefaultTimeout = 30 * time.Minute

	// DefaultSweepInterval is how often expired sessions are collected.
	DefaultSweepInterval = 5 * time.Minute

	// DefaultTriggerPhrase marks a problem statement as an interview request.
	DefaultTriggerPhrase = "interview mode"
)

// Manager owns the interview session map: lifecycle, phase progression, and
// timeout-based garbage collection. All methods are safe for concurrent use.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	maxInteractions int
	timeout         time.Duration
	trigger         string
	stripRe         *regexp.Regexp

	now  func() time.Time // injectable for tests
	done chan struct{}
}

// ManagerOptions configures a Manager; zero values fall back to defaults.
type ManagerOptions struct {
	MaxInteractions int
	Timeout         time.Duration
	SweepInterval   time.Duration
	TriggerPhrase   string
}

// NewManager creates a session manager and starts its background expiry
// sweep. Call Stop to end the sweep goroutine.
func NewManager(opts ManagerOptions) *Manager {
	if opts.MaxInteractions <= 0 {
		opts.MaxInteractions = DefaultMaxInteractions
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.SweepInterval <= 0 {
		opts.SweepInterval = DefaultSweepInterval
	}
	if opts.TriggerPhrase == "" {
		opts.TriggerPhrase = DefaultTriggerPhrase
	}

	m := &Manager{
		sessions:        make(map[string]*Session),
		maxInteractions: opts.MaxInteractions,
		timeout:         opts.Timeout,
		trigger:         strings.ToLower(opts.TriggerPhrase),
		stripRe:         regexp.MustCompile(`(?i)` + regexp.QuoteMeta(opts.TriggerPhrase) + `[:,.]?\s*`),
		now:             time.Now,
		done:            make(chan struct{}),
	}

	go m.sweepLoop(opts.SweepInterval)
	return m
}

// Stop terminates the background expiry sweep. Idempotent is not required;
// callers stop the manager exactly once at shutdown.
func (m *Manager) Stop() {
	close(m.done)
}

// IsTriggered reports whether the problem text contains the interview
// trigger phrase (case-insensitive).
func (m *Manager) IsTriggered(problem string) bool {
	return strings.Contains(strings.ToLower(problem), m.trigger)
}

// Create starts a new session for the given problem text. The trigger phrase
// is stripped from the stored problem so it never leaks into prompts.
func (m *Manager) Create(problem string) *Session {
	now := m.now().UTC()
	sess := &Session{
		ID:              uuid.New().String(),
		Problem:         strings.TrimSpace(m.stripRe.ReplaceAllString(problem, "")),
		Phase:           PhaseUnderstanding,
		MaxInteractions: m.maxInteractions,
		CreatedAt:       now,
		LastActive:      now,
	}

	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()

	return sess.clone()
}

// Get returns a copy of the session, or ErrNotFound.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return sess.clone(), nil
}

// Advance records an optional user turn, increments the interaction counter,
// and moves the phase forward. Hitting the cap forces Reveal regardless of
// the nominal next phase.
func (m *Manager) Advance(id, userTurn string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}

	now := m.now().UTC()
	if userTurn != "" {
		sess.Transcript = append(sess.Transcript, Turn{Role: "user", Content: userTurn, Timestamp: now})
	}
	sess.Interactions++
	if sess.Interactions >= sess.MaxInteractions {
		sess.Phase = PhaseReveal
	} else {
		sess.Phase = sess.Phase.next()
	}
	sess.LastActive = now

	return sess.clone(), nil
}

// RecordAssistantTurn appends an assistant reply to the transcript for
// conversational continuity.
func (m *Manager) RecordAssistantTurn(id, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	now := m.now().UTC()
	sess.Transcript = append(sess.Transcript, Turn{Role: "assistant", Content: text, Timestamp: now})
	sess.LastActive = now
	return nil
}

// ForceReveal jumps the session to the Reveal phase without consuming an
// interaction.
func (m *Manager) ForceReveal(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	sess.Phase = PhaseReveal
	sess.LastActive = m.now().UTC()
	return sess.clone(), nil
}

// End removes the session. Ending an unknown session is a no-op.
func (m *Manager) End(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// ActiveCount returns the number of live sessions.
func (m *Manager) ActiveCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *Manager) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

// sweep removes sessions idle beyond the timeout. This is the only garbage
// collection; there is no cap on concurrent session count.
func (m *Manager) sweep() {
	cutoff := m.now().UTC().Add(-m.timeout)

	m.mu.Lock()
	defer m.mu.Unlock()
	for id, sess := range m.sessions {
		if sess.LastActive.Before(cutoff) {
			delete(m.sessions, id)
		}
	}
}

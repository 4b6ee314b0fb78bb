package kiosk

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dukerupert/cakekiosk/internal/domain"
)

// DefaultSessionTTL is how long an untouched kiosk session is kept.
const DefaultSessionTTL = 30 * time.Minute

// ErrSessionNotFound is returned for unknown or expired sessions.
var ErrSessionNotFound = domain.Errorf(domain.ENOTFOUND, "", "Session not found or expired")

// Session is one customer's pass through the wizard. Callers must hold the
// lock while reading or mutating the order.
type Session struct {
	ID string

	mu       sync.Mutex
	order    *domain.Order
	lastSeen time.Time
}

// Sessions is the in-memory registry of active kiosk sessions.
type Sessions struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewSessions creates an empty registry. A non-positive ttl uses
// DefaultSessionTTL.
func NewSessions(ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Sessions{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create registers a new session around order.
func (s *Sessions) Create(order *domain.Order) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &Session{
		ID:       uuid.NewString(),
		order:    order,
		lastSeen: s.now(),
	}
	s.sessions[sess.ID] = sess
	return sess
}

// Get returns a live session and marks it as used. Expired sessions are
// dropped on access.
func (s *Sessions) Get(id string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrSessionNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}

	now := s.now()
	if now.Sub(sess.lastSeen) > s.ttl {
		delete(s.sessions, id)
		return nil, ErrSessionNotFound
	}
	sess.lastSeen = now
	return sess, nil
}

// Delete removes a session. It reports whether the session existed.
func (s *Sessions) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.sessions[id]
	delete(s.sessions, id)
	return ok
}

// Len returns the number of registered sessions, expired ones included.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops every expired session and returns how many were removed.
func (s *Sessions) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps expired sessions every interval until ctx is cancelled.
func (s *Sessions) Run(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				logger.Debug("expired kiosk sessions swept", "count", n)
			}
		}
	}
}

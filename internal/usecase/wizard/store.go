package wizard

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lavamax/console/internal/domain"
)

// Session is one in-flight wizard, bound to a single draft.
type Session struct {
	ID         uuid.UUID
	Controller *Controller

	lastSeen time.Time
}

// Store keeps wizard sessions in memory. Sessions are strictly per
// operator tab: nothing is shared between them. Idle sessions are evicted
// after the TTL, which discards the draft exactly like navigating away
// from the wizard does.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	ttl      time.Duration
	stop     chan struct{}
}

// NewStore creates a session store and starts its eviction loop.
func NewStore(ttl time.Duration) *Store {
	s := &Store{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}
	go s.evictLoop()
	return s
}

// Put registers a new session for the given controller.
func (s *Store) Put(controller *Controller) *Session {
	session := &Session{
		ID:         uuid.New(),
		Controller: controller,
		lastSeen:   time.Now(),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return session
}

// Get returns a live session and refreshes its idle timer.
func (s *Store) Get(id uuid.UUID) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	session.lastSeen = time.Now()
	return session, nil
}

// Delete tears a session down, discarding its draft.
func (s *Store) Delete(id uuid.UUID) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Close stops the eviction loop.
func (s *Store) Close() {
	close(s.stop)
}

func (s *Store) evictLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.evictIdle()
		}
	}
}

func (s *Store) evictIdle() {
	deadline := time.Now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, session := range s.sessions {
		if session.lastSeen.Before(deadline) {
			delete(s.sessions, id)
		}
	}
}

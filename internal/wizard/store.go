package wizard

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/makingbetter/serveconnect-backend/internal/pkg/apperror"
)

var ErrSessionNotFound = apperror.New(http.StatusNotFound, "wizard session not found or expired")

type entry struct {
	wizard    *Wizard
	expiresAt time.Time
}

// Store holds in-flight wizard sessions keyed by an opaque id. Sessions
// expire after the configured TTL; expired entries are swept lazily on
// access.
type Store struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]*entry
}

// NewStore creates a session store. A non-positive ttl means sessions never
// expire.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:     ttl,
		now:     func() time.Time { return time.Now().UTC() },
		entries: make(map[string]*entry),
	}
}

// Put registers a wizard and returns its session id.
func (s *Store) Put(w *Wizard) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()

	id := uuid.NewString()
	e := &entry{wizard: w}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}
	s.entries[id] = e
	return id
}

// Get looks up a live session, extending its expiry on each access.
func (s *Store) Get(id string) (*Wizard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if !e.expiresAt.IsZero() && !e.expiresAt.After(s.now()) {
		delete(s.entries, id)
		return nil, ErrSessionNotFound
	}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}
	return e.wizard, nil
}

// Delete removes a session. Removing an unknown id is a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

func (s *Store) sweepLocked() {
	now := s.now()
	for id, e := range s.entries {
		if !e.expiresAt.IsZero() && !e.expiresAt.After(now) {
			delete(s.entries, id)
		}
	}
}

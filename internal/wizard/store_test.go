package wizard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreLifecycle(t *testing.T) {
	s := NewStore(time.Hour)
	w := testWizard(&fakeSubmitter{})

	id := s.Put(w)
	require.NotEmpty(t, id)

	got, err := s.Get(id)
	require.NoError(t, err)
	assert.Same(t, w, got)

	s.Delete(id)
	_, err = s.Get(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStoreUnknownID(t *testing.T) {
	s := NewStore(time.Hour)
	_, err := s.Get("nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStoreExpiry(t *testing.T) {
	now := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
	s := NewStore(time.Hour)
	s.now = func() time.Time { return now }

	id := s.Put(testWizard(&fakeSubmitter{}))

	// Accessing within the TTL extends it.
	now = now.Add(50 * time.Minute)
	_, err := s.Get(id)
	require.NoError(t, err)

	now = now.Add(50 * time.Minute)
	_, err = s.Get(id)
	require.NoError(t, err, "expiry should have been extended by the previous access")

	now = now.Add(2 * time.Hour)
	_, err = s.Get(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStoreWithoutTTL(t *testing.T) {
	now := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
	s := NewStore(0)
	s.now = func() time.Time { return now }

	id := s.Put(testWizard(&fakeSubmitter{}))

	now = now.Add(1000 * time.Hour)
	_, err := s.Get(id)
	assert.NoError(t, err)
}

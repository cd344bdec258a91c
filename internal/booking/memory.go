package booking

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"
)

// memoryRepository is an in-memory Repository used in demo mode and tests.
type memoryRepository struct {
	mu       sync.RWMutex
	bookings map[string]*Booking
	nextID   int
}

// NewMemoryRepository creates an empty in-memory booking repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		bookings: make(map[string]*Booking),
		nextID:   1,
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func (r *memoryRepository) Create(ctx context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Mirror the unique index the pgx repository relies on.
	for _, existing := range r.bookings {
		if existing.ProviderID == b.ProviderID &&
			existing.Status != StatusCancelled &&
			sameDay(existing.Date, b.Date) &&
			existing.StartTime == b.StartTime {
			return ErrSlotTaken
		}
	}

	b.ID = strconv.Itoa(r.nextID)
	r.nextID++
	b.CreatedAt = time.Now().UTC()
	b.UpdatedAt = b.CreatedAt

	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *memoryRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*Booking
	for _, b := range r.bookings {
		if filter.ClientID != "" && b.ClientID != filter.ClientID {
			continue
		}
		if filter.ProviderID != "" && b.ProviderID != filter.ProviderID {
			continue
		}
		if filter.ServiceID != "" && b.ServiceID != filter.ServiceID {
			continue
		}
		if filter.Status != "" && string(b.Status) != filter.Status {
			continue
		}
		if filter.DateFrom != nil && b.Date.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && b.Date.After(*filter.DateTo) {
			continue
		}
		cp := *b
		matched = append(matched, &cp)
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].Date.Equal(matched[j].Date) {
			return matched[i].Date.After(matched[j].Date)
		}
		return matched[i].StartTime < matched[j].StartTime
	})

	total := len(matched)
	page, pageSize := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	start := (page - 1) * pageSize
	if start >= total {
		return nil, total, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (r *memoryRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return ErrNotFound
	}
	b.Status = status
	b.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *memoryRepository) SlotTaken(ctx context.Context, providerID string, date time.Time, slot string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.bookings {
		if b.ProviderID == providerID &&
			b.Status != StatusCancelled &&
			sameDay(b.Date, date) &&
			b.StartTime == slot {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryRepository) BookedSlots(ctx context.Context, providerID string, date time.Time) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var slots []string
	for _, b := range r.bookings {
		if b.ProviderID == providerID &&
			b.Status != StatusCancelled &&
			sameDay(b.Date, date) {
			slots = append(slots, b.StartTime)
		}
	}
	sort.Strings(slots)
	return slots, nil
}

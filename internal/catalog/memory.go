package catalog

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// memoryServiceRepository is an in-memory ServiceRepository used in demo mode and tests.
type memoryServiceRepository struct {
	mu       sync.RWMutex
	services map[string]*Service
	nextID   int

	// referenced answers ReferencedByBooking when set. Without it the
	// repository treats every service as unreferenced.
	referenced func(ctx context.Context, serviceID string) (bool, error)
}

// NewMemoryServiceRepository creates an in-memory repository pre-populated with the
// given services.
func NewMemoryServiceRepository(seed ...*Service) ServiceRepository {
	r := &memoryServiceRepository{
		services: make(map[string]*Service),
		nextID:   1,
	}
	for _, s := range seed {
		cp := *s
		r.services[cp.ID] = &cp
		r.nextID++
	}
	return r
}

// NewMemoryServiceRepositoryWithBookings additionally wires a view into the
// booking store, so the once-booked immutability rule holds in demo mode the
// same way the database path enforces it.
func NewMemoryServiceRepositoryWithBookings(
	referenced func(ctx context.Context, serviceID string) (bool, error),
	seed ...*Service,
) ServiceRepository {
	r := NewMemoryServiceRepository(seed...).(*memoryServiceRepository)
	r.referenced = referenced
	return r
}

func (r *memoryServiceRepository) Create(ctx context.Context, s *Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s.ID = strconv.Itoa(r.nextID)
	r.nextID++
	s.CreatedAt = time.Now().UTC()
	s.UpdatedAt = s.CreatedAt

	cp := *s
	r.services[s.ID] = &cp
	return nil
}

func (r *memoryServiceRepository) GetByID(ctx context.Context, id string) (*Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.services[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *memoryServiceRepository) List(ctx context.Context, filter ServiceFilter) ([]*Service, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*Service
	for _, s := range r.services {
		if filter.Category != "" && s.Category != filter.Category {
			continue
		}
		if filter.Keyword != "" {
			kw := strings.ToLower(filter.Keyword)
			if !strings.Contains(strings.ToLower(s.Title), kw) &&
				!strings.Contains(strings.ToLower(s.Description), kw) {
				continue
			}
		}
		cp := *s
		matched = append(matched, &cp)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Title < matched[j].Title
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

func (r *memoryServiceRepository) Update(ctx context.Context, s *Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.services[s.ID]
	if !ok {
		return ErrNotFound
	}
	s.CreatedAt = existing.CreatedAt
	s.UpdatedAt = time.Now().UTC()

	cp := *s
	r.services[s.ID] = &cp
	return nil
}

func (r *memoryServiceRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.services[id]; !ok {
		return ErrNotFound
	}
	delete(r.services, id)
	return nil
}

func (r *memoryServiceRepository) ReferencedByBooking(ctx context.Context, id string) (bool, error) {
	if r.referenced == nil {
		return false, nil
	}
	return r.referenced(ctx, id)
}

package catalog

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"
)

// memoryProviderRepository is an in-memory ProviderRepository used in demo
// mode and tests.
type memoryProviderRepository struct {
	mu        sync.RWMutex
	providers map[string]*Provider
	nextID    int
}

// NewMemoryProviderRepository creates an in-memory repository pre-populated
// with the given providers.
func NewMemoryProviderRepository(seed ...*Provider) ProviderRepository {
	r := &memoryProviderRepository{
		providers: make(map[string]*Provider),
		nextID:    1,
	}
	for _, p := range seed {
		cp := clonePr(p)
		r.providers[cp.ID] = cp
		r.nextID++
	}
	return r
}

func clonePr(p *Provider) *Provider {
	cp := *p
	cp.ServiceIDs = append([]string(nil), p.ServiceIDs...)
	return &cp
}

func (r *memoryProviderRepository) Create(ctx context.Context, p *Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p.ID = strconv.Itoa(r.nextID)
	r.nextID++
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt

	r.providers[p.ID] = clonePr(p)
	return nil
}

func (r *memoryProviderRepository) GetByID(ctx context.Context, id string) (*Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[id]
	if !ok {
		return nil, ErrProviderNotFound
	}
	return clonePr(p), nil
}

func (r *memoryProviderRepository) List(ctx context.Context, filter ProviderFilter) ([]*Provider, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*Provider
	for _, p := range r.providers {
		if filter.ServiceID != "" && !p.Supports(filter.ServiceID) {
			continue
		}
		matched = append(matched, clonePr(p))
	}

	sortProviders(matched)

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

func (r *memoryProviderRepository) Update(ctx context.Context, p *Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.providers[p.ID]
	if !ok {
		return ErrProviderNotFound
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now().UTC()

	r.providers[p.ID] = clonePr(p)
	return nil
}

func (r *memoryProviderRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.providers[id]; !ok {
		return ErrProviderNotFound
	}
	delete(r.providers, id)
	return nil
}

// ListForService fetches the full provider set for the service, unpaginated.
func (r *memoryProviderRepository) ListForService(ctx context.Context, serviceID string) ([]*Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*Provider
	for _, p := range r.providers {
		if p.Supports(serviceID) {
			matched = append(matched, clonePr(p))
		}
	}
	sortProviders(matched)
	return matched, nil
}

func (r *memoryProviderRepository) UpdateRating(ctx context.Context, id string, rating float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.providers[id]
	if !ok {
		return ErrProviderNotFound
	}
	p.Rating = rating
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// sortProviders orders by rating descending, ties broken by id ascending for
// deterministic output.
func sortProviders(providers []*Provider) {
	sort.SliceStable(providers, func(i, j int) bool {
		if providers[i].Rating != providers[j].Rating {
			return providers[i].Rating > providers[j].Rating
		}
		return idLess(providers[i].ID, providers[j].ID)
	})
}

// idLess matches the database ordering of integer keys: numeric when both
// ids parse as integers, lexicographic otherwise.
func idLess(a, b string) bool {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		return ai < bi
	}
	return a < b
}

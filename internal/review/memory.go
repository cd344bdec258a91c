package review

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"
)

// memoryRepository is an in-memory Repository used in demo mode and tests.
type memoryRepository struct {
	mu      sync.Mutex
	reviews map[string]*Review
	nextID  int
	now     func() time.Time
}

func NewMemoryRepository() Repository {
	return &memoryRepository{
		reviews: make(map[string]*Review),
		nextID:  1,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (r *memoryRepository) Create(ctx context.Context, rv *Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.reviews {
		if existing.BookingID == rv.BookingID {
			return ErrAlreadyReviewed
		}
	}

	rv.ID = strconv.Itoa(r.nextID)
	r.nextID++
	rv.CreatedAt = r.now()

	cp := *rv
	r.reviews[rv.ID] = &cp
	return nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id string) (*Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rv, ok := r.reviews[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *rv
	return &cp, nil
}

func (r *memoryRepository) List(ctx context.Context, filter Filter) ([]*Review, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*Review
	for _, rv := range r.reviews {
		if filter.ProviderID != "" && rv.ProviderID != filter.ProviderID {
			continue
		}
		if filter.ServiceID != "" && rv.ServiceID != filter.ServiceID {
			continue
		}
		if filter.ClientID != "" && rv.ClientID != filter.ClientID {
			continue
		}
		cp := *rv
		matched = append(matched, &cp)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size < 1 {
		size = 20
	}
	start := (page - 1) * size
	if start >= total {
		return nil, total, nil
	}
	end := start + size
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (r *memoryRepository) AverageForProvider(ctx context.Context, providerID string) (float64, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var sum, count int
	for _, rv := range r.reviews {
		if rv.ProviderID == providerID {
			sum += rv.Rating
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

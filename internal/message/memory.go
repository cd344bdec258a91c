package message

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"
)

// memoryRepository is an in-memory Repository used in demo mode and tests.
type memoryRepository struct {
	mu       sync.Mutex
	messages map[string]*Message
	nextID   int
	now      func() time.Time
}

func NewMemoryRepository() Repository {
	return &memoryRepository{
		messages: make(map[string]*Message),
		nextID:   1,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (r *memoryRepository) Create(ctx context.Context, m *Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m.ID = strconv.Itoa(r.nextID)
	r.nextID++
	m.CreatedAt = r.now()

	cp := *m
	r.messages[m.ID] = &cp
	return nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id string) (*Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.messages[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *memoryRepository) List(ctx context.Context, filter Filter) ([]*Message, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*Message
	for _, m := range r.messages {
		if filter.WithUserID != "" {
			pair := (m.SenderID == filter.UserID && m.RecipientID == filter.WithUserID) ||
				(m.SenderID == filter.WithUserID && m.RecipientID == filter.UserID)
			if !pair {
				continue
			}
		} else if m.SenderID != filter.UserID && m.RecipientID != filter.UserID {
			continue
		}
		if filter.UnreadOnly && (m.RecipientID != filter.UserID || m.ReadAt != nil) {
			continue
		}
		cp := *m
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
		size = 50
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

func (r *memoryRepository) MarkRead(ctx context.Context, id string, t time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.messages[id]
	if ok && m.ReadAt == nil {
		m.ReadAt = &t
	}
	return nil
}

package contacts

import (
	"context"
	"sync"

	"hotel_residents/internal/domain"
)

// Memory is an in-process contact directory keyed by resident id.
type Memory struct {
	mu    sync.RWMutex
	byRes map[int64][]domain.Contact
	all   []domain.Contact
}

func NewMemory() *Memory {
	return &Memory{byRes: make(map[int64][]domain.Contact)}
}

func (m *Memory) CreateContact(_ context.Context, c domain.Contact) (domain.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byRes[c.ResidentID] = append(m.byRes[c.ResidentID], c)
	m.all = append(m.all, c)
	return c, nil
}

func (m *Memory) GetContacts(_ context.Context, residentID int64) ([]domain.Contact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cs, ok := m.byRes[residentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return append([]domain.Contact(nil), cs...), nil
}

func (m *Memory) GetAllContacts(_ context.Context) ([]domain.Contact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Contact{}, m.all...), nil
}

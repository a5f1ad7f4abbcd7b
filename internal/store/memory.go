package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/spigell/interviu/internal/interview"
)

// Memory keeps encoded sessions in a map. Returned sessions are private copies.
type Memory struct {
	mu       sync.RWMutex
	sessions map[string][]byte
	owners   map[string]string
}

func NewMemory() *Memory {
	return &Memory{
		sessions: make(map[string][]byte),
		owners:   make(map[string]string),
	}
}

func (m *Memory) Create(_ context.Context, s *interview.Session) error {
	data, err := encode(s)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.sessions[s.ID]; exists {
		return fmt.Errorf("session %s already exists", s.ID)
	}
	m.sessions[s.ID] = data
	m.owners[s.ID] = s.OwnerID
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (*interview.Session, error) {
	m.mu.RLock()
	data, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, interview.ErrNotFound
	}
	return decode(data)
}

func (m *Memory) Save(_ context.Context, s *interview.Session) error {
	data, err := encode(s)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.sessions[s.ID]; !exists {
		return interview.ErrNotFound
	}
	m.sessions[s.ID] = data
	m.owners[s.ID] = s.OwnerID
	return nil
}

func (m *Memory) ListByOwner(_ context.Context, owner string) ([]*interview.Session, error) {
	m.mu.RLock()
	var encoded [][]byte
	for id, o := range m.owners {
		if o == owner {
			encoded = append(encoded, m.sessions[id])
		}
	}
	m.mu.RUnlock()

	out := make([]*interview.Session, 0, len(encoded))
	for _, data := range encoded {
		s, err := decode(data)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *Memory) Close() error { return nil }

// Package store persists interview sessions.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spigell/interviu/internal/interview"
)

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Store keeps sessions addressed by their opaque ID.
// Get returns interview.ErrNotFound for unknown IDs.
type Store interface {
	Create(ctx context.Context, s *interview.Session) error
	Get(ctx context.Context, id string) (*interview.Session, error)
	Save(ctx context.Context, s *interview.Session) error
	ListByOwner(ctx context.Context, owner string) ([]*interview.Session, error)
	Close() error
}

// Open returns the store selected by driver. path is ignored by the memory driver.
func Open(ctx context.Context, driver, path string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", DriverMemory:
		return NewMemory(), nil
	case DriverSQLite:
		return OpenSQLite(ctx, path)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", driver)
	}
}

func encode(s *interview.Session) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode session %s: %w", s.ID, err)
	}
	return data, nil
}

func decode(data []byte) (*interview.Session, error) {
	var s interview.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}

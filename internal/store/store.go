package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"cryptochecker/internal/fair"
)

var ErrRoundNotFound = errors.New("round not found")

// RoundStore holds live rounds between open and reveal. Passed explicitly to
// every consumer; there is no ambient registry.
type RoundStore interface {
	Save(round *fair.Round) error
	Get(id uuid.UUID) (*fair.Round, error)
}

// MemoryStore keeps rounds in process memory with TTL eviction. Long-term
// history lives in the archive repository, not here.
type MemoryStore struct {
	rounds *cache.Cache
}

func NewMemoryStore(retention, sweepInterval time.Duration) *MemoryStore {
	return &MemoryStore{rounds: cache.New(retention, sweepInterval)}
}

func (s *MemoryStore) Save(round *fair.Round) error {
	s.rounds.Set(round.ID.String(), round, cache.DefaultExpiration)

	return nil
}

func (s *MemoryStore) Get(id uuid.UUID) (*fair.Round, error) {
	const op = "store.MemoryStore.Get"

	entry, found := s.rounds.Get(id.String())
	if !found {
		return nil, fmt.Errorf("%s: %w", op, ErrRoundNotFound)
	}

	return entry.(*fair.Round), nil
}

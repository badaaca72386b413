package memory

import (
	"context"
	"sync"

	"github.com/pmurley/ulb-trade-engine/internal/models"
	"github.com/pmurley/ulb-trade-engine/internal/storage"
)

// TradeHistoryStore is an in-memory implementation of storage.TradeHistoryStore.
type TradeHistoryStore struct {
	mu   sync.RWMutex
	data map[string]*models.CompletedTrade // keyed by trade ID
}

var _ storage.TradeHistoryStore = (*TradeHistoryStore)(nil)

// NewTradeHistoryStore creates an empty in-memory history.
func NewTradeHistoryStore() *TradeHistoryStore {
	return &TradeHistoryStore{
		data: make(map[string]*models.CompletedTrade),
	}
}

// Append records a trade. Returns ErrDuplicateKey if the ID exists.
func (s *TradeHistoryStore) Append(_ context.Context, t *models.CompletedTrade) error {
	if err := storage.ValidateTrade(t); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[t.ID]; exists {
		return storage.ErrDuplicateKey
	}

	// Store a copy to prevent external mutation
	tradeCopy := *t
	s.data[t.ID] = &tradeCopy
	return nil
}

// GetByID retrieves a trade by its ID. Returns ErrNotFound if not exists.
func (s *TradeHistoryStore) GetByID(_ context.Context, id string) (*models.CompletedTrade, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, exists := s.data[id]
	if !exists {
		return nil, storage.ErrNotFound
	}

	tradeCopy := *t
	return &tradeCopy, nil
}

// List returns every trade ordered by date, then ID.
func (s *TradeHistoryStore) List(_ context.Context) ([]*models.CompletedTrade, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.CompletedTrade, 0, len(s.data))
	for _, t := range s.data {
		tradeCopy := *t
		result = append(result, &tradeCopy)
	}
	storage.SortTrades(result)
	return result, nil
}

// ListByTeam returns the trades a team took part in.
func (s *TradeHistoryStore) ListByTeam(ctx context.Context, teamID string) ([]*models.CompletedTrade, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return storage.FilterByTeam(all, teamID), nil
}

// IDs returns the set of stored trade IDs.
func (s *TradeHistoryStore) IDs(_ context.Context) (map[string]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make(map[string]bool, len(s.data))
	for id := range s.data {
		ids[id] = true
	}
	return ids, nil
}

package storage

import (
	"context"

	"github.com/pmurley/ulb-trade-engine/internal/models"
)

// TradeHistoryStore is the append-only record of completed trades.
type TradeHistoryStore interface {
	// Append records a trade. Returns ErrDuplicateKey if the trade ID exists.
	Append(ctx context.Context, t *models.CompletedTrade) error

	// GetByID retrieves a trade by its ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, id string) (*models.CompletedTrade, error)

	// List returns every trade ordered by date, then ID.
	List(ctx context.Context) ([]*models.CompletedTrade, error)

	// ListByTeam returns the trades a team took part in, ordered by date, then ID.
	ListByTeam(ctx context.Context, teamID string) ([]*models.CompletedTrade, error)

	// IDs returns the set of stored trade IDs for quick lookup.
	IDs(ctx context.Context) (map[string]bool, error)
}

// ValidateTrade checks the fields every store requires.
func ValidateTrade(t *models.CompletedTrade) error {
	if t == nil || t.ID == "" || t.TeamA == "" || t.TeamB == "" {
		return ErrInvalidInput
	}
	return nil
}

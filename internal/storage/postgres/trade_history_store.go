package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/pmurley/ulb-trade-engine/internal/models"
	"github.com/pmurley/ulb-trade-engine/internal/storage"
)

// TradeHistoryStore implements storage.TradeHistoryStore using PostgreSQL.
type TradeHistoryStore struct {
	pool *Pool
}

// NewTradeHistoryStore creates a new TradeHistoryStore.
func NewTradeHistoryStore(pool *Pool) *TradeHistoryStore {
	return &TradeHistoryStore{pool: pool}
}

var _ storage.TradeHistoryStore = (*TradeHistoryStore)(nil)

const selectTrades = `
	SELECT
		trade_id, traded_at, team_a, team_b,
		players_to_a, players_to_b, picks_to_a, picks_to_b,
		retained_by_a::text, retained_by_b::text, source
	FROM completed_trades
`

// Append records a trade. Returns ErrDuplicateKey if trade_id exists.
func (s *TradeHistoryStore) Append(ctx context.Context, t *models.CompletedTrade) error {
	if err := storage.ValidateTrade(t); err != nil {
		return err
	}

	picksToA, err := encodePicks(t.PicksToA)
	if err != nil {
		return err
	}
	picksToB, err := encodePicks(t.PicksToB)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO completed_trades (
			trade_id, traded_at, team_a, team_b,
			players_to_a, players_to_b, picks_to_a, picks_to_b,
			retained_by_a, retained_by_b, source
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7::jsonb, $8::jsonb,
			$9::numeric, $10::numeric, $11
		)
	`
	_, err = s.pool.Exec(ctx, query,
		t.ID, t.Date, t.TeamA, t.TeamB,
		nonNil(t.PlayersToA), nonNil(t.PlayersToB), picksToA, picksToB,
		t.RetainedByA.String(), t.RetainedByB.String(), t.Source,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert completed trade: %w", err)
	}
	return nil
}

// GetByID retrieves a trade by its ID. Returns ErrNotFound if not exists.
func (s *TradeHistoryStore) GetByID(ctx context.Context, id string) (*models.CompletedTrade, error) {
	row := s.pool.QueryRow(ctx, selectTrades+` WHERE trade_id = $1`, id)
	t, err := scanTrade(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get completed trade by id: %w", err)
	}
	return t, nil
}

// List returns every trade ordered by date, then ID.
func (s *TradeHistoryStore) List(ctx context.Context) ([]*models.CompletedTrade, error) {
	rows, err := s.pool.Query(ctx, selectTrades+` ORDER BY traded_at ASC, trade_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list completed trades: %w", err)
	}
	defer rows.Close()

	return scanTrades(rows)
}

// ListByTeam returns the trades a team took part in.
func (s *TradeHistoryStore) ListByTeam(ctx context.Context, teamID string) ([]*models.CompletedTrade, error) {
	rows, err := s.pool.Query(ctx,
		selectTrades+` WHERE team_a = $1 OR team_b = $1 ORDER BY traded_at ASC, trade_id ASC`, teamID)
	if err != nil {
		return nil, fmt.Errorf("list completed trades by team: %w", err)
	}
	defer rows.Close()

	return scanTrades(rows)
}

// IDs returns the set of stored trade IDs.
func (s *TradeHistoryStore) IDs(ctx context.Context) (map[string]bool, error) {
	rows, err := s.pool.Query(ctx, `SELECT trade_id FROM completed_trades`)
	if err != nil {
		return nil, fmt.Errorf("list completed trade ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan completed trade id: %w", err)
		}
		ids[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate completed trade ids: %w", err)
	}
	return ids, nil
}

func scanTrade(row pgx.Row) (*models.CompletedTrade, error) {
	var (
		t                    models.CompletedTrade
		picksToA, picksToB   []byte
		retainedA, retainedB string
	)
	err := row.Scan(
		&t.ID, &t.Date, &t.TeamA, &t.TeamB,
		&t.PlayersToA, &t.PlayersToB, &picksToA, &picksToB,
		&retainedA, &retainedB, &t.Source,
	)
	if err != nil {
		return nil, err
	}

	if t.PicksToA, err = decodePicks(picksToA); err != nil {
		return nil, err
	}
	if t.PicksToB, err = decodePicks(picksToB); err != nil {
		return nil, err
	}
	if t.RetainedByA, err = decimal.NewFromString(retainedA); err != nil {
		return nil, fmt.Errorf("parse retained salary: %w", err)
	}
	if t.RetainedByB, err = decimal.NewFromString(retainedB); err != nil {
		return nil, fmt.Errorf("parse retained salary: %w", err)
	}
	if len(t.PlayersToA) == 0 {
		t.PlayersToA = nil
	}
	if len(t.PlayersToB) == 0 {
		t.PlayersToB = nil
	}
	return &t, nil
}

func scanTrades(rows pgx.Rows) ([]*models.CompletedTrade, error) {
	var trades []*models.CompletedTrade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("scan completed trade row: %w", err)
		}
		trades = append(trades, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate completed trade rows: %w", err)
	}
	return trades, nil
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

func encodePicks(picks []models.DraftPick) (string, error) {
	if picks == nil {
		picks = []models.DraftPick{}
	}
	data, err := json.Marshal(picks)
	if err != nil {
		return "", fmt.Errorf("encode picks: %w", err)
	}
	return string(data), nil
}

func decodePicks(data []byte) ([]models.DraftPick, error) {
	var picks []models.DraftPick
	if err := json.Unmarshal(data, &picks); err != nil {
		return nil, fmt.Errorf("decode picks: %w", err)
	}
	if len(picks) == 0 {
		return nil, nil
	}
	return picks, nil
}

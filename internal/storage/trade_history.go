package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pmurley/ulb-trade-engine/internal/models"
)

const (
	tradeHistoryFileName = "trades.csv"
	DefaultDataDir       = "./data"
)

var tradeHistoryHeaders = []string{
	"ID", "Date", "TeamA", "TeamB", "PlayersToA", "PlayersToB",
	"PicksToA", "PicksToB", "RetainedByA", "RetainedByB", "Source",
}

// TradeHistoryStorage keeps completed trades in an append-only CSV file
type TradeHistoryStorage struct {
	mu       sync.RWMutex
	filePath string
}

var _ TradeHistoryStore = (*TradeHistoryStorage)(nil)

// NewTradeHistoryStorage creates the history file under dir if it does not
// exist yet
func NewTradeHistoryStorage(dir string) (*TradeHistoryStorage, error) {
	if dir == "" {
		dir = DefaultDataDir
	}
	// Ensure data directory exists
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	filePath := filepath.Join(dir, tradeHistoryFileName)
	ts := &TradeHistoryStorage{
		filePath: filePath,
	}

	// Create file if it doesn't exist
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		if err := ts.createFile(); err != nil {
			return nil, err
		}
	}

	return ts, nil
}

// createFile creates the CSV file with headers
func (ts *TradeHistoryStorage) createFile() error {
	file, err := os.Create(ts.filePath)
	if err != nil {
		return fmt.Errorf("failed to create trade history file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(tradeHistoryHeaders); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	writer.Flush()

	return writer.Error()
}

// Append adds a trade to the end of the file
func (ts *TradeHistoryStorage) Append(ctx context.Context, t *models.CompletedTrade) error {
	if err := ValidateTrade(t); err != nil {
		return err
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()

	records, err := ts.readAll()
	if err != nil {
		return err
	}
	for _, r := range records {
		if r.ID == t.ID {
			return ErrDuplicateKey
		}
	}

	file, err := os.OpenFile(ts.filePath, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open trade history file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	record := []string{
		t.ID,
		t.Date.UTC().Format(time.RFC3339),
		t.TeamA,
		t.TeamB,
		strings.Join(t.PlayersToA, "|"),
		strings.Join(t.PlayersToB, "|"),
		encodePicks(t.PicksToA),
		encodePicks(t.PicksToB),
		t.RetainedByA.String(),
		t.RetainedByB.String(),
		t.Source,
	}
	if err := writer.Write(record); err != nil {
		return fmt.Errorf("failed to write trade record: %w", err)
	}
	writer.Flush()

	return writer.Error()
}

// GetByID returns the stored trade with the given ID
func (ts *TradeHistoryStorage) GetByID(ctx context.Context, id string) (*models.CompletedTrade, error) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	trades, err := ts.readAll()
	if err != nil {
		return nil, err
	}
	for _, t := range trades {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, ErrNotFound
}

// List returns all stored trades
func (ts *TradeHistoryStorage) List(ctx context.Context) ([]*models.CompletedTrade, error) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	trades, err := ts.readAll()
	if err != nil {
		return nil, err
	}
	SortTrades(trades)
	return trades, nil
}

// ListByTeam returns the trades a team took part in
func (ts *TradeHistoryStorage) ListByTeam(ctx context.Context, teamID string) ([]*models.CompletedTrade, error) {
	trades, err := ts.List(ctx)
	if err != nil {
		return nil, err
	}
	return FilterByTeam(trades, teamID), nil
}

// IDs returns a set of all stored trade IDs for quick lookup
func (ts *TradeHistoryStorage) IDs(ctx context.Context) (map[string]bool, error) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	trades, err := ts.readAll()
	if err != nil {
		return nil, err
	}
	ids := make(map[string]bool, len(trades))
	for _, t := range trades {
		ids[t.ID] = true
	}
	return ids, nil
}

// readAll parses every row. Callers hold the lock.
func (ts *TradeHistoryStorage) readAll() ([]*models.CompletedTrade, error) {
	file, err := os.Open(ts.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open trade history file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read trade history file: %w", err)
	}

	var trades []*models.CompletedTrade
	// Skip header row
	for i := 1; i < len(records); i++ {
		t, err := parseTradeRecord(records[i])
		if err != nil {
			return nil, fmt.Errorf("trade history row %d: %w", i+1, err)
		}
		trades = append(trades, t)
	}
	return trades, nil
}

func parseTradeRecord(record []string) (*models.CompletedTrade, error) {
	if len(record) < len(tradeHistoryHeaders) {
		return nil, fmt.Errorf("expected %d columns, got %d", len(tradeHistoryHeaders), len(record))
	}

	date, err := time.Parse(time.RFC3339, record[1])
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", record[1], err)
	}
	picksToA, err := decodePicks(record[6])
	if err != nil {
		return nil, err
	}
	picksToB, err := decodePicks(record[7])
	if err != nil {
		return nil, err
	}
	retainedA, err := decimal.NewFromString(record[8])
	if err != nil {
		return nil, fmt.Errorf("invalid retained salary %q: %w", record[8], err)
	}
	retainedB, err := decimal.NewFromString(record[9])
	if err != nil {
		return nil, fmt.Errorf("invalid retained salary %q: %w", record[9], err)
	}

	return &models.CompletedTrade{
		ID:          record[0],
		Date:        date,
		TeamA:       record[2],
		TeamB:       record[3],
		PlayersToA:  splitList(record[4]),
		PlayersToB:  splitList(record[5]),
		PicksToA:    picksToA,
		PicksToB:    picksToB,
		RetainedByA: retainedA,
		RetainedByB: retainedB,
		Source:      record[10],
	}, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "|")
}

// encodePicks writes picks as year:round:original:owner:number joined by "|".
func encodePicks(picks []models.DraftPick) string {
	parts := make([]string, len(picks))
	for i, p := range picks {
		parts[i] = fmt.Sprintf("%d:%d:%s:%s:%d", p.Year, p.Round, p.OriginalTeam, p.Owner, p.Number)
	}
	return strings.Join(parts, "|")
}

func decodePicks(s string) ([]models.DraftPick, error) {
	var picks []models.DraftPick
	for _, part := range splitList(s) {
		fields := strings.Split(part, ":")
		if len(fields) != 5 {
			return nil, fmt.Errorf("invalid pick %q", part)
		}
		year, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("invalid pick year %q: %w", part, err)
		}
		round, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("invalid pick round %q: %w", part, err)
		}
		number, err := strconv.Atoi(fields[4])
		if err != nil {
			return nil, fmt.Errorf("invalid pick number %q: %w", part, err)
		}
		picks = append(picks, models.DraftPick{
			Year:         year,
			Round:        round,
			OriginalTeam: fields[2],
			Owner:        fields[3],
			Number:       number,
		})
	}
	return picks, nil
}

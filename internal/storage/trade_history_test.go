package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmurley/ulb-trade-engine/internal/models"
)

func sampleTrade(id string, date time.Time) *models.CompletedTrade {
	return &models.CompletedTrade{
		ID:          id,
		Date:        date,
		TeamA:       "Havana Bananas",
		TeamB:       "Kansas City Monarchs",
		PlayersToA:  []string{"p1", "p2"},
		PlayersToB:  []string{"p3"},
		PicksToB:    []models.DraftPick{{Year: 2026, Round: 2, OriginalTeam: "Havana Bananas", Owner: "Kansas City Monarchs"}},
		RetainedByA: decimal.NewFromInt(1250000),
		RetainedByB: decimal.Zero,
		Source:      models.SourceEngine,
	}
}

func TestTradeHistoryStorage_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewTradeHistoryStorage(dir)
	require.NoError(t, err)

	date := time.Date(2025, 7, 4, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Append(ctx, sampleTrade("t1", date)))

	// a fresh instance sees what the first wrote
	reopened, err := NewTradeHistoryStorage(dir)
	require.NoError(t, err)

	got, err := reopened.GetByID(ctx, "t1")
	require.NoError(t, err)
	assert.True(t, got.Date.Equal(date))
	assert.Equal(t, []string{"p1", "p2"}, got.PlayersToA)
	assert.Equal(t, []string{"p3"}, got.PlayersToB)
	assert.Nil(t, got.PicksToA)
	require.Len(t, got.PicksToB, 1)
	assert.Equal(t, "2026-R2-Havana Bananas", got.PicksToB[0].Key())
	assert.Equal(t, "Kansas City Monarchs", got.PicksToB[0].Owner)
	assert.True(t, got.RetainedByA.Equal(decimal.NewFromInt(1250000)))
	assert.True(t, got.RetainedByB.IsZero())
	assert.Equal(t, models.SourceEngine, got.Source)
}

func TestTradeHistoryStorage_Errors(t *testing.T) {
	store, err := NewTradeHistoryStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, sampleTrade("t1", time.Now())))
	assert.ErrorIs(t, store.Append(ctx, sampleTrade("t1", time.Now())), ErrDuplicateKey)
	assert.ErrorIs(t, store.Append(ctx, &models.CompletedTrade{ID: "t2"}), ErrInvalidInput)

	_, err = store.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTradeHistoryStorage_ListAndIDs(t *testing.T) {
	store, err := NewTradeHistoryStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()
	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Append(ctx, sampleTrade("late", base.Add(48*time.Hour))))
	require.NoError(t, store.Append(ctx, sampleTrade("early", base)))
	other := sampleTrade("other", base.Add(24*time.Hour))
	other.TeamA, other.TeamB = "X", "Y"
	require.NoError(t, store.Append(ctx, other))

	all, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "early", all[0].ID)
	assert.Equal(t, "other", all[1].ID)
	assert.Equal(t, "late", all[2].ID)

	mine, err := store.ListByTeam(ctx, "Havana Bananas")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	ids, err := store.IDs(ctx)
	require.NoError(t, err)
	assert.Len(t, ids, 3)
	assert.True(t, ids["other"])
}

func TestTradeHistoryStorage_CorruptRow(t *testing.T) {
	dir := t.TempDir()
	store, err := NewTradeHistoryStorage(dir)
	require.NoError(t, err)

	f, err := os.OpenFile(filepath.Join(dir, tradeHistoryFileName), os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString("bad,not-a-date,A,B,,,,,0,0,engine\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = store.List(context.Background())
	assert.Error(t, err)
}

func TestPickEncoding(t *testing.T) {
	picks := []models.DraftPick{
		{Year: 2026, Round: 1, OriginalTeam: "A", Owner: "B", Number: 4},
		{Year: 2027, Round: 3, OriginalTeam: "C", Owner: "B"},
	}
	decoded, err := decodePicks(encodePicks(picks))
	require.NoError(t, err)
	assert.Equal(t, picks, decoded)

	_, err = decodePicks("2026:1:A")
	assert.Error(t, err)
}

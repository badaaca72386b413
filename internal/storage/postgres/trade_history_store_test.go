package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/pmurley/ulb-trade-engine/internal/models"
	"github.com/pmurley/ulb-trade-engine/internal/storage"
	"github.com/pmurley/ulb-trade-engine/internal/storage/migrations"
	"github.com/pmurley/ulb-trade-engine/internal/storage/postgres"
)

// setupTestDB starts a PostgreSQL container and applies the embedded
// migrations. The returned cleanup must be called after the test.
func setupTestDB(t *testing.T) (*postgres.Pool, func()) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start postgres container")

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	pool, err := postgres.NewPool(ctx, dsn)
	require.NoError(t, err, "failed to create pool")

	require.NoError(t, migrations.RunPostgresMigrations(ctx, pool))
	// applying twice must be harmless
	require.NoError(t, migrations.RunPostgresMigrations(ctx, pool))

	cleanup := func() {
		pool.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}
	return pool, cleanup
}

func createTestTrade(id string, date time.Time, teamA, teamB string) *models.CompletedTrade {
	return &models.CompletedTrade{
		ID:          id,
		Date:        date,
		TeamA:       teamA,
		TeamB:       teamB,
		PlayersToA:  []string{"p1"},
		PlayersToB:  []string{"p2", "p3"},
		PicksToB:    []models.DraftPick{{Year: 2026, Round: 1, OriginalTeam: teamA, Owner: teamB, Number: 7}},
		RetainedByA: decimal.NewFromInt(3000000),
		RetainedByB: decimal.Zero,
		Source:      models.SourceEngine,
	}
}

func TestTradeHistoryStore_AppendAndGetByID(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := postgres.NewTradeHistoryStore(pool)
	date := time.Date(2025, 7, 1, 15, 0, 0, 0, time.UTC)

	require.NoError(t, store.Append(ctx, createTestTrade("trade-001", date, "A", "B")))

	got, err := store.GetByID(ctx, "trade-001")
	require.NoError(t, err)
	assert.True(t, got.Date.Equal(date))
	assert.Equal(t, "A", got.TeamA)
	assert.Equal(t, []string{"p1"}, got.PlayersToA)
	assert.Equal(t, []string{"p2", "p3"}, got.PlayersToB)
	assert.Nil(t, got.PicksToA)
	require.Len(t, got.PicksToB, 1)
	assert.Equal(t, 7, got.PicksToB[0].Number)
	assert.True(t, got.RetainedByA.Equal(decimal.NewFromInt(3000000)))
	assert.True(t, got.RetainedByB.IsZero())
	assert.Equal(t, models.SourceEngine, got.Source)
}

func TestTradeHistoryStore_Errors(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := postgres.NewTradeHistoryStore(pool)
	tr := createTestTrade("trade-dup", time.Now().UTC(), "A", "B")

	require.NoError(t, store.Append(ctx, tr))
	assert.ErrorIs(t, store.Append(ctx, tr), storage.ErrDuplicateKey)
	assert.ErrorIs(t, store.Append(ctx, &models.CompletedTrade{ID: "x"}), storage.ErrInvalidInput)

	_, err := store.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestTradeHistoryStore_ListAndIDs(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := postgres.NewTradeHistoryStore(pool)
	base := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Append(ctx, createTestTrade("t3", base.Add(2*time.Hour), "A", "C")))
	require.NoError(t, store.Append(ctx, createTestTrade("t1", base, "A", "B")))
	require.NoError(t, store.Append(ctx, createTestTrade("t2", base.Add(time.Hour), "C", "D")))

	all, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"t1", "t2", "t3"}, []string{all[0].ID, all[1].ID, all[2].ID})

	forC, err := store.ListByTeam(ctx, "C")
	require.NoError(t, err)
	require.Len(t, forC, 2)
	assert.Equal(t, "t2", forC[0].ID)

	ids, err := store.IDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"t1": true, "t2": true, "t3": true}, ids)
}

//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"shophub/internal/infra"
	"shophub/internal/infra/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestIdempotencyKeyLifecycle(t *testing.T) {
	pool := setupTestPool(t)
	repo := repository.NewIdempotencyRepository(pool)
	ctx := context.Background()

	accountID := seedAccount(t, pool)

	t.Run("first insert claims the key", func(t *testing.T) {
		key := uuid.New()
		expiresAt := time.Now().Add(24 * time.Hour)

		require.NoError(t, repo.TryInsert(ctx, key, accountID, "POST /orders", "hash-a", expiresAt))

		rec, err := repo.Get(ctx, key, accountID)
		require.NoError(t, err)
		require.Equal(t, "processing", rec.Status)
		require.Equal(t, "hash-a", rec.RequestHash)
		require.Nil(t, rec.ResultOrderID)
	})

	t.Run("second insert keeps the original record", func(t *testing.T) {
		key := uuid.New()
		expiresAt := time.Now().Add(24 * time.Hour)

		require.NoError(t, repo.TryInsert(ctx, key, accountID, "POST /orders", "hash-a", expiresAt))
		require.NoError(t, repo.TryInsert(ctx, key, accountID, "POST /orders", "hash-b", expiresAt))

		rec, err := repo.Get(ctx, key, accountID)
		require.NoError(t, err)
		require.Equal(t, "hash-a", rec.RequestHash)
	})

	t.Run("completion records the resulting order", func(t *testing.T) {
		key := uuid.New()
		expiresAt := time.Now().Add(24 * time.Hour)
		require.NoError(t, repo.TryInsert(ctx, key, accountID, "POST /orders", "hash-a", expiresAt))

		storeID := seedStore(t, pool, accountID)
		orderID := uuid.New()
		_, err := pool.Exec(ctx,
			`INSERT INTO orders (id, store_id, account_id, total_cents, status, shipping_address, payment_info)
			 VALUES ($1, $2, $3, 1000, 'received', '{}', '{}')`,
			orderID, storeID, accountID)
		require.NoError(t, err)

		require.NoError(t, repo.UpdateStatusCompleted(ctx, pool, key, accountID, "response-hash", orderID))

		rec, err := repo.Get(ctx, key, accountID)
		require.NoError(t, err)
		require.Equal(t, "completed", rec.Status)
		require.NotNil(t, rec.ResultOrderID)
		require.Equal(t, orderID, *rec.ResultOrderID)
	})

	t.Run("expired keys are invisible", func(t *testing.T) {
		key := uuid.New()
		require.NoError(t, repo.TryInsert(ctx, key, accountID, "POST /orders", "hash-a", time.Now().Add(-time.Minute)))

		_, err := repo.Get(ctx, key, accountID)
		require.Error(t, err)
		require.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("cleanup removes expired keys only", func(t *testing.T) {
		live := uuid.New()
		expired := uuid.New()
		require.NoError(t, repo.TryInsert(ctx, live, accountID, "POST /orders", "hash-a", time.Now().Add(time.Hour)))
		require.NoError(t, repo.TryInsert(ctx, expired, accountID, "POST /orders", "hash-b", time.Now().Add(-time.Hour)))

		deleted, err := repo.DeleteExpired(ctx)
		require.NoError(t, err)
		require.GreaterOrEqual(t, deleted, int64(1))

		_, err = repo.Get(ctx, live, accountID)
		require.NoError(t, err)
	})
}

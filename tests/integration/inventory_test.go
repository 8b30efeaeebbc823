//go:build integration

package integration

import (
	"context"
	"sync"
	"testing"

	"shophub/internal/infra"
	"shophub/internal/infra/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestInventoryDecrement(t *testing.T) {
	pool := setupTestPool(t)
	repo := repository.NewInventoryRepository(pool)
	ctx := context.Background()

	accountID := seedAccount(t, pool)
	storeID := seedStore(t, pool, accountID)
	productID := seedProduct(t, pool, storeID, 1500, 3)

	t.Run("reserves while stock lasts", func(t *testing.T) {
		require.NoError(t, repo.Decrement(ctx, productID, 2))
		require.Equal(t, int32(1), productStock(t, pool, productID))
	})

	t.Run("refuses to go below zero", func(t *testing.T) {
		err := repo.Decrement(ctx, productID, 2)
		require.Error(t, err)
		require.True(t, infra.IsKind(err, infra.KindInsufficientStock))
		require.Equal(t, int32(1), productStock(t, pool, productID))
	})

	t.Run("unknown product is not found", func(t *testing.T) {
		err := repo.Decrement(ctx, uuid.New(), 1)
		require.Error(t, err)
		require.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("increment releases the reservation", func(t *testing.T) {
		require.NoError(t, repo.Increment(ctx, productID, 2))
		require.Equal(t, int32(3), productStock(t, pool, productID))
	})

	t.Run("five minus three leaves two", func(t *testing.T) {
		p := seedProduct(t, pool, storeID, 1000, 5)
		require.NoError(t, repo.Decrement(ctx, p, 3))
		require.Equal(t, int32(2), productStock(t, pool, p))
	})

	t.Run("two cannot satisfy three", func(t *testing.T) {
		p := seedProduct(t, pool, storeID, 1000, 2)
		err := repo.Decrement(ctx, p, 3)
		require.True(t, infra.IsKind(err, infra.KindInsufficientStock))
		require.Equal(t, int32(2), productStock(t, pool, p))
	})
}

// The conditional update must hand out exactly the available stock when many
// requests race for it.
func TestInventoryDecrementContention(t *testing.T) {
	pool := setupTestPool(t)
	repo := repository.NewInventoryRepository(pool)
	ctx := context.Background()

	accountID := seedAccount(t, pool)
	storeID := seedStore(t, pool, accountID)
	productID := seedProduct(t, pool, storeID, 1000, 5)

	const attempts = 20
	results := make(chan error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- repo.Decrement(ctx, productID, 1)
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, refused int
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		require.True(t, infra.IsKind(err, infra.KindInsufficientStock), "unexpected error: %v", err)
		refused++
	}

	require.Equal(t, 5, succeeded)
	require.Equal(t, attempts-5, refused)
	require.Equal(t, int32(0), productStock(t, pool, productID))
}

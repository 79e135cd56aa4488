package repo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"lavka-stub/internal/config"
	"lavka-stub/internal/database"
	"lavka-stub/internal/domain"
)

func openSQLite(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.OpenDSN(context.Background(), config.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate(context.Background()))
	return db
}

func openPostgres(t *testing.T) *database.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres container in short mode")
	}
	ctx := context.Background()

	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("stub"),
		postgres.WithUsername("taxi"),
		postgres.WithPassword("test"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.OpenDSN(ctx, config.DriverPostgres, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate(ctx))
	return db
}

func countOrders(t *testing.T, db *database.DB, createdOrderID string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRowContext(context.Background(),
		"SELECT COUNT(*) FROM orders WHERE created_order_id = $1", createdOrderID).Scan(&n))
	return n
}

func TestReposSQLite(t *testing.T) {
	runRepoSuite(t, openSQLite)
}

func TestReposPostgres(t *testing.T) {
	runRepoSuite(t, openPostgres)
}

func runRepoSuite(t *testing.T, open func(*testing.T) *database.DB) {
	db := open(t)
	orders := NewOrderRepo(db)
	products := NewProductRepo(db)
	ctx := context.Background()

	t.Run("create_and_find", func(t *testing.T) {
		order := &domain.Order{CreatedOrderID: "find-1", OrderID: "221015-123456", Status: domain.OrderNew}
		require.NoError(t, orders.CreateOrder(ctx, order))

		got, err := orders.FindByCreatedOrderID(ctx, "find-1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, *order, *got)

		missing, err := orders.FindByCreatedOrderID(ctx, "nope")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("duplicate_created_order_id", func(t *testing.T) {
		require.NoError(t, orders.CreateOrder(ctx, &domain.Order{CreatedOrderID: "dup-1", OrderID: "221015-100000", Status: domain.OrderNew}))

		err := orders.CreateOrder(ctx, &domain.Order{CreatedOrderID: "dup-1", OrderID: "221015-999999", Status: domain.OrderNew})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDuplicateKey)
		assert.NotEqual(t, ErrDuplicateKey.Error(), err.Error(), "driver message is preserved")

		assert.Equal(t, 1, countOrders(t, db, "dup-1"))

		got, err := orders.FindByCreatedOrderID(ctx, "dup-1")
		require.NoError(t, err)
		assert.Equal(t, "221015-100000", got.OrderID)
	})

	t.Run("empty_created_order_id_is_never_a_duplicate", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			require.NoError(t, orders.CreateOrder(ctx, &domain.Order{OrderID: fmt.Sprintf("221015-20000%d", i), Status: domain.OrderNew}))
		}
	})

	t.Run("whitespace_created_order_id_is_a_key", func(t *testing.T) {
		require.NoError(t, orders.CreateOrder(ctx, &domain.Order{CreatedOrderID: " ", OrderID: "221015-200009", Status: domain.OrderNew}))

		err := orders.CreateOrder(ctx, &domain.Order{CreatedOrderID: " ", OrderID: "221015-200010", Status: domain.OrderNew})
		assert.ErrorIs(t, err, ErrDuplicateKey)
		assert.Equal(t, 1, countOrders(t, db, " "))

		got, err := orders.FindByCreatedOrderID(ctx, " ")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "221015-200009", got.OrderID)
	})

	t.Run("concurrent_duplicates_single_winner", func(t *testing.T) {
		const workers = 8
		var (
			wg    sync.WaitGroup
			wins  atomic.Int32
			dups  atomic.Int32
			other atomic.Int32
		)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				err := orders.CreateOrder(ctx, &domain.Order{CreatedOrderID: "race-1", OrderID: fmt.Sprintf("221015-3%05d", i), Status: domain.OrderNew})
				switch {
				case err == nil:
					wins.Add(1)
				case errors.Is(err, ErrDuplicateKey):
					dups.Add(1)
				default:
					other.Add(1)
				}
			}(i)
		}
		wg.Wait()

		assert.Equal(t, int32(1), wins.Load())
		assert.Equal(t, int32(workers-1), dups.Load())
		assert.Zero(t, other.Load())
	})

	t.Run("upsert_products", func(t *testing.T) {
		created, err := products.UpsertProduct(ctx, domain.Product{ProductID: "p2", ExternalID: "ext-2"})
		require.NoError(t, err)
		assert.True(t, created)

		created, err = products.UpsertProduct(ctx, domain.Product{ProductID: "p1", ExternalID: "ext-1"})
		require.NoError(t, err)
		assert.True(t, created)

		created, err = products.UpsertProduct(ctx, domain.Product{ProductID: "p2", ExternalID: "ext-2b"})
		require.NoError(t, err)
		assert.False(t, created)

		list, err := products.ListProducts(ctx)
		require.NoError(t, err)
		assert.Equal(t, []domain.Product{
			{ProductID: "p1", ExternalID: "ext-1"},
			{ProductID: "p2", ExternalID: "ext-2b"},
		}, list)
	})

	t.Run("canceled_context", func(t *testing.T) {
		cctx, cancel := context.WithTimeout(ctx, time.Nanosecond)
		defer cancel()
		<-cctx.Done()

		err := orders.CreateOrder(cctx, &domain.Order{CreatedOrderID: "ctx-1", OrderID: "221015-400000", Status: domain.OrderNew})
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrDuplicateKey)
	})
}

package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lavka-stub/internal/config"
	"lavka-stub/internal/database"
	"lavka-stub/internal/domain"
	"lavka-stub/internal/infrastructure/wms"
	"lavka-stub/internal/logger"
	"lavka-stub/internal/repo"
)

// fakeCatalog serves pages keyed by cursor.
type fakeCatalog struct {
	mu      sync.Mutex
	pages   map[string]wms.Page
	failOn  string
	cursors []string
}

func (f *fakeCatalog) FetchProducts(_ context.Context, cursor string) (wms.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cursors = append(f.cursors, cursor)
	if cursor == f.failOn {
		return wms.Page{}, errors.New("upstream unavailable")
	}
	return f.pages[cursor], nil
}

func (f *fakeCatalog) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.cursors)
}

type recordingObserver struct {
	mu   sync.Mutex
	runs []error
	done chan struct{}
}

func (o *recordingObserver) ObserveSync(_, _ int, err error) {
	o.mu.Lock()
	o.runs = append(o.runs, err)
	o.mu.Unlock()
	o.done <- struct{}{}
}

func productRepo(t *testing.T) repo.ProductRepo {
	t.Helper()
	ctx := context.Background()
	db, err := database.OpenDSN(ctx, config.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate(ctx))
	return repo.NewProductRepo(db)
}

func twoPages() map[string]wms.Page {
	return map[string]wms.Page{
		"1": {Products: []domain.Product{{ProductID: "p1", ExternalID: "e1"}, {ProductID: "p2", ExternalID: "e2"}}, Cursor: "abc"},
		"abc": {Products: []domain.Product{{ProductID: "p3", ExternalID: "e3"}, {ProductID: "p1", ExternalID: "e1b"}}},
	}
}

func TestSyncOncePaginates(t *testing.T) {
	t.Parallel()

	products := productRepo(t)
	catalog := &fakeCatalog{pages: twoPages()}
	w := NewCatalogSyncWorker(catalog, products, 0, logger.Discard(), nil)

	created, updated, err := w.SyncOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, created)
	assert.Equal(t, 1, updated)
	assert.Equal(t, []string{"1", "abc"}, catalog.cursors)

	list, err := products.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Product{
		{ProductID: "p1", ExternalID: "e1b"},
		{ProductID: "p2", ExternalID: "e2"},
		{ProductID: "p3", ExternalID: "e3"},
	}, list)

	created, updated, err = w.SyncOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, created)
	assert.Equal(t, 4, updated)
}

func TestSyncOnceErrors(t *testing.T) {
	t.Parallel()

	t.Run("upstream_failure_keeps_earlier_pages", func(t *testing.T) {
		t.Parallel()

		products := productRepo(t)
		w := NewCatalogSyncWorker(&fakeCatalog{pages: twoPages(), failOn: "abc"}, products, 0, logger.Discard(), nil)

		created, _, err := w.SyncOnce(context.Background())
		require.Error(t, err)
		assert.Equal(t, 2, created)

		list, err := products.ListProducts(context.Background())
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("repeated_cursor", func(t *testing.T) {
		t.Parallel()

		pages := map[string]wms.Page{"1": {Cursor: "1"}}
		w := NewCatalogSyncWorker(&fakeCatalog{pages: pages}, productRepo(t), 0, logger.Discard(), nil)

		_, _, err := w.SyncOnce(context.Background())
		assert.ErrorIs(t, err, ErrCursorLoop)
	})
}

func TestTriggerCoalesces(t *testing.T) {
	t.Parallel()

	w := NewCatalogSyncWorker(&fakeCatalog{}, productRepo(t), 0, logger.Discard(), nil)
	assert.True(t, w.Trigger())
	assert.False(t, w.Trigger())
	assert.False(t, w.Trigger())
}

func TestRunProcessesTriggers(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{pages: twoPages()}
	obs := &recordingObserver{done: make(chan struct{}, 4)}
	w := NewCatalogSyncWorker(catalog, productRepo(t), 0, logger.Discard(), obs)

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(stopped)
	}()

	require.True(t, w.Trigger())
	select {
	case <-obs.done:
	case <-time.After(5 * time.Second):
		t.Fatal("sync did not run")
	}
	assert.Equal(t, 2, catalog.calls())

	cancel()
	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop")
	}

	obs.mu.Lock()
	defer obs.mu.Unlock()
	require.Len(t, obs.runs, 1)
	assert.NoError(t, obs.runs[0])
}

func TestRunTicks(t *testing.T) {
	t.Parallel()

	obs := &recordingObserver{done: make(chan struct{}, 16)}
	w := NewCatalogSyncWorker(&fakeCatalog{pages: twoPages()}, productRepo(t), 10*time.Millisecond, logger.Discard(), obs)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	for i := 0; i < 2; i++ {
		select {
		case <-obs.done:
		case <-time.After(5 * time.Second):
			t.Fatal("ticker did not fire")
		}
	}
}

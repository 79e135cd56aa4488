package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"lavka-stub/internal/infrastructure/wms"
	"lavka-stub/internal/repo"
)

// ErrCursorLoop is returned when the feed hands back the cursor it was asked for.
var ErrCursorLoop = errors.New("catalog feed repeated its cursor")

// SyncObserver receives the outcome of every run.
type SyncObserver interface {
	ObserveSync(created, updated int, err error)
}

type CatalogSyncWorker struct {
	catalog     wms.Catalog
	productRepo repo.ProductRepo
	interval    time.Duration
	log         logrus.FieldLogger
	observer    SyncObserver
	trigger     chan struct{}
}

// NewCatalogSyncWorker builds a worker that syncs on Trigger and, when
// interval is positive, on every tick.
func NewCatalogSyncWorker(
	catalog wms.Catalog,
	productRepo repo.ProductRepo,
	interval time.Duration,
	log logrus.FieldLogger,
	observer SyncObserver,
) *CatalogSyncWorker {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CatalogSyncWorker{
		catalog:     catalog,
		productRepo: productRepo,
		interval:    interval,
		log:         log.WithField("component", "catalog_sync"),
		observer:    observer,
		trigger:     make(chan struct{}, 1),
	}
}

// Trigger asks for a run. It never blocks; it returns false when a run is
// already pending.
func (w *CatalogSyncWorker) Trigger() bool {
	select {
	case w.trigger <- struct{}{}:
		return true
	default:
		return false
	}
}

func (w *CatalogSyncWorker) Run(ctx context.Context) {
	var tick <-chan time.Time
	if w.interval > 0 {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	w.log.WithField("interval", w.interval.String()).Info("catalog sync worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info("catalog sync worker stopped")
			return
		case <-tick:
			w.process(ctx)
		case <-w.trigger:
			w.process(ctx)
		}
	}
}

func (w *CatalogSyncWorker) process(ctx context.Context) {
	start := time.Now()
	created, updated, err := w.SyncOnce(ctx)
	if w.observer != nil {
		w.observer.ObserveSync(created, updated, err)
	}

	entry := w.log.WithFields(logrus.Fields{
		"created":  created,
		"updated":  updated,
		"duration": time.Since(start).String(),
	})
	if err != nil {
		entry.WithError(err).Error("catalog sync failed")
		return
	}
	entry.Info("catalog sync finished")
}

// SyncOnce walks the feed from the first cursor and upserts every product.
// Counts cover the work done before any error.
func (w *CatalogSyncWorker) SyncOnce(ctx context.Context) (created, updated int, err error) {
	cursor := wms.FirstCursor
	for cursor != "" {
		page, err := w.catalog.FetchProducts(ctx, cursor)
		if err != nil {
			return created, updated, err
		}

		for _, p := range page.Products {
			isNew, err := w.productRepo.UpsertProduct(ctx, p)
			if err != nil {
				return created, updated, err
			}
			if isNew {
				created++
				w.log.WithField("external_id", p.ExternalID).Debug("created product")
			} else {
				updated++
				w.log.WithField("external_id", p.ExternalID).Debug("updated product")
			}
		}

		if page.Cursor == cursor {
			return created, updated, fmt.Errorf("%w: %q", ErrCursorLoop, cursor)
		}
		cursor = page.Cursor
	}
	return created, updated, nil
}

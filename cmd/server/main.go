package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"lavka-stub/internal/config"
	"lavka-stub/internal/database"
	"lavka-stub/internal/infrastructure/wms"
	"lavka-stub/internal/logger"
	"lavka-stub/internal/metrics"
	"lavka-stub/internal/repo"
	"lavka-stub/internal/server"
	"lavka-stub/internal/service"
	"lavka-stub/internal/worker"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	log := logger.New(cfg.LogLevel, cfg.LogJSON).WithField("app", cfg.AppName)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}

func run(ctx context.Context, cfg config.Config, log *logrus.Entry) error {
	db, err := database.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return err
	}

	orderRepo := repo.NewOrderRepo(db)
	productRepo := repo.NewProductRepo(db)
	orderService := service.NewOrderService(orderRepo,
		service.WithLogger(log),
		service.WithRequireCreatedOrderID(cfg.RequireCreatedOrderID),
	)
	m := metrics.New()

	deps := server.Deps{
		Config:   cfg,
		Log:      log,
		DB:       db,
		Orders:   orderService,
		Products: productRepo,
		Metrics:  m,
	}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.SyncEnabled() {
		catalog := wms.NewCatalog(wms.Options{
			BaseURL:            cfg.WMSURL,
			Token:              cfg.WMSToken,
			Locale:             cfg.WMSLocale,
			InsecureSkipVerify: cfg.WMSInsecureSkipVerify,
			Timeout:            cfg.WMSTimeout,
		})
		syncWorker := worker.NewCatalogSyncWorker(catalog, productRepo, cfg.SyncInterval, log, m)
		deps.Sync = syncWorker
		g.Go(func() error {
			syncWorker.Run(gctx)
			return nil
		})
	} else {
		log.Warn("WMS_URL not set, catalog sync disabled")
	}

	httpServer := server.New(deps).HTTPServer()

	g.Go(func() error {
		log.WithFields(logrus.Fields{
			"addr":      cfg.HTTPAddr,
			"db_driver": db.Driver(),
		}).Info("listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

package server

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"lavka-stub/internal/config"
	"lavka-stub/internal/database"
	"lavka-stub/internal/metrics"
	"lavka-stub/internal/repo"
	"lavka-stub/internal/service"
)

const integrationPrefix = "/lavka/v1/integration-entry/v1"

// SyncTrigger starts a catalog sync in the background.
type SyncTrigger interface {
	Trigger() bool
}

type Deps struct {
	Config   config.Config
	Log      logrus.FieldLogger
	DB       database.Service
	Orders   service.OrderService
	Products repo.ProductRepo
	// Sync may be nil when no WMS is configured.
	Sync    SyncTrigger
	Metrics *metrics.Metrics
}

type Server struct {
	cfg      config.Config
	log      logrus.FieldLogger
	db       database.Service
	orders   service.OrderService
	products repo.ProductRepo
	sync     SyncTrigger
	metrics  *metrics.Metrics
	engine   *gin.Engine
}

func New(d Deps) *Server {
	if d.Log == nil {
		d.Log = logrus.StandardLogger()
	}
	if d.Metrics == nil {
		d.Metrics = metrics.New()
	}
	s := &Server{
		cfg:      d.Config,
		log:      d.Log,
		db:       d.DB,
		orders:   d.Orders,
		products: d.Products,
		sync:     d.Sync,
		metrics:  d.Metrics,
		engine:   gin.New(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// HTTPServer wraps the router for ListenAndServe and Shutdown.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              s.cfg.HTTPAddr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (s *Server) routes() {
	s.engine.Use(
		requestID(),
		requestLogger(s.log),
		s.metrics.Middleware(),
		gin.CustomRecovery(s.handlePanic),
		cors.New(corsConfig(s.cfg.CORSAllowedOrigins)),
	)

	s.engine.GET("/health", s.handleHealth)
	s.engine.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	api := s.engine.Group(integrationPrefix)
	api.POST("/order/submit", s.handleSubmit)
	api.POST("/order/state", s.handleState)
	api.POST("/order/actions/cancel", s.handleCancel)
	api.POST("/order/contact/obtain", s.handleContactObtain)
	api.POST("/order/set-payment-status", s.handleSetPaymentStatus)

	jobs := s.engine.Group("/", tokenAuth(s.cfg.SyncTokens, s.cfg.SyncAuthStrict))
	jobs.POST("/sync-products", s.handleSyncProducts)
	jobs.GET("/get-products", s.handleGetProducts)
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

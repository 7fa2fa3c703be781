package api

import (
	"net/http"
	"order-ranking-service/internal/api/handlers"
	"order-ranking-service/internal/ports"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Upper bound for a single request, including every geocoder call it triggers.
const requestTimeout = 60 * time.Second

type RouterConfig struct {
	Orders         ports.OrderRepository
	Menu           ports.MenuRepository
	Resolver       ports.CoordinateResolver
	RankWorkers    int
	AllowedOrigins []string
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	rankingHandler := &handlers.RankingHandler{
		Orders:   cfg.Orders,
		Menu:     cfg.Menu,
		Resolver: cfg.Resolver,
		Workers:  cfg.RankWorkers,
	}

	productHandler := &handlers.ProductHandler{Menu: cfg.Menu}

	r.Get("/health", handlers.Health)
	r.Get("/products", productHandler.List)
	r.Get("/rankings", rankingHandler.ListOpen)
	r.Post("/rankings", rankingHandler.Rank)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

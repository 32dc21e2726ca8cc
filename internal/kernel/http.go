// Package kernel assembles the HTTP handler: global middleware, the API
// routes, GraphQL, health and metrics endpoints.
package kernel

import (
	"fmt"
	"net/http"
	"time"

	"gorm.io/gorm"

	appgql "github.com/bcama/linqlab/app/graphql"
	"github.com/bcama/linqlab/app/routes"
	"github.com/bcama/linqlab/app/services"
	"github.com/bcama/linqlab/pkg/cache"
	"github.com/bcama/linqlab/pkg/database"
	apigql "github.com/bcama/linqlab/pkg/graphql"
	"github.com/bcama/linqlab/pkg/metrics"
	"github.com/bcama/linqlab/pkg/middleware"
	"github.com/bcama/linqlab/pkg/orm"
	"github.com/bcama/linqlab/pkg/reqid"
	"github.com/bcama/linqlab/pkg/response"
	"github.com/bcama/linqlab/pkg/router"
)

// Options carries the optional parts of the kernel.
type Options struct {
	// Cache backs read-through caching when non-nil and CacheTTL > 0.
	Cache       *cache.Store
	CacheTTL    time.Duration
	CORSOrigins []string
}

type HTTPKernel struct {
	router *router.Router
	db     *gorm.DB
}

// NewHTTPKernel wires every route against db. db may be nil for tooling
// that only lists routes; /health then reports the database as down.
func NewHTTPKernel(db *gorm.DB, opts Options) (*HTTPKernel, error) {
	var cacher orm.Cacher
	if opts.Cache != nil && opts.CacheTTL > 0 {
		cacher = opts.Cache
	}

	k := &HTTPKernel{router: router.New(), db: db}
	r := k.router

	// Global middleware stack (outermost → innermost):
	//  1. Prometheus metrics, for total latency
	//  2. Recovery
	//  3. Request ID, before anything logs
	//  4. Logger
	//  5. CORS
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions(opts.CORSOrigins)))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) { response.NotFound(w, "route not found") })
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) { response.MethodNotAllowed(w) })

	svc := services.NewQueryService(db, cacher, opts.CacheTTL)

	schema, err := appgql.Schema(svc)
	if err != nil {
		return nil, fmt.Errorf("kernel: graphql schema: %w", err)
	}

	r.Get("/health", "health", k.health)
	r.Get("/metrics", "metrics", metrics.Handler())
	r.Post("/graphql", "graphql", apigql.Handler(schema))
	routes.RegisterAPI(r, svc)

	return k, nil
}

func (k *HTTPKernel) Handler() http.Handler {
	return k.router.Handler()
}

func (k *HTTPKernel) Routes() []router.RouteInfo {
	return k.router.Routes()
}

type healthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func (k *HTTPKernel) health(w http.ResponseWriter, r *http.Request) {
	if err := database.Ping(k.db); err != nil {
		response.JSON(w, http.StatusServiceUnavailable, response.Envelope{
			Status:  http.StatusServiceUnavailable,
			Message: "database unavailable",
			Data:    healthStatus{Status: "degraded", Database: "down"},
		})
		return
	}
	response.Success(w, healthStatus{Status: "ok", Database: "up"})
}

package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/timmy/leadscout/internal/api/handler"
	"github.com/timmy/leadscout/internal/api/middleware"
	"github.com/timmy/leadscout/internal/metrics"
	"github.com/timmy/leadscout/internal/service"
)

// SetupRouter configures the Gin router with all dashboard routes.
// Parameters:
//   - query: lead query service backing the read endpoints.
//   - m: pipeline metrics to expose on /metrics; nil disables the endpoint.
//   - mode: gin mode (debug, release, test).
//   - cors: CORS settings.
// Returns:
//   - *gin.Engine: configured router.
func SetupRouter(query *service.LeadQueryService, m *metrics.Metrics, mode string, cors middleware.CORSConfig) *gin.Engine {
	switch mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cors))

	healthHandler := handler.NewHealthHandler()
	leadHandler := handler.NewLeadHandler(query)
	areaHandler := handler.NewAreaHandler(query)

	r.GET("/health", healthHandler.Health)

	if m != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))
	}

	v1 := r.Group("/api/v1")
	{
		v1.GET("/leads", leadHandler.ListLeads)
		v1.GET("/areas", areaHandler.ListAreas)
		v1.GET("/stats", areaHandler.GetStats)
	}

	return r
}

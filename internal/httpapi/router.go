// Package httpapi is the development backend's HTTP surface: the two
// storefront Packeta endpoints plus health, behind logging, CORS and
// per-IP rate limiting.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/jask/packeta/internal/logger"
	"github.com/jask/packeta/internal/validator"
)

// HealthChecker reports whether storage is reachable.
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// Deps are the router's collaborators.
type Deps struct {
	Pickup      PickupService
	Health      HealthChecker
	Validator   *validator.Validator
	Logger      *logger.Logger
	CORSOrigins []string
	RateLimit   float64
	RateBurst   int
}

// New builds the gin engine.
func New(d Deps) *gin.Engine {
	log := d.Logger
	if log == nil {
		log = logger.Discard()
	}
	val := d.Validator
	if val == nil {
		val = validator.New()
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestID())
	engine.Use(RequestLogger(log))
	if len(d.CORSOrigins) > 0 {
		engine.Use(cors.New(cors.Config{
			AllowOrigins:     d.CORSOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", requestIDHeader},
			ExposeHeaders:    []string{requestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	if d.RateLimit > 0 && d.RateBurst > 0 {
		engine.Use(NewIPRateLimiter(rate.Limit(d.RateLimit), d.RateBurst, log).RateLimit())
	}

	engine.GET("/health", func(c *gin.Context) {
		if d.Health != nil {
			if err := d.Health.PingContext(c.Request.Context()); err != nil {
				writeError(c, http.StatusServiceUnavailable, "database unavailable", nil)
				return
			}
		}
		writeOK(c, gin.H{"status": "ok"})
	})

	NewPickupHandler(d.Pickup, val).RegisterRoutes(engine.Group("/store/packeta"))
	return engine
}

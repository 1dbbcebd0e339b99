// Package server exposes the evaluation engine over HTTP.
package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
)

// Options configures the router.
type Options struct {
	// Version is reported by GET /version.
	Version string
	// EnablePprof registers the pprof handlers under /debug/pprof.
	EnablePprof bool
	// CORSOrigins enables CORS for the listed origins when not empty.
	CORSOrigins []string
	// Logger receives one line per request. Defaults to log.Default().
	Logger *log.Logger
}

// New builds the gin engine with middlewares and all routes attached.
func New(opts Options) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	r := gin.New()

	// client IPs are never used
	r.ForwardedByClientIP = false
	_ = r.SetTrustedProxies([]string{})

	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(RequestLogger(opts.Logger))

	if len(opts.CORSOrigins) > 0 {
		opts.Logger.Debug("Router", "CORS Allowed Origins", opts.CORSOrigins)

		r.Use(cors.New(cors.Config{
			AllowOrigins: opts.CORSOrigins,
			AllowMethods: []string{"OPTIONS", "GET", "POST"},
			AllowHeaders: []string{"Origin", "Content-Length", "Content-Type"},
		}))
	}

	r.NoRoute(func(c *gin.Context) {
		newError(c, http.StatusNotFound, "There is no endpoint at %s", c.Request.URL.Path)
	})
	r.NoMethod(func(c *gin.Context) {
		newError(c, http.StatusMethodNotAllowed, "This HTTP method is not allowed for the endpoint you called")
	})

	// route printing clutters logs and test output
	gin.DebugPrintRouteFunc = func(_, _, _ string, _ int) {}

	AttachRoutes(r.Group("/"), opts)

	opts.Logger.Info("Router", "version", opts.Version)

	return r
}

// AttachRoutes registers the API on group.
func AttachRoutes(group *gin.RouterGroup, opts Options) {
	group.GET("/healthz", GetHealth)
	group.GET("/version", getVersion(opts.Version))

	if opts.EnablePprof {
		pprof.RouteRegister(group, "debug/pprof")
	}

	v1 := group.Group("/v1")
	{
		v1.GET("/categories", GetCategories)
		v1.GET("/tiers", GetTiers)
		v1.POST("/evaluations", CreateEvaluation)
	}
}

// RequestLogger logs every request after it has been handled.
func RequestLogger(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []any{
			"request-id", requestid.Get(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"size", c.Writer.Size(),
			"duration", time.Since(start),
		}

		if status >= http.StatusInternalServerError {
			logger.Error("request", fields...)
			return
		}
		logger.Info("request", fields...)
	}
}

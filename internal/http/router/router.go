// Package router assembles the Gin engine and mounts all domain modules.
package router

import (
	"net/http"
	"time"

	apphttp "moana_backoffice/internal/http"
	"moana_backoffice/platform/config"
	"moana_backoffice/platform/httpkit"
	"moana_backoffice/platform/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// New builds the Gin engine, applies shared middleware and registers every module.
func New(cfg *config.Config, log *logger.Logger, modules ...apphttp.Module) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestLogger(log))
	engine.Use(httpkit.SecurityHeaders())
	engine.Use(cors.New(corsConfig(cfg)))

	engine.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routerCtx := &apphttp.RouterContext{
		Engine:             engine,
		V1:                 engine.Group("/api/v1"),
		WebhookRateLimiter: httpkit.NewIPRateLimiter(rate.Every(time.Second), 10, log),
	}

	for _, m := range modules {
		m.RegisterRoutes(routerCtx)
		log.Info("module routes registered", "module", m.Name())
	}

	return engine
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	corsCfg.AllowCredentials = cfg.GetCORSAllowCreds()

	if cfg.GetCORSAllowAll() {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.GetCORSOrigins()
	}

	return corsCfg
}

package handler

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"imovel-searcher/internal/model"
)

const msgNotFound = "Use POST /api/v1/buscar ou GET /imoveis?page=1&per_page=20"

// BuildInfo is reported by /health and /version
type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

// NewRouter wires the middleware and every route of the service
func NewRouter(
	searchHandler *SearchHandler,
	listingsHandler *ListingsHandler,
	allowedOrigins string,
	build BuildInfo,
	logger *zap.Logger,
) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(Recovery(logger))
	router.Use(RequestID())
	router.Use(AccessLog(logger))
	router.Use(cors.New(corsConfig(allowedOrigins)))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "healthy",
			"service":    "imovel-searcher",
			"version":    build.Version,
			"build_time": build.BuildTime,
			"git_commit": build.GitCommit,
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    build.Version,
			"build_time": build.BuildTime,
			"git_commit": build.GitCommit,
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/buscar", searchHandler.Search)
		apiV1.GET("/imoveis", listingsHandler.List)
	}

	// Paths served by earlier deployments
	router.POST("/api/buscar", searchHandler.Search)
	router.GET("/", listingsHandler.List)
	router.GET("/imoveis", listingsHandler.List)
	router.GET("/webhook", listingsHandler.List)

	// Preflights carrying an Origin are answered by the cors middleware
	router.OPTIONS("/*path", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	router.NoMethod(func(c *gin.Context) {
		message := msgListingsMethods
		if strings.HasSuffix(strings.TrimSuffix(c.Request.URL.Path, "/"), "/buscar") {
			message = msgSearchMethods
		}
		c.JSON(http.StatusMethodNotAllowed, model.ErrorResponse{Error: "Method Not Allowed", Message: message})
	})
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, model.ErrorResponse{Error: "Not Found", Message: msgNotFound})
	})

	return router
}

func corsConfig(allowedOrigins string) cors.Config {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", requestIDHeader}
	corsConfig.ExposeHeaders = []string{requestIDHeader}

	var origins []string
	for _, origin := range strings.Split(allowedOrigins, ",") {
		origin = strings.TrimSpace(origin)
		if origin == "*" {
			corsConfig.AllowAllOrigins = true
			return corsConfig
		}
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		corsConfig.AllowAllOrigins = true
		return corsConfig
	}
	corsConfig.AllowOrigins = origins
	return corsConfig
}

package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/vidora/vidora/internal/adapters/transport/http/middleware"
	authservice "github.com/vidora/vidora/internal/auth/service"
	"github.com/vidora/vidora/internal/config"
	videoservice "github.com/vidora/vidora/internal/video/service"
)

type Handler struct {
	auth   authservice.Service
	videos videoservice.Service
	media  MediaStorage
	cfg    *config.Config
	log    *zap.Logger
}

func NewHandler(
	auth authservice.Service,
	videos videoservice.Service,
	media MediaStorage,
	cfg *config.Config,
	log *zap.Logger,
) *Handler {
	return &Handler{auth: auth, videos: videos, media: media, cfg: cfg, log: log}
}

func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(h.log))
	router.Use(middleware.Metrics())
	router.Use(middleware.NewRateLimitPerIP(50, 100, 10_000, time.Hour))

	// without configured origins the app is API-only, no CORS layer
	if len(h.cfg.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins: h.cfg.AllowedOrigins,
			AllowMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders: []string{
				"Origin", "Content-Type", "Accept",
				"Authorization",
				"X-Requested-With",
			},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: h.cfg.AllowCredentials,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Unix()})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/register", h.register)
	auth.POST("/login", h.login)
	auth.POST("/refresh", h.refresh)

	authed := api.Group("")
	authed.Use(middleware.RequireAuth(h.auth))

	authed.POST("/auth/logout", h.logout)

	users := authed.Group("/users")
	users.GET("/me", h.currentUser)
	users.PATCH("/account", h.updateAccount)
	users.POST("/password", h.changePassword)
	users.PATCH("/avatar", h.updateAvatar)
	users.PATCH("/cover", h.updateCover)
	users.GET("/history", h.watchHistory)

	channels := authed.Group("/channels")
	channels.GET("/:handle", h.channelProfile)
	channels.POST("/:handle/subscribe", h.subscribe)
	channels.DELETE("/:handle/subscribe", h.unsubscribe)

	videos := authed.Group("/videos")
	videos.POST("", h.publishVideo)
	videos.GET("", h.listVideos)
	videos.GET("/:id", h.getVideo)
	videos.PATCH("/:id", h.updateVideo)
	videos.DELETE("/:id", h.deleteVideo)
	videos.POST("/:id/view", h.viewVideo)

	media := authed.Group("/media")
	media.POST("/upload", h.uploadMedia)
	media.POST("/presign", h.presignMedia)

	return router
}

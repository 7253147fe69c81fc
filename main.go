package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/tbassignana/EclipseURL/auth"
	"github.com/tbassignana/EclipseURL/cache"
	"github.com/tbassignana/EclipseURL/config"
	"github.com/tbassignana/EclipseURL/database"
	"github.com/tbassignana/EclipseURL/handlers"
	"github.com/tbassignana/EclipseURL/logger"
	"github.com/tbassignana/EclipseURL/middleware"
)

func main() {
	cfg := config.Load()
	logger.Init()

	auth.Init(cfg.JWTSecret)
	handlers.Init(cfg)

	if err := database.Connect(cfg); err != nil {
		logger.Log.Fatal().Err(err).Msg("database initialization failed")
	}
	cache.Connect(cfg)

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", cfg.BaseURL},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	registerLimiter := middleware.NewRateLimiter(5, time.Hour)
	shortenLimiter := middleware.NewRateLimiter(10, time.Minute)

	router.POST("/api/register", registerLimiter.Middleware(), handlers.Register)
	router.POST("/api/login", handlers.Login)

	router.GET("/:code", handlers.Redirect)
	router.GET("/:code/preview", handlers.Preview)

	api := router.Group("/api")
	api.Use(auth.AuthMiddleware())
	{
		api.GET("/me", handlers.Me)

		api.POST("/links", shortenLimiter.Middleware(), handlers.CreateLink)
		api.GET("/links", handlers.ListLinks)
		api.GET("/links/preview", handlers.PreviewURL)
		api.GET("/links/:code", handlers.GetLink)
		api.DELETE("/links/:code", handlers.DeleteLink)
		api.GET("/links/:code/stats", handlers.GetLinkStats)
		api.GET("/links/:code/realtime", handlers.GetRealtimeClicks)
		api.GET("/links/:code/browsers", handlers.GetLinkBrowsers)
		api.GET("/links/:code/os", handlers.GetLinkOS)

		admin := api.Group("/admin")
		admin.Use(auth.AdminMiddleware())
		{
			admin.GET("/top-links", handlers.TopLinks)
			admin.DELETE("/links/:code", handlers.AdminDeleteLink)
			admin.GET("/summary", handlers.PlatformSummary)
		}
	}

	logger.Log.Info().Str("port", cfg.Port).Msg("EclipseURL starting")
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Log.Fatal().Err(err).Msg("server exited")
	}
}

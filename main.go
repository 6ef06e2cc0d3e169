package main

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/emanuelrivas243/streamia-server/config"
	"github.com/emanuelrivas243/streamia-server/controllers"
	"github.com/emanuelrivas243/streamia-server/data_access"
	"github.com/emanuelrivas243/streamia-server/logger"
	"github.com/emanuelrivas243/streamia-server/middleware"
	"github.com/emanuelrivas243/streamia-server/services"
)

const cacheTTL = 60 * time.Second

func setupCORS(allowedOrigins string) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")

	if allowedOrigins == "" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = strings.Split(allowedOrigins, ",")
	}

	return cors.New(corsConfig)
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	logger.Info("configuration loaded", "env", cfg.Env)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize MongoDB connection
	mongodb, err := data_access.NewMongoDB(cfg.MongoURI, cfg.DBName)
	if err != nil {
		logger.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer mongodb.Close(context.Background())

	if err := mongodb.EnsureIndexes(context.Background()); err != nil {
		logger.Error("failed to create indexes", "error", err)
		os.Exit(1)
	}

	// Initialize repositories and external collaborators
	userRepo := data_access.NewUserRepository(mongodb)
	movieRepo := data_access.NewMovieRepository(mongodb)
	favoriteRepo := data_access.NewFavoriteRepository(mongodb)
	ratingRepo := data_access.NewRatingRepository(mongodb)
	commentRepo := data_access.NewCommentRepository(mongodb)
	stockClient := data_access.NewStockVideoClient(cfg.StockAPIKey, cfg.StockAPIBaseURL)
	mailer := data_access.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)

	// Initialize services
	tokenService, err := services.NewTokenService(cfg.JWTSecret, cfg.JWTLifetime)
	if err != nil {
		logger.Error("failed to initialize token service", "error", err)
		os.Exit(1)
	}
	authService := services.NewAuthService(userRepo, tokenService, mailer)
	catalogService := services.NewCatalogService(movieRepo, stockClient, services.NewMovieCache(cacheTTL))
	favoriteService := services.NewFavoriteService(favoriteRepo)
	ratingService := services.NewRatingService(ratingRepo)
	commentService := services.NewCommentService(commentRepo)

	// Initialize controllers
	authController := controllers.NewAuthController(authService)
	userController := controllers.NewUserController(authService)
	movieController := controllers.NewMovieController(catalogService)
	favoriteController := controllers.NewFavoriteController(favoriteService)
	ratingController := controllers.NewRatingController(ratingService)
	commentController := controllers.NewCommentController(commentService)

	loginLimiter := middleware.NewRateLimiter(cfg.LoginRateLimit)
	authRequired := middleware.AuthMiddleware(tokenService)

	// Setup Gin router
	r := gin.Default()
	r.Use(setupCORS(cfg.CORSAllowedOrigins))

	// Health check endpoint
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	api := r.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("/register", authController.Register)
			users.POST("/login", loginLimiter.Middleware(), authController.Login)
			users.POST("/logout", authController.Logout)
			users.POST("/forgot-password", userController.ForgotPassword)
			users.POST("/reset-password", userController.ResetPassword)

			protected := users.Group("")
			protected.Use(authRequired)
			{
				protected.GET("/me", userController.Me)
				protected.PUT("/me", userController.UpdateMe)
				protected.DELETE("/me", userController.DeleteMe)
				protected.PUT("/change-password", userController.ChangePassword)
			}
		}

		movies := api.Group("/movies")
		{
			// Catalog reads are public; mutations require a session.
			movies.GET("", movieController.List)
			movies.GET("/explore", movieController.Explore)
			movies.GET("/external/popular", movieController.ExternalPopular)
			movies.GET("/:id", movieController.GetByID)
			movies.PUT("/:id", authRequired, movieController.Update)
			movies.DELETE("/:id", authRequired, movieController.Delete)
		}

		favorites := api.Group("/favorites")
		favorites.Use(authRequired)
		{
			favorites.GET("", favoriteController.List)
			favorites.POST("", favoriteController.Create)
			favorites.PUT("/:id", favoriteController.Update)
			favorites.DELETE("/:id", favoriteController.Delete)
		}

		ratings := api.Group("/ratings")
		ratings.Use(authRequired)
		{
			ratings.GET("", ratingController.List)
			ratings.POST("", ratingController.Submit)
			ratings.PUT("/:movieId", ratingController.Update)
			ratings.DELETE("/:movieId", ratingController.Delete)
		}

		comments := api.Group("/comments")
		{
			comments.GET("/movie/:movieId", commentController.ListByMovie)
			comments.POST("", authRequired, commentController.Create)
			comments.PUT("/:id", authRequired, commentController.Update)
			comments.DELETE("/:id", authRequired, commentController.Delete)
		}
	}

	logger.Info("server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

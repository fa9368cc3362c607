package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	blogHTTP "inkwell/internal/controller/http"
	"inkwell/internal/repo/persistent"
	"inkwell/internal/usecase"
	"inkwell/pkg/config"
	"inkwell/pkg/jwt"
	"inkwell/pkg/logger"
	"inkwell/pkg/middleware"
	"inkwell/pkg/s3"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "inkwell/docs" // Swagger docs
)

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, s3Client *s3.Client, redisClient *redis.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	// Repositories
	postRepo := persistent.NewPostRepository(db)
	userRepo := persistent.NewUserRepository(db)
	commentRepo := persistent.NewCommentRepository(db)
	categoryRepo := persistent.NewCategoryRepository(db)

	// Use cases
	postUseCase := usecase.NewPostUseCase(postRepo, s3Client, log)
	userUseCase := usecase.NewUserUseCase(userRepo, postRepo, jwtService, redisClient, log)
	commentUseCase := usecase.NewCommentUseCase(commentRepo, postRepo)
	categoryUseCase := usecase.NewCategoryUseCase(categoryRepo)

	// HTTP handlers
	postHandler := blogHTTP.NewPostHandler(postUseCase, log, cfg.PageSize, cfg.MaxPageSize)
	userHandler := blogHTTP.NewUserHandler(userUseCase, log)
	commentHandler := blogHTTP.NewCommentHandler(commentUseCase, log)
	categoryHandler := blogHTTP.NewCategoryHandler(categoryUseCase, log)

	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.QueryCount(log))
	api.Use(middleware.RateLimitMiddleware(redisClient, 100, time.Minute))

	authRequired := middleware.AuthRequired(jwtService, redisClient)
	authOptional := middleware.AuthOptional(jwtService, redisClient)

	// Public reads resolve the viewer when a token is present so the
	// per-viewer fields can be computed; mutation requires authentication.
	{
		api.GET("/posts", authOptional, postHandler.ListPosts)
		api.GET("/posts/:id", authOptional, postHandler.GetPost)
		api.GET("/posts/:id/comments", postHandler.ListPostComments)
		api.POST("/posts", authRequired, postHandler.CreatePost)
		api.PUT("/posts/:id", authRequired, postHandler.UpdatePost)
		api.PATCH("/posts/:id", authRequired, postHandler.UpdatePost)
		api.DELETE("/posts/:id", authRequired, postHandler.DeletePost)
		api.POST("/posts/:id/add_like", authRequired, postHandler.AddLike)
		api.POST("/posts/:id/remove_like", authRequired, postHandler.RemoveLike)
		api.GET("/posts/:id/get_likes", authRequired, postHandler.GetLikes)
		api.POST("/posts/:id/favorite", authRequired, postHandler.ToggleFavorite)

		api.GET("/categories", categoryHandler.ListCategories)
		api.POST("/categories", authRequired, categoryHandler.CreateCategory)
		api.PUT("/categories/:id", authRequired, categoryHandler.UpdateCategory)
		api.DELETE("/categories/:id", authRequired, categoryHandler.DeleteCategory)

		api.GET("/comments", commentHandler.ListComments)
		api.GET("/comments/:id", commentHandler.GetComment)
		api.POST("/comments", authRequired, commentHandler.CreateComment)
		api.PUT("/comments/:id", authRequired, commentHandler.UpdateComment)
		api.DELETE("/comments/:id", authRequired, commentHandler.DeleteComment)

		api.GET("/accounts", userHandler.ListUsers)
		api.POST("/accounts/register", userHandler.Register)
		api.POST("/accounts/login", userHandler.Login)
		api.POST("/accounts/logout", authRequired, userHandler.Logout)
		api.GET("/accounts/:id", authRequired, userHandler.GetUser)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Blog API starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Close database connection
	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	// Close Redis connection
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		panic(err)
	}

	log.Info("Blog API exited")
}

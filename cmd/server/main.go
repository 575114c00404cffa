package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ShreyaKadian/InternetButFun/internal/chat"
	"github.com/ShreyaKadian/InternetButFun/internal/config"
	"github.com/ShreyaKadian/InternetButFun/internal/handler"
	"github.com/ShreyaKadian/InternetButFun/internal/identity"
	"github.com/ShreyaKadian/InternetButFun/internal/middleware"
	"github.com/ShreyaKadian/InternetButFun/internal/repository"
	"github.com/ShreyaKadian/InternetButFun/internal/service"
	"github.com/ShreyaKadian/InternetButFun/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	appLogger := logger.New(cfg.Log.Level)

	// Подключение к PostgreSQL
	dbPool, err := pgxpool.New(context.Background(), cfg.Database.DSN)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", "error", err)
	}
	defer dbPool.Close()

	if err := dbPool.Ping(context.Background()); err != nil {
		appLogger.Fatal("Failed to ping database", "error", err)
	}
	appLogger.Info("Database connection established")

	// Подключение к Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		appLogger.Fatal("Failed to connect to Redis", "error", err)
	}
	appLogger.Info("Redis connection established")

	// Репозитории и сервисы
	repos := repository.NewRepositories(dbPool, rdb, appLogger)
	services := service.NewServices(repos, cfg, appLogger)

	// Проверка токенов внешнего Auth-провайдера
	verifier := identity.NewJWTVerifier(cfg.Auth, appLogger)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(verifier, appLogger)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(services.RateLimit, appLogger)

	// Чат: реестр соединений и обработчик сессий
	registry := chat.NewRegistry(appLogger)
	session := chat.NewSessionHandler(registry, verifier, services.Chat, cfg.Chat, appLogger)

	// Handlers
	handlers := handler.NewHandlers(services, session, cfg, appLogger)

	// Настройка роутера
	router := setupRouter(handlers, authMiddleware, rateLimitMiddleware, cfg)

	// Запуск HTTP сервера
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		appLogger.Info("Starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", "error", err)
	}

	appLogger.Info("Server exited")
}

func setupRouter(
	handlers *handler.Handlers,
	authMiddleware *middleware.AuthMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
	cfg *config.Config,
) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.ErrorHandler())

	// Health check
	router.GET("/health", handlers.Health.Health)

	// Диагностический список пользователей, сознательно без авторизации
	router.GET("/debug/users", handlers.User.DebugList)

	// WebSocket чат, токен в query-параметре
	router.GET("/ws/chat", handlers.WebSocket.Chat)

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Регистрация: токен обязателен, записывает личность в БД
		auth := v1.Group("/auth")
		auth.Use(authMiddleware.RequireAuth())
		{
			auth.POST("/register", rateLimitMiddleware.Limit(), handlers.Auth.Register)
		}

		// Защищенные endpoints
		protected := v1.Group("")
		protected.Use(authMiddleware.RequireAuth())
		{
			// Собственный профиль
			protected.GET("/profile", handlers.User.GetMe)
			protected.PUT("/profile", handlers.User.UpdateProfile)
			protected.POST("/complete-profile", handlers.User.CompleteProfile)
			protected.GET("/check-username/:username", handlers.User.CheckUsername)

			// Чужие профили
			profiles := protected.Group("/profiles")
			{
				profiles.GET("/:username", handlers.User.GetByUsername)
				profiles.PUT("/:username", handlers.User.UpdateByUsername)
				profiles.GET("/:username/posts", handlers.User.UserPosts)
			}

			// Посты
			posts := protected.Group("/posts")
			{
				posts.POST("", rateLimitMiddleware.Limit(), handlers.Posts.Create)
				posts.GET("", handlers.Posts.List)
				posts.GET("/:id", handlers.Posts.Get)
				posts.DELETE("/:id", handlers.Posts.Delete)
				posts.POST("/:id/like", handlers.Posts.Like)
				posts.POST("/:id/unlike", handlers.Posts.Unlike)
				posts.POST("/:id/save", handlers.Posts.Save)
				posts.POST("/:id/unsave", handlers.Posts.Unsave)
				posts.POST("/:id/comment", handlers.Posts.Comment)
				posts.GET("/:id/comments", handlers.Posts.Comments)
			}
			protected.GET("/my-posts", handlers.Posts.ListMine)
			protected.GET("/my-liked-posts", handlers.Posts.ListLiked)
			protected.GET("/my-saved-posts", handlers.Posts.ListSaved)

			// Updates: тот же набор операций, отдельная коллекция
			updates := protected.Group("/updates")
			{
				updates.POST("", rateLimitMiddleware.Limit(), handlers.Updates.Create)
				updates.GET("", handlers.Updates.List)
				updates.GET("/:id", handlers.Updates.Get)
				updates.DELETE("/:id", handlers.Updates.Delete)
				updates.POST("/:id/like", handlers.Updates.Like)
				updates.POST("/:id/unlike", handlers.Updates.Unlike)
				updates.POST("/:id/save", handlers.Updates.Save)
				updates.POST("/:id/unsave", handlers.Updates.Unsave)
				updates.POST("/:id/comment", handlers.Updates.Comment)
				updates.GET("/:id/comments", handlers.Updates.Comments)
			}
			protected.GET("/blog", handlers.Updates.ListPage)
			protected.GET("/my-updates", handlers.Updates.ListMine)
			protected.GET("/my-liked-updates", handlers.Updates.ListLiked)
			protected.GET("/my-saved-updates", handlers.Updates.ListSaved)

			// Новости
			news := protected.Group("/news")
			{
				news.POST("", rateLimitMiddleware.Limit(), handlers.News.Create)
				news.GET("", handlers.News.List)
				news.DELETE("/:id", handlers.News.Delete)
			}
		}
	}

	return router
}

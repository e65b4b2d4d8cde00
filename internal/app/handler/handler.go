package handler

import (
	"context"

	"DBsentinel-Gateway/internal/app/config"
	"DBsentinel-Gateway/internal/app/ds"
	"DBsentinel-Gateway/internal/app/middleware"
	"DBsentinel-Gateway/internal/app/repository"
	"DBsentinel-Gateway/internal/app/search"

	"github.com/gin-gonic/gin"
)

// DataBackend внешний бэкенд данных
type DataBackend interface {
	Query(ctx context.Context, q ds.CanonicalQuery) (*ds.QueryResult, error)
	Summary(ctx context.Context) (*ds.SummaryResponse, error)
}

// RegisterHandlers регистрирует все обработчики
func RegisterHandlers(router *gin.Engine, cfg *config.Config, repo *repository.Repository, backend DataBackend, sessions *search.Store) {
	apiRouter := router.Group("/api")

	// Создаем хендлеры
	// Типизированный nil в интерфейсе выглядел бы как рабочий кэш
	var cache SummaryCache
	if rc := repo.GetRedisClient(); rc != nil {
		cache = rc
	}

	dataHandler := NewDataHandler(cfg, cache, backend)
	searchHandler := NewSearchHandler(cfg, sessions)
	userHandler := NewUserHandler(cfg, repo)

	// Public routes - доступны без аутентификации
	public := apiRouter.Group("")
	{
		public.GET("/data/summary", dataHandler.GetSummary)
		public.POST("/data/query", dataHandler.Query)

		public.POST("/search/sessions", searchHandler.CreateSession)
		public.GET("/search/sessions/:id", searchHandler.GetSession)
		public.PATCH("/search/sessions/:id", searchHandler.ApplyActions)
		public.PUT("/search/sessions/:id/location", searchHandler.Navigate)
		public.DELETE("/search/sessions/:id", searchHandler.DeleteSession)
	}

	// Пользователи нужны только при подключённой базе
	if repo == nil {
		return
	}

	users := apiRouter.Group("/users")
	{
		users.POST("/login", userHandler.Login)
		users.POST("/register", userHandler.Register)
		users.POST("/refresh", userHandler.RefreshToken)
	}

	// Protected routes - требуют аутентификации
	protected := apiRouter.Group("/users")
	protected.Use(middleware.AuthMiddleware(cfg, repo))
	{
		protected.GET("/me", userHandler.GetProfile)
		protected.PUT("/settings", userHandler.UpdateSettings)
		protected.POST("/avatar", userHandler.UpdateAvatar)
		protected.POST("/logout", userHandler.Logout)
	}
}

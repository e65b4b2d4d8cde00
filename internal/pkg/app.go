package pkg

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"DBsentinel-Gateway/internal/app/config"
	"DBsentinel-Gateway/internal/app/handler"
	"DBsentinel-Gateway/internal/app/repository"
	"DBsentinel-Gateway/internal/app/search"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 15 * time.Second

type Application struct {
	Config   *config.Config
	Router   *gin.Engine
	Repo     *repository.Repository
	Backend  handler.DataBackend
	Sessions *search.Store
}

func NewApp(c *config.Config, r *gin.Engine, repo *repository.Repository, backend handler.DataBackend, sessions *search.Store) *Application {
	return &Application{
		Config:   c,
		Router:   r,
		Repo:     repo,
		Backend:  backend,
		Sessions: sessions,
	}
}

// RunApp регистрирует маршруты и слушает порт до SIGINT/SIGTERM
func (a *Application) RunApp() {
	logrus.Info("Server start up")

	handler.RegisterHandlers(a.Router, a.Config, a.Repo, a.Backend, a.Sessions)
	a.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    a.Config.Addr(),
		Handler: a.Router,
	}

	go func() {
		logrus.Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Error("Server forced to shutdown: ", err)
	}

	// Незавершённые поисковые запросы отменяются
	a.Sessions.Close()
	if a.Repo != nil {
		a.Repo.Close()
	}

	logrus.Info("Server down")
}

package main

import (
	"DBsentinel-Gateway/internal/app/config"
	"DBsentinel-Gateway/internal/app/databackend"
	"DBsentinel-Gateway/internal/app/repository"
	"DBsentinel-Gateway/internal/app/search"
	"DBsentinel-Gateway/internal/pkg"

	_ "DBsentinel-Gateway/docs"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// @title DBsentinel Gateway API
// @version 1.0
// @description Search gateway for the anime and manga moderation database

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

// @tag.name Data
// @tag.description Summary and stateless search
// @tag.name Search
// @tag.description Server-side search sessions
// @tag.name Users
// @tag.description User accounts and settings
func main() {
	conf, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("error loading config: %v", err)
	}
	conf.ConfigureLogger()

	router := gin.Default()

	backend := databackend.NewClient(conf)
	sessions := search.NewStore(conf, backend)

	// Без базы поиск продолжает работать, пропадают только пользователи
	repo, err := repository.NewRepository(conf)
	if err != nil {
		logrus.Errorf("error initializing repository, user routes disabled: %v", err)
		repo = nil
	}

	application := pkg.NewApp(conf, router, repo, backend, sessions)
	application.RunApp()
}

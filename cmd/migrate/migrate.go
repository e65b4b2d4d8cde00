package main

import (
	"DBsentinel-Gateway/internal/app/config"
	"DBsentinel-Gateway/internal/app/ds"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	conf, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("error loading config: %v", err)
	}

	db, err := gorm.Open(postgres.Open(conf.DSN()), &gorm.Config{})
	if err != nil {
		logrus.Fatal("Failed to connect to database: ", err)
	}

	// Уникальные индексы на login и username создаёт AutoMigrate
	if err := db.AutoMigrate(&ds.Users{}); err != nil {
		logrus.Fatal("Migration failed: ", err)
	}

	logrus.Info("users table migrated")
}

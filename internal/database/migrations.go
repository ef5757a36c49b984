package database

import (
	"fmt"
	"log"

	"github.com/knakagawa/agile-dashboard-api/internal/models"
)

func Migrate() error {
	log.Println("Running database migrations...")
	err := DB.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.DailyCheckIn{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Println("Database migrations completed")
	return nil
}

package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/tbassignana/EclipseURL/config"
	"github.com/tbassignana/EclipseURL/logger"
	"github.com/tbassignana/EclipseURL/models"
)

var DB *gorm.DB

// Connect opens the Postgres connection and runs migrations. It retries a few
// times so the service survives the database coming up after it in compose.
func Connect(cfg *config.Config) error {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	var err error
	const maxRetries = 5
	for i := 0; i < maxRetries; i++ {
		// TranslateError turns the Postgres unique-violation into
		// gorm.ErrDuplicatedKey, which the shortener relies on to detect
		// short-code collisions at insert time.
		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		logger.Log.Warn().Err(err).Int("attempt", i+1).Int("max", maxRetries).Msg("database connect failed")
		time.Sleep(3 * time.Second)
	}
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	if err := DB.AutoMigrate(&models.User{}, &models.Link{}, &models.ClickStat{}); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	logger.Log.Info().Str("host", cfg.DBHost).Str("db", cfg.DBName).Msg("database connected")
	return nil
}

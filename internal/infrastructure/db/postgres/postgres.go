package postgres

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Config captures the settings for establishing a Postgres connection.
type Config struct {
	DSN string
}

// Connect opens a gorm connection and runs the schema migration. Error
// translation is enabled so unique-index violations surface as
// gorm.ErrDuplicatedKey instead of raw driver errors.
func Connect(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("postgres connect: %w", err)
	}

	if err := db.AutoMigrate(&userRecord{}); err != nil {
		return nil, fmt.Errorf("postgres migrate: %w", err)
	}

	return db, nil
}

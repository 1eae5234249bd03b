package repository

import (
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/kadro-api/internal/migrations"
)

// Migrate применяет встроенные миграции; dialect - "postgres" или "sqlite3"
func Migrate(db *sql.DB, dialect string) error {
	goose.SetBaseFS(migrations.FS)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

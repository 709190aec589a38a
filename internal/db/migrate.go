package db

import (
	"database/sql"
	"fmt"

	"pedalads/internal/config"
	"pedalads/migrations"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// OpenSQL opens a database/sql handle on the pgx driver for goose.
func OpenSQL(cfg *config.Config) (*sql.DB, error) {
	return sql.Open("pgx", cfg.GetDSN())
}

// Migrate runs one goose command ("up", "down", "status") against the
// embedded migrations.
func Migrate(sqlDB *sql.DB, command string) error {
	goose.SetBaseFS(migrations.FS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	switch command {
	case "up":
		return goose.Up(sqlDB, ".")
	case "down":
		return goose.Down(sqlDB, ".")
	case "status":
		return goose.Status(sqlDB, ".")
	default:
		return fmt.Errorf("unknown migrate command %q", command)
	}
}

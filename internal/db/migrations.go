package db

import (
	"embed"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"
)

//go:embed migrations/*.sql
var migrations embed.FS

// RunMigrations executes the driver's schema script statement by statement.
// "already exists" and "duplicate" errors are skipped so the script can be re-run.
func RunMigrations(conn *sqlx.DB, driver string, logger *slog.Logger) error {
	scriptPath := fmt.Sprintf("migrations/%s.sql", driver)

	content, err := migrations.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("db.RunMigrations: cannot read %s: %w", scriptPath, err)
	}

	statements := strings.Split(string(content), ";")
	for _, stmt := range statements {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}

		_, err := conn.Exec(stmt)
		if err != nil {
			if strings.Contains(err.Error(), "already exists") || strings.Contains(err.Error(), "duplicate") {
				logger.Warn("skipping migration statement", "script", scriptPath, "err", err)
				continue
			}
			return fmt.Errorf("db.RunMigrations: error executing statement in %s: %w", scriptPath, err)
		}
	}

	logger.Info("migrations applied", "script", scriptPath)

	return nil
}

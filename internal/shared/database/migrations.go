package database

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/lib/pq"
)

// RunMigrations applies every pending .sql file under migrations/ in
// lexical order. Applied versions are tracked in schema_migrations, so
// reruns are no-ops.
func (db *DB) RunMigrations() error {
	logger := slog.With("component", "migrations")
	logger.Info("Applying schema migrations")

	if err := db.ensureVersionTable(); err != nil {
		logger.Error("Failed to prepare migration version table", "error", err)
		return fmt.Errorf("failed to prepare migration version table: %w", err)
	}

	files, err := db.migrationFiles()
	if err != nil {
		logger.Error("Failed to collect migration files", "error", err)
		return fmt.Errorf("failed to collect migration files: %w", err)
	}

	logger.Info("Collected migration files", "count", len(files))

	for _, file := range files {
		if err := db.applyMigration(file); err != nil {
			logger.Error("Migration failed", "migration", file, "error", err)
			return fmt.Errorf("migration %s failed: %w", file, err)
		}
	}

	logger.Info("Schema is up to date")
	return nil
}

func (db *DB) ensureVersionTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMP DEFAULT NOW()
	)`

	_, err := db.Exec(query)
	return err
}

func (db *DB) migrationFiles() ([]string, error) {
	logger := slog.With("component", "migrations", "operation", "collect_files")

	var files []string
	err := filepath.WalkDir("migrations", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("Cannot access migration path", "path", path, "error", err)
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".sql") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	logger.Debug("Migration files collected", "count", len(files), "files", files)
	return files, nil
}

func (db *DB) applyMigration(file string) error {
	version := filepath.Base(file)
	logger := slog.With(
		"component", "migrations",
		"operation", "apply",
		"migration", version,
	)

	var applied bool
	err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)", version).Scan(&applied)
	if err != nil {
		return fmt.Errorf("failed to check migration status: %w", err)
	}
	if applied {
		logger.Debug("Already applied, skipping")
		return nil
	}

	content, err := fs.ReadFile(os.DirFS("."), file)
	if err != nil {
		return fmt.Errorf("failed to read migration: %w", err)
	}

	logger.Info("Applying migration", "size_bytes", len(content))

	// SQL and the version row commit together or not at all.
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin migration transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err.Error() != "sql: transaction has already been committed or rolled back" {
			logger.Error("Failed to roll back migration transaction", "error", err)
		}
	}()

	if _, err := tx.Exec(string(content)); err != nil {
		return fmt.Errorf("failed to execute migration SQL: %w", err)
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES ($1)", version); err != nil {
		return fmt.Errorf("failed to record migration version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration: %w", err)
	}

	logger.Info("Migration applied")
	return nil
}

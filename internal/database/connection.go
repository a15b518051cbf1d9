package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/example/wordsrs/internal/config"
)

// DB is a database handle bound to one driver.
type DB struct {
	*sqlx.DB
}

// Connect opens the database selected by cfg and makes sure the schema exists.
func Connect(ctx context.Context, cfg *config.Config) (*DB, error) {
	switch cfg.DBType {
	case config.DBTypePostgres:
		return Open(ctx, "postgres", cfg.DatabaseURL)
	default:
		if dir := filepath.Dir(cfg.DBPath); dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create data directory: %w", err)
			}
		}
		return Open(ctx, "sqlite3", cfg.DBPath)
	}
}

// Open connects with an explicit driver name ("sqlite3" or "postgres") and DSN.
func Open(ctx context.Context, driver, dsn string) (*DB, error) {
	conn, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	db := &DB{DB: conn}

	if db.isSQLite() {
		// SQLite doesn't support multiple writers. A single connection also
		// keeps the foreign_keys pragma in effect for every statement.
		conn.SetMaxOpenConns(1)
		conn.SetMaxIdleConns(1)
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	if err := db.initializeSchema(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	if db == nil || db.DB == nil {
		return nil
	}
	return db.DB.Close()
}

// InTx runs fn inside a transaction. The transaction is committed when fn
// returns nil and rolled back otherwise.
func (db *DB) InTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (db *DB) isSQLite() bool {
	return db.DriverName() == "sqlite3"
}

// idColumn returns the auto-increment primary key definition for the driver.
func (db *DB) idColumn() string {
	if db.isSQLite() {
		return "INTEGER PRIMARY KEY AUTOINCREMENT"
	}
	return "BIGSERIAL PRIMARY KEY"
}

// initializeSchema creates necessary tables if they don't exist
func (db *DB) initializeSchema(ctx context.Context) error {
	statements := []struct {
		name string
		ddl  string
	}{
		{"users", `
			CREATE TABLE IF NOT EXISTS users (
				id TEXT PRIMARY KEY,
				display_name TEXT NOT NULL DEFAULT '',
				email TEXT NOT NULL DEFAULT '',
				daily_goal INTEGER NOT NULL DEFAULT 5,
				xp INTEGER NOT NULL DEFAULT 0,
				level INTEGER NOT NULL DEFAULT 1,
				streak INTEGER NOT NULL DEFAULT 0,
				last_study_date TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`},
		// Scheduling columns are nullable: rows written by older clients may lack them.
		{"words", fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS words (
				id %s,
				user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				word TEXT NOT NULL,
				meaning TEXT NOT NULL DEFAULT '',
				example TEXT NOT NULL DEFAULT '',
				difficulty TEXT NOT NULL DEFAULT 'medium',
				learning_status TEXT DEFAULT 'new',
				interval_days INTEGER,
				ease_factor DOUBLE PRECISION,
				repetitions INTEGER,
				next_review_date TEXT,
				review_count INTEGER NOT NULL DEFAULT 0,
				last_reviewed_at TIMESTAMP,
				version INTEGER NOT NULL DEFAULT 1,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				UNIQUE(user_id, word)
			)`, db.idColumn())},
		{"words index", `CREATE INDEX IF NOT EXISTS idx_words_user ON words(user_id)`},
		{"review_logs", fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS review_logs (
				id %s,
				user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				word_id BIGINT NOT NULL REFERENCES words(id) ON DELETE CASCADE,
				quality INTEGER NOT NULL,
				is_correct BOOLEAN NOT NULL,
				response_time_ms BIGINT NOT NULL DEFAULT 0,
				interval_days INTEGER NOT NULL,
				ease_factor DOUBLE PRECISION NOT NULL,
				reviewed_at TIMESTAMP NOT NULL
			)`, db.idColumn())},
		{"review_logs index", `CREATE INDEX IF NOT EXISTS idx_review_logs_word ON review_logs(word_id)`},
		{"daily_stats", `
			CREATE TABLE IF NOT EXISTS daily_stats (
				user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				date TEXT NOT NULL,
				words_learned INTEGER NOT NULL DEFAULT 0,
				words_reviewed INTEGER NOT NULL DEFAULT 0,
				correct_answers INTEGER NOT NULL DEFAULT 0,
				total_questions INTEGER NOT NULL DEFAULT 0,
				xp_earned INTEGER NOT NULL DEFAULT 0,
				PRIMARY KEY (user_id, date)
			)`},
		{"user_configs", `
			CREATE TABLE IF NOT EXISTS user_configs (
				user_id TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
				max_daily_reviews INTEGER NOT NULL DEFAULT 0,
				is_active BOOLEAN NOT NULL DEFAULT TRUE
			)`},
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt.ddl); err != nil {
			return fmt.Errorf("failed to create %s: %w", stmt.name, err)
		}
	}
	return nil
}

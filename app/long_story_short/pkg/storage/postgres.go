package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/config"
)

const postgresSchema = `CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	query TEXT NOT NULL,
	article_count INTEGER NOT NULL,
	state TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// NewPostgres 连接 PostgreSQL 并初始化表结构
func NewPostgres(cfg config.DBConfig) (Store, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(postgresSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &sqlStore{db: db, numberedArg: true}, nil
}

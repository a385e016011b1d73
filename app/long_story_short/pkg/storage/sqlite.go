package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	query TEXT NOT NULL,
	article_count INTEGER NOT NULL,
	state TEXT NOT NULL,
	created_at DATETIME NOT NULL
)`

// NewSQLite 打开 SQLite 数据库，path 为空时使用内存库
func NewSQLite(path string) (Store, error) {
	if path == "" {
		path = ":memory:"
	}
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create db directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	// 内存库每个连接都是独立的数据库
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &sqlStore{db: db}, nil
}

package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/config"
	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/model"
)

// ErrNotFound 运行记录不存在
var ErrNotFound = errors.New("run not found")

// RunSummary 运行记录摘要
type RunSummary struct {
	ID           string
	Query        string
	ArticleCount int
	CreatedAt    time.Time
}

// Store 保存每次流水线运行的结果
type Store interface {
	SaveRun(ctx context.Context, state *model.State) (string, error)
	ListRuns(ctx context.Context, limit int) ([]RunSummary, error)
	GetRun(ctx context.Context, id string) (*model.State, error)
	Close() error
}

// NewStorage 根据 driver 创建存储，driver 为空时返回 nil
func NewStorage(cfg config.DBConfig) (Store, error) {
	switch cfg.Driver {
	case "":
		return nil, nil
	case "postgres":
		return NewPostgres(cfg)
	case "sqlite":
		return NewSQLite(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown db driver: %s", cfg.Driver)
	}
}

// sqlStore postgres 和 sqlite 共用的实现，SQL 中统一使用 ? 占位符
type sqlStore struct {
	db          *sql.DB
	numberedArg bool // postgres 使用 $1, $2 ...
}

func (s *sqlStore) rebind(query string) string {
	if !s.numberedArg {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&sb, "$%d", n)
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func (s *sqlStore) Close() error {
	return s.db.Close()
}

func (s *sqlStore) SaveRun(ctx context.Context, state *model.State) (string, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("marshal state: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO runs (id, query, article_count, state, created_at) VALUES (?, ?, ?, ?, ?)`),
		id, state.Query, len(state.Articles), removeNullBytes(string(data)), time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

func (s *sqlStore) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, s.rebind(
		`SELECT id, query, article_count, created_at FROM runs ORDER BY created_at DESC LIMIT ?`), limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.ID, &r.Query, &r.ArticleCount, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

func (s *sqlStore) GetRun(ctx context.Context, id string) (*model.State, error) {
	var data string
	err := s.db.QueryRowContext(ctx, s.rebind(`SELECT state FROM runs WHERE id = ?`), id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}

	var state model.State
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, fmt.Errorf("unmarshal state: %w", err)
	}
	return &state, nil
}

// removeNullBytes PostgreSQL 文本字段不支持 NULL 字节
func removeNullBytes(s string) string {
	return strings.ReplaceAll(s, "\x00", "")
}

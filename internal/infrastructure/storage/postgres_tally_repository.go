package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"coffee-bot/internal/domain/entity"
	"coffee-bot/internal/domain/port"
)

// PostgresTallyRepository хранит итоги подсчёта в PostgreSQL
type PostgresTallyRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresTallyRepository подключается к базе и создаёт схему, если её нет
func NewPostgresTallyRepository(ctx context.Context, connString string) (*PostgresTallyRepository, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := initSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to initialize database schema: %w", err)
	}

	return &PostgresTallyRepository{pool: pool}, nil
}

func initSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS bean_tallies (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL,
			counts JSONB NOT NULL,
			total INT NOT NULL,
			unclassified INT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS bean_tallies_user_id_idx ON bean_tallies (user_id, created_at DESC);
	`)
	return err
}

// Close закрывает пул соединений
func (r *PostgresTallyRepository) Close() {
	r.pool.Close()
}

// Save сохраняет итог и записывает присвоенный ID
func (r *PostgresTallyRepository) Save(ctx context.Context, tally *entity.Tally) error {
	counts, err := json.Marshal(tally.Counts)
	if err != nil {
		return fmt.Errorf("marshal counts: %w", err)
	}

	err = r.pool.QueryRow(ctx, `
		INSERT INTO bean_tallies (user_id, counts, total, unclassified, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, tally.UserID, counts, tally.Total, tally.Unclassified, tally.CreatedAt).Scan(&tally.ID)
	if err != nil {
		return fmt.Errorf("insert tally: %w", err)
	}
	return nil
}

// ListByUser возвращает последние итоги пользователя, новые первыми
func (r *PostgresTallyRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]*entity.Tally, error) {
	query := `
		SELECT id, user_id, counts, total, unclassified, created_at
		FROM bean_tallies
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tallies: %w", err)
	}
	defer rows.Close()

	var out []*entity.Tally
	for rows.Next() {
		var (
			t      entity.Tally
			counts []byte
		)
		if err := rows.Scan(&t.ID, &t.UserID, &counts, &t.Total, &t.Unclassified, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tally: %w", err)
		}
		if err := json.Unmarshal(counts, &t.Counts); err != nil {
			return nil, fmt.Errorf("decode counts of tally %d: %w", t.ID, err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

var _ port.TallyRepository = (*PostgresTallyRepository)(nil)

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type TaskRepo struct {
	db querier
}

func NewTaskRepo(db querier) *TaskRepo {
	return &TaskRepo{db: db}
}

func (r *TaskRepo) Insert(ctx context.Context, id string, in TaskInsert, createdAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, description, category, xp_reward, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, in.Title, in.Description, in.Category, in.XPReward, createdAt.UnixNano())
	if err != nil {
		return fmt.Errorf("task insert: %w", err)
	}
	return nil
}

func (r *TaskRepo) Get(ctx context.Context, id string) (*Task, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, description, category, xp_reward, created_at
		FROM tasks
		WHERE id = ?
	`, id)

	var t Task
	var createdAt int64
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Category, &t.XPReward, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("task get: %w", err)
	}
	t.CreatedAt = time.Unix(0, createdAt).UTC()
	return &t, nil
}

func (r *TaskRepo) ListAll(ctx context.Context) ([]Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, description, category, xp_reward, created_at
		FROM tasks
		ORDER BY created_at DESC, seq DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("task list: %w", err)
	}
	defer rows.Close()

	out := []Task{}
	for rows.Next() {
		var t Task
		var createdAt int64
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Category, &t.XPReward, &createdAt); err != nil {
			return nil, fmt.Errorf("task scan: %w", err)
		}
		t.CreatedAt = time.Unix(0, createdAt).UTC()
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("task list rows: %w", err)
	}
	return out, nil
}

func (r *TaskRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("task delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("task delete rows: %w", err)
	}
	return n > 0, nil
}

func (r *TaskRepo) LatestCreatedAt(ctx context.Context) (time.Time, error) {
	var ns sql.NullInt64
	if err := r.db.QueryRowContext(ctx, `SELECT MAX(created_at) FROM tasks`).Scan(&ns); err != nil {
		return time.Time{}, fmt.Errorf("task latest: %w", err)
	}
	if !ns.Valid {
		return time.Time{}, nil
	}
	return time.Unix(0, ns.Int64).UTC(), nil
}

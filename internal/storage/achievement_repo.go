package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type AchievementRepo struct {
	db querier
}

func NewAchievementRepo(db querier) *AchievementRepo {
	return &AchievementRepo{db: db}
}

func (r *AchievementRepo) Insert(ctx context.Context, id string, in AchievementInsert, completedAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO achievements (id, title, description, icon, xp_earned, completed_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, in.Title, in.Description, in.Icon, in.XPEarned, completedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("achievement insert: %w", err)
	}
	return nil
}

func (r *AchievementRepo) ListAll(ctx context.Context) ([]Achievement, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, description, icon, xp_earned, completed_at
		FROM achievements
		ORDER BY completed_at DESC, seq DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("achievement list: %w", err)
	}
	defer rows.Close()

	out := []Achievement{}
	for rows.Next() {
		var a Achievement
		var completedAt int64
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.Icon, &a.XPEarned, &completedAt); err != nil {
			return nil, fmt.Errorf("achievement scan: %w", err)
		}
		a.CompletedAt = time.Unix(0, completedAt).UTC()
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("achievement list rows: %w", err)
	}
	return out, nil
}

func (r *AchievementRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM achievements WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("achievement delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("achievement delete rows: %w", err)
	}
	return n > 0, nil
}

func (r *AchievementRepo) LatestCompletedAt(ctx context.Context) (time.Time, error) {
	var ns sql.NullInt64
	if err := r.db.QueryRowContext(ctx, `SELECT MAX(completed_at) FROM achievements`).Scan(&ns); err != nil {
		return time.Time{}, fmt.Errorf("achievement latest: %w", err)
	}
	if !ns.Valid {
		return time.Time{}, nil
	}
	return time.Unix(0, ns.Int64).UTC(), nil
}

package storage

import (
	"context"
	"database/sql"
	"sync"
	"time"
)

var _ Store = (*SQLiteStore)(nil)

// SQLiteStore persists tasks and achievements in a SQLite database.
type SQLiteStore struct {
	mu    sync.Mutex
	db    *sql.DB
	clock *monotonicClock
}

// OpenSQLiteStore opens and migrates the database at path. A nil now uses time.Now.
func OpenSQLiteStore(ctx context.Context, path string, now func() time.Time) (*SQLiteStore, error) {
	db, err := Open(ctx, path)
	if err != nil {
		return nil, err
	}
	s := &SQLiteStore{db: db, clock: newMonotonicClock(now)}

	// Timestamps keep increasing across restarts even if the wall clock moved back.
	lastTask, err := NewTaskRepo(db).LatestCreatedAt(ctx)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	lastAchievement, err := NewAchievementRepo(db).LatestCompletedAt(ctx)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	s.clock.last = lastTask
	if lastAchievement.After(s.clock.last) {
		s.clock.last = lastAchievement
	}
	return s, nil
}

func (s *SQLiteStore) view() sqliteView {
	return sqliteView{q: s.db, clock: s.clock}
}

func (s *SQLiteStore) ListTasks(ctx context.Context) ([]Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view().ListTasks(ctx)
}

func (s *SQLiteStore) GetTask(ctx context.Context, id string) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view().GetTask(ctx, id)
}

func (s *SQLiteStore) CreateTask(ctx context.Context, in TaskInsert) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view().CreateTask(ctx, in)
}

func (s *SQLiteStore) DeleteTask(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view().DeleteTask(ctx, id)
}

func (s *SQLiteStore) ListAchievements(ctx context.Context) ([]Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view().ListAchievements(ctx)
}

func (s *SQLiteStore) CreateAchievement(ctx context.Context, in AchievementInsert) (*Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view().CreateAchievement(ctx, in)
}

func (s *SQLiteStore) DeleteAchievement(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view().DeleteAchievement(ctx, id)
}

// Snapshot reads both tables under the store lock. The single connection
// means no write can land between the two queries.
func (s *SQLiteStore) Snapshot(ctx context.Context) ([]Task, []Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view().Snapshot(ctx)
}

// Atomic runs fn in a transaction; an error from fn rolls it back.
func (s *SQLiteStore) Atomic(ctx context.Context, fn func(Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return WithTx(ctx, s.db, func(tx *sql.Tx) error {
		return fn(sqliteView{q: tx, clock: s.clock})
	})
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// sqliteView runs statements on a DB or Tx; callers hold SQLiteStore.mu.
type sqliteView struct {
	q     querier
	clock *monotonicClock
}

func (v sqliteView) ListTasks(ctx context.Context) ([]Task, error) {
	return NewTaskRepo(v.q).ListAll(ctx)
}

func (v sqliteView) GetTask(ctx context.Context, id string) (*Task, error) {
	return NewTaskRepo(v.q).Get(ctx, id)
}

func (v sqliteView) CreateTask(ctx context.Context, in TaskInsert) (*Task, error) {
	t := Task{
		ID:          newID(),
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		XPReward:    in.XPReward,
		CreatedAt:   v.clock.next(),
	}
	if err := NewTaskRepo(v.q).Insert(ctx, t.ID, in, t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func (v sqliteView) DeleteTask(ctx context.Context, id string) (bool, error) {
	return NewTaskRepo(v.q).Delete(ctx, id)
}

func (v sqliteView) ListAchievements(ctx context.Context) ([]Achievement, error) {
	return NewAchievementRepo(v.q).ListAll(ctx)
}

func (v sqliteView) CreateAchievement(ctx context.Context, in AchievementInsert) (*Achievement, error) {
	if in.Icon == "" {
		in.Icon = DefaultAchievementIcon
	}
	a := Achievement{
		ID:          newID(),
		Title:       in.Title,
		Description: in.Description,
		Icon:        in.Icon,
		XPEarned:    in.XPEarned,
		CompletedAt: v.clock.next(),
	}
	if err := NewAchievementRepo(v.q).Insert(ctx, a.ID, in, a.CompletedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (v sqliteView) DeleteAchievement(ctx context.Context, id string) (bool, error) {
	return NewAchievementRepo(v.q).Delete(ctx, id)
}

func (v sqliteView) Snapshot(ctx context.Context) ([]Task, []Achievement, error) {
	return snapshot(ctx, v)
}

func (v sqliteView) Atomic(ctx context.Context, fn func(Store) error) error {
	return fn(v)
}

func (v sqliteView) Close() error { return nil }

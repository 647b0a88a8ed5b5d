package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Store owns the task and achievement collections.
//
// Getters return (nil, nil) when the record does not exist. Deletes report
// whether something was removed and never fail on a missing id.
type Store interface {
	ListTasks(ctx context.Context) ([]Task, error)
	GetTask(ctx context.Context, id string) (*Task, error)
	CreateTask(ctx context.Context, in TaskInsert) (*Task, error)
	DeleteTask(ctx context.Context, id string) (bool, error)

	ListAchievements(ctx context.Context) ([]Achievement, error)
	CreateAchievement(ctx context.Context, in AchievementInsert) (*Achievement, error)
	DeleteAchievement(ctx context.Context, id string) (bool, error)

	// Snapshot returns both listings as of a single point in time.
	Snapshot(ctx context.Context) ([]Task, []Achievement, error)

	// Atomic runs fn with exclusive access to the store. Calls made on the
	// Store passed to fn belong to the same unit of work; if fn returns an
	// error, backends that support it discard the writes.
	Atomic(ctx context.Context, fn func(Store) error) error

	Close() error
}

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

type Options struct {
	Backend string
	Path    string
	// Now overrides the clock used to stamp createdAt/completedAt.
	Now func() time.Time
}

// New opens the store selected by opts.Backend.
func New(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case BackendMemory, "":
		return NewMemoryStore(opts.Now), nil
	case BackendSQLite:
		path := opts.Path
		if path == "" {
			p, err := ResolveDBPath()
			if err != nil {
				return nil, err
			}
			path = p
		}
		return OpenSQLiteStore(ctx, path, opts.Now)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}

// snapshot lists both collections through a store whose caller already
// holds exclusive access.
func snapshot(ctx context.Context, s Store) ([]Task, []Achievement, error) {
	tasks, err := s.ListTasks(ctx)
	if err != nil {
		return nil, nil, err
	}
	achievements, err := s.ListAchievements(ctx)
	if err != nil {
		return nil, nil, err
	}
	return tasks, achievements, nil
}

func newID() string {
	return uuid.NewString()
}

// monotonicClock never hands out a timestamp earlier than the previous one.
type monotonicClock struct {
	now  func() time.Time
	last time.Time
}

func newMonotonicClock(now func() time.Time) *monotonicClock {
	if now == nil {
		now = time.Now
	}
	return &monotonicClock{now: now}
}

func (c *monotonicClock) next() time.Time {
	t := c.now().UTC()
	if t.Before(c.last) {
		t = c.last
	}
	c.last = t
	return t
}

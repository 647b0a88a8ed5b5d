package engine

import (
	"context"
	"log/slog"

	"questboard/internal/storage"
)

// Recorder receives domain events, typically to update metrics.
type Recorder interface {
	TaskCreated(category string)
	TaskCompleted(category string, achievementMinted bool)
	TaskDeleted()
	AchievementDeleted()
}

type nopRecorder struct{}

func (nopRecorder) TaskCreated(string)         {}
func (nopRecorder) TaskCompleted(string, bool) {}
func (nopRecorder) TaskDeleted()               {}
func (nopRecorder) AchievementDeleted()        {}

type Service struct {
	store    storage.Store
	log      *slog.Logger
	recorder Recorder
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// NewService wraps store. The service does not close the store.
func NewService(store storage.Store, opts ...Option) *Service {
	s := &Service{
		store:    store,
		log:      slog.Default(),
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) ListTasks(ctx context.Context) ([]storage.Task, error) {
	return s.store.ListTasks(ctx)
}

// GetTask returns NotFoundError when id is unknown.
func (s *Service) GetTask(ctx context.Context, id string) (*storage.Task, error) {
	t, err := s.store.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, NotFoundError{Entity: EntityTask, ID: id}
	}
	return t, nil
}

func (s *Service) DeleteTask(ctx context.Context, id string) error {
	removed, err := s.store.DeleteTask(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return NotFoundError{Entity: EntityTask, ID: id}
	}
	s.recorder.TaskDeleted()
	s.log.Info("task deleted", "task_id", id)
	return nil
}

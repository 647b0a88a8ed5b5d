package engine

import (
	"context"

	"questboard/internal/storage"
)

// CreateTask validates in before touching the store. Fields are stored as given.
func (s *Service) CreateTask(ctx context.Context, in CreateTaskInput) (*storage.Task, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	t, err := s.store.CreateTask(ctx, storage.TaskInsert{
		Title:       in.Title,
		Description: in.Description,
		Category:    string(in.Category),
		XPReward:    in.XPReward,
	})
	if err != nil {
		return nil, err
	}

	s.recorder.TaskCreated(t.Category)
	s.log.Info("task created", "task_id", t.ID, "category", t.Category, "xp_reward", t.XPReward)
	return t, nil
}

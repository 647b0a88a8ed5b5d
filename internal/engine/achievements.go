package engine

import (
	"context"

	"questboard/internal/storage"
)

func (s *Service) ListAchievements(ctx context.Context) ([]storage.Achievement, error) {
	return s.store.ListAchievements(ctx)
}

// CreateAchievement records an achievement directly. Completion of a boss
// task is the usual way achievements come into existence.
func (s *Service) CreateAchievement(ctx context.Context, in CreateAchievementInput) (*storage.Achievement, error) {
	a, err := createAchievement(ctx, s.store, in)
	if err != nil {
		return nil, err
	}
	s.log.Info("achievement created", "achievement_id", a.ID, "xp_earned", a.XPEarned)
	return a, nil
}

func (s *Service) DeleteAchievement(ctx context.Context, id string) error {
	removed, err := s.store.DeleteAchievement(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return NotFoundError{Entity: EntityAchievement, ID: id}
	}
	s.recorder.AchievementDeleted()
	s.log.Info("achievement deleted", "achievement_id", id)
	return nil
}

func createAchievement(ctx context.Context, store storage.Store, in CreateAchievementInput) (*storage.Achievement, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return store.CreateAchievement(ctx, storage.AchievementInsert{
		Title:       in.Title,
		Description: in.Description,
		Icon:        in.Icon,
		XPEarned:    in.XPEarned,
	})
}

package engine

import (
	"context"
	"fmt"

	"questboard/internal/storage"
)

type CompleteResult struct {
	TaskID   string
	Category Category
	// XPEarned is the XP credited through a minted achievement; zero otherwise.
	XPEarned    int
	Achievement *storage.Achievement
}

// victoryAchievement builds the achievement minted for a defeated boss.
func victoryAchievement(t storage.Task) CreateAchievementInput {
	return CreateAchievementInput{
		Title:       t.Title + " Victor",
		Description: "Conquered: " + t.Description,
		Icon:        ResolveIcon(t.Title),
		XPEarned:    t.XPReward,
	}
}

// CompleteTask resolves a task: look it up, mint an achievement when it is a
// boss fight, then delete it. The achievement is written before the delete and
// both happen in one Store.Atomic call, so a failed mint leaves the task in place.
func (s *Service) CompleteTask(ctx context.Context, id string) (*CompleteResult, error) {
	var res *CompleteResult
	err := s.store.Atomic(ctx, func(tx storage.Store) error {
		task, err := tx.GetTask(ctx, id)
		if err != nil {
			return err
		}
		if task == nil {
			return NotFoundError{Entity: EntityTask, ID: id}
		}

		r := &CompleteResult{TaskID: task.ID, Category: Category(task.Category)}
		if r.Category == CategoryBoss {
			a, err := createAchievement(ctx, tx, victoryAchievement(*task))
			if err != nil {
				return fmt.Errorf("mint achievement for task %s: %w", id, err)
			}
			r.Achievement = a
			r.XPEarned = a.XPEarned
		}

		removed, err := tx.DeleteTask(ctx, id)
		if err != nil {
			return err
		}
		if !removed {
			return NotFoundError{Entity: EntityTask, ID: id}
		}
		res = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recorder.TaskCompleted(string(res.Category), res.Achievement != nil)
	if res.Achievement != nil {
		s.log.Info("boss defeated", "task_id", res.TaskID, "achievement_id", res.Achievement.ID, "xp_earned", res.XPEarned)
	} else {
		s.log.Info("task completed", "task_id", res.TaskID, "category", string(res.Category))
	}
	return res, nil
}

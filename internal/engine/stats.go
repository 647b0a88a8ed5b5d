package engine

import (
	"context"

	"questboard/internal/storage"
)

// Stats summarizes the board: open tasks per category and XP banked in achievements.
type Stats struct {
	BossFights   int `json:"bossFights"`
	Quests       int `json:"quests"`
	Training     int `json:"training"`
	Achievements int `json:"achievements"`
	TotalXP      int `json:"totalXP"`
	Level        int `json:"level"`
	NextLevelXP  int `json:"nextLevelXP"`
}

// Stats derives the panel numbers from one store snapshot so they agree.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	tasks, achievements, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return computeStats(tasks, achievements), nil
}

func computeStats(tasks []storage.Task, achievements []storage.Achievement) *Stats {
	st := &Stats{Achievements: len(achievements)}
	for _, t := range tasks {
		switch Category(t.Category) {
		case CategoryBoss:
			st.BossFights++
		case CategoryQuest:
			st.Quests++
		case CategoryTraining:
			st.Training++
		}
	}
	for _, a := range achievements {
		st.TotalXP += a.XPEarned
	}
	st.Level = LevelForTotalXP(st.TotalXP)
	st.NextLevelXP = XPRequiredForLevel(st.Level + 1)
	return st
}

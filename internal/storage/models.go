package storage

import "time"

// DefaultAchievementIcon is stored when an achievement is inserted without an icon.
const DefaultAchievementIcon = "🏆"

type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	XPReward    int       `json:"xpReward"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Achievement struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	XPEarned    int       `json:"xpEarned"`
	CompletedAt time.Time `json:"completedAt"`
}

type TaskInsert struct {
	Title       string
	Description string
	Category    string
	XPReward    int
}

type AchievementInsert struct {
	Title       string
	Description string
	Icon        string
	XPEarned    int
}

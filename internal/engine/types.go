package engine

import "strings"

type Category string

const (
	CategoryBoss     Category = "boss"
	CategoryQuest    Category = "quest"
	CategoryTraining Category = "training"
)

// Categories lists the valid categories in display order.
var Categories = []Category{CategoryBoss, CategoryQuest, CategoryTraining}

func (c Category) IsValid() bool {
	switch c {
	case CategoryBoss, CategoryQuest, CategoryTraining:
		return true
	default:
		return false
	}
}

// SuggestedXP is the reward the task form proposes for a category.
func (c Category) SuggestedXP() int {
	switch c {
	case CategoryBoss:
		return 500
	case CategoryQuest:
		return 200
	default:
		return DefaultXPReward
	}
}

// categoryList renders Categories as "boss, quest, training".
func categoryList() string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// DefaultXPReward is used when a task is created without an explicit reward.
const DefaultXPReward = 100

package engine

import (
	"fmt"
	"strings"
)

// ParseCategory parses user input to a Category.
// Accepts the canonical names plus a few short forms (fight, q, train).
func ParseCategory(input string) (Category, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "boss", "fight", "boss-fight":
		return CategoryBoss, nil
	case "quest", "q":
		return CategoryQuest, nil
	case "training", "train":
		return CategoryTraining, nil
	default:
		return "", fmt.Errorf("unknown category %q (want one of %s)", input, categoryList())
	}
}

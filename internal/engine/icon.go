package engine

import (
	"strings"

	"golang.org/x/text/cases"
)

const (
	IconDragon        = "🐉"
	IconMountain      = "🏔️"
	IconCrystalBall   = "🔮"
	IconOgre          = "👹"
	IconWolf          = "🐺"
	IconSkull         = "💀"
	IconCrossedSwords = "⚔️"
)

type iconRule struct {
	keywords []string
	icon     string
}

// Order matters: the first rule with a matching keyword wins.
var iconRules = []iconRule{
	{keywords: []string{"dragon"}, icon: IconDragon},
	{keywords: []string{"titan", "frost"}, icon: IconMountain},
	{keywords: []string{"lich", "arcane"}, icon: IconCrystalBall},
	{keywords: []string{"demon", "fiend"}, icon: IconOgre},
	{keywords: []string{"beast", "wolf"}, icon: IconWolf},
	{keywords: []string{"skeleton", "bone"}, icon: IconSkull},
}

// ResolveIcon picks the achievement glyph for a boss fight title. Matching is
// caseless under Unicode case folding.
func ResolveIcon(title string) string {
	// Casers keep state, so each call gets its own.
	folded := cases.Fold().String(title)
	for _, rule := range iconRules {
		for _, kw := range rule.keywords {
			if strings.Contains(folded, kw) {
				return rule.icon
			}
		}
	}
	return IconCrossedSwords
}

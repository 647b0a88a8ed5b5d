package engine

import "math"

// XPRequiredCoef scales the level curve: XP_req(L) = ceil(500 * L^1.5).
const XPRequiredCoef = 500.0

// XPRequiredForLevel returns the total XP needed to reach level. Level 0 is free.
func XPRequiredForLevel(level int) int {
	if level <= 0 {
		return 0
	}
	return int(math.Ceil(XPRequiredCoef * math.Pow(float64(level), 1.5)))
}

// LevelForTotalXP returns the highest level whose threshold totalXP meets.
func LevelForTotalXP(totalXP int) int {
	if totalXP <= 0 {
		return 0
	}
	// Invert the curve, then correct for rounding in either direction.
	level := int(math.Pow(float64(totalXP)/XPRequiredCoef, 1/1.5))
	for level > 0 && XPRequiredForLevel(level) > totalXP {
		level--
	}
	for XPRequiredForLevel(level+1) <= totalXP {
		level++
	}
	return level
}

// LevelProgress reports the level for totalXP and how far into it the hero is:
// into is XP past the level's threshold, span the XP between it and the next.
func LevelProgress(totalXP int) (level, into, span int) {
	level = LevelForTotalXP(totalXP)
	floor := XPRequiredForLevel(level)
	return level, totalXP - floor, XPRequiredForLevel(level+1) - floor
}

package utils

// xpPerLevel is the flat XP cost of each level.
const xpPerLevel = 100

// LevelForXP derives the display level from a lifetime XP total.
// Level 1 covers 0-99 XP, level 2 covers 100-199, and so on.
func LevelForXP(totalXP int) int {
	if totalXP < 0 {
		return 1
	}
	return totalXP/xpPerLevel + 1
}

// XPToNextLevel returns how much XP is missing until the next level.
func XPToNextLevel(totalXP int) int {
	if totalXP < 0 {
		return xpPerLevel
	}
	return xpPerLevel - totalXP%xpPerLevel
}

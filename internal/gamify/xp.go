package gamify

import "math"

// Rewards maps named learning events to base XP values. Unknown events
// award nothing.
var Rewards = map[string]int{
	"word_learned":       10,
	"word_mastered":      50,
	"quiz_correct":       5,
	"quiz_perfect":       30,
	"conversation_turn":  8,
	"pronunciation_good": 15,
	"daily_goal_met":     20,
	"streak_bonus_7":     50,
	"streak_bonus_30":    200,
}

// AchievementBonusEvent is the reward granted for unlocking any
// achievement, regardless of category.
const AchievementBonusEvent = "word_mastered"

// XPForLevel returns the XP needed to advance from level n to n+1:
// floor(100 × 1.5^(n−1)). Each level costs half again as much as the
// previous one.
func XPForLevel(level int) int {
	return int(100 * math.Pow(1.5, float64(level-1)))
}

// XPToReachLevel returns the cumulative XP at which the given level
// starts. Level 1 starts at 0.
func XPToReachLevel(level int) int {
	total := 0
	for l := 1; l < level; l++ {
		total += XPForLevel(l)
	}
	return total
}

// CalculateLevel derives the level from a lifetime XP total. It is the
// largest level whose cumulative cost fits within totalXP, never below 1,
// and non-decreasing in totalXP.
func CalculateLevel(totalXP int) int {
	if totalXP <= 0 {
		return 1
	}
	level := 1
	accumulated := 0
	for {
		cost := XPForLevel(level)
		if accumulated+cost > totalXP {
			break
		}
		accumulated += cost
		level++
	}
	return level
}

// ProgressInLevel returns how far into the current level totalXP sits
// and the full cost of that level.
func ProgressInLevel(totalXP int) (into, needed int) {
	level := CalculateLevel(totalXP)
	return totalXP - XPToReachLevel(level), XPForLevel(level)
}

package gamify

// Streak milestones that award a named XP bonus when first reached.
const (
	StreakMilestoneWeek  = 7
	StreakMilestoneMonth = 30
)

// MilestoneEvent returns the bonus XP event for a streak length, if the
// length is exactly a milestone. Callers fire it right after a streak
// increment so the bonus is granted once per milestone run.
func MilestoneEvent(streak int) (string, bool) {
	switch streak {
	case StreakMilestoneWeek:
		return "streak_bonus_7", true
	case StreakMilestoneMonth:
		return "streak_bonus_30", true
	default:
		return "", false
	}
}

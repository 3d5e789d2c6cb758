package gamify

import "time"

// Category groups achievements by the statistic they track.
type Category string

const (
	CategoryWords   Category = "words"
	CategoryStreak  Category = "streak"
	CategoryScore   Category = "score"
	CategoryTime    Category = "time"
	CategorySpecial Category = "special"
)

// Achievement is one catalog entry plus its unlock state.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Category    Category
	Requirement int
	Unlocked    bool
	UnlockedAt  *time.Time
}

// Catalog is the static achievement table, seeded idempotently at
// startup. Requirements are in the unit of their category: words and
// mastered-word counts, streak days, session counts or scores, study
// minutes.
var Catalog = []Achievement{
	{ID: "first_word", Name: "First Step", Description: "Learn your first word", Category: CategoryWords, Requirement: 1, Icon: "🌱"},
	{ID: "words_10", Name: "Beginner", Description: "Learn 10 words", Category: CategoryWords, Requirement: 10, Icon: "📖"},
	{ID: "words_50", Name: "Intermediate", Description: "Learn 50 words", Category: CategoryWords, Requirement: 50, Icon: "📚"},
	{ID: "words_100", Name: "Word Collector", Description: "Learn 100 words", Category: CategoryWords, Requirement: 100, Icon: "🏆"},

	{ID: "streak_3", Name: "Steady Learner", Description: "Study 3 days in a row", Category: CategoryStreak, Requirement: 3, Icon: "🔥"},
	{ID: "streak_7", Name: "One Week Challenge", Description: "Study 7 days in a row", Category: CategoryStreak, Requirement: 7, Icon: "⚡"},
	{ID: "streak_30", Name: "Study Master", Description: "Study 30 days in a row", Category: CategoryStreak, Requirement: 30, Icon: "👑"},
	{ID: "streak_100", Name: "Centurion", Description: "Study 100 days in a row", Category: CategoryStreak, Requirement: 100, Icon: "🌟"},

	{ID: "quiz_first", Name: "First Quiz", Description: "Complete your first session", Category: CategoryScore, Requirement: 1, Icon: "✏️"},
	{ID: "quiz_perfect", Name: "Perfect Score", Description: "Score 100 on a quiz", Category: CategoryScore, Requirement: 100, Icon: "💯"},
	{ID: "quiz_10", Name: "Quiz Fanatic", Description: "Complete 10 sessions", Category: CategoryScore, Requirement: 10, Icon: "🎯"},

	{ID: "time_1h", Name: "One Hour In", Description: "Study for a total of 1 hour", Category: CategoryTime, Requirement: 60, Icon: "⏱️"},
	{ID: "time_10h", Name: "Ten Hours In", Description: "Study for a total of 10 hours", Category: CategoryTime, Requirement: 600, Icon: "📅"},

	{ID: "hsk1_complete", Name: "HSK 1 Complete", Description: "Master all HSK level 1 words", Category: CategorySpecial, Requirement: 150, Icon: "🎓"},
}

// Package quizgen produces vocabulary quizzes whose difficulty adapts
// to recent score history, and scores submitted answers.
package quizgen

import (
	"fmt"
	"strings"
)

// QuestionType identifies the shape of a quiz question.
type QuestionType string

const (
	TypeTranslation QuestionType = "translation"
	TypeFillBlank   QuestionType = "fill_blank"
	TypePinyin      QuestionType = "pinyin"
)

// Difficulty is the tier derived from recent quiz scores.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// DifficultyFor maps the average of recent scores to a tier. An empty
// history defaults to medium.
func DifficultyFor(recentScores []float64) Difficulty {
	if len(recentScores) == 0 {
		return DifficultyMedium
	}
	sum := 0.0
	for _, s := range recentScores {
		sum += s
	}
	avg := sum / float64(len(recentScores))
	switch {
	case avg >= 90:
		return DifficultyHard
	case avg >= 70:
		return DifficultyMedium
	default:
		return DifficultyEasy
	}
}

// Question is a single quiz item. Options is empty for fill-blank
// questions, which take free-form input.
type Question struct {
	ID          string
	Type        QuestionType
	Prompt      string
	Options     []string
	Answer      string
	Explanation string
	Points      int
}

// Evaluation is the result of scoring one submitted answer.
type Evaluation struct {
	Correct     bool
	Score       int
	Feedback    string
	Explanation string
}

// Evaluate scores a submitted answer against a question. Matching is
// exact after trimming surrounding whitespace; partial credit is never
// awarded.
func Evaluate(q Question, answer string) Evaluation {
	correct := strings.TrimSpace(answer) == strings.TrimSpace(q.Answer)
	ev := Evaluation{Correct: correct, Explanation: q.Explanation}
	if correct {
		ev.Score = q.Points
		ev.Feedback = "Correct! 🎉"
	} else {
		ev.Feedback = fmt.Sprintf("Incorrect. Answer: %s", q.Answer)
	}
	return ev
}

// TotalPoints sums the points available across a question set.
func TotalPoints(questions []Question) int {
	total := 0
	for _, q := range questions {
		total += q.Points
	}
	return total
}

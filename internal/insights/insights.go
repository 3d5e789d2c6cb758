// Package insights derives human-readable observations and retention
// estimates from study statistics. All rules are deterministic; no LLM
// is involved.
package insights

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/david1005910/hanyu/internal/spacedrep"
	"github.com/david1005910/hanyu/internal/store"
)

// Report is the outcome of a progress analysis.
type Report struct {
	TotalWords    int
	MasteredWords int
	AvgQuizScore  float64
	CurrentStreak int

	Insights        []string
	Recommendations []string
}

// StatsSource supplies the aggregate statistics the analysis runs on.
type StatsSource interface {
	Statistics(ctx context.Context, now time.Time) (*store.Statistics, error)
}

// AnalyzeProgress applies the rule set to current statistics. It always
// returns at least one insight and one recommendation.
func AnalyzeProgress(ctx context.Context, src StatsSource, now time.Time) (*Report, error) {
	stats, err := src.Statistics(ctx, now)
	if err != nil {
		return nil, err
	}

	r := &Report{
		TotalWords:    stats.TotalWordsLearned,
		MasteredWords: stats.MasteredWords,
		AvgQuizScore:  stats.AverageQuizScore,
		CurrentStreak: stats.CurrentStreak,
	}

	if stats.TotalWordsLearned > 0 {
		rate := float64(stats.MasteredWords) / float64(stats.TotalWordsLearned)
		if rate < 0.3 {
			r.Insights = append(r.Insights, "⚠️ Few of your words are mastered. Try reviewing more often.")
			r.Recommendations = append(r.Recommendations, "Add a 5-minute review session every day")
		} else if rate > 0.7 {
			r.Insights = append(r.Insights, "✨ Most of your words are mastered! Time to take on new ones.")
			r.Recommendations = append(r.Recommendations, "Move on to the next lesson")
		}
	}

	if stats.CurrentStreak == 0 {
		r.Recommendations = append(r.Recommendations, "Study today to start a streak!")
	} else if stats.CurrentStreak >= 7 {
		r.Insights = append(r.Insights, fmt.Sprintf("🔥 %d days in a row! Keep it up!", stats.CurrentStreak))
	}

	if stats.AverageQuizScore > 0 {
		if stats.AverageQuizScore < 60 {
			r.Insights = append(r.Insights, "📉 Quiz scores are low. Your words need more review.")
			r.Recommendations = append(r.Recommendations, "Go through your word cards before the next quiz")
		} else if stats.AverageQuizScore >= 90 {
			r.Insights = append(r.Insights, "🎯 Excellent quiz scores!")
		}
	}

	if len(r.Insights) == 0 {
		r.Insights = append(r.Insights, "Not enough data yet. Start studying!")
	}
	if len(r.Recommendations) == 0 {
		r.Recommendations = append(r.Recommendations, "Try learning 10 words today!")
	}
	return r, nil
}

// RetentionPrediction estimates how likely one word is to be recalled.
type RetentionPrediction struct {
	Word        string
	Probability float64
	Interval    int
	NeedsReview bool
}

// reviewThreshold is the retention probability below which a word is
// flagged for review.
const reviewThreshold = 0.7

// PredictRetention estimates recall probability per card from its
// repetition count and easiness factor, capped at 0.95.
func PredictRetention(cards []spacedrep.Card) []RetentionPrediction {
	preds := make([]RetentionPrediction, 0, len(cards))
	for _, c := range cards {
		p := 0.5 + float64(c.Repetitions)*0.1 + (c.EasinessFactor-1.3)*0.1
		p = math.Min(0.95, p)
		p = math.Round(p*100) / 100

		preds = append(preds, RetentionPrediction{
			Word:        c.Simplified,
			Probability: p,
			Interval:    c.IntervalDays,
			NeedsReview: p < reviewThreshold,
		})
	}
	return preds
}

package insights

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/david1005910/hanyu/internal/spacedrep"
	"github.com/david1005910/hanyu/internal/store"
)

type fixedStats struct {
	stats store.Statistics
}

func (f *fixedStats) Statistics(_ context.Context, _ time.Time) (*store.Statistics, error) {
	cp := f.stats
	return &cp, nil
}

func analyze(t *testing.T, stats store.Statistics) *Report {
	t.Helper()
	r, err := AnalyzeProgress(context.Background(), &fixedStats{stats: stats}, time.Now())
	if err != nil {
		t.Fatalf("AnalyzeProgress: %v", err)
	}
	return r
}

func hasContaining(items []string, substr string) bool {
	for _, s := range items {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}

func TestAnalyzeProgressEmptyProfile(t *testing.T) {
	r := analyze(t, store.Statistics{})

	if len(r.Insights) == 0 || len(r.Recommendations) == 0 {
		t.Fatal("empty profile must still produce defaults")
	}
	if !hasContaining(r.Insights, "Not enough data") {
		t.Errorf("insights = %v", r.Insights)
	}
	if !hasContaining(r.Recommendations, "start a streak") {
		t.Errorf("recommendations = %v", r.Recommendations)
	}
}

func TestAnalyzeProgressLowMasteryRate(t *testing.T) {
	r := analyze(t, store.Statistics{TotalWordsLearned: 20, MasteredWords: 2})

	if !hasContaining(r.Insights, "Few of your words") {
		t.Errorf("insights = %v", r.Insights)
	}
	if !hasContaining(r.Recommendations, "review session") {
		t.Errorf("recommendations = %v", r.Recommendations)
	}
}

func TestAnalyzeProgressHighMasteryAndStreak(t *testing.T) {
	r := analyze(t, store.Statistics{
		TotalWordsLearned: 10,
		MasteredWords:     8,
		CurrentStreak:     9,
		AverageQuizScore:  95,
	})

	if !hasContaining(r.Insights, "mastered") {
		t.Errorf("missing mastery insight: %v", r.Insights)
	}
	if !hasContaining(r.Insights, "9 days in a row") {
		t.Errorf("missing streak insight: %v", r.Insights)
	}
	if !hasContaining(r.Insights, "Excellent quiz scores") {
		t.Errorf("missing quiz insight: %v", r.Insights)
	}
}

func TestAnalyzeProgressLowQuizScores(t *testing.T) {
	r := analyze(t, store.Statistics{AverageQuizScore: 45})

	if !hasContaining(r.Insights, "Quiz scores are low") {
		t.Errorf("insights = %v", r.Insights)
	}
}

func TestPredictRetention(t *testing.T) {
	cards := []spacedrep.Card{
		{Simplified: "你好", Repetitions: 0, EasinessFactor: 2.5, IntervalDays: 0},
		{Simplified: "水", Repetitions: 3, EasinessFactor: 2.5, IntervalDays: 15},
		{Simplified: "茶", Repetitions: 8, EasinessFactor: 2.8, IntervalDays: 60},
	}

	preds := PredictRetention(cards)
	if len(preds) != 3 {
		t.Fatalf("got %d predictions", len(preds))
	}

	// 0.5 + 0 + 1.2*0.1 = 0.62
	if preds[0].Probability != 0.62 || !preds[0].NeedsReview {
		t.Errorf("new card: %+v", preds[0])
	}
	// 0.5 + 0.3 + 0.12 = 0.92
	if preds[1].Probability != 0.92 || preds[1].NeedsReview {
		t.Errorf("practiced card: %+v", preds[1])
	}
	// Capped at 0.95.
	if preds[2].Probability != 0.95 {
		t.Errorf("cap not applied: %+v", preds[2])
	}
}

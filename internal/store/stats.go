package store

import (
	"context"
	"fmt"
	"time"
)

// Statistics is the aggregate view the gamification and insight layers
// evaluate against. It is computed from the ledgers, never stored.
type Statistics struct {
	TotalStudyMinutes int
	MasteredWords     int
	TotalWordsLearned int
	AverageQuizScore  float64
	BestQuizScore     float64
	AveragePronun     float64
	TotalSessions     int
	CurrentStreak     int
	LongestStreak     int
	TotalXP           int
}

// Statistics computes the aggregate statistics at now.
func (s *Store) Statistics(ctx context.Context, now time.Time) (*Statistics, error) {
	stats := &Statistics{}

	// Study minutes from closed sessions.
	var minutes *float64
	if err := s.db.GetContext(ctx, &minutes, `
		SELECT SUM((julianday(end_time) - julianday(start_time)) * 24 * 60)
		FROM sessions WHERE end_time IS NOT NULL`,
	); err != nil {
		return nil, fmt.Errorf("study minutes: %w", err)
	}
	if minutes != nil {
		stats.TotalStudyMinutes = int(*minutes)
	}

	if err := s.db.GetContext(ctx, &stats.MasteredWords,
		`SELECT COUNT(*) FROM word_mastery WHERE mastery_level = 'mastered'`,
	); err != nil {
		return nil, fmt.Errorf("mastered count: %w", err)
	}

	if err := s.db.GetContext(ctx, &stats.TotalWordsLearned,
		`SELECT COUNT(*) FROM word_mastery`,
	); err != nil {
		return nil, fmt.Errorf("word count: %w", err)
	}

	var avgScore, bestScore *float64
	if err := s.db.GetContext(ctx, &avgScore,
		`SELECT AVG(quiz_score) FROM sessions WHERE quiz_score IS NOT NULL`,
	); err != nil {
		return nil, fmt.Errorf("avg quiz score: %w", err)
	}
	if avgScore != nil {
		stats.AverageQuizScore = *avgScore
	}
	if err := s.db.GetContext(ctx, &bestScore,
		`SELECT MAX(quiz_score) FROM sessions WHERE quiz_score IS NOT NULL`,
	); err != nil {
		return nil, fmt.Errorf("best quiz score: %w", err)
	}
	if bestScore != nil {
		stats.BestQuizScore = *bestScore
	}

	weekAgo := FormatTime(now.AddDate(0, 0, -7))
	avgPronun, _, err := s.History().AveragePronunciation(ctx, weekAgo)
	if err != nil {
		return nil, err
	}
	stats.AveragePronun = avgPronun

	if err := s.db.GetContext(ctx, &stats.TotalSessions,
		`SELECT COUNT(*) FROM sessions`,
	); err != nil {
		return nil, fmt.Errorf("session count: %w", err)
	}

	prog, err := s.Progress().Get(ctx)
	if err != nil {
		return nil, err
	}
	stats.CurrentStreak = prog.CurrentStreak
	stats.LongestStreak = prog.LongestStreak
	stats.TotalXP = prog.TotalXP

	return stats, nil
}

package gamify

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/david1005910/hanyu/internal/store"
)

// DateFormat is the calendar-day encoding used for streak tracking.
// Streaks compare calendar days, not elapsed hours: 23:59 followed by
// 00:01 the next day counts as consecutive.
const DateFormat = "2006-01-02"

// StatsSource supplies the aggregate statistics achievements are
// evaluated against. *store.Store satisfies it.
type StatsSource interface {
	Statistics(ctx context.Context, now time.Time) (*store.Statistics, error)
}

// Service derives XP, level, streak, and achievement state from the
// progress ledger. All state lives in the store; the service itself is
// stateless.
type Service struct {
	progress     store.ProgressRepo
	achievements store.AchievementRepo
	stats        StatsSource
}

// NewService creates a gamification service over the given repositories.
func NewService(progress store.ProgressRepo, achievements store.AchievementRepo, stats StatsSource) *Service {
	return &Service{progress: progress, achievements: achievements, stats: stats}
}

// Init ensures the singleton progress row exists and the achievement
// catalog is seeded. Safe to call on every startup.
func (s *Service) Init(ctx context.Context) error {
	if err := s.progress.Init(ctx); err != nil {
		return err
	}
	recs := make([]store.AchievementRecord, len(Catalog))
	for i, a := range Catalog {
		recs[i] = store.AchievementRecord{
			ID:          a.ID,
			Name:        a.Name,
			Description: a.Description,
			Icon:        a.Icon,
			Category:    string(a.Category),
			Requirement: a.Requirement,
		}
	}
	return s.achievements.Seed(ctx, recs)
}

// XPResult reports the outcome of one XP award.
type XPResult struct {
	Gained    int
	NewTotal  int
	NewLevel  int
	LeveledUp bool
}

// AwardXP grants XP for a named event scaled by multiplier. Unknown
// events and non-positive gains result in no persisted change.
func (s *Service) AwardXP(ctx context.Context, event string, multiplier float64) (*XPResult, error) {
	base := Rewards[event]
	gained := int(math.Floor(float64(base) * multiplier))
	if gained <= 0 {
		return &XPResult{NewLevel: 1}, nil
	}

	before, err := s.progress.Get(ctx)
	if err != nil {
		return nil, err
	}
	oldLevel := CalculateLevel(before.TotalXP)

	newTotal, err := s.progress.AddXP(ctx, gained)
	if err != nil {
		return nil, err
	}
	newLevel := CalculateLevel(newTotal)
	if err := s.progress.SetLevel(ctx, newLevel); err != nil {
		return nil, err
	}

	return &XPResult{
		Gained:    gained,
		NewTotal:  newTotal,
		NewLevel:  newLevel,
		LeveledUp: newLevel > oldLevel,
	}, nil
}

// StreakResult reports the streak state after a daily update.
type StreakResult struct {
	Current     int
	Longest     int
	AlreadyDone bool
}

// UpdateStreak records that studying happened on today's calendar day.
// A repeat call on the same day is a no-op reporting AlreadyDone; a gap
// of more than one day resets the streak to 1.
func (s *Service) UpdateStreak(ctx context.Context, today time.Time) (*StreakResult, error) {
	prog, err := s.progress.Get(ctx)
	if err != nil {
		return nil, err
	}

	day := today.Format(DateFormat)
	current := prog.CurrentStreak
	longest := prog.LongestStreak

	if prog.LastStudyDate.Valid {
		last, err := time.Parse(DateFormat, prog.LastStudyDate.String)
		if err != nil {
			return nil, fmt.Errorf("corrupt last_study_date %q: %w", prog.LastStudyDate.String, err)
		}
		switch last.Format(DateFormat) {
		case day:
			if longest < current {
				longest = current
				if err := s.progress.SetStreak(ctx, current, longest, day); err != nil {
					return nil, err
				}
			}
			return &StreakResult{Current: current, Longest: longest, AlreadyDone: true}, nil
		case today.AddDate(0, 0, -1).Format(DateFormat):
			current++
		default:
			current = 1
		}
	} else {
		current = 1
	}

	if current > longest {
		longest = current
	}
	if err := s.progress.SetStreak(ctx, current, longest, day); err != nil {
		return nil, err
	}
	return &StreakResult{Current: current, Longest: longest}, nil
}

// CheckAchievements evaluates every locked achievement against the
// current statistics and unlocks those whose requirement is now met.
// Each unlock also grants the fixed achievement XP bonus. Only the
// achievements unlocked by this call are returned.
func (s *Service) CheckAchievements(ctx context.Context, now time.Time) ([]Achievement, error) {
	stats, err := s.stats.Statistics(ctx, now)
	if err != nil {
		return nil, err
	}
	recs, err := s.achievements.All(ctx)
	if err != nil {
		return nil, err
	}

	var unlocked []Achievement
	for _, rec := range recs {
		if rec.Unlocked {
			continue
		}
		if !s.met(rec, stats) {
			continue
		}
		if err := s.achievements.Unlock(ctx, rec.ID, store.FormatTime(now)); err != nil {
			return nil, err
		}
		if _, err := s.AwardXP(ctx, AchievementBonusEvent, 1.0); err != nil {
			return nil, err
		}
		at := now
		unlocked = append(unlocked, Achievement{
			ID:          rec.ID,
			Name:        rec.Name,
			Description: rec.Description,
			Icon:        rec.Icon,
			Category:    Category(rec.Category),
			Requirement: rec.Requirement,
			Unlocked:    true,
			UnlockedAt:  &at,
		})
	}
	return unlocked, nil
}

// met evaluates one achievement predicate against the statistics.
func (s *Service) met(rec store.AchievementRecord, stats *store.Statistics) bool {
	switch Category(rec.Category) {
	case CategoryWords:
		return stats.TotalWordsLearned >= rec.Requirement
	case CategoryStreak:
		return stats.CurrentStreak >= rec.Requirement
	case CategoryScore:
		switch rec.ID {
		case "quiz_first":
			return stats.TotalSessions >= 1
		case "quiz_perfect":
			return stats.BestQuizScore >= 100
		default:
			return stats.TotalSessions >= rec.Requirement
		}
	case CategoryTime:
		return stats.TotalStudyMinutes >= rec.Requirement
	case CategorySpecial:
		return stats.MasteredWords >= rec.Requirement
	default:
		return false
	}
}

// AllAchievements returns the full catalog with unlock state.
func (s *Service) AllAchievements(ctx context.Context) ([]Achievement, error) {
	recs, err := s.achievements.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Achievement, 0, len(recs))
	for _, rec := range recs {
		a := Achievement{
			ID:          rec.ID,
			Name:        rec.Name,
			Description: rec.Description,
			Icon:        rec.Icon,
			Category:    Category(rec.Category),
			Requirement: rec.Requirement,
			Unlocked:    rec.Unlocked,
		}
		if rec.UnlockedAt.Valid {
			if t, err := store.ParseTime(rec.UnlockedAt.String); err == nil {
				a.UnlockedAt = &t
			}
		}
		out = append(out, a)
	}
	return out, nil
}

// LevelInfo is the level summary exposed to the UI layer.
type LevelInfo struct {
	Level           int
	TotalXP         int
	XPIntoLevel     int
	XPForNextLevel  int
	ProgressPercent int
	CurrentStreak   int
	LongestStreak   int
}

// GetLevelInfo derives the current level summary from the XP total.
func (s *Service) GetLevelInfo(ctx context.Context) (*LevelInfo, error) {
	prog, err := s.progress.Get(ctx)
	if err != nil {
		return nil, err
	}

	level := CalculateLevel(prog.TotalXP)
	into, needed := ProgressInLevel(prog.TotalXP)
	percent := 0
	if needed > 0 {
		percent = min(100, into*100/needed)
	}

	return &LevelInfo{
		Level:           level,
		TotalXP:         prog.TotalXP,
		XPIntoLevel:     into,
		XPForNextLevel:  needed,
		ProgressPercent: percent,
		CurrentStreak:   prog.CurrentStreak,
		LongestStreak:   prog.LongestStreak,
	}, nil
}

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ProgressRecord is the singleton user_progress row.
type ProgressRecord struct {
	ID               int            `db:"id"`
	Level            int            `db:"level"`
	TotalXP          int            `db:"total_xp"`
	TotalWordsLearnt int            `db:"total_words_learned"`
	CurrentStreak    int            `db:"current_streak"`
	LongestStreak    int            `db:"longest_streak"`
	LastStudyDate    sql.NullString `db:"last_study_date"`
	DailyGoalMinutes int            `db:"daily_goal_minutes"`
	BestQuizScore    float64        `db:"best_quiz_score"`
	TotalSessions    int            `db:"total_sessions"`
}

// ProgressRepo manages the singleton progress row. The XP total only
// increases; the level column is a display cache rewritten on every XP
// change, never read as truth.
type ProgressRepo interface {
	// Init creates the singleton row if it doesn't exist. Idempotent.
	Init(ctx context.Context) error

	// Get returns the progress row.
	Get(ctx context.Context) (*ProgressRecord, error)

	// AddXP atomically adds amount to the lifetime XP total and returns
	// the new total.
	AddXP(ctx context.Context, amount int) (int, error)

	// SetLevel rewrites the cached display level. Correctness never
	// depends on this column; it is re-derived from the XP total.
	SetLevel(ctx context.Context, level int) error

	// SetStreak records the streak state after a daily update.
	SetStreak(ctx context.Context, current, longest int, lastStudyDate string) error
}

type progressRepo struct {
	db *sqlx.DB
}

func (r *progressRepo) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO user_progress (id) VALUES (1)`,
	); err != nil {
		return fmt.Errorf("init user progress: %w", err)
	}
	return nil
}

func (r *progressRepo) Get(ctx context.Context) (*ProgressRecord, error) {
	var rec ProgressRecord
	err := r.db.GetContext(ctx, &rec, `SELECT * FROM user_progress WHERE id = 1`)
	if err != nil {
		return nil, fmt.Errorf("get user progress: %w", err)
	}
	return &rec, nil
}

func (r *progressRepo) AddXP(ctx context.Context, amount int) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin add xp: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE user_progress SET total_xp = total_xp + ? WHERE id = 1`,
		amount,
	); err != nil {
		return 0, fmt.Errorf("add xp: %w", err)
	}

	var total int
	if err := tx.GetContext(ctx, &total,
		`SELECT total_xp FROM user_progress WHERE id = 1`,
	); err != nil {
		return 0, fmt.Errorf("read xp total: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit add xp: %w", err)
	}
	return total, nil
}

func (r *progressRepo) SetLevel(ctx context.Context, level int) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE user_progress SET level = ? WHERE id = 1`, level,
	); err != nil {
		return fmt.Errorf("set level: %w", err)
	}
	return nil
}

func (r *progressRepo) SetStreak(ctx context.Context, current, longest int, lastStudyDate string) error {
	if _, err := r.db.ExecContext(ctx, `
		UPDATE user_progress SET
			current_streak = ?, longest_streak = ?, last_study_date = ?
		WHERE id = 1`,
		current, longest, lastStudyDate,
	); err != nil {
		return fmt.Errorf("set streak: %w", err)
	}
	return nil
}

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// AchievementRecord is an achievements row.
type AchievementRecord struct {
	ID          string         `db:"achievement_id"`
	Name        string         `db:"name"`
	Description string         `db:"description"`
	Icon        string         `db:"icon"`
	Category    string         `db:"category"`
	Requirement int            `db:"requirement"`
	Unlocked    bool           `db:"unlocked"`
	UnlockedAt  sql.NullString `db:"unlocked_at"`
}

// AchievementRepo manages the static achievement catalog and its unlock
// state. The unlocked flag transitions false→true exactly once.
type AchievementRepo interface {
	// Seed inserts catalog entries that don't exist yet. Idempotent;
	// existing rows (including unlock state) are left untouched.
	Seed(ctx context.Context, entries []AchievementRecord) error

	// All returns the full catalog with unlock state.
	All(ctx context.Context) ([]AchievementRecord, error)

	// Unlock marks an achievement unlocked at the given time. Calling it
	// on an already unlocked achievement is a no-op; the first unlock
	// timestamp is preserved.
	Unlock(ctx context.Context, id string, at string) error
}

type achievementRepo struct {
	db *sqlx.DB
}

func (r *achievementRepo) Seed(ctx context.Context, entries []AchievementRecord) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed achievements: %w", err)
	}
	defer tx.Rollback()

	for _, e := range entries {
		if _, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO achievements
				(achievement_id, name, description, icon, category, requirement)
			VALUES (?, ?, ?, ?, ?, ?)`,
			e.ID, e.Name, e.Description, e.Icon, e.Category, e.Requirement,
		); err != nil {
			return fmt.Errorf("seed achievement %q: %w", e.ID, err)
		}
	}
	return tx.Commit()
}

func (r *achievementRepo) All(ctx context.Context) ([]AchievementRecord, error) {
	var recs []AchievementRecord
	err := r.db.SelectContext(ctx, &recs,
		`SELECT * FROM achievements ORDER BY achievement_id`)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	return recs, nil
}

func (r *achievementRepo) Unlock(ctx context.Context, id string, at string) error {
	if _, err := r.db.ExecContext(ctx, `
		UPDATE achievements SET unlocked = 1, unlocked_at = ?
		WHERE achievement_id = ? AND unlocked = 0`,
		at, id,
	); err != nil {
		return fmt.Errorf("unlock achievement %q: %w", id, err)
	}
	return nil
}

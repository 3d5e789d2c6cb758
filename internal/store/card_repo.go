package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// CardRecord is a word_mastery row. Nullable timestamps are RFC3339
// strings; the domain layer converts them to time.Time.
type CardRecord struct {
	WordID         int64          `db:"word_id"`
	Simplified     string         `db:"simplified"`
	Traditional    string         `db:"traditional"`
	Pinyin         string         `db:"pinyin"`
	Definitions    string         `db:"definitions"`
	TimesPracticed int            `db:"times_practiced"`
	TimesCorrect   int            `db:"times_correct"`
	LastPracticed  sql.NullString `db:"last_practiced"`
	FirstLearned   string         `db:"first_learned"`
	MasteryLevel   string         `db:"mastery_level"`
	NextReview     sql.NullString `db:"next_review"`
	EasinessFactor float64        `db:"easiness_factor"`
	IntervalDays   int            `db:"interval_days"`
	Repetitions    int            `db:"repetitions"`
}

// CardRepo manages the word mastery ledger. Each write is a single
// statement or transaction, so overlapping logical updates cannot
// interleave a read-modify-write on the same word.
type CardRepo interface {
	// Get returns the card row for a word, or ErrNotFound.
	Get(ctx context.Context, simplified string) (*CardRecord, error)

	// Create inserts a new card row with scheduling defaults and bumps
	// the total-words-learned counter in the same transaction.
	Create(ctx context.Context, rec *CardRecord) error

	// SaveReview overwrites all mutable card fields after a review.
	// Returns ErrNotFound if the word was never created.
	SaveReview(ctx context.Context, rec *CardRecord) error

	// Due returns up to limit cards due at or before now, most overdue
	// first. A NULL next_review sorts before everything else.
	Due(ctx context.Context, now string, limit int) ([]CardRecord, error)

	// CountByLevel returns card counts keyed by mastery level.
	CountByLevel(ctx context.Context) (map[string]int, error)

	// Count returns the total number of cards.
	Count(ctx context.Context) (int, error)
}

type cardRepo struct {
	db *sqlx.DB
}

func (r *cardRepo) Get(ctx context.Context, simplified string) (*CardRecord, error) {
	var rec CardRecord
	err := r.db.GetContext(ctx, &rec,
		`SELECT * FROM word_mastery WHERE simplified = ?`, simplified)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get card %q: %w", simplified, err)
	}
	return &rec, nil
}

func (r *cardRepo) Create(ctx context.Context, rec *CardRecord) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create card: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO word_mastery (
			simplified, traditional, pinyin, definitions,
			first_learned, mastery_level, easiness_factor,
			interval_days, repetitions
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Simplified, rec.Traditional, rec.Pinyin, rec.Definitions,
		rec.FirstLearned, rec.MasteryLevel, rec.EasinessFactor,
		rec.IntervalDays, rec.Repetitions,
	)
	if err != nil {
		return fmt.Errorf("create card %q: %w", rec.Simplified, err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE user_progress SET total_words_learned = total_words_learned + 1 WHERE id = 1`,
	); err != nil {
		return fmt.Errorf("bump words learned: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	rec.WordID = id

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create card: %w", err)
	}
	return nil
}

func (r *cardRepo) SaveReview(ctx context.Context, rec *CardRecord) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE word_mastery SET
			times_practiced = ?,
			times_correct   = ?,
			last_practiced  = ?,
			mastery_level   = ?,
			next_review     = ?,
			easiness_factor = ?,
			interval_days   = ?,
			repetitions     = ?
		WHERE simplified = ?`,
		rec.TimesPracticed, rec.TimesCorrect, rec.LastPracticed,
		rec.MasteryLevel, rec.NextReview, rec.EasinessFactor,
		rec.IntervalDays, rec.Repetitions, rec.Simplified,
	)
	if err != nil {
		return fmt.Errorf("save review for %q: %w", rec.Simplified, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *cardRepo) Due(ctx context.Context, now string, limit int) ([]CardRecord, error) {
	var recs []CardRecord
	err := r.db.SelectContext(ctx, &recs, `
		SELECT * FROM word_mastery
		WHERE next_review IS NULL OR next_review <= ?
		ORDER BY (next_review IS NULL) DESC, next_review ASC
		LIMIT ?`,
		now, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("due cards: %w", err)
	}
	return recs, nil
}

func (r *cardRepo) CountByLevel(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT mastery_level, COUNT(*) FROM word_mastery GROUP BY mastery_level`)
	if err != nil {
		return nil, fmt.Errorf("count by level: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var level string
		var n int
		if err := rows.Scan(&level, &n); err != nil {
			return nil, fmt.Errorf("scan level count: %w", err)
		}
		counts[level] = n
	}
	return counts, rows.Err()
}

func (r *cardRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM word_mastery`); err != nil {
		return 0, fmt.Errorf("count cards: %w", err)
	}
	return n, nil
}

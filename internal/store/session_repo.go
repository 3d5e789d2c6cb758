package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Session kinds.
const (
	SessionLesson       = "lesson"
	SessionQuiz         = "quiz"
	SessionConversation = "conversation"
	SessionSRS          = "srs"
)

// SessionRecord is a sessions row.
type SessionRecord struct {
	ID           string          `db:"id"`
	StartTime    string          `db:"start_time"`
	EndTime      sql.NullString  `db:"end_time"`
	LessonNumber int             `db:"lesson_number"`
	WordsLearned int             `db:"words_learned"`
	QuizScore    sql.NullFloat64 `db:"quiz_score"`
	SessionType  string          `db:"session_type"`
}

// SessionRepo manages the session ledger. Sessions are closed exactly
// once and immutable afterwards.
type SessionRepo interface {
	// Start opens a new session and returns its id.
	Start(ctx context.Context, lessonNumber int, kind string, at string) (string, error)

	// Close finalizes a session, recording words learned and an optional
	// quiz score, and rolls the aggregate progress counters forward in
	// the same transaction. Returns ErrInvalidSession if the id is
	// unknown or the session was already closed.
	Close(ctx context.Context, id string, wordsLearned int, score *float64, at string) error

	// Get returns a session row, or ErrNotFound.
	Get(ctx context.Context, id string) (*SessionRecord, error)

	// Count returns the total number of sessions ever started.
	Count(ctx context.Context) (int, error)

	// RecentQuizScores returns the quiz scores of the most recently
	// closed quiz sessions, newest first.
	RecentQuizScores(ctx context.Context, limit int) ([]float64, error)
}

type sessionRepo struct {
	db *sqlx.DB
}

func (r *sessionRepo) Start(ctx context.Context, lessonNumber int, kind string, at string) (string, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (id, start_time, lesson_number, session_type)
		VALUES (?, ?, ?, ?)`,
		id, at, lessonNumber, kind,
	)
	if err != nil {
		return "", fmt.Errorf("start session: %w", err)
	}
	return id, nil
}

func (r *sessionRepo) Close(ctx context.Context, id string, wordsLearned int, score *float64, at string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin close session: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE sessions SET end_time = ?, words_learned = ?, quiz_score = ?
		WHERE id = ? AND end_time IS NULL`,
		at, wordsLearned, score, id,
	)
	if err != nil {
		return fmt.Errorf("close session %s: %w", id, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return ErrInvalidSession
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE user_progress SET total_sessions = total_sessions + 1 WHERE id = 1`,
	); err != nil {
		return fmt.Errorf("bump session count: %w", err)
	}
	if score != nil {
		if _, err := tx.ExecContext(ctx,
			`UPDATE user_progress SET best_quiz_score = MAX(best_quiz_score, ?) WHERE id = 1`,
			*score,
		); err != nil {
			return fmt.Errorf("update best quiz score: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit close session: %w", err)
	}
	return nil
}

func (r *sessionRepo) Get(ctx context.Context, id string) (*SessionRecord, error) {
	var rec SessionRecord
	err := r.db.GetContext(ctx, &rec, `SELECT * FROM sessions WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}
	return &rec, nil
}

func (r *sessionRepo) RecentQuizScores(ctx context.Context, limit int) ([]float64, error) {
	var scores []float64
	err := r.db.SelectContext(ctx, &scores, `
		SELECT quiz_score FROM sessions
		WHERE quiz_score IS NOT NULL
		ORDER BY start_time DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent quiz scores: %w", err)
	}
	return scores, nil
}

func (r *sessionRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM sessions`); err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return n, nil
}

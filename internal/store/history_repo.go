package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// HistoryRepo records pronunciation attempts and conversation turns.
// Only scores and text are stored; audio never reaches the store.
type HistoryRepo interface {
	// RecordPronunciation appends one pronunciation attempt.
	RecordPronunciation(ctx context.Context, sessionID, word string, score int, recognized string, at string) error

	// AveragePronunciation returns the mean score of attempts at or
	// after since, and the attempt count.
	AveragePronunciation(ctx context.Context, since string) (float64, int, error)

	// RecordConversationTurn appends one exchange of a conversation
	// practice session.
	RecordConversationTurn(ctx context.Context, t ConversationTurn) error

	// ConversationTurnCount returns the number of turns recorded for a
	// session.
	ConversationTurnCount(ctx context.Context, sessionID string) (int, error)
}

// ConversationTurn is one user/assistant exchange.
type ConversationTurn struct {
	SessionID   string `db:"session_id"`
	TurnNumber  int    `db:"turn_number"`
	UserMessage string `db:"user_message"`
	AIResponse  string `db:"ai_response"`
	Corrections string `db:"corrections"`
	Suggestions string `db:"suggestions"`
	Timestamp   string `db:"timestamp"`
}

type historyRepo struct {
	db *sqlx.DB
}

func (r *historyRepo) RecordPronunciation(ctx context.Context, sessionID, word string, score int, recognized string, at string) error {
	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO pronunciation_history
			(session_id, word, score, recognized_text, attempt_time)
		VALUES (?, ?, ?, ?, ?)`,
		sessionID, word, score, recognized, at,
	); err != nil {
		return fmt.Errorf("record pronunciation: %w", err)
	}
	return nil
}

func (r *historyRepo) AveragePronunciation(ctx context.Context, since string) (float64, int, error) {
	var row struct {
		Avg   *float64 `db:"avg"`
		Count int      `db:"count"`
	}
	err := r.db.GetContext(ctx, &row, `
		SELECT AVG(score) AS avg, COUNT(*) AS count
		FROM pronunciation_history WHERE attempt_time >= ?`,
		since,
	)
	if err != nil {
		return 0, 0, fmt.Errorf("average pronunciation: %w", err)
	}
	if row.Avg == nil {
		return 0, 0, nil
	}
	return *row.Avg, row.Count, nil
}

func (r *historyRepo) RecordConversationTurn(ctx context.Context, t ConversationTurn) error {
	if _, err := r.db.NamedExecContext(ctx, `
		INSERT INTO conversation_practice
			(session_id, turn_number, user_message, ai_response, corrections, suggestions, timestamp)
		VALUES (:session_id, :turn_number, :user_message, :ai_response, :corrections, :suggestions, :timestamp)`,
		t,
	); err != nil {
		return fmt.Errorf("record conversation turn: %w", err)
	}
	return nil
}

func (r *historyRepo) ConversationTurnCount(ctx context.Context, sessionID string) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM conversation_practice WHERE session_id = ?`, sessionID,
	); err != nil {
		return 0, fmt.Errorf("count conversation turns: %w", err)
	}
	return n, nil
}

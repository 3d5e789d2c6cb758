package spacedrep

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/david1005910/hanyu/internal/store"
	"github.com/david1005910/hanyu/internal/vocab"
)

// Service orchestrates due-card selection and review submission over the
// mastery store. Given identical stored state and quality input its
// output is identical; time is always passed in by the caller.
type Service struct {
	cards store.CardRepo
}

// NewService creates a spaced repetition service over a card repository.
func NewService(cards store.CardRepo) *Service {
	return &Service{cards: cards}
}

// CardSummary is a due-queue entry for display.
type CardSummary struct {
	Simplified  string
	Traditional string
	Pinyin      string
	Definitions []string
	Tier        Tier
	NextReview  *time.Time
}

// ReviewResult reports the outcome of a single review.
type ReviewResult struct {
	Word           string
	Quality        int
	IntervalDays   int
	NextReview     time.Time
	Tier           Tier
	EasinessFactor float64 // rounded to 2 decimal places
}

// Stats summarizes the review ledger.
type Stats struct {
	TotalWords int
	ByTier     map[Tier]int
	DueNow     int
}

// DueQueue returns up to limit cards due at now, most overdue first.
// Cards that were never scheduled sort before everything else.
func (s *Service) DueQueue(ctx context.Context, limit int, now time.Time) ([]CardSummary, error) {
	recs, err := s.cards.Due(ctx, store.FormatTime(now), limit)
	if err != nil {
		return nil, err
	}

	queue := make([]CardSummary, 0, len(recs))
	for _, rec := range recs {
		card, err := cardFromRecord(&rec)
		if err != nil {
			return nil, err
		}
		queue = append(queue, CardSummary{
			Simplified:  card.Simplified,
			Traditional: card.Traditional,
			Pinyin:      card.Pinyin,
			Definitions: card.Definitions,
			Tier:        card.Tier,
			NextReview:  card.NextReview,
		})
	}
	return queue, nil
}

// SubmitReview applies one SM-2 review to an already practiced word and
// persists the result. Returns ErrWordNotFound if the word was never
// practiced and ErrInvalidQuality for ratings outside [0,5]; neither
// changes any state.
func (s *Service) SubmitReview(ctx context.Context, word string, quality int, now time.Time) (*ReviewResult, error) {
	rec, err := s.cards.Get(ctx, word)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %q", ErrWordNotFound, word)
	}
	if err != nil {
		return nil, err
	}
	return s.review(ctx, rec, quality, now)
}

// Practice records a review for a word coming through the lesson flow,
// creating its card with default scheduling state on first exposure.
func (s *Service) Practice(ctx context.Context, w vocab.Word, quality int, now time.Time) (*ReviewResult, error) {
	rec, err := s.cards.Get(ctx, w.Simplified)
	if errors.Is(err, store.ErrNotFound) {
		card := NewCard(w)
		rec = &store.CardRecord{
			Simplified:     card.Simplified,
			Traditional:    card.Traditional,
			Pinyin:         card.Pinyin,
			Definitions:    w.JoinDefinitions(),
			FirstLearned:   store.FormatTime(now),
			MasteryLevel:   string(card.Tier),
			EasinessFactor: card.EasinessFactor,
		}
		if err := s.cards.Create(ctx, rec); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}
	return s.review(ctx, rec, quality, now)
}

func (s *Service) review(ctx context.Context, rec *store.CardRecord, quality int, now time.Time) (*ReviewResult, error) {
	card, err := cardFromRecord(rec)
	if err != nil {
		return nil, err
	}

	updated, err := ApplyReview(card, quality, now)
	if err != nil {
		return nil, err
	}

	applyCardToRecord(updated, rec, now)
	if err := s.cards.SaveReview(ctx, rec); err != nil {
		return nil, err
	}

	return &ReviewResult{
		Word:           updated.Simplified,
		Quality:        quality,
		IntervalDays:   updated.IntervalDays,
		NextReview:     *updated.NextReview,
		Tier:           updated.Tier,
		EasinessFactor: math.Round(updated.EasinessFactor*100) / 100,
	}, nil
}

// Stats returns counts of tracked words by tier plus the number due at now.
func (s *Service) Stats(ctx context.Context, now time.Time) (*Stats, error) {
	total, err := s.cards.Count(ctx)
	if err != nil {
		return nil, err
	}
	byLevel, err := s.cards.CountByLevel(ctx)
	if err != nil {
		return nil, err
	}
	due, err := s.cards.Due(ctx, store.FormatTime(now), total+1)
	if err != nil {
		return nil, err
	}

	byTier := make(map[Tier]int, len(byLevel))
	for level, n := range byLevel {
		byTier[Tier(level)] = n
	}
	return &Stats{TotalWords: total, ByTier: byTier, DueNow: len(due)}, nil
}

// cardFromRecord converts a stored row into a domain card, rejecting
// corrupt rows instead of repairing them.
func cardFromRecord(rec *store.CardRecord) (Card, error) {
	card := Card{
		Simplified:     rec.Simplified,
		Traditional:    rec.Traditional,
		Pinyin:         rec.Pinyin,
		Definitions:    vocab.SplitDefinitions(rec.Definitions),
		EasinessFactor: rec.EasinessFactor,
		IntervalDays:   rec.IntervalDays,
		Repetitions:    rec.Repetitions,
		TimesPracticed: rec.TimesPracticed,
		TimesCorrect:   rec.TimesCorrect,
		Tier:           Tier(rec.MasteryLevel),
	}
	if rec.NextReview.Valid {
		t, err := store.ParseTime(rec.NextReview.String)
		if err != nil {
			return Card{}, fmt.Errorf("card %q: bad next_review %q: %w",
				rec.Simplified, rec.NextReview.String, err)
		}
		card.NextReview = &t
	}
	if err := card.Validate(); err != nil {
		return Card{}, fmt.Errorf("corrupt card data: %w", err)
	}
	return card, nil
}

// applyCardToRecord writes an updated card back onto its stored row.
func applyCardToRecord(c Card, rec *store.CardRecord, now time.Time) {
	rec.TimesPracticed = c.TimesPracticed
	rec.TimesCorrect = c.TimesCorrect
	rec.EasinessFactor = c.EasinessFactor
	rec.IntervalDays = c.IntervalDays
	rec.Repetitions = c.Repetitions
	rec.MasteryLevel = string(c.Tier)
	rec.LastPracticed = sql.NullString{String: store.FormatTime(now), Valid: true}
	if c.NextReview != nil {
		rec.NextReview = sql.NullString{String: store.FormatTime(*c.NextReview), Valid: true}
	}
}

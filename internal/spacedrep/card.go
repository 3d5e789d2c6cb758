package spacedrep

import (
	"fmt"
	"time"

	"github.com/david1005910/hanyu/internal/vocab"
)

// DefaultEasiness is the SM-2 easiness factor assigned to a brand new card.
const DefaultEasiness = 2.5

// MinEasiness is the SM-2 floor. Easiness never drops below this, which
// prevents review intervals from collapsing for chronically hard words.
const MinEasiness = 1.3

// Card is the scheduling unit for a single vocabulary word: its SM-2
// state plus lifetime accuracy counters. Cards are created on first
// practice and never deleted.
type Card struct {
	Simplified  string
	Traditional string
	Pinyin      string
	Definitions []string

	EasinessFactor float64
	IntervalDays   int
	Repetitions    int
	NextReview     *time.Time

	TimesPracticed int
	TimesCorrect   int

	// Tier is cached on the card but always recomputed from the other
	// fields on every update. Treat it as derived.
	Tier Tier
}

// NewCard creates a card with default scheduling state for a word.
func NewCard(w vocab.Word) Card {
	return Card{
		Simplified:     w.Simplified,
		Traditional:    w.Traditional,
		Pinyin:         w.Pinyin,
		Definitions:    w.Definitions,
		EasinessFactor: DefaultEasiness,
		Tier:           TierNew,
	}
}

// Accuracy returns the lifetime correct-answer ratio, 0 when unpracticed.
func (c Card) Accuracy() float64 {
	if c.TimesPracticed == 0 {
		return 0
	}
	return float64(c.TimesCorrect) / float64(c.TimesPracticed)
}

// IsDue reports whether the card should be reviewed at now. A card with
// no scheduled review is always due.
func (c Card) IsDue(now time.Time) bool {
	return c.NextReview == nil || !now.Before(*c.NextReview)
}

// Validate checks a card loaded from the store for corruption. Rows that
// violate the model invariants are rejected rather than silently repaired.
func (c Card) Validate() error {
	switch {
	case c.Simplified == "":
		return fmt.Errorf("card has empty word")
	case c.IntervalDays < 0:
		return fmt.Errorf("card %q: negative interval %d", c.Simplified, c.IntervalDays)
	case c.Repetitions < 0:
		return fmt.Errorf("card %q: negative repetition count %d", c.Simplified, c.Repetitions)
	case c.TimesPracticed < 0 || c.TimesCorrect < 0:
		return fmt.Errorf("card %q: negative practice counters (%d/%d)",
			c.Simplified, c.TimesCorrect, c.TimesPracticed)
	case c.TimesCorrect > c.TimesPracticed:
		return fmt.Errorf("card %q: times_correct %d exceeds times_practiced %d",
			c.Simplified, c.TimesCorrect, c.TimesPracticed)
	case c.EasinessFactor < MinEasiness:
		return fmt.Errorf("card %q: easiness factor %.2f below floor %.1f",
			c.Simplified, c.EasinessFactor, MinEasiness)
	}
	return nil
}

// Tier classifies how well a word is known, derived from the card's
// cumulative counters. Tiers are not sticky: a poor run of reviews can
// demote a word on the next evaluation.
type Tier string

const (
	TierNew        Tier = "new"
	TierLearning   Tier = "learning"
	TierProficient Tier = "proficient"
	TierMastered   Tier = "mastered"
)

// AllTiers returns the tiers in progression order.
func AllTiers() []Tier {
	return []Tier{TierNew, TierLearning, TierProficient, TierMastered}
}

// DisplayName returns a human-readable label for the tier.
func (t Tier) DisplayName() string {
	switch t {
	case TierNew:
		return "New"
	case TierLearning:
		return "Learning"
	case TierProficient:
		return "Proficient"
	case TierMastered:
		return "Mastered"
	default:
		return string(t)
	}
}

// Icon returns the display icon for the tier.
func (t Tier) Icon() string {
	switch t {
	case TierNew:
		return "🌱"
	case TierLearning:
		return "📖"
	case TierProficient:
		return "📚"
	case TierMastered:
		return "🏆"
	default:
		return "•"
	}
}

// TierFor derives the mastery tier from a card's current state. It is a
// pure function of the counters, repetition count, and interval.
func TierFor(c Card) Tier {
	if c.TimesPracticed == 0 {
		return TierNew
	}
	acc := c.Accuracy()
	switch {
	case c.Repetitions >= 5 && acc >= 0.9 && c.IntervalDays >= 21:
		return TierMastered
	case c.Repetitions >= 3 && acc >= 0.75:
		return TierProficient
	case c.Repetitions >= 1:
		return TierLearning
	default:
		return TierNew
	}
}

package spacedrep

import (
	"fmt"
	"math"
	"time"
)

// PassThreshold is the quality rating at or above which a review counts
// as a successful recall. The same threshold gates both the accuracy
// counter and the interval-growth branch; the two are deliberately
// coupled.
const PassThreshold = 3

// ApplyReview runs one SM-2 update for a quality rating in [0,5] and
// returns the updated card. The input card is not modified; the caller
// is responsible for persisting the result.
//
// Quality scale: 5 perfect, 4 correct after hesitation, 3 correct with
// difficulty, 2 wrong but remembered, 1 wrong but familiar, 0 blackout.
func ApplyReview(c Card, quality int, now time.Time) (Card, error) {
	if quality < 0 || quality > 5 {
		return c, fmt.Errorf("%w: got %d", ErrInvalidQuality, quality)
	}

	c.TimesPracticed++
	if quality >= PassThreshold {
		c.TimesCorrect++
	}

	if quality < PassThreshold {
		// Memory lapse restarts the schedule. The easiness factor is
		// retained: residual familiarity still shapes future intervals.
		c.Repetitions = 0
		c.IntervalDays = 1
	} else {
		switch c.Repetitions {
		case 0:
			c.IntervalDays = 1
		case 1:
			c.IntervalDays = 6
		default:
			// Interval grows by the easiness factor as it stood before
			// this review.
			c.IntervalDays = int(math.Round(float64(c.IntervalDays) * c.EasinessFactor))
		}
		c.Repetitions++
	}

	q := float64(quality)
	c.EasinessFactor = math.Max(
		MinEasiness,
		c.EasinessFactor+(0.1-(5-q)*(0.08+(5-q)*0.02)),
	)

	next := now.AddDate(0, 0, c.IntervalDays)
	c.NextReview = &next
	c.Tier = TierFor(c)

	return c, nil
}

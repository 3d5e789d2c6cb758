package spacedrep

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/david1005910/hanyu/internal/vocab"
)

var testWord = vocab.Word{
	Simplified:  "你好",
	Traditional: "你好",
	Pinyin:      "ni3 hao3",
	Definitions: []string{"hello", "hi"},
}

func testNow() time.Time {
	return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
}

func TestApplyReviewEasinessFloor(t *testing.T) {
	for quality := 0; quality <= 5; quality++ {
		card := NewCard(testWord)
		card.EasinessFactor = MinEasiness

		// Repeated low-quality reviews must never push EF below the floor.
		for i := 0; i < 10; i++ {
			var err error
			card, err = ApplyReview(card, quality, testNow())
			if err != nil {
				t.Fatalf("quality %d: %v", quality, err)
			}
			if card.EasinessFactor < MinEasiness {
				t.Fatalf("quality %d: EF %.3f below floor", quality, card.EasinessFactor)
			}
		}
	}
}

func TestApplyReviewFailureResetsSchedule(t *testing.T) {
	for quality := 0; quality < PassThreshold; quality++ {
		card := NewCard(testWord)
		card.Repetitions = 4
		card.IntervalDays = 30
		card.TimesPracticed = 6
		card.TimesCorrect = 6

		got, err := ApplyReview(card, quality, testNow())
		if err != nil {
			t.Fatalf("quality %d: %v", quality, err)
		}
		if got.Repetitions != 0 {
			t.Errorf("quality %d: repetitions = %d, want 0", quality, got.Repetitions)
		}
		if got.IntervalDays != 1 {
			t.Errorf("quality %d: interval = %d, want 1", quality, got.IntervalDays)
		}
		if got.TimesCorrect != 6 {
			t.Errorf("quality %d: times_correct = %d, want unchanged 6", quality, got.TimesCorrect)
		}
		if got.TimesPracticed != 7 {
			t.Errorf("quality %d: times_practiced = %d, want 7", quality, got.TimesPracticed)
		}
	}
}

func TestApplyReviewIntervalProgression(t *testing.T) {
	card := NewCard(testWord)
	now := testNow()

	wantFirst := []int{1, 6}
	for i, want := range wantFirst {
		var err error
		card, err = ApplyReview(card, 4, now)
		if err != nil {
			t.Fatalf("review %d: %v", i+1, err)
		}
		if card.IntervalDays != want {
			t.Fatalf("review %d: interval = %d, want %d", i+1, card.IntervalDays, want)
		}
		now = now.AddDate(0, 0, card.IntervalDays)
	}

	// Beyond the second repetition intervals grow strictly.
	prev := card.IntervalDays
	for i := 0; i < 5; i++ {
		var err error
		card, err = ApplyReview(card, 4, now)
		if err != nil {
			t.Fatalf("growth review %d: %v", i, err)
		}
		if card.IntervalDays <= prev {
			t.Fatalf("interval %d did not grow past %d", card.IntervalDays, prev)
		}
		prev = card.IntervalDays
		now = now.AddDate(0, 0, card.IntervalDays)
	}
}

func TestApplyReviewInvalidQuality(t *testing.T) {
	card := NewCard(testWord)
	card.TimesPracticed = 3

	for _, quality := range []int{-1, 6} {
		for i := 0; i < 2; i++ {
			got, err := ApplyReview(card, quality, testNow())
			if !errors.Is(err, ErrInvalidQuality) {
				t.Fatalf("quality %d: err = %v, want ErrInvalidQuality", quality, err)
			}
			if got.TimesPracticed != 3 {
				t.Errorf("quality %d: times_practiced mutated to %d", quality, got.TimesPracticed)
			}
		}
	}
}

func TestApplyReviewNextReviewDate(t *testing.T) {
	now := testNow()
	card, err := ApplyReview(NewCard(testWord), 5, now)
	if err != nil {
		t.Fatal(err)
	}
	if card.NextReview == nil {
		t.Fatal("next review not set")
	}
	want := now.AddDate(0, 0, 1)
	if !card.NextReview.Equal(want) {
		t.Errorf("next review = %v, want %v", card.NextReview, want)
	}
}

func TestThreePerfectReviews(t *testing.T) {
	card := NewCard(testWord)
	now := testNow()

	var efAfterSecond float64
	for i := 0; i < 3; i++ {
		if i == 2 {
			efAfterSecond = card.EasinessFactor
		}
		var err error
		card, err = ApplyReview(card, 5, now)
		if err != nil {
			t.Fatalf("review %d: %v", i+1, err)
		}
		now = now.AddDate(0, 0, 1)
	}

	if card.Repetitions != 3 {
		t.Errorf("repetitions = %d, want 3", card.Repetitions)
	}
	wantInterval := int(math.Round(6 * efAfterSecond))
	if card.IntervalDays != wantInterval {
		t.Errorf("interval = %d, want %d", card.IntervalDays, wantInterval)
	}
	if card.Tier != TierProficient {
		t.Errorf("tier = %q, want %q", card.Tier, TierProficient)
	}
}

func TestLapseAfterSuccess(t *testing.T) {
	card, err := ApplyReview(NewCard(testWord), 5, testNow())
	if err != nil {
		t.Fatal(err)
	}
	card, err = ApplyReview(card, 1, testNow().AddDate(0, 0, 1))
	if err != nil {
		t.Fatal(err)
	}

	if card.Repetitions != 0 {
		t.Errorf("repetitions = %d, want 0", card.Repetitions)
	}
	if card.IntervalDays != 1 {
		t.Errorf("interval = %d, want 1", card.IntervalDays)
	}
	if card.TimesPracticed != 2 || card.TimesCorrect != 1 {
		t.Errorf("counters = %d/%d, want 1/2", card.TimesCorrect, card.TimesPracticed)
	}
	if card.Tier != TierNew {
		t.Errorf("tier = %q, want %q", card.Tier, TierNew)
	}
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		name string
		card Card
		want Tier
	}{
		{"unpracticed", Card{}, TierNew},
		{"practiced no streak", Card{TimesPracticed: 2, TimesCorrect: 0}, TierNew},
		{"one repetition", Card{TimesPracticed: 1, TimesCorrect: 1, Repetitions: 1}, TierLearning},
		{
			"proficient",
			Card{TimesPracticed: 4, TimesCorrect: 3, Repetitions: 3, IntervalDays: 6},
			TierProficient,
		},
		{
			"mastered",
			Card{TimesPracticed: 10, TimesCorrect: 9, Repetitions: 5, IntervalDays: 21},
			TierMastered,
		},
		{
			"long interval but low accuracy",
			Card{TimesPracticed: 10, TimesCorrect: 7, Repetitions: 5, IntervalDays: 30},
			TierLearning,
		},
		{
			"demoted by failed run",
			Card{TimesPracticed: 8, TimesCorrect: 5, Repetitions: 0, IntervalDays: 1},
			TierNew,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TierFor(tt.card); got != tt.want {
				t.Errorf("TierFor = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCardValidate(t *testing.T) {
	good := Card{Simplified: "水", EasinessFactor: 2.5, TimesPracticed: 2, TimesCorrect: 1}
	if err := good.Validate(); err != nil {
		t.Errorf("valid card rejected: %v", err)
	}

	bad := []Card{
		{Simplified: "水", EasinessFactor: 2.5, IntervalDays: -1},
		{Simplified: "水", EasinessFactor: 2.5, Repetitions: -2},
		{Simplified: "水", EasinessFactor: 2.5, TimesPracticed: 1, TimesCorrect: 2},
		{Simplified: "水", EasinessFactor: 1.0},
		{Simplified: ""},
	}
	for i, c := range bad {
		if err := c.Validate(); err == nil {
			t.Errorf("corrupt card %d accepted", i)
		}
	}
}

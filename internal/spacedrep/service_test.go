package spacedrep

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/david1005910/hanyu/internal/store"
	"github.com/david1005910/hanyu/internal/vocab"
)

// mockCardRepo implements store.CardRepo in memory for service tests.
type mockCardRepo struct {
	cards map[string]*store.CardRecord
	saves int
}

func newMockCardRepo() *mockCardRepo {
	return &mockCardRepo{cards: make(map[string]*store.CardRecord)}
}

func (m *mockCardRepo) Get(_ context.Context, simplified string) (*store.CardRecord, error) {
	rec, ok := m.cards[simplified]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (m *mockCardRepo) Create(_ context.Context, rec *store.CardRecord) error {
	cp := *rec
	m.cards[rec.Simplified] = &cp
	return nil
}

func (m *mockCardRepo) SaveReview(_ context.Context, rec *store.CardRecord) error {
	if _, ok := m.cards[rec.Simplified]; !ok {
		return store.ErrNotFound
	}
	cp := *rec
	m.cards[rec.Simplified] = &cp
	m.saves++
	return nil
}

func (m *mockCardRepo) Due(_ context.Context, now string, limit int) ([]store.CardRecord, error) {
	var due []store.CardRecord
	for _, rec := range m.cards {
		if !rec.NextReview.Valid || rec.NextReview.String <= now {
			due = append(due, *rec)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		// NULL next_review sorts first, then ascending.
		if due[i].NextReview.Valid != due[j].NextReview.Valid {
			return !due[i].NextReview.Valid
		}
		return due[i].NextReview.String < due[j].NextReview.String
	})
	if len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (m *mockCardRepo) CountByLevel(_ context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, rec := range m.cards {
		counts[rec.MasteryLevel]++
	}
	return counts, nil
}

func (m *mockCardRepo) Count(_ context.Context) (int, error) {
	return len(m.cards), nil
}

func TestSubmitReviewUnknownWord(t *testing.T) {
	svc := NewService(newMockCardRepo())

	_, err := svc.SubmitReview(context.Background(), "不知道", 5, testNow())
	if !errors.Is(err, ErrWordNotFound) {
		t.Fatalf("err = %v, want ErrWordNotFound", err)
	}
}

func TestPracticeCreatesCard(t *testing.T) {
	repo := newMockCardRepo()
	svc := NewService(repo)
	ctx := context.Background()

	res, err := svc.Practice(ctx, testWord, 5, testNow())
	if err != nil {
		t.Fatal(err)
	}
	if res.IntervalDays != 1 {
		t.Errorf("interval = %d, want 1", res.IntervalDays)
	}
	if res.Tier != TierLearning {
		t.Errorf("tier = %q, want %q", res.Tier, TierLearning)
	}

	rec, ok := repo.cards["你好"]
	if !ok {
		t.Fatal("card not created")
	}
	if rec.TimesPracticed != 1 || rec.TimesCorrect != 1 {
		t.Errorf("counters = %d/%d, want 1/1", rec.TimesCorrect, rec.TimesPracticed)
	}
	if rec.Definitions != "hello, hi" {
		t.Errorf("definitions = %q", rec.Definitions)
	}
}

func TestSubmitReviewDeterministic(t *testing.T) {
	now := testNow()
	run := func() *ReviewResult {
		repo := newMockCardRepo()
		svc := NewService(repo)
		ctx := context.Background()
		if _, err := svc.Practice(ctx, testWord, 5, now); err != nil {
			t.Fatal(err)
		}
		res, err := svc.SubmitReview(ctx, "你好", 4, now.AddDate(0, 0, 1))
		if err != nil {
			t.Fatal(err)
		}
		return res
	}

	a, b := run(), run()
	if *a != *b {
		t.Errorf("identical inputs produced different results: %+v vs %+v", a, b)
	}
}

func TestSubmitReviewPersistsRoundedEasiness(t *testing.T) {
	repo := newMockCardRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.Practice(ctx, testWord, 3, testNow()); err != nil {
		t.Fatal(err)
	}
	res, err := svc.SubmitReview(ctx, "你好", 3, testNow().AddDate(0, 0, 1))
	if err != nil {
		t.Fatal(err)
	}

	// Two q=3 reviews from 2.5: each subtracts 0.14.
	if res.EasinessFactor != 2.22 {
		t.Errorf("easiness = %v, want 2.22", res.EasinessFactor)
	}
	// The stored value keeps full precision.
	if got := repo.cards["你好"].EasinessFactor; got >= 2.2205 || got <= 2.2195 {
		t.Errorf("stored easiness = %v", got)
	}
}

func TestSubmitReviewRejectsCorruptRow(t *testing.T) {
	repo := newMockCardRepo()
	repo.cards["坏"] = &store.CardRecord{
		Simplified:     "坏",
		EasinessFactor: 2.5,
		IntervalDays:   -3,
		FirstLearned:   store.FormatTime(testNow()),
		MasteryLevel:   "learning",
	}
	svc := NewService(repo)

	_, err := svc.SubmitReview(context.Background(), "坏", 4, testNow())
	if err == nil {
		t.Fatal("corrupt row accepted")
	}
	if repo.saves != 0 {
		t.Errorf("corrupt row was persisted")
	}
}

func TestDueQueueOrdering(t *testing.T) {
	repo := newMockCardRepo()
	svc := NewService(repo)
	ctx := context.Background()
	now := testNow()

	// Practiced yesterday, due today.
	if _, err := svc.Practice(ctx, testWord, 5, now.AddDate(0, 0, -1)); err != nil {
		t.Fatal(err)
	}
	// Practiced three days ago, overdue.
	older := vocab.Word{Simplified: "水", Pinyin: "shui3", Definitions: []string{"water"}}
	if _, err := svc.Practice(ctx, older, 5, now.AddDate(0, 0, -3)); err != nil {
		t.Fatal(err)
	}
	// Never scheduled: sorts first.
	repo.cards["茶"] = &store.CardRecord{
		Simplified:     "茶",
		Pinyin:         "cha2",
		Definitions:    "tea",
		EasinessFactor: 2.5,
		FirstLearned:   store.FormatTime(now),
		MasteryLevel:   "new",
	}

	queue, err := svc.DueQueue(ctx, 10, now)
	if err != nil {
		t.Fatal(err)
	}
	if len(queue) != 3 {
		t.Fatalf("queue length = %d, want 3", len(queue))
	}
	wantOrder := []string{"茶", "水", "你好"}
	for i, want := range wantOrder {
		if queue[i].Simplified != want {
			t.Errorf("queue[%d] = %q, want %q", i, queue[i].Simplified, want)
		}
	}
}

func TestDueQueueExcludesFuture(t *testing.T) {
	repo := newMockCardRepo()
	svc := NewService(repo)
	ctx := context.Background()
	now := testNow()

	if _, err := svc.Practice(ctx, testWord, 5, now); err != nil {
		t.Fatal(err)
	}

	queue, err := svc.DueQueue(ctx, 10, now.Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if len(queue) != 0 {
		t.Fatalf("queue length = %d, want 0 (next review is tomorrow)", len(queue))
	}
}

func TestStats(t *testing.T) {
	repo := newMockCardRepo()
	svc := NewService(repo)
	ctx := context.Background()
	now := testNow()

	if _, err := svc.Practice(ctx, testWord, 5, now.AddDate(0, 0, -2)); err != nil {
		t.Fatal(err)
	}
	older := vocab.Word{Simplified: "水", Definitions: []string{"water"}}
	if _, err := svc.Practice(ctx, older, 2, now.AddDate(0, 0, -2)); err != nil {
		t.Fatal(err)
	}

	stats, err := svc.Stats(ctx, now)
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalWords != 2 {
		t.Errorf("total = %d, want 2", stats.TotalWords)
	}
	if stats.ByTier[TierLearning] != 1 || stats.ByTier[TierNew] != 1 {
		t.Errorf("by tier = %v", stats.ByTier)
	}
	if stats.DueNow != 2 {
		t.Errorf("due = %d, want 2", stats.DueNow)
	}
}

package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testNow() time.Time {
	return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
}

func newCard(simplified string) *CardRecord {
	return &CardRecord{
		Simplified:     simplified,
		Pinyin:         "pīn",
		Definitions:    "test word",
		FirstLearned:   FormatTime(testNow()),
		MasteryLevel:   "new",
		EasinessFactor: 2.5,
	}
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil database handle")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is not asserted here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		if err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got); err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestCardCreateGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	cards := s.Cards()

	if _, err := cards.Get(ctx, "你好"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	rec := newCard("你好")
	if err := cards.Create(ctx, rec); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.WordID == 0 {
		t.Error("create did not set WordID")
	}

	got, err := cards.Get(ctx, "你好")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.EasinessFactor != 2.5 || got.MasteryLevel != "new" {
		t.Errorf("got %+v", got)
	}
	if got.NextReview.Valid {
		t.Error("new card has a next_review")
	}
}

func TestCardCreateBumpsWordsLearned(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Progress().Init(ctx); err != nil {
		t.Fatalf("init progress: %v", err)
	}
	if err := s.Cards().Create(ctx, newCard("水")); err != nil {
		t.Fatalf("create: %v", err)
	}

	prog, err := s.Progress().Get(ctx)
	if err != nil {
		t.Fatalf("get progress: %v", err)
	}
	if prog.TotalWordsLearnt != 1 {
		t.Errorf("total_words_learned = %d, want 1", prog.TotalWordsLearnt)
	}
}

func TestCardSaveReview(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	cards := s.Cards()

	if err := cards.SaveReview(ctx, newCard("幽灵")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("save on missing card: %v", err)
	}

	rec := newCard("你好")
	if err := cards.Create(ctx, rec); err != nil {
		t.Fatalf("create: %v", err)
	}

	rec.TimesPracticed = 1
	rec.TimesCorrect = 1
	rec.Repetitions = 1
	rec.IntervalDays = 1
	rec.MasteryLevel = "learning"
	rec.LastPracticed.Valid = true
	rec.LastPracticed.String = FormatTime(testNow())
	rec.NextReview.Valid = true
	rec.NextReview.String = FormatTime(testNow().AddDate(0, 0, 1))
	if err := cards.SaveReview(ctx, rec); err != nil {
		t.Fatalf("save review: %v", err)
	}

	got, err := cards.Get(ctx, "你好")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Repetitions != 1 || got.MasteryLevel != "learning" || !got.NextReview.Valid {
		t.Errorf("review not persisted: %+v", got)
	}
}

func TestDueOrdering(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	cards := s.Cards()
	now := testNow()

	// 茶 never reviewed, 水 overdue, 你好 due later today, 猫 future.
	for _, fixture := range []struct {
		word string
		next string
	}{
		{"茶", ""},
		{"水", FormatTime(now.AddDate(0, 0, -3))},
		{"你好", FormatTime(now.Add(-time.Hour))},
		{"猫", FormatTime(now.AddDate(0, 0, 5))},
	} {
		rec := newCard(fixture.word)
		if err := cards.Create(ctx, rec); err != nil {
			t.Fatalf("create %s: %v", fixture.word, err)
		}
		if fixture.next != "" {
			rec.NextReview.Valid = true
			rec.NextReview.String = fixture.next
			if err := cards.SaveReview(ctx, rec); err != nil {
				t.Fatalf("save %s: %v", fixture.word, err)
			}
		}
	}

	due, err := cards.Due(ctx, FormatTime(now), 10)
	if err != nil {
		t.Fatalf("due: %v", err)
	}

	var order []string
	for _, rec := range due {
		order = append(order, rec.Simplified)
	}
	want := []string{"茶", "水", "你好"}
	if len(order) != len(want) {
		t.Fatalf("due = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("due = %v, want %v", order, want)
		}
	}

	limited, err := cards.Due(ctx, FormatTime(now), 2)
	if err != nil {
		t.Fatalf("due limited: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limit ignored: got %d cards", len(limited))
	}
}

func TestCountByLevel(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	cards := s.Cards()

	for _, w := range []string{"一", "二", "三"} {
		if err := cards.Create(ctx, newCard(w)); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	counts, err := cards.CountByLevel(ctx)
	if err != nil {
		t.Fatalf("count by level: %v", err)
	}
	if counts["new"] != 3 {
		t.Errorf("counts = %v", counts)
	}

	n, err := cards.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 3 {
		t.Errorf("count = %d, want 3", n)
	}
}

func TestSessionCloseExactlyOnce(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	sessions := s.Sessions()

	if err := s.Progress().Init(ctx); err != nil {
		t.Fatalf("init progress: %v", err)
	}

	id, err := sessions.Start(ctx, 2, SessionQuiz, FormatTime(testNow()))
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	score := 85.0
	end := FormatTime(testNow().Add(20 * time.Minute))
	if err := sessions.Close(ctx, id, 5, &score, end); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Second close and unknown id both fail the same way.
	if err := sessions.Close(ctx, id, 5, &score, end); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("double close: %v", err)
	}
	if err := sessions.Close(ctx, "nope", 0, nil, end); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("unknown id close: %v", err)
	}

	got, err := sessions.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.EndTime.Valid || got.WordsLearned != 5 || !got.QuizScore.Valid || got.QuizScore.Float64 != 85 {
		t.Errorf("session = %+v", got)
	}

	prog, err := s.Progress().Get(ctx)
	if err != nil {
		t.Fatalf("get progress: %v", err)
	}
	if prog.TotalSessions != 1 || prog.BestQuizScore != 85 {
		t.Errorf("progress = %+v", prog)
	}
}

func TestRecentQuizScores(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	sessions := s.Sessions()

	if err := s.Progress().Init(ctx); err != nil {
		t.Fatalf("init progress: %v", err)
	}

	// Two scored quizzes, then a newer session with no score at all.
	for i, score := range []*float64{ptr(60.0), ptr(90.0), nil} {
		start := testNow().Add(time.Duration(i) * time.Hour)
		id, err := sessions.Start(ctx, i+1, SessionQuiz, FormatTime(start))
		if err != nil {
			t.Fatalf("start %d: %v", i, err)
		}
		if err := sessions.Close(ctx, id, 0, score, FormatTime(start.Add(10*time.Minute))); err != nil {
			t.Fatalf("close %d: %v", i, err)
		}
	}

	scores, err := sessions.RecentQuizScores(ctx, 5)
	if err != nil {
		t.Fatalf("recent scores: %v", err)
	}
	// Newest first, unscored sessions skipped.
	if len(scores) != 2 || scores[0] != 90 || scores[1] != 60 {
		t.Errorf("scores = %v", scores)
	}

	scores, err = sessions.RecentQuizScores(ctx, 1)
	if err != nil {
		t.Fatalf("recent scores limit: %v", err)
	}
	if len(scores) != 1 || scores[0] != 90 {
		t.Errorf("limited scores = %v", scores)
	}
}

func ptr(f float64) *float64 { return &f }

func TestProgressXPAndStreak(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	progress := s.Progress()

	if err := progress.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	// Init again is a no-op.
	if err := progress.Init(ctx); err != nil {
		t.Fatalf("re-init: %v", err)
	}

	total, err := progress.AddXP(ctx, 30)
	if err != nil {
		t.Fatalf("add xp: %v", err)
	}
	if total != 30 {
		t.Errorf("total = %d, want 30", total)
	}
	total, err = progress.AddXP(ctx, 80)
	if err != nil {
		t.Fatalf("add xp: %v", err)
	}
	if total != 110 {
		t.Errorf("total = %d, want 110", total)
	}

	if err := progress.SetLevel(ctx, 2); err != nil {
		t.Fatalf("set level: %v", err)
	}
	if err := progress.SetStreak(ctx, 3, 5, "2025-03-10"); err != nil {
		t.Fatalf("set streak: %v", err)
	}

	prog, err := progress.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if prog.TotalXP != 110 || prog.Level != 2 {
		t.Errorf("progress = %+v", prog)
	}
	if prog.CurrentStreak != 3 || prog.LongestStreak != 5 || prog.LastStudyDate.String != "2025-03-10" {
		t.Errorf("streak = %+v", prog)
	}
}

func TestAchievementSeedAndUnlock(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	achievements := s.Achievements()

	entries := []AchievementRecord{
		{ID: "first_word", Name: "First Step", Category: "words", Requirement: 1, Icon: "🌱"},
		{ID: "streak_3", Name: "Steady Learner", Category: "streak", Requirement: 3, Icon: "🔥"},
	}
	if err := achievements.Seed(ctx, entries); err != nil {
		t.Fatalf("seed: %v", err)
	}

	at := FormatTime(testNow())
	if err := achievements.Unlock(ctx, "first_word", at); err != nil {
		t.Fatalf("unlock: %v", err)
	}

	// Re-seeding must not reset unlock state.
	if err := achievements.Seed(ctx, entries); err != nil {
		t.Fatalf("re-seed: %v", err)
	}

	// A later unlock keeps the original timestamp.
	later := FormatTime(testNow().AddDate(0, 0, 1))
	if err := achievements.Unlock(ctx, "first_word", later); err != nil {
		t.Fatalf("re-unlock: %v", err)
	}

	all, err := achievements.All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d achievements, want 2", len(all))
	}
	for _, rec := range all {
		switch rec.ID {
		case "first_word":
			if !rec.Unlocked || rec.UnlockedAt.String != at {
				t.Errorf("first_word = %+v", rec)
			}
		case "streak_3":
			if rec.Unlocked {
				t.Errorf("streak_3 unexpectedly unlocked")
			}
		}
	}
}

func TestHistoryRecording(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	history := s.History()
	now := testNow()

	sessionID, err := s.Sessions().Start(ctx, 0, SessionConversation, FormatTime(now))
	if err != nil {
		t.Fatalf("start session: %v", err)
	}

	for _, score := range []int{60, 80, 100} {
		if err := history.RecordPronunciation(ctx, sessionID, "你好", score, "ni hao", FormatTime(now)); err != nil {
			t.Fatalf("record pronunciation: %v", err)
		}
	}
	// Outside the 7-day window.
	if err := history.RecordPronunciation(ctx, sessionID, "你好", 0, "", FormatTime(now.AddDate(0, 0, -10))); err != nil {
		t.Fatalf("record old pronunciation: %v", err)
	}

	avg, count, err := history.AveragePronunciation(ctx, FormatTime(now.AddDate(0, 0, -7)))
	if err != nil {
		t.Fatalf("average: %v", err)
	}
	if count != 3 || avg != 80 {
		t.Errorf("avg = %v count = %d, want 80 / 3", avg, count)
	}

	turn := ConversationTurn{
		SessionID:   sessionID,
		TurnNumber:  1,
		UserMessage: "你好！",
		AIResponse:  "你好！你叫什么名字？",
		Timestamp:   FormatTime(now),
	}
	if err := history.RecordConversationTurn(ctx, turn); err != nil {
		t.Fatalf("record turn: %v", err)
	}
	n, err := history.ConversationTurnCount(ctx, sessionID)
	if err != nil {
		t.Fatalf("turn count: %v", err)
	}
	if n != 1 {
		t.Errorf("turn count = %d, want 1", n)
	}
}

func TestStatisticsAggregate(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := testNow()

	if err := s.Progress().Init(ctx); err != nil {
		t.Fatalf("init progress: %v", err)
	}

	// One mastered card, one new.
	mastered := newCard("你好")
	if err := s.Cards().Create(ctx, mastered); err != nil {
		t.Fatalf("create: %v", err)
	}
	mastered.MasteryLevel = "mastered"
	if err := s.Cards().SaveReview(ctx, mastered); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Cards().Create(ctx, newCard("水")); err != nil {
		t.Fatalf("create: %v", err)
	}

	// A 30-minute quiz session scoring 90.
	id, err := s.Sessions().Start(ctx, 0, SessionQuiz, FormatTime(now))
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	score := 90.0
	if err := s.Sessions().Close(ctx, id, 2, &score, FormatTime(now.Add(30*time.Minute))); err != nil {
		t.Fatalf("close: %v", err)
	}

	if err := s.Progress().SetStreak(ctx, 4, 6, "2025-03-10"); err != nil {
		t.Fatalf("set streak: %v", err)
	}

	stats, err := s.Statistics(ctx, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	if stats.TotalWordsLearned != 2 || stats.MasteredWords != 1 {
		t.Errorf("word counts = %+v", stats)
	}
	if stats.TotalStudyMinutes != 30 {
		t.Errorf("study minutes = %d, want 30", stats.TotalStudyMinutes)
	}
	if stats.AverageQuizScore != 90 || stats.BestQuizScore != 90 {
		t.Errorf("quiz scores = %+v", stats)
	}
	if stats.TotalSessions != 1 || stats.CurrentStreak != 4 {
		t.Errorf("sessions/streak = %+v", stats)
	}
}

package quiz

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func newTestEngine(t *testing.T) (*Engine, Store) {
	t.Helper()
	store := NewInMemoryStore()
	ctx := context.Background()
	if err := store.PutCategory(ctx, Category{
		ID: "cat1", Name: "Networking", AllowedRoles: []string{"student"},
	}); err != nil {
		t.Fatal(err)
	}
	if err := store.PutQuestions(ctx, sampleQuestions(5)); err != nil {
		t.Fatal(err)
	}
	clock := func() time.Time { return time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC) }
	return NewEngineWithClock(store, store, store, store, clock), store
}

func TestGetDeliverableQuizGating(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	if _, err := engine.GetDeliverableQuiz(ctx, "cat1", Principal{"alice", "teacher"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("unlisted role: got %v, want ErrForbidden", err)
	}
	if _, err := engine.GetDeliverableQuiz(ctx, "cat1", Principal{"alice", "student"}); err != nil {
		t.Fatalf("listed role rejected: %v", err)
	}
	if _, err := engine.GetDeliverableQuiz(ctx, "cat1", Principal{"root", RoleSuperAdmin}); err != nil {
		t.Fatalf("super admin rejected: %v", err)
	}
	if _, err := engine.GetDeliverableQuiz(ctx, "nope", Principal{"alice", "student"}); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("unknown category: got %v, want ErrCategoryNotFound", err)
	}
}

// A submission must be gated even if delivery was never attempted: clients
// can forge submissions.
func TestSubmitQuizGating(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	if _, err := engine.SubmitQuiz(ctx, "cat1", Principal{"mallory", "teacher"}, nil, 0); !errors.Is(err, ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}
	if _, err := engine.SubmitQuiz(ctx, "ghost", Principal{"alice", "student"}, nil, 0); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("got %v, want ErrCategoryNotFound", err)
	}
}

func TestSubmitQuizGradesPersistsAndFolds(t *testing.T) {
	engine, store := newTestEngine(t)
	ctx := context.Background()
	p := Principal{"alice", "student"}

	answers := []Answer{
		{QuestionID: "q0", Value: "alpha"}, // correct
		{QuestionID: "q1", Value: 0},       // correct (options unshuffled in store)
		{QuestionID: "q2", Value: "bravo"}, // wrong
		{QuestionID: "missing", Value: 1},  // skipped
	}
	res, err := engine.SubmitQuiz(ctx, "cat1", p, answers, 77)
	if err != nil {
		t.Fatal(err)
	}
	if res.TotalQuestions != 3 || res.CorrectAnswers != 2 || res.WrongAnswers != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Percentage != 66.67 {
		t.Fatalf("percentage=%v, want 66.67", res.Percentage)
	}
	if res.ID == "" || res.CategoryName != "Networking" || res.TimeSpentSeconds != 77 {
		t.Fatalf("identity fields missing: %+v", res)
	}

	stored, err := store.ListResults(ctx, "alice", "cat1")
	if err != nil || len(stored) != 1 {
		t.Fatalf("result not persisted: %v %v", stored, err)
	}
	st, ok, err := store.GetStat(ctx, "cat1", "alice")
	if err != nil || !ok {
		t.Fatalf("stat not folded: %v %v", ok, err)
	}
	if st.TestCount != 1 || st.TotalCorrectAnswers != 2 || st.TotalQuestions != 3 {
		t.Fatalf("unexpected stat: %+v", st)
	}
}

// Partial submissions are scored over what was sent, not the category size.
func TestSubmitQuizPartialDenominator(t *testing.T) {
	engine, _ := newTestEngine(t)
	res, err := engine.SubmitQuiz(context.Background(), "cat1", Principal{"alice", "student"},
		[]Answer{{QuestionID: "q0", Value: "alpha"}}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.TotalQuestions != 1 || res.Percentage != 100 {
		t.Fatalf("partial submission scored over the wrong denominator: %+v", res)
	}
}

func TestSubmitQuizEmptySubmission(t *testing.T) {
	engine, _ := newTestEngine(t)
	res, err := engine.SubmitQuiz(context.Background(), "cat1", Principal{"alice", "student"}, nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.TotalQuestions != 0 || res.Percentage != 0 {
		t.Fatalf("empty submission: %+v", res)
	}
}

func TestConcurrentSubmissionsSameKey(t *testing.T) {
	engine, store := newTestEngine(t)
	ctx := context.Background()
	p := Principal{"alice", "student"}

	const n = 20
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := engine.SubmitQuiz(ctx, "cat1", p,
				[]Answer{{QuestionID: "q0", Value: "alpha"}, {QuestionID: "q1", Value: "bravo"}}, 0)
			if err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	st, ok, err := store.GetStat(ctx, "cat1", "alice")
	if err != nil || !ok {
		t.Fatalf("stat missing: %v %v", ok, err)
	}
	// no lost updates: every fold must land
	if st.TestCount != n || st.TotalCorrectAnswers != n || st.TotalQuestions != 2*n {
		t.Fatalf("lost update: %+v", st)
	}
}

func TestGetStatisticsSortedDescending(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	submit := func(user string, answers []Answer) {
		t.Helper()
		if _, err := engine.SubmitQuiz(ctx, "cat1", Principal{user, "student"}, answers, 0); err != nil {
			t.Fatal(err)
		}
	}
	submit("low", []Answer{{QuestionID: "q0", Value: "bravo"}, {QuestionID: "q1", Value: "alpha"}})
	submit("high", []Answer{{QuestionID: "q0", Value: "alpha"}, {QuestionID: "q1", Value: "alpha"}})
	submit("mid", []Answer{{QuestionID: "q0", Value: "alpha"}, {QuestionID: "q1", Value: "bravo"}})

	stats, err := engine.GetStatistics(ctx, "cat1", Principal{"root", RoleSuperAdmin})
	if err != nil {
		t.Fatal(err)
	}
	if len(stats) != 3 {
		t.Fatalf("got %d stats, want 3", len(stats))
	}
	for i := 1; i < len(stats); i++ {
		if stats[i-1].AveragePercentage < stats[i].AveragePercentage {
			t.Fatalf("not sorted descending: %+v", stats)
		}
	}
	if stats[0].Username != "high" || stats[2].Username != "low" {
		t.Fatalf("unexpected order: %v %v %v", stats[0].Username, stats[1].Username, stats[2].Username)
	}

	if _, err := engine.GetStatistics(ctx, "cat1", Principal{"x", "teacher"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("statistics not gated: %v", err)
	}
}

// Equal averages keep first-fold order.
func TestGetStatisticsStableTies(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()
	for _, user := range []string{"first", "second", "third"} {
		if _, err := engine.SubmitQuiz(ctx, "cat1", Principal{user, "student"},
			[]Answer{{QuestionID: "q0", Value: "alpha"}}, 0); err != nil {
			t.Fatal(err)
		}
	}
	stats, err := engine.GetStatistics(ctx, "cat1", Principal{"root", RoleSuperAdmin})
	if err != nil {
		t.Fatal(err)
	}
	got := []string{stats[0].Username, stats[1].Username, stats[2].Username}
	want := []string{"first", "second", "third"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tie order not stable: got %v", got)
		}
	}
}

func TestDeliveryStableWithinDayThroughEngine(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()
	p := Principal{"alice", "student"}

	a, err := engine.GetDeliverableQuiz(ctx, "cat1", p)
	if err != nil {
		t.Fatal(err)
	}
	b, err := engine.GetDeliverableQuiz(ctx, "cat1", p)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Fatal("question order changed between calls on the same day")
		}
	}
}

package quiz

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Engine implements quiz delivery, grading and statistics over the
// persistence collaborator. It is stateless per call except for the
// read-modify-write on stats, which it serializes per (category, user) key.
type Engine struct {
	questions  QuestionStore
	categories CategoryStore
	results    ResultStore
	stats      StatsStore

	now func() time.Time

	mu    sync.Mutex
	folds map[string]*sync.Mutex
}

func NewEngine(questions QuestionStore, categories CategoryStore, results ResultStore, stats StatsStore) *Engine {
	return &Engine{
		questions:  questions,
		categories: categories,
		results:    results,
		stats:      stats,
		now:        time.Now,
		folds:      map[string]*sync.Mutex{},
	}
}

// NewEngineWithClock allows deterministic timestamps (and shuffle days) in tests.
func NewEngineWithClock(questions QuestionStore, categories CategoryStore, results ResultStore, stats StatsStore, now func() time.Time) *Engine {
	e := NewEngine(questions, categories, results, stats)
	e.now = now
	return e
}

// GetDeliverableQuiz gates the category against the principal's role and
// returns today's shuffled, answer-stripped question set. An empty category
// yields an empty set, not an error.
func (e *Engine) GetDeliverableQuiz(ctx context.Context, categoryID string, p Principal) ([]DeliveredQuestion, error) {
	cat, err := e.categories.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if !CanAccess(cat, p.Role) {
		return nil, ErrForbidden
	}
	qs, err := e.questions.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return Deliver(qs, p.Username, categoryID, e.now()), nil
}

// SubmitQuiz re-checks access (a submission can be forged without ever
// fetching the quiz), grades every answer, persists the result and folds it
// into the running statistics. Category and access failures abort before
// anything is persisted; per-answer problems degrade to incorrect/skip.
func (e *Engine) SubmitQuiz(ctx context.Context, categoryID string, p Principal, answers []Answer, timeSpentSeconds int) (Result, error) {
	cat, err := e.categories.GetCategory(ctx, categoryID)
	if err != nil {
		return Result{}, err
	}
	if !CanAccess(cat, p.Role) {
		return Result{}, ErrForbidden
	}
	byID, err := e.questions.Lookup(ctx, categoryID)
	if err != nil {
		return Result{}, err
	}

	correct, wrong := GradeAll(byID, answers)
	res := Summarize(correct, wrong, timeSpentSeconds)
	res.ID = uuid.NewString()
	res.Username = p.Username
	res.UserRole = p.Role
	res.CategoryID = cat.ID
	res.CategoryName = cat.Name
	res.SubmittedAt = e.now()

	stored, err := e.results.AppendResult(ctx, res)
	if err != nil {
		return Result{}, err
	}
	if err := e.foldStat(ctx, categoryID, stored); err != nil {
		return Result{}, err
	}
	return stored, nil
}

// GetStatistics returns a category's per-user aggregates sorted by average
// percentage descending. Ties keep insertion order (stable sort).
func (e *Engine) GetStatistics(ctx context.Context, categoryID string, p Principal) ([]CategoryUserStat, error) {
	cat, err := e.categories.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if !CanAccess(cat, p.Role) {
		return nil, ErrForbidden
	}
	stats, err := e.stats.ListStats(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].AveragePercentage > stats[j].AveragePercentage
	})
	return stats, nil
}

// foldStat serializes the read-modify-write per (category, user) key so two
// concurrent submissions by the same user cannot both read the same prior
// stat and overwrite each other.
func (e *Engine) foldStat(ctx context.Context, categoryID string, r Result) error {
	lock := e.foldLock(categoryID + "\x00" + r.Username)
	lock.Lock()
	defer lock.Unlock()

	prev, ok, err := e.stats.GetStat(ctx, categoryID, r.Username)
	if err != nil {
		return err
	}
	next := Fold(prev, ok, r, e.now())
	return e.stats.PutStat(ctx, categoryID, r.Username, next)
}

func (e *Engine) foldLock(key string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.folds[key]
	if !ok {
		l = &sync.Mutex{}
		e.folds[key] = l
	}
	return l
}

package quiz

import "context"

// Narrow collaborator contracts. The engine depends only on these; the
// HTTP layer uses the combined Store.

type QuestionStore interface {
	// ListByCategory returns the category's questions in stored order.
	ListByCategory(ctx context.Context, categoryID string) ([]Question, error)
	// Lookup returns the category's questions keyed by ID, for grading.
	Lookup(ctx context.Context, categoryID string) (map[string]Question, error)
}

type CategoryStore interface {
	GetCategory(ctx context.Context, id string) (Category, error)
}

type ResultStore interface {
	// AppendResult persists a finished result, assigning ID and timestamp
	// if unset, and returns the stored record.
	AppendResult(ctx context.Context, r Result) (Result, error)
}

type StatsStore interface {
	// GetStat reports the running aggregate for (categoryID, username),
	// with ok=false when no result has been folded yet.
	GetStat(ctx context.Context, categoryID, username string) (CategoryUserStat, bool, error)
	PutStat(ctx context.Context, categoryID, username string, s CategoryUserStat) error
	// ListStats returns a category's aggregates in insertion order.
	ListStats(ctx context.Context, categoryID string) ([]CategoryUserStat, error)
}

type UserStore interface {
	GetUser(ctx context.Context, id string) (User, error)
	GetUserByUsername(ctx context.Context, username string) (User, error)
	CreateUser(ctx context.Context, u User) error
	ListUsers(ctx context.Context) ([]User, error)
	UpdateUserRole(ctx context.Context, id, role string) (User, error)
	DeleteUser(ctx context.Context, id string) error
}

// Store is the full persistence collaborator: the engine's narrow views
// plus the administrative surface. Implemented by the in-memory store and
// the SQL store.
type Store interface {
	QuestionStore
	CategoryStore
	ResultStore
	StatsStore
	UserStore

	ListCategories(ctx context.Context) ([]Category, error)
	PutCategory(ctx context.Context, c Category) error
	// DeleteCategory removes the category with its questions and stats.
	DeleteCategory(ctx context.Context, id string) error
	CountQuestions(ctx context.Context, categoryID string) (int, error)

	PutQuestions(ctx context.Context, qs []Question) error
	UpdateQuestion(ctx context.Context, q Question) error
	DeleteQuestion(ctx context.Context, id string) error

	// ListResults returns results newest-first, optionally filtered by
	// username and/or category (empty string means no filter).
	ListResults(ctx context.Context, username, categoryID string) ([]Result, error)
}

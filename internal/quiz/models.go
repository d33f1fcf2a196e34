package quiz

import "time"

// Question is the stored, canonical form of a quiz question. CorrectAnswer
// is expected to be one of Options; grading tolerates violations.
type Question struct {
	ID            string    `json:"id"`
	CategoryID    string    `json:"categoryId"`
	Text          string    `json:"question"`
	Options       []string  `json:"options"`
	CorrectAnswer string    `json:"correctAnswer"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
}

// Category is a named, role-gated grouping of questions. An empty
// AllowedRoles set means nobody but super_admin can take it.
type Category struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	AllowedRoles []string  `json:"allowedRoles"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}

// DeliveredQuestion is the answer-stripped, shuffled view sent to a
// test-taker. It never carries the correct answer.
type DeliveredQuestion struct {
	ID      string   `json:"id"`
	Text    string   `json:"question"`
	Options []string `json:"options"`
}

// Answer is a single submitted answer. Value is either a zero-based option
// index (JSON number) or the option text (JSON string).
type Answer struct {
	QuestionID string      `json:"questionId"`
	Value      interface{} `json:"answer"`
}

// GradeVerdict is the outcome of grading one answer.
type GradeVerdict struct {
	QuestionID        string `json:"questionId"`
	IsCorrect         bool   `json:"isCorrect"`
	UserAnswerText    string `json:"userAnswer"`
	CorrectAnswerText string `json:"correctAnswer"`
}

// WrongAnswer is the reviewable record kept for each incorrect answer.
type WrongAnswer struct {
	Question      string `json:"question"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
}

// Result is one graded submission. Append-only; never mutated after creation.
type Result struct {
	ID               string        `json:"id"`
	Username         string        `json:"username"`
	UserRole         string        `json:"userRole,omitempty"`
	CategoryID       string        `json:"categoryId"`
	CategoryName     string        `json:"categoryName"`
	TotalQuestions   int           `json:"totalQuestions"`
	CorrectAnswers   int           `json:"correctAnswers"`
	WrongAnswers     int           `json:"wrongAnswers"`
	Percentage       float64       `json:"percentage"`
	TimeSpentSeconds int           `json:"timeSpent"`
	WrongDetails     []WrongAnswer `json:"wrongDetails"`
	SubmittedAt      time.Time     `json:"submittedAt"`
}

// CategoryUserStat is the running per-user aggregate for one category,
// keyed by (categoryID, username) in the store.
type CategoryUserStat struct {
	Username            string    `json:"username"`
	TotalCorrectAnswers int       `json:"totalCorrectAnswers"`
	TotalQuestions      int       `json:"totalQuestions"`
	TestCount           int       `json:"testCount"`
	AveragePercentage   float64   `json:"averagePercentage"`
	LastUpdated         time.Time `json:"lastUpdated"`
}

// User is an account row. PasswordHash never leaves the store layer's
// callers; API responses use views that omit it.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Principal is the authenticated actor making a request, as attested by
// the auth collaborator. The engine trusts it as-is.
type Principal struct {
	Username string
	Role     string
}

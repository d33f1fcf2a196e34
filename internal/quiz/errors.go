package quiz

import "errors"

var (
	// ErrCategoryNotFound is returned when the requested category does not exist.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrQuestionNotFound is returned by admin mutations on unknown question IDs.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrUserNotFound is returned by user lookups and admin user mutations.
	ErrUserNotFound = errors.New("user not found")
	// ErrForbidden is returned when the principal's role may not access the category.
	ErrForbidden = errors.New("role not permitted for category")
	// ErrUsernameTaken is returned when registering an already-existing username.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrAnswerNotInOptions is returned when a question's correct answer is
	// missing from its option list at create/update time.
	ErrAnswerNotInOptions = errors.New("correct answer not present in options")
)

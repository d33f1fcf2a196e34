package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"quiz-system/internal/quiz"
)

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// writeDomainErr maps engine/store sentinels to status codes. Anything
// unrecognized is an opaque persistence failure.
func writeDomainErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, quiz.ErrCategoryNotFound),
		errors.Is(err, quiz.ErrQuestionNotFound),
		errors.Is(err, quiz.ErrUserNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, quiz.ErrForbidden):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, quiz.ErrUsernameTaken),
		errors.Is(err, quiz.ErrAnswerNotInOptions):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

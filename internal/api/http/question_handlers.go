package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"quiz-system/internal/quiz"
)

type questionPayload struct {
	Text          string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

func (p questionPayload) validate() error {
	for _, o := range p.Options {
		if o == p.CorrectAnswer {
			return nil
		}
	}
	return quiz.ErrAnswerNotInOptions
}

// POST /questions (super_admin) — batch create for one category.
func CreateQuestionsHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			CategoryID string            `json:"categoryId"`
			Questions  []questionPayload `json:"questions"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if _, err := store.GetCategory(r.Context(), req.CategoryID); err != nil {
			writeDomainErr(w, err)
			return
		}
		qs := make([]quiz.Question, 0, len(req.Questions))
		for _, p := range req.Questions {
			if err := p.validate(); err != nil {
				writeDomainErr(w, err)
				return
			}
			qs = append(qs, quiz.Question{
				ID:            uuid.NewString(),
				CategoryID:    req.CategoryID,
				Text:          p.Text,
				Options:       p.Options,
				CorrectAnswer: p.CorrectAnswer,
				CreatedAt:     time.Now(),
			})
		}
		if err := store.PutQuestions(r.Context(), qs); err != nil {
			writeDomainErr(w, err)
			return
		}
		writeJSON(w, map[string]interface{}{
			"success":    true,
			"categoryId": req.CategoryID,
			"created":    len(qs),
		})
	}
}

// PUT /questions/{questionID} (super_admin)
func UpdateQuestionHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			CategoryID string `json:"categoryId"`
			questionPayload
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if err := req.validate(); err != nil {
			writeDomainErr(w, err)
			return
		}
		q := quiz.Question{
			ID:            chi.URLParam(r, "questionID"),
			CategoryID:    req.CategoryID,
			Text:          req.Text,
			Options:       req.Options,
			CorrectAnswer: req.CorrectAnswer,
		}
		if err := store.UpdateQuestion(r.Context(), q); err != nil {
			writeDomainErr(w, err)
			return
		}
		writeJSON(w, map[string]interface{}{"success": true, "questionId": q.ID})
	}
}

// DELETE /questions/{questionID} (super_admin)
func DeleteQuestionHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.DeleteQuestion(r.Context(), chi.URLParam(r, "questionID")); err != nil {
			writeDomainErr(w, err)
			return
		}
		writeJSON(w, map[string]interface{}{"success": true})
	}
}

package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"quiz-system/internal/auth"
	"quiz-system/internal/quiz"
)

type categoryView struct {
	quiz.Category
	QuestionCount int `json:"questionCount"`
}

// GET /categories — categories the caller's role may take, with counts.
func ListCategoriesHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := auth.PrincipalFromContext(r.Context())
		cats, err := store.ListCategories(r.Context())
		if err != nil {
			writeDomainErr(w, err)
			return
		}
		out := []categoryView{}
		for _, c := range cats {
			if !quiz.CanAccess(c, p.Role) {
				continue
			}
			n, err := store.CountQuestions(r.Context(), c.ID)
			if err != nil {
				writeDomainErr(w, err)
				return
			}
			out = append(out, categoryView{Category: c, QuestionCount: n})
		}
		writeJSON(w, map[string]interface{}{
			"categories": out,
			"total":      len(out),
			"userRole":   p.Role,
		})
	}
}

// GET /categories/{categoryID}
func GetCategoryHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := auth.PrincipalFromContext(r.Context())
		c, err := store.GetCategory(r.Context(), chi.URLParam(r, "categoryID"))
		if err != nil {
			writeDomainErr(w, err)
			return
		}
		if !quiz.CanAccess(c, p.Role) {
			writeDomainErr(w, quiz.ErrForbidden)
			return
		}
		n, err := store.CountQuestions(r.Context(), c.ID)
		if err != nil {
			writeDomainErr(w, err)
			return
		}
		writeJSON(w, map[string]interface{}{"category": categoryView{Category: c, QuestionCount: n}})
	}
}

type categoryRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	AllowedRoles []string `json:"allowedRoles"`
}

// POST /categories (super_admin)
func CreateCategoryHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req categoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if req.Name == "" {
			http.Error(w, "name required", 400)
			return
		}
		c := quiz.Category{
			ID:           uuid.NewString(),
			Name:         req.Name,
			Description:  req.Description,
			AllowedRoles: req.AllowedRoles,
			CreatedAt:    time.Now(),
		}
		if err := store.PutCategory(r.Context(), c); err != nil {
			writeDomainErr(w, err)
			return
		}
		writeJSON(w, map[string]interface{}{"success": true, "category": c})
	}
}

// PUT /categories/{categoryID} (super_admin)
func UpdateCategoryHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req categoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		c, err := store.GetCategory(r.Context(), chi.URLParam(r, "categoryID"))
		if err != nil {
			writeDomainErr(w, err)
			return
		}
		c.Name = req.Name
		c.Description = req.Description
		c.AllowedRoles = req.AllowedRoles
		if err := store.PutCategory(r.Context(), c); err != nil {
			writeDomainErr(w, err)
			return
		}
		writeJSON(w, map[string]interface{}{"success": true, "category": c})
	}
}

// DELETE /categories/{categoryID} (super_admin) — questions and statistics
// go with it.
func DeleteCategoryHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.DeleteCategory(r.Context(), chi.URLParam(r, "categoryID")); err != nil {
			writeDomainErr(w, err)
			return
		}
		writeJSON(w, map[string]interface{}{"success": true})
	}
}

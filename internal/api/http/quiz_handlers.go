package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"quiz-system/internal/auth"
	"quiz-system/internal/quiz"
)

// GET /categories/{categoryID}/quiz
func GetQuizHandler(engine *quiz.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID := chi.URLParam(r, "categoryID")
		p := auth.PrincipalFromContext(r.Context())
		qs, err := engine.GetDeliverableQuiz(r.Context(), categoryID, p)
		if err != nil {
			writeDomainErr(w, err)
			return
		}
		writeJSON(w, map[string]interface{}{
			"categoryId": categoryID,
			"questions":  qs,
			"total":      len(qs),
		})
	}
}

// POST /categories/{categoryID}/submit
func SubmitQuizHandler(engine *quiz.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID := chi.URLParam(r, "categoryID")
		var req struct {
			Answers   []quiz.Answer `json:"answers"`
			TimeSpent int           `json:"timeSpent"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		p := auth.PrincipalFromContext(r.Context())
		res, err := engine.SubmitQuiz(r.Context(), categoryID, p, req.Answers, req.TimeSpent)
		if err != nil {
			writeDomainErr(w, err)
			return
		}
		writeJSON(w, map[string]interface{}{"success": true, "result": res})
	}
}

// GET /categories/{categoryID}/stats
func CategoryStatsHandler(engine *quiz.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID := chi.URLParam(r, "categoryID")
		p := auth.PrincipalFromContext(r.Context())
		stats, err := engine.GetStatistics(r.Context(), categoryID, p)
		if err != nil {
			writeDomainErr(w, err)
			return
		}
		writeJSON(w, map[string]interface{}{
			"categoryId": categoryID,
			"statistics": stats,
			"total":      len(stats),
		})
	}
}

// GET /statistics — boards for every category the caller may see.
func AllStatisticsHandler(store quiz.Store, engine *quiz.Engine) http.HandlerFunc {
	type board struct {
		CategoryID   string                  `json:"categoryId"`
		CategoryName string                  `json:"categoryName"`
		Statistics   []quiz.CategoryUserStat `json:"statistics"`
		TotalUsers   int                     `json:"totalUsers"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		p := auth.PrincipalFromContext(r.Context())
		cats, err := store.ListCategories(r.Context())
		if err != nil {
			writeDomainErr(w, err)
			return
		}
		boards := []board{}
		for _, c := range cats {
			if !quiz.CanAccess(c, p.Role) {
				continue
			}
			stats, err := engine.GetStatistics(r.Context(), c.ID, p)
			if err != nil {
				writeDomainErr(w, err)
				return
			}
			if stats == nil {
				stats = []quiz.CategoryUserStat{}
			}
			boards = append(boards, board{
				CategoryID:   c.ID,
				CategoryName: c.Name,
				Statistics:   stats,
				TotalUsers:   len(stats),
			})
		}
		writeJSON(w, map[string]interface{}{
			"statistics":      boards,
			"totalCategories": len(boards),
		})
	}
}

// GET /results[?categoryId=...] — own results; super_admin sees everyone's.
func ListResultsHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := auth.PrincipalFromContext(r.Context())
		username := p.Username
		if p.Role == quiz.RoleSuperAdmin {
			username = ""
		}
		results, err := store.ListResults(r.Context(), username, r.URL.Query().Get("categoryId"))
		if err != nil {
			writeDomainErr(w, err)
			return
		}
		if results == nil {
			results = []quiz.Result{}
		}
		writeJSON(w, map[string]interface{}{"results": results, "total": len(results)})
	}
}

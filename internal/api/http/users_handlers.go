package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"quiz-system/internal/quiz"
)

type userView struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	CreatedAt int64  `json:"createdAt"`
}

func viewOf(u quiz.User) userView {
	return userView{ID: u.ID, Username: u.Username, Role: u.Role, CreatedAt: u.CreatedAt.Unix()}
}

// GET /users (super_admin)
func ListUsersHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := store.ListUsers(r.Context())
		if err != nil {
			writeDomainErr(w, err)
			return
		}
		out := make([]userView, 0, len(users))
		for _, u := range users {
			out = append(out, viewOf(u))
		}
		writeJSON(w, map[string]interface{}{"users": out, "total": len(out)})
	}
}

// GET /users/{userID} (super_admin)
func GetUserHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := store.GetUser(r.Context(), chi.URLParam(r, "userID"))
		if err != nil {
			writeDomainErr(w, err)
			return
		}
		writeJSON(w, map[string]interface{}{"user": viewOf(u)})
	}
}

// PUT /users/{userID}/role (super_admin) — super_admin itself cannot be demoted.
func UpdateUserRoleHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Role string `json:"role"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Role == "" {
			http.Error(w, "role required", 400)
			return
		}
		if req.Role == quiz.RoleSuperAdmin {
			http.Error(w, "cannot grant super admin", 403)
			return
		}
		id := chi.URLParam(r, "userID")
		if u, err := store.GetUser(r.Context(), id); err != nil {
			writeDomainErr(w, err)
			return
		} else if u.Role == quiz.RoleSuperAdmin {
			http.Error(w, "cannot change super admin role", 403)
			return
		}
		u, err := store.UpdateUserRole(r.Context(), id, req.Role)
		if err != nil {
			writeDomainErr(w, err)
			return
		}
		writeJSON(w, map[string]interface{}{"success": true, "user": viewOf(u)})
	}
}

// DELETE /users/{userID} (super_admin) — super_admin itself cannot be deleted.
func DeleteUserHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "userID")
		if u, err := store.GetUser(r.Context(), id); err != nil {
			writeDomainErr(w, err)
			return
		} else if u.Role == quiz.RoleSuperAdmin {
			http.Error(w, "cannot delete super admin", 403)
			return
		}
		if err := store.DeleteUser(r.Context(), id); err != nil {
			writeDomainErr(w, err)
			return
		}
		writeJSON(w, map[string]interface{}{"success": true})
	}
}

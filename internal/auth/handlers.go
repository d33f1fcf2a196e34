package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"quiz-system/internal/quiz"
)

type tokenResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	User        userView `json:"user"`
}

type userView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// POST /auth/register  { "username": "...", "password": "...", "role": "..." }
func RegisterHandler(a *AuthService, users quiz.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
			Role     string `json:"role"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if req.Username == "" || req.Password == "" || req.Role == "" {
			http.Error(w, "username, password and role required", 400)
			return
		}
		// self-registration never grants the admin role
		if req.Role == quiz.RoleSuperAdmin {
			http.Error(w, "role not allowed", 400)
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			http.Error(w, "hash password", 500)
			return
		}
		u := quiz.User{
			ID:           uuid.NewString(),
			Username:     req.Username,
			PasswordHash: string(hash),
			Role:         req.Role,
			CreatedAt:    time.Now(),
		}
		if err := users.CreateUser(r.Context(), u); err != nil {
			if errors.Is(err, quiz.ErrUsernameTaken) {
				http.Error(w, err.Error(), 400)
				return
			}
			http.Error(w, err.Error(), 500)
			return
		}
		writeToken(w, a, u)
	}
}

// POST /auth/login  { "username": "...", "password": "..." }
func LoginHandler(a *AuthService, users quiz.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		u, err := users.GetUserByUsername(r.Context(), req.Username)
		if err != nil {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		writeToken(w, a, u)
	}
}

func writeToken(w http.ResponseWriter, a *AuthService, u quiz.User) {
	tok, err := a.IssueJWT(u.Username, u.Role)
	if err != nil {
		http.Error(w, "issue token", 500)
		return
	}
	_ = json.NewEncoder(w).Encode(tokenResponse{
		AccessToken: tok,
		TokenType:   "bearer",
		User:        userView{ID: u.ID, Username: u.Username, Role: u.Role},
	})
}

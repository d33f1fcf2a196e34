package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	api "quiz-system/internal/api/http"
	"quiz-system/internal/auth"
	"quiz-system/internal/config"
	"quiz-system/internal/db"
	"quiz-system/internal/quiz"
)

func main() {
	cfg := config.FromEnv()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var store quiz.Store
	if cfg.DBDriver == "memory" {
		store = quiz.NewInMemoryStore()
	} else {
		dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
		if err != nil {
			log.Fatalf("db open failed: %v", err)
		}
		store = quiz.NewSQLStore(dbh)
	}

	if err := bootstrapAdmin(ctx, store, cfg); err != nil {
		log.Fatalf("bootstrap admin: %v", err)
	}

	engine := quiz.NewEngine(store, store, store, store)
	authSvc := auth.NewAuthService(cfg.AuthSecret)

	r := api.NewRouter(authSvc, store, engine,
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middleware.Timeout(30*time.Second),
		cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           300,
		}),
	)

	log.Printf("quizd listening on %s (driver=%s)", cfg.HTTPAddr, cfg.DBDriver)
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatal(err)
	}
}

// bootstrapAdmin creates the super_admin account on first start. Skipped
// unless ADMIN_PASSWORD is supplied; the password never lives in code.
func bootstrapAdmin(ctx context.Context, store quiz.Store, cfg config.Config) error {
	if cfg.AdminPassword == "" {
		return nil
	}
	if _, err := store.GetUserByUsername(ctx, cfg.AdminUser); err == nil {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return store.CreateUser(ctx, quiz.User{
		ID:           uuid.NewString(),
		Username:     cfg.AdminUser,
		PasswordHash: string(hash),
		Role:         quiz.RoleSuperAdmin,
		CreatedAt:    time.Now(),
	})
}

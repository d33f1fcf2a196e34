package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"quiz-system/internal/auth"
	"quiz-system/internal/quiz"
	"quiz-system/internal/rbac"
)

// NewRouter mounts the full API surface. Global middleware (request IDs,
// logging, CORS) is supplied by the caller; tests mount the bare router.
func NewRouter(authSvc *auth.AuthService, store quiz.Store, engine *quiz.Engine, mws ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	for _, mw := range mws {
		r.Use(mw)
	}

	r.Post("/auth/register", auth.RegisterHandler(authSvc, store))
	r.Post("/auth/login", auth.LoginHandler(authSvc, store))

	// Protected API (JWT → principal in context; category gates live in
	// the engine, static admin gates in rbac)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		pr.Get("/categories", ListCategoriesHandler(store))
		pr.Get("/categories/{categoryID}", GetCategoryHandler(store))
		pr.With(rbac.Require("category:manage")).
			Post("/categories", CreateCategoryHandler(store))
		pr.With(rbac.Require("category:manage")).
			Put("/categories/{categoryID}", UpdateCategoryHandler(store))
		pr.With(rbac.Require("category:manage")).
			Delete("/categories/{categoryID}", DeleteCategoryHandler(store))

		pr.With(rbac.Require("question:manage")).
			Post("/questions", CreateQuestionsHandler(store))
		pr.With(rbac.Require("question:manage")).
			Put("/questions/{questionID}", UpdateQuestionHandler(store))
		pr.With(rbac.Require("question:manage")).
			Delete("/questions/{questionID}", DeleteQuestionHandler(store))

		// Quiz flow
		pr.Get("/categories/{categoryID}/quiz", GetQuizHandler(engine))
		pr.Post("/categories/{categoryID}/submit", SubmitQuizHandler(engine))
		pr.Get("/categories/{categoryID}/stats", CategoryStatsHandler(engine))
		pr.Get("/statistics", AllStatisticsHandler(store, engine))
		pr.Get("/results", ListResultsHandler(store))

		pr.With(rbac.Require("user:manage")).
			Get("/users", ListUsersHandler(store))
		pr.With(rbac.Require("user:manage")).
			Get("/users/{userID}", GetUserHandler(store))
		pr.With(rbac.Require("user:manage")).
			Put("/users/{userID}/role", UpdateUserRoleHandler(store))
		pr.With(rbac.Require("user:manage")).
			Delete("/users/{userID}", DeleteUserHandler(store))
	})

	return r
}

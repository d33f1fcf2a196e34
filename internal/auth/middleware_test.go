package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"quiz-system/internal/quiz"
)

func TestJWTMiddlewareRoundTrip(t *testing.T) {
	svc := NewAuthService("test-secret")
	tok, err := svc.IssueJWT("alice", "student")
	if err != nil {
		t.Fatal(err)
	}

	var got quiz.Principal
	h := JWTMiddleware(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = PrincipalFromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
	if got.Username != "alice" || got.Role != "student" {
		t.Fatalf("principal=%+v", got)
	}
}

func TestJWTMiddlewareRejects(t *testing.T) {
	svc := NewAuthService("test-secret")
	h := JWTMiddleware(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler reached without valid token")
	}))

	cases := map[string]string{
		"no header":    "",
		"not bearer":   "Basic abc",
		"garbage":      "Bearer not-a-token",
		"wrong secret": "Bearer " + mustIssue(t, NewAuthService("other-secret")),
	}
	for name, header := range cases {
		req := httptest.NewRequest("GET", "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: status=%d, want 401", name, rec.Code)
		}
	}
}

func mustIssue(t *testing.T, svc *AuthService) string {
	t.Helper()
	tok, err := svc.IssueJWT("mallory", "student")
	if err != nil {
		t.Fatal(err)
	}
	return tok
}

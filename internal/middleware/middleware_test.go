package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wellcoach/patterns-api/internal/logger"
	"github.com/wellcoach/patterns-api/pkg/supabase"
)

// mockVerifier is a mock implementation of TokenVerifier for testing
type mockVerifier struct {
	tokens map[string]string // token -> user ID
}

func (m *mockVerifier) VerifyToken(ctx context.Context, token string) (*supabase.User, error) {
	if id, ok := m.tokens[token]; ok {
		return &supabase.User{ID: id}, nil
	}
	return nil, errors.New("invalid token")
}

func newAuthRouter(handler gin.HandlerFunc) (*gin.Engine, *string) {
	gin.SetMode(gin.TestMode)
	var seenUser string

	router := gin.New()
	router.Use(RequestID(), handler)
	router.GET("/api/v1/patterns", func(c *gin.Context) {
		seenUser = logger.UserIDFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})
	return router, &seenUser
}

func TestAuth(t *testing.T) {
	verifier := &mockVerifier{tokens: map[string]string{"good-token": "user-1"}}

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUser   string
	}{
		{"valid token", "Bearer good-token", http.StatusOK, "user-1"},
		{"missing header", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic good-token", http.StatusUnauthorized, ""},
		{"empty token", "Bearer ", http.StatusUnauthorized, ""},
		{"rejected token", "Bearer bad-token", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, seenUser := newAuthRouter(Auth(verifier))

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/patterns", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if *seenUser != tt.wantUser {
				t.Errorf("Expected user %q in request context, got %q", tt.wantUser, *seenUser)
			}
		})
	}
}

func TestHeaderAuth(t *testing.T) {
	router, seenUser := newAuthRouter(HeaderAuth())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/patterns", nil)
	req.Header.Set(DevUserHeader, "local-user")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK || *seenUser != "local-user" {
		t.Errorf("Expected local-user to pass, got %d and %q", w.Code, *seenUser)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/patterns", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without header, got %d", w.Code)
	}
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var fromContext string
	router := gin.New()
	router.Use(RequestID(), Logger())
	router.GET("/health", func(c *gin.Context) {
		fromContext = logger.RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "client-id-1")
	router.ServeHTTP(w, req)

	if got := w.Header().Get(RequestIDHeader); got != "client-id-1" {
		t.Errorf("Expected caller's request ID to be echoed, got %q", got)
	}
	if fromContext != "client-id-1" {
		t.Errorf("Expected request ID in context, got %q", fromContext)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if _, err := uuid.Parse(w.Header().Get(RequestIDHeader)); err != nil {
		t.Errorf("Expected a generated UUID, got %q", w.Header().Get(RequestIDHeader))
	}
}

func TestSecurityHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, production := range []bool{false, true} {
		router := gin.New()
		router.Use(SecurityHeaders(production))
		router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
			t.Errorf("Expected nosniff, got %q", got)
		}
		hsts := w.Header().Get("Strict-Transport-Security") != ""
		if hsts != production {
			t.Errorf("Expected HSTS only in production (production=%v, hsts=%v)", production, hsts)
		}
	}
}

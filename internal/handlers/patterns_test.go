package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wellcoach/patterns-api/internal/apierror"
	"github.com/wellcoach/patterns-api/internal/models"
	"github.com/wellcoach/patterns-api/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// mockPatternService is a mock implementation of service.PatternService for testing
type mockPatternService struct {
	result      *models.UserPatterns
	err         error
	gotDaysBack int
	calls       int
}

func (m *mockPatternService) GetUserPatterns(ctx context.Context, userID string, daysBack int) (*models.UserPatterns, error) {
	m.calls++
	m.gotDaysBack = daysBack
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return models.NewEmptyUserPatterns(userID, time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)), nil
}

func (m *mockPatternService) MaxDaysBack() int {
	return 365
}

func performGetPatterns(h *PatternsHandler, query string, userID string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/patterns"+query, nil)
	if userID != "" {
		c.Set("user_id", userID)
	}
	h.GetPatterns(c)
	return w
}

func TestGetPatterns_EmptyResultIsOK(t *testing.T) {
	svc := &mockPatternService{}
	w := performGetPatterns(NewPatternsHandler(svc), "", "user-1")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if svc.gotDaysBack != 0 {
		t.Errorf("Expected default window (0), got %d", svc.gotDaysBack)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	for _, key := range []string{"conversation_patterns", "topic_preferences", "language_patterns", "activity_patterns", "mood_patterns", "sleep_patterns"} {
		list, ok := body[key].([]interface{})
		if !ok {
			t.Errorf("Expected %s to be a JSON array, got %v", key, body[key])
			continue
		}
		if len(list) != 0 {
			t.Errorf("Expected %s to be empty, got %v", key, list)
		}
	}
	if body["user_id"] != "user-1" {
		t.Errorf("Expected user_id user-1, got %v", body["user_id"])
	}
}

func TestGetPatterns_DaysParameter(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantDays   int
	}{
		{"explicit window", "?days=7", http.StatusOK, 7},
		{"maximum window", "?days=365", http.StatusOK, 365},
		{"not a number", "?days=week", http.StatusBadRequest, 0},
		{"zero", "?days=0", http.StatusBadRequest, 0},
		{"negative", "?days=-5", http.StatusBadRequest, 0},
		{"above maximum", "?days=366", http.StatusBadRequest, 0},
		{"empty value", "?days=", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockPatternService{}
			w := performGetPatterns(NewPatternsHandler(svc), tt.query, "user-1")

			if w.Code != tt.wantStatus {
				t.Fatalf("Expected %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				if svc.calls != 0 {
					t.Error("Expected the service not to be called")
				}
				var problem apierror.ProblemDetails
				if err := json.Unmarshal(w.Body.Bytes(), &problem); err != nil {
					t.Fatalf("Failed to decode problem: %v", err)
				}
				if problem.Type != apierror.TypeInvalidWindow {
					t.Errorf("Expected type %q, got %q", apierror.TypeInvalidWindow, problem.Type)
				}
				return
			}
			if svc.gotDaysBack != tt.wantDays {
				t.Errorf("Expected days %d, got %d", tt.wantDays, svc.gotDaysBack)
			}
		})
	}
}

func TestGetPatterns_Unauthenticated(t *testing.T) {
	w := performGetPatterns(NewPatternsHandler(&mockPatternService{}), "", "")

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", w.Code)
	}
}

func TestGetPatterns_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{"invalid window", service.ErrInvalidDaysBack, http.StatusBadRequest, apierror.TypeInvalidWindow},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, apierror.TypeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performGetPatterns(NewPatternsHandler(&mockPatternService{err: tt.err}), "", "user-1")

			if w.Code != tt.wantStatus {
				t.Fatalf("Expected %d, got %d", tt.wantStatus, w.Code)
			}
			var problem apierror.ProblemDetails
			if err := json.Unmarshal(w.Body.Bytes(), &problem); err != nil {
				t.Fatalf("Failed to decode problem: %v", err)
			}
			if problem.Type != tt.wantType {
				t.Errorf("Expected type %q, got %q", tt.wantType, problem.Type)
			}
			if problem.Detail == "boom" {
				t.Error("Expected internal error details to stay hidden")
			}
		})
	}
}

func TestNotFound(t *testing.T) {
	router := gin.New()
	router.NoRoute(NotFound)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/unknown", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
	if got := w.Header().Get("Content-Type"); got != apierror.ContentTypeProblemJSON {
		t.Errorf("Expected problem+json, got %q", got)
	}
}

func TestHealth(t *testing.T) {
	router := gin.New()
	router.GET("/health", Health("test", "sqlite"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if body["status"] != "ok" || body["source"] != "sqlite" {
		t.Errorf("Unexpected health body %v", body)
	}
}

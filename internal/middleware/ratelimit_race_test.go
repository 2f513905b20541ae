package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// TestRateLimiterConcurrentAccess verifies the rate limiter is safe under concurrent access.
// Run with: go test -race -count=1 ./internal/middleware/ -run TestRateLimiterConcurrentAccess
func TestRateLimiterConcurrentAccess(t *testing.T) {
	limiter := NewRateLimiter(100, time.Minute, "test-concurrent")
	defer limiter.Stop()

	var wg sync.WaitGroup
	// 50 goroutines each making 20 requests with varying IPs
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(goroutineID int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				// Mix of same IP and different IPs to stress both paths
				ip := "192.168.1.1"
				if j%3 == 0 {
					ip = "10.0.0." + strconv.Itoa(goroutineID%10)
				}
				limiter.isAllowed(ip)
			}
		}(i)
	}
	wg.Wait()
}

// TestRateLimiterConcurrentWithCleanup verifies no race between request handling and cleanup.
func TestRateLimiterConcurrentWithCleanup(t *testing.T) {
	// Use a very short window so cleanup runs during the test
	limiter := NewRateLimiter(5, 50*time.Millisecond, "test-cleanup-race")
	defer limiter.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				limiter.isAllowed("10.0.0." + strconv.Itoa(id%10))
				// Small sleep to let cleanup goroutine interleave
				if j%10 == 0 {
					time.Sleep(time.Millisecond)
				}
			}
		}(i)
	}
	wg.Wait()
}

func TestRateLimiter_FixedWindow(t *testing.T) {
	limiter := NewRateLimiter(2, time.Minute, "test-window")
	defer limiter.Stop()

	now := time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	for i := 1; i <= 2; i++ {
		if allowed, _, _ := limiter.isAllowed("1.2.3.4"); !allowed {
			t.Fatalf("Expected request %d to be allowed", i)
		}
	}

	now = now.Add(20 * time.Second)
	allowed, count, resetIn := limiter.isAllowed("1.2.3.4")
	if allowed {
		t.Error("Expected third request in the window to be rejected")
	}
	if count != 3 {
		t.Errorf("Expected count 3, got %d", count)
	}
	if resetIn != 40*time.Second {
		t.Errorf("Expected reset in 40s, got %v", resetIn)
	}

	// Continuous traffic does not extend the window
	now = now.Add(40 * time.Second)
	if allowed, _, _ := limiter.isAllowed("1.2.3.4"); !allowed {
		t.Error("Expected a new window to allow the request")
	}
}

func TestRateLimitMiddleware_Rejects(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter := NewRateLimiter(1, time.Minute, "test-middleware")
	defer limiter.Stop()

	router := gin.New()
	router.Use(limiter.Middleware())
	router.GET("/api/v1/patterns", func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/patterns", nil))
		return w
	}

	if w := send(); w.Code != http.StatusOK {
		t.Fatalf("Expected first request to pass, got %d", w.Code)
	}

	w := send()
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected 429, got %d", w.Code)
	}
	if got := w.Header().Get("X-RateLimit-Limit"); got != "1" {
		t.Errorf("Expected X-RateLimit-Limit 1, got %q", got)
	}
	if got := w.Header().Get("Retry-After"); got == "" {
		t.Error("Expected Retry-After header")
	}
	if got := w.Header().Get("Content-Type"); got != "application/problem+json" {
		t.Errorf("Expected problem+json, got %q", got)
	}
}

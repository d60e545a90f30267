package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type memoryLimiter struct {
	counts map[string]int64
}

func newMemoryLimiter() *memoryLimiter {
	return &memoryLimiter{counts: make(map[string]int64)}
}

func (m *memoryLimiter) IncrWithTTL(_ context.Context, key string, _ time.Duration) (int64, error) {
	m.counts[key]++
	return m.counts[key], nil
}

func TestAuthRateLimitBlocksAfterIPLimit(t *testing.T) {
	store := newMemoryLimiter()
	policy := NewAuthRateLimitPolicy("login", time.Minute, 2, 0)
	mw := AuthRateLimit(policy, store, nil)

	var calls int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{}`))
		req.RemoteAddr = "10.1.2.3:5000"
		resp := httptest.NewRecorder()
		mw(handler).ServeHTTP(resp, req)

		if i < 2 && resp.Code != http.StatusOK {
			t.Fatalf("request %d expected 200 got %d", i, resp.Code)
		}
		if i == 2 && resp.Code != http.StatusTooManyRequests {
			t.Fatalf("expected 429 once over the limit, got %d", resp.Code)
		}
	}
	if calls != 2 {
		t.Fatalf("handler ran %d times, expected 2", calls)
	}
}

func TestAuthRateLimitCountsPerEmail(t *testing.T) {
	store := newMemoryLimiter()
	policy := NewAuthRateLimitPolicy("login", time.Minute, 0, 1)
	mw := AuthRateLimit(policy, store, nil)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	send := func(email, addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"`+email+`"}`))
		req.RemoteAddr = addr
		resp := httptest.NewRecorder()
		mw(handler).ServeHTTP(resp, req)
		return resp
	}

	if resp := send("june@example.com", "10.0.0.1:1"); resp.Code != http.StatusOK {
		t.Fatalf("first attempt expected 200 got %d", resp.Code)
	}
	// same email from a different address still counts
	if resp := send("JUNE@example.com", "10.0.0.2:1"); resp.Code != http.StatusTooManyRequests {
		t.Fatalf("second attempt expected 429 got %d", resp.Code)
	}
	if resp := send("other@example.com", "10.0.0.3:1"); resp.Code != http.StatusOK {
		t.Fatalf("unrelated email expected 200 got %d", resp.Code)
	}
}

func TestAuthRateLimitDisabledPolicyPassesThrough(t *testing.T) {
	policy := NewAuthRateLimitPolicy("login", 0, 0, 0)
	mw := AuthRateLimit(policy, newMemoryLimiter(), nil)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	resp := httptest.NewRecorder()
	mw(handler).ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected pass-through got %d", resp.Code)
	}
}

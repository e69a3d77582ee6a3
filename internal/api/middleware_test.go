package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vrfurtado/climacore/internal/auth"
)

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	ts := newTestServer(t)

	past := time.Now().Add(-2 * time.Hour)
	claims := auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			IssuedAt:  jwt.NewNumericDate(past),
			ExpiresAt: jwt.NewNumericDate(past.Add(time.Hour)),
		},
		Username: "alice",
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(ts.secret))
	if err != nil {
		t.Fatalf("signing expired token: %v", err)
	}

	rec := ts.do(t, http.MethodGet, "/dados-sensores", expired, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("expired token: status = %d, want 403", rec.Code)
	}
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	ts := newTestServer(t)

	foreign, err := auth.GenerateToken(&auth.User{ID: 1, Username: "alice"},
		"a-completely-different-secret-value-here", 60)
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}

	rec := ts.do(t, http.MethodGet, "/dados-sensores", foreign, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("foreign token: status = %d, want 403", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/dados-sensores", nil)
	req.Header.Set("Origin", "http://dashboard.local")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "http://dashboard.local" {
		t.Errorf("Allow-Origin = %q", rec.Header().Get("Access-Control-Allow-Origin"))
	}
}

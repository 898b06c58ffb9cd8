package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	authgate "github.com/tokenforge/authgate"
)

type stubProvider struct{}

func (stubProvider) FindByEmail(context.Context, string) (authgate.UserRecord, error) {
	return authgate.UserRecord{}, authgate.ErrUserNotFound
}

func (stubProvider) InsertUser(context.Context, string, string) (authgate.UserRecord, error) {
	return authgate.UserRecord{}, authgate.ErrAccountExists
}

func newTestEngine(t *testing.T) *authgate.Engine {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := authgate.DefaultConfig()
	cfg.JWT.AccessSecret = []byte("gate-access-secret-0123456789")
	cfg.JWT.RefreshSecret = []byte("gate-refresh-secret-0123456789")

	engine, err := authgate.New().
		WithConfig(cfg).
		WithRedis(rdb).
		WithUserProvider(stubProvider{}).
		Build()
	if err != nil {
		t.Fatalf("engine build: %v", err)
	}
	t.Cleanup(engine.Close)

	return engine
}

func gateHandler(t *testing.T, engine *authgate.Engine) (http.Handler, *string) {
	t.Helper()

	var seenSubject string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, ok := SubjectFromContext(r.Context())
		if !ok {
			t.Error("admitted request has no subject in context")
		}
		seenSubject = subject
		w.WriteHeader(http.StatusOK)
	})

	return Gate(engine)(inner), &seenSubject
}

func TestGateAdmitsValidAccessToken(t *testing.T) {
	engine := newTestEngine(t)
	handler, seenSubject := gateHandler(t, engine)

	pair, err := engine.IssuePair("user-7")
	if err != nil {
		t.Fatalf("issue pair: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if *seenSubject != "user-7" {
		t.Fatalf("subject = %q, want user-7", *seenSubject)
	}
}

func TestGateRejectsMissingOrMalformedHeader(t *testing.T) {
	engine := newTestEngine(t)
	handler, _ := gateHandler(t, engine)

	cases := []struct {
		name   string
		header string
	}{
		{"missing", ""},
		{"no bearer prefix", "Token abc"},
		{"empty token", "Bearer "},
		{"lowercase prefix", "bearer abc"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestGateRejectsInvalidTokenWithBody(t *testing.T) {
	engine := newTestEngine(t)
	handler, _ := gateHandler(t, engine)

	// A refresh token must not pass the access-domain gate.
	pair, err := engine.IssuePair("user-7")
	if err != nil {
		t.Fatalf("issue pair: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.RefreshToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}

	var body struct {
		Message string `json:"message"`
		Success bool   `json:"success"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Success {
		t.Fatal("rejection body must carry success=false")
	}
	if body.Message == "" {
		t.Fatal("rejection body must carry a message")
	}
}

func TestGateRejectsExpiredToken(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	now := time.Now()
	clock := func() time.Time { return now }

	cfg := authgate.DefaultConfig()
	cfg.JWT.AccessSecret = []byte("gate-access-secret-0123456789")
	cfg.JWT.RefreshSecret = []byte("gate-refresh-secret-0123456789")
	cfg.Clock = func() time.Time { return clock() }

	engine, err := authgate.New().
		WithConfig(cfg).
		WithRedis(rdb).
		WithUserProvider(stubProvider{}).
		Build()
	if err != nil {
		t.Fatalf("engine build: %v", err)
	}
	t.Cleanup(engine.Close)

	pair, err := engine.IssuePair("user-7")
	if err != nil {
		t.Fatalf("issue pair: %v", err)
	}

	clock = func() time.Time { return now.Add(16 * time.Minute) }

	handler, _ := gateHandler(t, engine)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

package jwt

import (
	"errors"
	"testing"
	"time"

	gjwt "github.com/golang-jwt/jwt/v5"
)

func newTestCodec(t *testing.T, clock func() time.Time) *Codec {
	t.Helper()
	c, err := NewCodec(Config{
		AccessSecret:  []byte("access-secret-for-tests-0123456789"),
		RefreshSecret: []byte("refresh-secret-for-tests-0123456789"),
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    24 * time.Hour,
		Issuer:        "authgate-test",
		Clock:         clock,
	})
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}
	return c
}

func TestNewCodecValidation(t *testing.T) {
	secret := []byte("shared-secret-0123456789")

	cases := []struct {
		name string
		cfg  Config
	}{
		{"zero access ttl", Config{AccessSecret: []byte("a-secret"), RefreshSecret: []byte("r-secret"), RefreshTTL: time.Hour}},
		{"zero refresh ttl", Config{AccessSecret: []byte("a-secret"), RefreshSecret: []byte("r-secret"), AccessTTL: time.Minute}},
		{"missing access secret", Config{RefreshSecret: []byte("r-secret"), AccessTTL: time.Minute, RefreshTTL: time.Hour}},
		{"missing refresh secret", Config{AccessSecret: []byte("a-secret"), AccessTTL: time.Minute, RefreshTTL: time.Hour}},
		{"identical secrets", Config{AccessSecret: secret, RefreshSecret: secret, AccessTTL: time.Minute, RefreshTTL: time.Hour}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewCodec(tc.cfg); err == nil {
				t.Fatal("expected config rejection")
			}
		})
	}
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	c := newTestCodec(t, nil)

	for _, domain := range []Domain{DomainAccess, DomainRefresh} {
		token, err := c.Issue("user-42", domain)
		if err != nil {
			t.Fatalf("issue %s: %v", domain, err)
		}
		subject, err := c.Verify(token, domain)
		if err != nil {
			t.Fatalf("verify %s: %v", domain, err)
		}
		if subject != "user-42" {
			t.Fatalf("verify %s: subject = %q, want %q", domain, subject, "user-42")
		}
	}
}

func TestVerifyDomainIsolation(t *testing.T) {
	c := newTestCodec(t, nil)

	access, err := c.Issue("user-1", DomainAccess)
	if err != nil {
		t.Fatalf("issue access: %v", err)
	}
	refresh, err := c.Issue("user-1", DomainRefresh)
	if err != nil {
		t.Fatalf("issue refresh: %v", err)
	}

	if _, err := c.Verify(access, DomainRefresh); !errors.Is(err, ErrSignature) {
		t.Fatalf("access token under refresh domain: err = %v, want ErrSignature", err)
	}
	if _, err := c.Verify(refresh, DomainAccess); !errors.Is(err, ErrSignature) {
		t.Fatalf("refresh token under access domain: err = %v, want ErrSignature", err)
	}
}

func TestVerifyExpiryBoundary(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	c := newTestCodec(t, func() time.Time { return clock() })

	token, err := c.Issue("user-1", DomainAccess)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Just inside the lifetime: still valid.
	clock = func() time.Time { return now.Add(15*time.Minute - time.Second) }
	if _, err := c.Verify(token, DomainAccess); err != nil {
		t.Fatalf("verify before expiry: %v", err)
	}

	// Past the lifetime: expired, not any other failure kind.
	clock = func() time.Time { return now.Add(15*time.Minute + time.Second) }
	_, err = c.Verify(token, DomainAccess)
	if !errors.Is(err, ErrExpired) {
		t.Fatalf("verify after expiry: err = %v, want ErrExpired", err)
	}
}

func TestVerifyMalformedInputs(t *testing.T) {
	c := newTestCodec(t, nil)

	for _, input := range []string{
		"",
		"not-a-token",
		"a.b",
		"a.b.c.d",
		"eyJhbGciOiJIUzI1NiJ9.bm90anNvbg.sig",
	} {
		if _, err := c.Verify(input, DomainAccess); !errors.Is(err, ErrMalformed) {
			t.Fatalf("verify(%q): err = %v, want ErrMalformed", input, err)
		}
	}
}

func TestVerifyRejectsForeignAlgorithm(t *testing.T) {
	c := newTestCodec(t, nil)

	claims := gjwt.RegisteredClaims{
		Subject:   "user-1",
		Issuer:    "authgate-test",
		ExpiresAt: gjwt.NewNumericDate(time.Now().Add(time.Minute)),
	}
	token, err := gjwt.NewWithClaims(gjwt.SigningMethodHS512, claims).
		SignedString([]byte("access-secret-for-tests-0123456789"))
	if err != nil {
		t.Fatalf("sign foreign token: %v", err)
	}

	if _, err := c.Verify(token, DomainAccess); !errors.Is(err, ErrSignature) {
		t.Fatalf("foreign algorithm: err = %v, want ErrSignature", err)
	}
}

func TestVerifyMissingSubject(t *testing.T) {
	c := newTestCodec(t, nil)

	claims := gjwt.RegisteredClaims{
		Issuer:    "authgate-test",
		ExpiresAt: gjwt.NewNumericDate(time.Now().Add(time.Minute)),
	}
	token, err := gjwt.NewWithClaims(gjwt.SigningMethodHS256, claims).
		SignedString([]byte("access-secret-for-tests-0123456789"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := c.Verify(token, DomainAccess); !errors.Is(err, ErrMalformed) {
		t.Fatalf("missing subject: err = %v, want ErrMalformed", err)
	}
}

func TestExpiresAtReadsExpiredTokens(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	c := newTestCodec(t, func() time.Time { return clock() })

	token, err := c.Issue("user-1", DomainRefresh)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Move well past expiry; the unverified decode must still work.
	clock = func() time.Time { return now.Add(48 * time.Hour) }

	exp, err := c.ExpiresAt(token)
	if err != nil {
		t.Fatalf("expires at: %v", err)
	}
	want := now.Add(24 * time.Hour).Unix()
	if exp.Unix() != want {
		t.Fatalf("expiry = %d, want %d", exp.Unix(), want)
	}

	if _, err := c.ExpiresAt("garbage"); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expires at garbage: err = %v, want ErrMalformed", err)
	}
}

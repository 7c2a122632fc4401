package crypto

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestTokenService(clock *fakeClock) *TokenService {
	return NewTokenService("test-secret", 30*time.Minute, WithClock(clock.Now))
}

func TestIssue(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	svc := newTestTokenService(clock)

	token, expiresAt, err := svc.Issue("a@b.io")
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("Issue() returned empty string")
	}
	if want := clock.now.Add(30 * time.Minute); !expiresAt.Equal(want) {
		t.Errorf("Issue() expiresAt = %v, want %v", expiresAt, want)
	}
	if svc.TTL() != 30*time.Minute {
		t.Errorf("TTL() = %v, want 30m", svc.TTL())
	}
}

func TestIssueUniqueTokenIDs(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	svc := newTestTokenService(clock)

	first, _, err := svc.Issue("a@b.io")
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}
	second, _, err := svc.Issue("a@b.io")
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}
	if first == second {
		t.Error("Issue() produced identical tokens for the same subject and instant")
	}
}

func TestVerifyValid(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	svc := newTestTokenService(clock)

	token, _, err := svc.Issue("a@b.io")
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	subject, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify() unexpected error: %v", err)
	}
	if subject != "a@b.io" {
		t.Errorf("Verify() subject = %q, want %q", subject, "a@b.io")
	}

	clock.now = clock.now.Add(29 * time.Minute)
	if _, err := svc.Verify(token); err != nil {
		t.Errorf("Verify() unexpected error just before expiry: %v", err)
	}
}

func TestVerifyExpired(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	svc := newTestTokenService(clock)

	token, _, err := svc.Issue("a@b.io")
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	clock.now = clock.now.Add(30*time.Minute + time.Second)

	_, err = svc.Verify(token)
	if err != ErrTokenExpired {
		t.Errorf("Verify() error = %v, want ErrTokenExpired", err)
	}
}

func TestVerifyWithRealClock(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	token, _, err := svc.Issue("a@b.io")
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}
	if subject, err := svc.Verify(token); err != nil || subject != "a@b.io" {
		t.Errorf("Verify() = %q, %v; want a@b.io, nil", subject, err)
	}
}

func TestVerifyInvalid(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	for _, token := range []string{"", "not-a-valid-token", "a.b.c", "Bearer x.y.z"} {
		if _, err := svc.Verify(token); err != ErrTokenInvalid {
			t.Errorf("Verify(%q) error = %v, want ErrTokenInvalid", token, err)
		}
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	token, _, err := NewTokenService("correct-secret", time.Hour).Issue("a@b.io")
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	if _, err := NewTokenService("wrong-secret", time.Hour).Verify(token); err != ErrTokenInvalid {
		t.Errorf("Verify() error = %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyTamperedPayload(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	token, _, err := svc.Issue("a@b.io")
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}

	payload := `{"sub":"admin@b.io","iss":"userapi","aud":["userapi-api"],"exp":4102444800}`
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(payload))
	tampered := strings.Join(parts, ".")

	if _, err := svc.Verify(tampered); err != ErrTokenInvalid {
		t.Errorf("Verify() error = %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyRejectsNoneAlgorithm(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "a@b.io",
		Issuer:    DefaultIssuer,
		Audience:  jwt.ClaimStrings{audience},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("SignedString() unexpected error: %v", err)
	}

	if _, err := NewTokenService("test-secret", time.Hour).Verify(token); err != ErrTokenInvalid {
		t.Errorf("Verify() error = %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyWrongIssuer(t *testing.T) {
	token, _, err := NewTokenService("test-secret", time.Hour, WithIssuer("someone-else")).Issue("a@b.io")
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	if _, err := NewTokenService("test-secret", time.Hour).Verify(token); err != ErrTokenInvalid {
		t.Errorf("Verify() error = %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyWrongAudience(t *testing.T) {
	secret := "test-secret"

	// Create a token with a wrong audience
	claims := jwt.RegisteredClaims{
		Subject:   "a@b.io",
		Issuer:    DefaultIssuer,
		Audience:  jwt.ClaimStrings{"wrong-audience"},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString() unexpected error: %v", err)
	}

	if _, err := NewTokenService(secret, time.Hour).Verify(token); err != ErrTokenInvalid {
		t.Errorf("Verify() error = %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyMissingSubjectOrExpiry(t *testing.T) {
	secret := "test-secret"

	noSubject := jwt.RegisteredClaims{
		Issuer:    DefaultIssuer,
		Audience:  jwt.ClaimStrings{audience},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	noExpiry := jwt.RegisteredClaims{
		Subject:  "a@b.io",
		Issuer:   DefaultIssuer,
		Audience: jwt.ClaimStrings{audience},
	}

	for name, claims := range map[string]jwt.RegisteredClaims{"no subject": noSubject, "no expiry": noExpiry} {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		if err != nil {
			t.Fatalf("%s: SignedString() unexpected error: %v", name, err)
		}
		if _, err := NewTokenService(secret, time.Hour).Verify(token); err != ErrTokenInvalid {
			t.Errorf("%s: Verify() error = %v, want ErrTokenInvalid", name, err)
		}
	}
}

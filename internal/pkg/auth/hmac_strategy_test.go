package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/polkiloo/freightdesk/internal/domain/model"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func signedToken(s *HMACStrategy, payload string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(payload + ":" + s.sign(payload)))
}

func TestNewHMACStrategyDefaults(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	if string(strategy.secret) != "secret" {
		t.Fatalf("unexpected secret: %q", string(strategy.secret))
	}
	if strategy.ttl != 24*time.Hour {
		t.Fatalf("unexpected ttl: %s", strategy.ttl)
	}
	if strategy.now == nil {
		t.Fatal("expected default clock")
	}
	if strategy.Name() != "hmac" {
		t.Fatalf("unexpected name: %s", strategy.Name())
	}
}

func TestHMACStrategyIssueAndParse(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{TTL: time.Minute})

	for _, role := range []model.Role{model.RoleShipper, model.RoleCarrier, model.RoleAdmin} {
		token, err := strategy.IssueToken(Claims{UserID: 42, Role: role})
		if err != nil {
			t.Fatalf("issue token: %v", err)
		}
		claims, err := strategy.ParseToken(token)
		if err != nil {
			t.Fatalf("parse token: %v", err)
		}
		if claims.UserID != 42 || claims.Role != role {
			t.Fatalf("unexpected claims: %+v", claims)
		}
	}
}

func TestHMACStrategyRejectsUnknownRoleOnIssue(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	if _, err := strategy.IssueToken(Claims{UserID: 1, Role: "dispatcher"}); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestHMACStrategyExpiry(t *testing.T) {
	issuedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewHMACStrategy("secret", Options{TTL: time.Hour, Now: fixedClock(issuedAt)})
	token, err := issuer.IssueToken(Claims{UserID: 7, Role: model.RoleCarrier})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	later := NewHMACStrategy("secret", Options{TTL: time.Hour, Now: fixedClock(issuedAt.Add(59 * time.Minute))})
	if _, err := later.ParseToken(token); err != nil {
		t.Fatalf("expected valid token before expiry, got %v", err)
	}

	expired := NewHMACStrategy("secret", Options{TTL: time.Hour, Now: fixedClock(issuedAt.Add(time.Hour))})
	if _, err := expired.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken at expiry, got %v", err)
	}
}

func TestHMACStrategyParseInvalid(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	future := time.Now().Add(time.Minute).Unix()

	valid, err := strategy.IssueToken(Claims{UserID: 7, Role: model.RoleShipper})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	raw, _ := base64.RawURLEncoding.DecodeString(valid)
	parts := strings.Split(string(raw), ":")
	parts[3] = "tampered"
	tampered := base64.RawURLEncoding.EncodeToString([]byte(strings.Join(parts, ":")))

	otherSecret := NewHMACStrategy("other", Options{})
	foreign, _ := otherSecret.IssueToken(Claims{UserID: 7, Role: model.RoleShipper})

	cases := map[string]string{
		"not base64":      "***",
		"too few parts":   base64.RawURLEncoding.EncodeToString([]byte("1:shipper:2")),
		"bad signature":   tampered,
		"other secret":    foreign,
		"bad user id":     signedToken(strategy, fmt.Sprintf("abc:shipper:%d", future)),
		"unknown role":    signedToken(strategy, fmt.Sprintf("1:pilot:%d", future)),
		"bad expiry":      signedToken(strategy, "1:shipper:soon"),
		"already expired": signedToken(strategy, fmt.Sprintf("1:admin:%d", time.Now().Add(-time.Minute).Unix())),
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := strategy.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

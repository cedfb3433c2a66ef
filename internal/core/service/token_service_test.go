package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spacehq/space-auth/internal/core/domain"
)

func TestTokenService_IssueValidate_Roundtrip(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Issue("a@x.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Fatalf("expected three-part token, got %q", token)
	}

	subject, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if subject != "a@x.com" {
		t.Fatalf("expected subject a@x.com, got %q", subject)
	}
	if !svc.IsValid(token, "a@x.com") {
		t.Fatalf("expected token valid for its own subject")
	}
}

func TestNewTokenService_TTLDefaulting(t *testing.T) {
	if got := NewTokenService("secret", 0).ttl; got != defaultTokenTTL {
		t.Fatalf("zero ttl must default to %v, got %v", defaultTokenTTL, got)
	}
	// A negative TTL must survive construction untouched: it is the seam
	// the expiry tests use to mint already-expired tokens.
	if got := NewTokenService("secret", -time.Hour).ttl; got != -time.Hour {
		t.Fatalf("negative ttl must be preserved, got %v", got)
	}
	if got := NewTokenService("secret", time.Minute).ttl; got != time.Minute {
		t.Fatalf("positive ttl must be preserved, got %v", got)
	}
}

func TestTokenService_Expired(t *testing.T) {
	// Negative TTL issues tokens that are already expired.
	svc := NewTokenService("secret", -time.Hour)

	token, err := svc.Issue("a@x.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := svc.Validate(token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
	if svc.IsValid(token, "a@x.com") {
		t.Fatalf("expected expired token to be invalid")
	}

	// The subject stays readable for diagnostics even after expiry.
	subject, err := svc.ExtractSubject(token)
	if err != nil {
		t.Fatalf("extract subject: %v", err)
	}
	if subject != "a@x.com" {
		t.Fatalf("expected subject a@x.com, got %q", subject)
	}
}

func TestTokenService_TamperedSignature(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Issue("a@x.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Flip the first character of the signature segment.
	i := strings.LastIndex(token, ".") + 1
	flipped := byte('A')
	if token[i] == flipped {
		flipped = 'Q'
	}
	tampered := token[:i] + string(flipped) + token[i+1:]

	if _, err := svc.Validate(tampered); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for tampered token, got %v", err)
	}
	if _, err := svc.ExtractSubject(tampered); err == nil {
		t.Fatalf("expected signature failure on tampered token")
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	token, err := NewTokenService("secret-a", time.Hour).Issue("a@x.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	other := NewTokenService("secret-b", time.Hour)
	if _, err := other.Validate(token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid across secrets, got %v", err)
	}
}

func TestTokenService_SubjectMismatch(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Issue("a@x.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if svc.IsValid(token, "b@x.com") {
		t.Fatalf("expected token to be rejected for a different subject")
	}
}

func TestTokenService_Malformed(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	if _, err := svc.Validate("not-a-token"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for malformed token, got %v", err)
	}
	if svc.IsValid("", "a@x.com") {
		t.Fatalf("expected empty token to be invalid")
	}
}

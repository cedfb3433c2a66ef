package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/spacehq/space-auth/internal/core/domain"
	"github.com/spacehq/space-auth/internal/core/ports"
)

// AuthService implements registration and login on top of a CredentialStore,
// a PasswordHasher, and a TokenService. It performs no locking of its own:
// the store's unique email constraint is the authoritative guard against
// duplicate registrations, the ExistsByEmail pre-check is only a fast path.
type AuthService struct {
	store   ports.CredentialStore
	tokens  ports.TokenService
	hasher  ports.PasswordHasher
	limiter ports.LoginLimiter
	audit   ports.AuditSink
	log     zerolog.Logger
}

// NewAuthService wires an AuthService. limiter and audit may be nil, which
// disables login throttling and audit recording respectively.
func NewAuthService(
	store ports.CredentialStore,
	tokens ports.TokenService,
	hasher ports.PasswordHasher,
	limiter ports.LoginLimiter,
	audit ports.AuditSink,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		store:   store,
		tokens:  tokens,
		hasher:  hasher,
		limiter: limiter,
		audit:   audit,
		log:     log,
	}
}

// Register creates a new account and returns a signed token for it. The
// requested role is never honoured: every new account starts as RoleUser.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (string, error) {
	s.log.Debug().Str("email", input.Email).Msg("attempting registration")

	exists, err := s.store.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return "", fmt.Errorf("check email: %w", err)
	}
	if exists {
		s.log.Warn().Str("email", input.Email).Msg("email already in use")
		s.record(domain.ActionRegister, input.Email, domain.OutcomeFailure, "email_in_use")
		return "", domain.ErrEmailInUse
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         domain.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.store.Save(ctx, user)
	if err != nil {
		// A concurrent registration can slip past the pre-check; the store's
		// unique index reports it as ErrEmailInUse.
		if errors.Is(err, domain.ErrEmailInUse) {
			s.record(domain.ActionRegister, input.Email, domain.OutcomeFailure, "email_in_use")
			return "", domain.ErrEmailInUse
		}
		return "", fmt.Errorf("save user: %w", err)
	}

	token, err := s.tokens.Issue(created.Email)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	s.log.Info().Str("email", created.Email).Msg("user registered")
	s.record(domain.ActionRegister, created.Email, domain.OutcomeSuccess, "")
	return token, nil
}

// Login verifies credentials and returns a fresh token. Every successful
// call produces a new token; nothing is cached server-side.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	s.log.Debug().Str("email", email).Msg("attempting login")

	if s.limiter != nil && !s.limiter.Allow(ctx, email) {
		s.log.Warn().Str("email", email).Msg("login throttled")
		s.record(domain.ActionLogin, email, domain.OutcomeFailure, "throttled")
		return "", domain.ErrTooManyAttempts
	}

	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Warn().Str("email", email).Msg("login failed: user not found")
			s.record(domain.ActionLogin, email, domain.OutcomeFailure, "user_not_found")
			return "", domain.ErrUserNotFound
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		if s.limiter != nil {
			s.limiter.RecordFailure(ctx, email)
		}
		s.log.Warn().Str("email", email).Msg("login failed: invalid password")
		s.record(domain.ActionLogin, email, domain.OutcomeFailure, "invalid_password")
		return "", domain.ErrInvalidPassword
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	s.log.Info().Str("email", user.Email).Msg("user logged in")
	s.record(domain.ActionLogin, user.Email, domain.OutcomeSuccess, "")
	return token, nil
}

func (s *AuthService) record(action domain.AuthAction, email, outcome, reason string) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(domain.AuthEvent{
		Email:   email,
		Action:  action,
		Outcome: outcome,
		Reason:  reason,
		At:      time.Now().UTC(),
	})
}

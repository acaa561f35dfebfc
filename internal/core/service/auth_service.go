package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/leadnest/leadnest-api/internal/core/domain"
	"github.com/leadnest/leadnest-api/internal/core/ports"
)

const minPasswordLength = 8

// AuthService validates signup/login input and delegates the actual account
// work to the auth provider. No credential material is stored or hashed here;
// the provider owns all of that.
type AuthService struct {
	provider ports.AuthProvider
	logger   zerolog.Logger
}

func NewAuthService(provider ports.AuthProvider, logger zerolog.Logger) *AuthService {
	return &AuthService{provider: provider, logger: logger}
}

func (s *AuthService) SignUp(ctx context.Context, params ports.SignUpParams) (*ports.SignUpResult, error) {
	if params.Email == "" || params.Password == "" || params.FirstName == "" ||
		params.LastName == "" || params.Username == "" || params.Role == "" {
		return nil, domain.ErrMissingFields
	}
	if len(params.Password) < minPasswordLength {
		return nil, domain.ErrPasswordTooShort
	}
	if !allowedRole(params.Role) {
		return nil, fmt.Errorf("%w: allowed roles are: %s",
			domain.ErrInvalidRole, strings.Join(domain.AllowedRoles, ", "))
	}

	user, session, err := s.provider.SignUp(ctx, params)
	if err != nil {
		s.logger.Warn().Err(err).Str("email", params.Email).Msg("signup rejected by provider")
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", params.Role).Msg("account created")

	// The profiles row is created by a store-side trigger on the new identity;
	// nothing to insert here.
	msg := "Account created successfully! Please check your email to confirm your account."
	if session != nil {
		msg = "Account created successfully! You are logged in."
	}

	return &ports.SignUpResult{User: user, Session: session, Message: msg}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Session, *domain.Identity, error) {
	if email == "" || password == "" {
		return nil, nil, domain.ErrMissingFields
	}

	session, user, err := s.provider.SignInWithPassword(ctx, email, password)
	if err != nil {
		return nil, nil, err
	}
	if session == nil || user == nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	return session, user, nil
}

func allowedRole(role string) bool {
	for _, r := range domain.AllowedRoles {
		if r == role {
			return true
		}
	}
	return false
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/idtoken"

	"github.com/meridianmag/meridian-backend/internal/domain"
	"github.com/meridianmag/meridian-backend/internal/repository/ports"
	"github.com/meridianmag/meridian-backend/internal/util"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrGoogleSignIn       = errors.New("google sign-in failed")
)

type AuthResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

type AuthService struct {
	users          ports.UserRepository
	sessions       ports.SessionRepository
	tokens         *util.JWTManager
	googleAudience string
	validateIDTok  func(ctx context.Context, token, audience string) (*idtoken.Payload, error)
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionRepository, tokens *util.JWTManager, googleAudience string) *AuthService {
	return &AuthService{
		users:          users,
		sessions:       sessions,
		tokens:         tokens,
		googleAudience: googleAudience,
		validateIDTok:  idtoken.Validate,
	}
}

func (s *AuthService) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, errors.New("email is required")
	}
	if err := util.ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, salt, err := util.DerivePassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.CreateEmailUser(ctx, email, hash, salt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return s.issueSession(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !util.VerifyPassword(password, user.PasswordSalt, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return s.issueSession(ctx, user)
}

// LoginWithGoogle verifies a Google ID token and signs the holder in,
// creating the account on first use.
func (s *AuthService) LoginWithGoogle(ctx context.Context, rawIDToken string) (*AuthResult, error) {
	if s.googleAudience == "" {
		return nil, fmt.Errorf("%w: google sign-in not configured", ErrGoogleSignIn)
	}

	payload, err := s.validateIDTok(ctx, rawIDToken, s.googleAudience)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGoogleSignIn, err)
	}

	email, _ := payload.Claims["email"].(string)
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("%w: token missing email claim", ErrGoogleSignIn)
	}
	name, _ := payload.Claims["name"].(string)
	picture, _ := payload.Claims["picture"].(string)

	user, err := s.users.UpsertGoogleUser(ctx, email, stringPtr(name), stringPtr(picture))
	if err != nil {
		return nil, err
	}
	return s.issueSession(ctx, user)
}

// Authenticate resolves a bearer token to a user. The token must parse, its
// session must still be active, and the user must still exist.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	if _, err := s.sessions.FindActiveSession(ctx, token); err != nil {
		if isNotFound(err) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return ErrUnauthenticated
	}
	return s.sessions.DeactivateSession(ctx, token)
}

// IsEditor reports whether the user may act on the staging review surface.
func (s *AuthService) IsEditor(user *domain.User) bool {
	return user != nil && user.Editor
}

func (s *AuthService) issueSession(ctx context.Context, user *domain.User) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.Generate(user.ID, user.Email, user.Editor)
	if err != nil {
		return nil, err
	}
	if _, err := s.sessions.CreateSession(ctx, user.ID, token, expiresAt); err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// Package service holds the application services behind the HTTP
// handlers: thin orchestration over the store plus validation, ID
// generation, and audit stamping.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopmateapp/shopmate-server/internal/auth"
	"github.com/shopmateapp/shopmate-server/internal/domain"
	domainerrors "github.com/shopmateapp/shopmate-server/internal/errors"
	"github.com/shopmateapp/shopmate-server/internal/id"
	"github.com/shopmateapp/shopmate-server/internal/normalize"
	"github.com/shopmateapp/shopmate-server/internal/store"
	"github.com/shopmateapp/shopmate-server/internal/validation"
)

// AuthService handles setup, login, user creation, and token verification.
type AuthService struct {
	store        *store.Store
	tokenService *auth.TokenService
	validator    *validation.Validator
	logger       *slog.Logger
}

func NewAuthService(st *store.Store, tokenService *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:        st,
		tokenService: tokenService,
		validator:    validation.New(),
		logger:       logger,
	}
}

// SetupRequest contains the initial root user creation data.
type SetupRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=1024"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
}

// LoginRequest contains user credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CreateUserRequest contains data for an admin-created account.
type CreateUserRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=1024"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Role      string `json:"role" validate:"required,oneof=admin staff"`
}

// AuthResponse contains the issued token and the authenticated user.
type AuthResponse struct {
	User        *domain.User `json:"user"`
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
}

// IsSetupRequired reports whether no users exist yet.
func (s *AuthService) IsSetupRequired(ctx context.Context) (bool, error) {
	count, err := s.store.Users.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return count == 0, nil
}

// Setup creates the first user as root admin. Usable exactly once, while
// no users exist.
func (s *AuthService) Setup(ctx context.Context, req SetupRequest) (*AuthResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	required, err := s.IsSetupRequired(ctx)
	if err != nil {
		return nil, err
	}
	if !required {
		return nil, domainerrors.AlreadyConfigured("server is already set up")
	}

	user, err := s.createUser(ctx, req.Email, req.Password, req.FirstName, req.LastName, domain.RoleAdmin, true)
	if err != nil {
		return nil, err
	}

	s.logger.Info("initial setup complete", "user_id", user.ID, "email", user.Email)
	return s.issueToken(user)
}

// Login verifies credentials and issues an access token. Bad email and
// bad password produce the same error so accounts can't be enumerated.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.store.Users.GetByIndex(ctx, "email", req.Email)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.InvalidCredentials("invalid email or password")
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}

	ok, err := auth.VerifyPassword(user.PasswordHash, req.Password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, domainerrors.InvalidCredentials("invalid email or password")
	}

	now := time.Now()
	err = s.store.Users.Mutate(ctx, user.ID, func(u *domain.User) error {
		u.LastLoginAt = now
		return nil
	})
	if err != nil {
		s.logger.Warn("failed to record login time", "user_id", user.ID, "error", err)
	}
	user.LastLoginAt = now

	s.logger.Info("user logged in", "user_id", user.ID)
	return s.issueToken(user)
}

// CreateUser adds a staff or admin account. Only reachable through
// admin-gated handlers.
func (s *AuthService) CreateUser(ctx context.Context, req CreateUserRequest) (*domain.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	return s.createUser(ctx, req.Email, req.Password, req.FirstName, req.LastName, domain.Role(req.Role), false)
}

// VerifyToken validates an access token and returns its claims.
func (s *AuthService) VerifyToken(token string) (*auth.AccessClaims, error) {
	claims, err := s.tokenService.VerifyAccessToken(token)
	if err != nil {
		return nil, domainerrors.Unauthorized("invalid or expired token").WithCause(err)
	}
	return claims, nil
}

// VerifyAccessToken validates a token and loads the user it was issued to.
// The returned user has the password hash stripped.
func (s *AuthService) VerifyAccessToken(ctx context.Context, token string) (*domain.User, *auth.AccessClaims, error) {
	claims, err := s.VerifyToken(token)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.store.Users.Get(ctx, claims.UserID)
	if err != nil {
		// The user behind a valid token may have been deleted since issue.
		return nil, nil, domainerrors.Unauthorized("invalid or expired token").WithCause(err)
	}

	sanitized := *user
	sanitized.PasswordHash = ""
	return &sanitized, claims, nil
}

func (s *AuthService) createUser(ctx context.Context, email, password, first, last string, role domain.Role, isRoot bool) (*domain.User, error) {
	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userID, err := id.Generate("user")
	if err != nil {
		return nil, fmt.Errorf("generate user ID: %w", err)
	}

	user := &domain.User{
		Email:        normalize.Email(email),
		PasswordHash: passwordHash,
		IsRoot:       isRoot,
		Role:         role,
		FirstName:    first,
		LastName:     last,
		DisplayName:  first + " " + last,
	}
	user.ID = userID
	user.Stamp(userID)

	if err := s.store.Users.Create(ctx, userID, user); err != nil {
		if domainerrors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExistsf("a user with email %s already exists", user.Email)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user created", "user_id", userID, "role", role)
	return user, nil
}

func (s *AuthService) issueToken(user *domain.User) (*AuthResponse, error) {
	token, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	// Never hand the hash back to a client.
	sanitized := *user
	sanitized.PasswordHash = ""

	return &AuthResponse{
		User:        &sanitized,
		AccessToken: token,
		ExpiresAt:   time.Now().Add(s.tokenService.AccessTokenDuration()),
	}, nil
}

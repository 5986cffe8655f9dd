// Package services contains server-side business logic. This file implements
// UserService: registration and password login that mints access tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/Sonchiik/Workout-Traker/internal/common"
	"github.com/Sonchiik/Workout-Traker/internal/server/auth"
	"github.com/Sonchiik/Workout-Traker/internal/server/config"
	"github.com/Sonchiik/Workout-Traker/internal/server/models"
	"github.com/Sonchiik/Workout-Traker/internal/server/repositories/repomanager"
)

// TokenType is reported alongside every access token.
const TokenType = "bearer"

// TokenResponse is the result of a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// RegisterInput carries a new credential. Password is plaintext and is only
// held long enough to hash it.
type RegisterInput struct {
	UserName string
	Password string
	IsActive bool
	IsAdmin  bool
}

// UserService provides authentication-related operations:
// - Register: create users with a bcrypt password hash
// - Login: verify credentials and mint an access token
type UserService struct {
	db                   *sql.DB
	repomanager          repomanager.RepositoryManager
	hasher               *auth.PasswordHasher
	tokens               *auth.TokenManager
	rejectInactiveLogins bool

	// dummyHash is compared against when the username is unknown so both
	// failure paths cost one bcrypt comparison.
	dummyHash string
}

// NewUserService constructs a UserService using repositories, the shared
// token manager and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, tokens *auth.TokenManager, cfg *config.Config) *UserService {
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	dummy, _ := hasher.Hash("workout-tracker-dummy-password")
	return &UserService{
		db:                   db,
		repomanager:          m,
		hasher:               hasher,
		tokens:               tokens,
		rejectInactiveLogins: cfg.RejectInactiveLogins,
		dummyHash:            dummy,
	}
}

// Register hashes the password and stores a new credential. The username is
// kept byte for byte; a blank one is refused. A taken username yields
// ErrUserExists and leaves the store unchanged.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if strings.TrimSpace(in.UserName) == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", common.ErrorValidation)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: password is longer than 72 bytes", common.ErrorValidation)
		}
		return nil, common.ErrorInternal
	}

	user := &models.User{
		UserName:     in.UserName,
		PasswordHash: hash,
		IsActive:     in.IsActive,
		IsAdmin:      in.IsAdmin,
	}
	u, err := s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login checks the password and returns a fresh access token. Unknown users
// and wrong passwords both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, userName, password string) (*TokenResponse, error) {
	user, err := s.repomanager.Users(s.db).GetUserByLogin(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify(password, s.dummyHash)
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, common.ErrorUnauthorized
	}
	if s.rejectInactiveLogins && !user.IsActive {
		return nil, common.ErrorUnauthorized
	}

	token, err := s.tokens.Issue(user.UserName, user.ID, user.IsAdmin)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenResponse{AccessToken: token, TokenType: TokenType}, nil
}

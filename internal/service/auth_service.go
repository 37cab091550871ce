package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"catalog/internal/auth"
	"catalog/internal/errors"
	"catalog/internal/model"
	"catalog/internal/repository"
	"catalog/internal/validation"
)

const bcryptCost = 10

// RegisterInput carries a registration request.
type RegisterInput struct {
	Name                 string `json:"name" form:"name" validate:"required,max=255"`
	Email                string `json:"email" form:"email" validate:"required,email,max=255"`
	Password             string `json:"password" form:"password" validate:"required,min=8,eqfield=PasswordConfirmation"`
	PasswordConfirmation string `json:"password_confirmation" form:"password_confirmation"`
	Role                 string `json:"role" form:"role" validate:"required,oneof=admin user"`
}

// LoginInput carries login credentials.
type LoginInput struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// AuthService handles registration and login.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*model.User, error)
	Login(ctx context.Context, input LoginInput) (token string, err error)
}

type authService struct {
	users  repository.UserRepository
	jwt    *auth.JWTService
	tokens auth.TokenStoreInterface
	log    zerolog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, jwt *auth.JWTService, tokens auth.TokenStoreInterface, log zerolog.Logger) AuthService {
	return &authService{users: users, jwt: jwt, tokens: tokens, log: log}
}

// Register validates the input, hashes the password, and persists the user
// with the role exactly as given. The returned representation never carries
// the hash; the model hides it from JSON.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	fields := validation.Struct(&input)

	// Uniqueness fast path; the unique index remains the authority.
	if input.Email != "" {
		taken, err := s.users.ExistsByEmail(ctx, input.Email)
		if err != nil {
			return nil, fmt.Errorf("check email uniqueness: %w", err)
		}
		if taken {
			fields.Add("email", "The email has already been taken.")
		}
	}
	if fields.Any() {
		s.log.Warn().Str("op", "register").Str("kind", "validation").Msg(fields.Summary())
		return nil, errors.NewValidationError(fields)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashed),
		Role:         input.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if err == gorm.ErrDuplicatedKey {
			fields.Add("email", "The email has already been taken.")
			return nil, errors.NewValidationError(fields)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info().Str("op", "register").Uint("user_id", user.ID).Msg("user registered")
	return user, nil
}

// Login looks up the user by email, verifies the password against the stored
// hash, and issues a bearer token. The lookup always precedes the hash check.
func (s *authService) Login(ctx context.Context, input LoginInput) (string, error) {
	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			s.log.Warn().Str("op", "login").Str("kind", "credentials").Msg("email not found")
			return "", errors.ErrEmailNotFound
		}
		return "", fmt.Errorf("find user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		s.log.Warn().Str("op", "login").Str("kind", "credentials").Uint("user_id", user.ID).Msg("incorrect password")
		return "", errors.ErrIncorrectPassword
	}

	tokenID, token, err := s.jwt.GenerateToken(user)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	if err := s.tokens.StoreToken(ctx, tokenID, user.ID, auth.TokenExpiry); err != nil {
		return "", fmt.Errorf("store token: %w", err)
	}

	s.log.Info().Str("op", "login").Uint("user_id", user.ID).Msg("login successful")
	return token, nil
}

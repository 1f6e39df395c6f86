package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/meric/queryportal/internal/app/models"
	"github.com/meric/queryportal/internal/app/models/dto"
	"github.com/meric/queryportal/internal/db"
	"github.com/meric/queryportal/internal/pkg/apperrors"
	"github.com/meric/queryportal/internal/pkg/auth"
	"github.com/meric/queryportal/internal/pkg/validation"
)

// userStore is the slice of the user repository the auth service needs.
type userStore interface {
	CreateUserTx(ctx context.Context, tx pgx.Tx, user *models.User) (int64, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// tokenStore is the slice of the token repository the auth service needs.
type tokenStore interface {
	CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error
	CreateTokenTx(ctx context.Context, tx pgx.Tx, token string, userID int64, expiryDate time.Time) error
	GetTokenUser(ctx context.Context, token string) (int64, error)
	RevokeToken(ctx context.Context, token string) error
	RevokeTokenTx(ctx context.Context, tx pgx.Tx, token string) error
	RevokeAllForUser(ctx context.Context, userID int64) error
}

// transactor runs a function inside a single database transaction.
type transactor interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

// AuthService handles registration, login and token lifecycle.
type AuthService struct {
	userRepo   userStore
	tokenRepo  tokenStore
	tx         transactor
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo userStore, tokenRepo tokenStore, tx transactor, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		tx:         tx,
		jwtService: jwtService,
		logger:     logger,
	}
}

// validateRegistration checks the registration fields before any row is written.
func (s *AuthService) validateRegistration(req *dto.RegisterRequest) error {
	if !req.Role.Valid() {
		return fmt.Errorf("%w: role must be student or teacher", apperrors.ErrInvalidRole)
	}
	if !validation.NonEmpty(req.Name) {
		return apperrors.NewValidationError("name cannot be empty")
	}
	if !validation.NonEmpty(req.Department) {
		return apperrors.NewValidationError("department cannot be empty")
	}
	if !validation.IsValidEmail(req.Email) {
		return apperrors.ErrInvalidEmail
	}
	if len(req.Password) < validation.PasswordMinLength {
		return fmt.Errorf("%w: password must be at least %d characters long",
			apperrors.ErrInvalidPassword, validation.PasswordMinLength)
	}
	if req.Role == models.RoleStudent {
		if !validation.NonEmpty(req.RollNo) {
			return apperrors.NewValidationError("roll number is required for students")
		}
		if !validation.IsValidRollNo(req.RollNo) {
			return apperrors.NewValidationError("roll number format is invalid")
		}
	}
	return nil
}

// Register creates a new user and issues an initial token pair.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, *dto.TokenResponse, error) {
	if err := s.validateRegistration(req); err != nil {
		return nil, nil, err
	}

	// Emails are stored exactly as submitted (trimmed only); uniqueness and
	// login lookups are case-sensitive.
	email := strings.TrimSpace(req.Email)

	exists, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, nil, fmt.Errorf("error checking if email exists: %w", err)
	}
	if exists {
		return nil, nil, apperrors.ErrEmailAlreadyExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Role:         req.Role,
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hashedPassword,
		Department:   strings.TrimSpace(req.Department),
	}
	if req.Role == models.RoleStudent {
		rollNo := strings.TrimSpace(req.RollNo)
		user.RollNo = &rollNo
	}

	// The user row and its first refresh token land in one transaction so a
	// token failure does not leave an orphaned account behind.
	var tokens *dto.TokenResponse
	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := s.userRepo.CreateUserTx(ctx, tx, user); err != nil {
			return fmt.Errorf("user creation error: %w", err)
		}
		tokens, err = s.issueTokensTx(ctx, tx, user)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("role", string(user.Role)).Msg("User registered")
	return user, tokens, nil
}

// Login authenticates a user by email and password.
// Unknown email and wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*models.User, *dto.TokenResponse, error) {
	if !validation.NonEmpty(req.Email) || req.Password == "" {
		return nil, nil, apperrors.NewValidationError("email and password are required")
	}

	user, err := s.userRepo.GetUserByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	tokens, err := s.generateTokenResponse(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

// Refresh rotates a refresh token: the old token is revoked and a fresh pair
// is issued for the same user.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	if !validation.NonEmpty(refreshToken) {
		return nil, apperrors.ErrTokenInvalid
	}

	userID, err := s.tokenRepo.GetTokenUser(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user not found for token: %w", err)
	}

	// Revoke and reissue atomically: a failure on either side leaves the old
	// token usable rather than locking the user out.
	var tokens *dto.TokenResponse
	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.tokenRepo.RevokeTokenTx(ctx, tx, refreshToken); err != nil {
			return fmt.Errorf("failed to revoke old token: %w", err)
		}
		tokens, err = s.issueTokensTx(ctx, tx, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// Logout revokes the presented refresh token. A token that is already gone is
// not an error: logout clears the session unconditionally.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if !validation.NonEmpty(refreshToken) {
		return nil
	}

	err := s.tokenRepo.RevokeToken(ctx, refreshToken)
	if err != nil && !apperrors.IsAny(err, apperrors.ErrTokenNotFound) {
		return fmt.Errorf("failed to revoke token on logout: %w", err)
	}
	return nil
}

// LogoutAll revokes every live refresh token the user holds, ending all of
// their sessions at once.
func (s *AuthService) LogoutAll(ctx context.Context, userID int64) error {
	if err := s.tokenRepo.RevokeAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke tokens on logout-all: %w", err)
	}

	s.logger.Info().Int64("userID", userID).Msg("All sessions revoked")
	return nil
}

// generateTokenResponse issues a token pair and persists the refresh token.
func (s *AuthService) generateTokenResponse(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	tokens, err := s.buildTokenPair(user)
	if err != nil {
		return nil, err
	}

	if err := s.tokenRepo.CreateToken(ctx, tokens.RefreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}
	return tokens, nil
}

// issueTokensTx is generateTokenResponse with the refresh token persisted
// inside the caller's transaction.
func (s *AuthService) issueTokensTx(ctx context.Context, tx pgx.Tx, user *models.User) (*dto.TokenResponse, error) {
	tokens, err := s.buildTokenPair(user)
	if err != nil {
		return nil, err
	}

	if err := s.tokenRepo.CreateTokenTx(ctx, tx, tokens.RefreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}
	return tokens, nil
}

func (s *AuthService) buildTokenPair(user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:           accessToken,
		TokenType:             "Bearer",
		ExpiresIn:             expiresIn,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresIn: refreshExpiresIn,
	}, nil
}

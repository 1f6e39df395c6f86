package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/meric/queryportal/internal/app/models"
	"github.com/meric/queryportal/internal/app/models/dto"
	"github.com/meric/queryportal/internal/pkg/apperrors"
	"github.com/meric/queryportal/internal/pkg/validation"
	"github.com/rs/zerolog"
)

// profileStore is the slice of the user repository the user service needs.
type profileStore interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	EmailTakenByOther(ctx context.Context, email string, userID int64) (bool, error)
	UpdateProfile(ctx context.Context, user *models.User) error
}

// UserService handles profile reads and edits.
type UserService struct {
	userRepo profileStore
	logger   zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo profileStore, logger zerolog.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetProfile returns the user record of the actor.
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile edits the actor's own name, email, department and, for
// students, roll number. An email already held by another user is rejected.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !validation.NonEmpty(req.Name) || !validation.NonEmpty(req.Department) {
		return nil, apperrors.NewValidationError("name and department are required")
	}
	if !validation.IsValidEmail(req.Email) {
		return nil, apperrors.ErrInvalidEmail
	}
	if user.IsStudent() && !validation.NonEmpty(req.RollNo) {
		return nil, apperrors.NewValidationError("roll number is required for students")
	}

	email := strings.TrimSpace(req.Email)
	taken, err := s.userRepo.EmailTakenByOther(ctx, email, userID)
	if err != nil {
		return nil, fmt.Errorf("error checking email availability: %w", err)
	}
	if taken {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	user.Name = strings.TrimSpace(req.Name)
	user.Email = email
	user.Department = strings.TrimSpace(req.Department)
	if user.IsStudent() {
		rollNo := strings.TrimSpace(req.RollNo)
		user.RollNo = &rollNo
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Msg("Profile updated")
	return user, nil
}

package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/meric/queryportal/internal/app/models"
	"github.com/meric/queryportal/internal/app/models/dto"
	"github.com/meric/queryportal/internal/middleware"
	"github.com/rs/zerolog"
)

type profileService interface {
	GetProfile(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*models.User, error)
}

type teacherLister interface {
	ListByRole(ctx context.Context, role models.Role) ([]*models.User, error)
}

// UserController handles profile and user directory operations
type UserController struct {
	userService profileService
	userRepo    teacherLister
	logger      zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userService profileService, userRepo teacherLister, logger zerolog.Logger) *UserController {
	return &UserController{
		userService: userService,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// GetProfile returns the authenticated user's own profile.
func (c *UserController) GetProfile(ctx *gin.Context) {
	actor, ok := middleware.CurrentActor(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	user, err := c.userService.GetProfile(ctx.Request.Context(), actor.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewUserResponse(user)))
}

// UpdateProfile updates the authenticated user's name, email, department
// and, for students, the roll number.
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	actor, ok := middleware.CurrentActor(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	user, err := c.userService.UpdateProfile(ctx.Request.Context(), actor.UserID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userID", user.ID).Msg("Profile updated")

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewUserResponse(user)))
}

// ListTeachers returns every registered teacher so students can pick a
// recipient when submitting a query.
func (c *UserController) ListTeachers(ctx *gin.Context) {
	teachers, err := c.userRepo.ListByRole(ctx.Request.Context(), models.RoleTeacher)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	out := make([]dto.UserResponse, 0, len(teachers))
	for _, t := range teachers {
		out = append(out, dto.NewUserResponse(t))
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(out))
}

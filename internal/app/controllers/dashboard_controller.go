package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/meric/queryportal/internal/app/models"
	"github.com/meric/queryportal/internal/app/models/dto"
	"github.com/meric/queryportal/internal/middleware"
	"github.com/rs/zerolog"
)

// recentQueryCount limits how many queries a dashboard shows.
const recentQueryCount = 5

// DashboardController aggregates the landing page data for each role
type DashboardController struct {
	userService       profileService
	enrollmentService enrollmentManager
	queryService      queryManager
	logger            zerolog.Logger
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(userService profileService, enrollmentService enrollmentManager, queryService queryManager, logger zerolog.Logger) *DashboardController {
	return &DashboardController{
		userService:       userService,
		enrollmentService: enrollmentService,
		queryService:      queryService,
		logger:            logger,
	}
}

// StudentDashboard returns the student's profile, enrolled subjects and
// most recent queries.
func (c *DashboardController) StudentDashboard(ctx *gin.Context) {
	actor, _ := middleware.CurrentActor(ctx)
	reqCtx := ctx.Request.Context()

	user, err := c.userService.GetProfile(reqCtx, actor.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	subjects, err := c.enrollmentService.ListSubjectsForStudent(reqCtx, actor.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	queries, err := c.queryService.ListForStudent(reqCtx, actor.UserID, recentQueryCount)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.DashboardResponse{
		User:     dto.NewUserResponse(user),
		Subjects: dto.NewSubjectListResponse(subjects),
		Queries:  dto.NewQueryListResponse(queries),
	}))
}

// TeacherDashboard returns the teacher's profile, assigned subjects and
// most recent pending queries awaiting a reply.
func (c *DashboardController) TeacherDashboard(ctx *gin.Context) {
	actor, _ := middleware.CurrentActor(ctx)
	reqCtx := ctx.Request.Context()

	user, err := c.userService.GetProfile(reqCtx, actor.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	subjects, err := c.enrollmentService.ListSubjectsForTeacher(reqCtx, actor.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	queries, err := c.queryService.ListForTeacher(reqCtx, actor.UserID, string(models.QueryStatusPending), recentQueryCount)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.DashboardResponse{
		User:     dto.NewUserResponse(user),
		Subjects: dto.NewSubjectListResponse(subjects),
		Queries:  dto.NewQueryListResponse(queries),
	}))
}

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

type queryManager interface {
	Submit(ctx context.Context, studentID int64, req *dto.SubmitQueryRequest) (*models.Query, error)
	GetForTeacher(ctx context.Context, queryID, teacherID int64) (*models.Query, error)
	ListForStudent(ctx context.Context, studentID int64, limit int) ([]*models.Query, error)
	ListForTeacher(ctx context.Context, teacherID int64, statusFilter string, limit int) ([]*models.Query, error)
	Respond(ctx context.Context, queryID, teacherID int64, reply string) (*models.Query, error)
}

// QueryController handles question threads between students and teachers
type QueryController struct {
	queryService queryManager
	logger       zerolog.Logger
}

// NewQueryController creates a new QueryController
func NewQueryController(queryService queryManager, logger zerolog.Logger) *QueryController {
	return &QueryController{
		queryService: queryService,
		logger:       logger,
	}
}

// SubmitQuery files a new pending query from the student to a teacher.
func (c *QueryController) SubmitQuery(ctx *gin.Context) {
	actor, _ := middleware.CurrentActor(ctx)

	var req dto.SubmitQueryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	query, err := c.queryService.Submit(ctx.Request.Context(), actor.UserID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("queryID", query.ID).
		Int64("studentID", actor.UserID).
		Int64("teacherID", query.TeacherID).
		Msg("Query submitted")

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.NewQueryResponse(query)))
}

// ListStudentQueries returns every query the student has submitted,
// newest first.
func (c *QueryController) ListStudentQueries(ctx *gin.Context) {
	actor, _ := middleware.CurrentActor(ctx)

	queries, err := c.queryService.ListForStudent(ctx.Request.Context(), actor.UserID, 0)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewQueryListResponse(queries)))
}

// ListTeacherQueries returns queries addressed to the teacher, newest
// first. An optional ?status=pending|answered query parameter narrows
// the result.
func (c *QueryController) ListTeacherQueries(ctx *gin.Context) {
	actor, _ := middleware.CurrentActor(ctx)

	statusFilter := ctx.Query("status")

	queries, err := c.queryService.ListForTeacher(ctx.Request.Context(), actor.UserID, statusFilter, 0)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewQueryListResponse(queries)))
}

// GetTeacherQuery returns a single query addressed to the teacher, loaded
// when viewing a question before answering it.
func (c *QueryController) GetTeacherQuery(ctx *gin.Context) {
	actor, _ := middleware.CurrentActor(ctx)

	queryID, err := parseIDParam(ctx, "id")
	if err != nil {
		return
	}

	query, err := c.queryService.GetForTeacher(ctx.Request.Context(), queryID, actor.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewQueryResponse(query)))
}

// RespondQuery records the teacher's reply to a query addressed to them
// and marks it answered.
func (c *QueryController) RespondQuery(ctx *gin.Context) {
	actor, _ := middleware.CurrentActor(ctx)

	queryID, err := parseIDParam(ctx, "id")
	if err != nil {
		return
	}

	var req dto.RespondQueryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	query, err := c.queryService.Respond(ctx.Request.Context(), queryID, actor.UserID, req.Reply)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("queryID", query.ID).
		Int64("teacherID", actor.UserID).
		Msg("Query answered")

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewQueryResponse(query)))
}

package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/meric/queryportal/internal/app/models"
	"github.com/meric/queryportal/internal/app/models/dto"
	"github.com/meric/queryportal/internal/middleware"
	"github.com/rs/zerolog"
)

type enrollmentManager interface {
	EnrollStudent(ctx context.Context, studentID int64, name, department string) (*models.StudentSubject, error)
	WithdrawStudent(ctx context.Context, studentID, subjectID int64) error
	AssignTeacher(ctx context.Context, teacherID int64, name, department string) (*models.TeacherSubject, error)
	UnassignTeacher(ctx context.Context, teacherID, subjectID int64) error
	ListSubjectsForStudent(ctx context.Context, studentID int64) ([]*models.Subject, error)
	ListSubjectsForTeacher(ctx context.Context, teacherID int64) ([]*models.Subject, error)
	ListAllSubjects(ctx context.Context) ([]*models.Subject, error)
}

// EnrollmentController handles subject enrollment for students and
// subject assignment for teachers.
type EnrollmentController struct {
	enrollmentService enrollmentManager
	logger            zerolog.Logger
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService enrollmentManager, logger zerolog.Logger) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
		logger:            logger,
	}
}

// ListStudentSubjects returns the subjects the student is enrolled in.
func (c *EnrollmentController) ListStudentSubjects(ctx *gin.Context) {
	actor, _ := middleware.CurrentActor(ctx)

	subjects, err := c.enrollmentService.ListSubjectsForStudent(ctx.Request.Context(), actor.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewSubjectListResponse(subjects)))
}

// EnrollSubject enrolls the student in a subject, creating the subject
// record first if no subject with that name and department exists yet.
func (c *EnrollmentController) EnrollSubject(ctx *gin.Context) {
	actor, _ := middleware.CurrentActor(ctx)

	var req dto.EnrollSubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	enrollment, err := c.enrollmentService.EnrollStudent(ctx.Request.Context(), actor.UserID, req.Name, req.Department)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("studentID", actor.UserID).
		Int64("subjectID", enrollment.SubjectID).
		Msg("Student enrolled in subject")

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.NewSubjectResponse(enrollment.Subject)))
}

// WithdrawSubject removes the student's enrollment in a subject.
func (c *EnrollmentController) WithdrawSubject(ctx *gin.Context) {
	actor, _ := middleware.CurrentActor(ctx)

	subjectID, err := parseIDParam(ctx, "subjectId")
	if err != nil {
		return
	}

	if err := c.enrollmentService.WithdrawStudent(ctx.Request.Context(), actor.UserID, subjectID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("studentID", actor.UserID).
		Int64("subjectID", subjectID).
		Msg("Student withdrawn from subject")

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Withdrawn from subject"}))
}

// ListTeacherSubjects returns the subjects assigned to the teacher.
func (c *EnrollmentController) ListTeacherSubjects(ctx *gin.Context) {
	actor, _ := middleware.CurrentActor(ctx)

	subjects, err := c.enrollmentService.ListSubjectsForTeacher(ctx.Request.Context(), actor.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewSubjectListResponse(subjects)))
}

// AssignSubject assigns a subject to the teacher, creating the subject
// record first if needed.
func (c *EnrollmentController) AssignSubject(ctx *gin.Context) {
	actor, _ := middleware.CurrentActor(ctx)

	var req dto.AssignSubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	assignment, err := c.enrollmentService.AssignTeacher(ctx.Request.Context(), actor.UserID, req.Name, req.Department)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("teacherID", actor.UserID).
		Int64("subjectID", assignment.SubjectID).
		Msg("Subject assigned to teacher")

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.NewSubjectResponse(assignment.Subject)))
}

// UnassignSubject removes the teacher's assignment to a subject.
func (c *EnrollmentController) UnassignSubject(ctx *gin.Context) {
	actor, _ := middleware.CurrentActor(ctx)

	subjectID, err := parseIDParam(ctx, "subjectId")
	if err != nil {
		return
	}

	if err := c.enrollmentService.UnassignTeacher(ctx.Request.Context(), actor.UserID, subjectID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("teacherID", actor.UserID).
		Int64("subjectID", subjectID).
		Msg("Subject unassigned from teacher")

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Subject unassigned"}))
}

// ListAllSubjects returns every subject known to the portal.
func (c *EnrollmentController) ListAllSubjects(ctx *gin.Context) {
	subjects, err := c.enrollmentService.ListAllSubjects(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewSubjectListResponse(subjects)))
}

// parseIDParam parses a positive integer path parameter, writing a 400
// response and returning an error when it is malformed.
func parseIDParam(ctx *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter")
		errorDetail = errorDetail.WithField(name)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		if err == nil {
			err = strconv.ErrRange
		}
		return 0, err
	}
	return id, nil
}

package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/meric/queryportal/internal/app/models"
	"github.com/meric/queryportal/internal/app/models/dto"
	"github.com/meric/queryportal/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// queryStore is the slice of the query repository the service needs.
type queryStore interface {
	Create(ctx context.Context, query *models.Query) error
	GetByIDForTeacher(ctx context.Context, queryID, teacherID int64) (*models.Query, error)
	ListByStudent(ctx context.Context, studentID int64, limit int) ([]*models.Query, error)
	ListByTeacher(ctx context.Context, teacherID int64, status *models.QueryStatus, limit int) ([]*models.Query, error)
	SetReply(ctx context.Context, queryID, teacherID int64, reply string) (*models.Query, error)
}

// userGetter resolves referenced users when a query is submitted.
type userGetter interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// subjectGetter resolves referenced subjects when a query is submitted.
type subjectGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Subject, error)
}

// QueryService runs the question/answer workflow between students and teachers.
type QueryService struct {
	queryRepo   queryStore
	userRepo    userGetter
	subjectRepo subjectGetter
	logger      zerolog.Logger
}

// NewQueryService creates a new QueryService
func NewQueryService(queryRepo queryStore, userRepo userGetter, subjectRepo subjectGetter, logger zerolog.Logger) *QueryService {
	return &QueryService{
		queryRepo:   queryRepo,
		userRepo:    userRepo,
		subjectRepo: subjectRepo,
		logger:      logger,
	}
}

// Submit creates a new pending query from a student to a teacher.
// The addressed user must exist and hold the teacher role, and the subject
// must exist. There is deliberately no check that the teacher is assigned to
// the subject or that the student is enrolled in it.
func (s *QueryService) Submit(ctx context.Context, studentID int64, req *dto.SubmitQueryRequest) (*models.Query, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, apperrors.NewValidationError("message cannot be empty")
	}

	teacher, err := s.userRepo.GetUserByID(ctx, req.TeacherID)
	if err != nil {
		if apperrors.IsAny(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.NewValidationError("addressed teacher does not exist")
		}
		return nil, fmt.Errorf("error resolving teacher: %w", err)
	}
	if !teacher.IsTeacher() {
		return nil, apperrors.NewValidationError("addressed user is not a teacher")
	}

	if _, err := s.subjectRepo.GetByID(ctx, req.SubjectID); err != nil {
		if apperrors.IsAny(err, apperrors.ErrSubjectNotFound) {
			return nil, apperrors.NewValidationError("referenced subject does not exist")
		}
		return nil, fmt.Errorf("error resolving subject: %w", err)
	}

	query := &models.Query{
		StudentID: studentID,
		TeacherID: req.TeacherID,
		SubjectID: req.SubjectID,
		Message:   message,
	}

	if err := s.queryRepo.Create(ctx, query); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("queryID", query.ID).Int64("studentID", studentID).Int64("teacherID", req.TeacherID).Msg("Query submitted")
	return query, nil
}

// ListForStudent returns the student's own queries, newest first.
func (s *QueryService) ListForStudent(ctx context.Context, studentID int64, limit int) ([]*models.Query, error) {
	return s.queryRepo.ListByStudent(ctx, studentID, limit)
}

// ListForTeacher returns queries addressed to the teacher, newest first.
// statusFilter may be empty, "pending" or "answered".
func (s *QueryService) ListForTeacher(ctx context.Context, teacherID int64, statusFilter string, limit int) ([]*models.Query, error) {
	var status *models.QueryStatus
	switch statusFilter {
	case "":
		// no filter
	case string(models.QueryStatusPending), string(models.QueryStatusAnswered):
		st := models.QueryStatus(statusFilter)
		status = &st
	default:
		return nil, apperrors.NewValidationError("status must be pending or answered")
	}

	return s.queryRepo.ListByTeacher(ctx, teacherID, status, limit)
}

// GetForTeacher returns a single query addressed to the teacher, typically
// loaded before composing a reply. A query addressed to another teacher is
// indistinguishable from a missing one.
func (s *QueryService) GetForTeacher(ctx context.Context, queryID, teacherID int64) (*models.Query, error) {
	return s.queryRepo.GetByIDForTeacher(ctx, queryID, teacherID)
}

// Respond records the teacher's reply and moves the query to answered.
// Only the addressed teacher may respond; a second response overwrites the
// first reply and leaves the status answered.
func (s *QueryService) Respond(ctx context.Context, queryID, teacherID int64, reply string) (*models.Query, error) {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return nil, apperrors.NewValidationError("reply cannot be empty")
	}

	query, err := s.queryRepo.SetReply(ctx, queryID, teacherID, reply)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("queryID", queryID).Int64("teacherID", teacherID).Msg("Query answered")
	return query, nil
}

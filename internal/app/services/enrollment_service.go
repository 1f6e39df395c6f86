package services

import (
	"context"
	"strings"

	"github.com/meric/queryportal/internal/app/models"
	"github.com/meric/queryportal/internal/pkg/apperrors"
	"github.com/meric/queryportal/internal/pkg/validation"
	"github.com/rs/zerolog"
)

// subjectStore is the slice of the subject repository the enrollment service needs.
type subjectStore interface {
	FindOrCreate(ctx context.Context, name, department string) (*models.Subject, error)
	GetAll(ctx context.Context) ([]*models.Subject, error)
}

// edgeStore is the slice of the enrollment repository the service needs.
type edgeStore interface {
	EnrollStudent(ctx context.Context, studentID, subjectID int64) (*models.StudentSubject, error)
	WithdrawStudent(ctx context.Context, studentID, subjectID int64) error
	AssignTeacher(ctx context.Context, teacherID, subjectID int64) (*models.TeacherSubject, error)
	UnassignTeacher(ctx context.Context, teacherID, subjectID int64) error
	ListSubjectsForStudent(ctx context.Context, studentID int64) ([]*models.Subject, error)
	ListSubjectsForTeacher(ctx context.Context, teacherID int64) ([]*models.Subject, error)
}

// EnrollmentService manages student↔subject and teacher↔subject relationships.
type EnrollmentService struct {
	subjectRepo subjectStore
	edgeRepo    edgeStore
	logger      zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(subjectRepo subjectStore, edgeRepo edgeStore, logger zerolog.Logger) *EnrollmentService {
	return &EnrollmentService{
		subjectRepo: subjectRepo,
		edgeRepo:    edgeRepo,
		logger:      logger,
	}
}

// FindOrCreateSubject resolves a (name, department) pair to a subject row,
// creating it on first use.
func (s *EnrollmentService) FindOrCreateSubject(ctx context.Context, name, department string) (*models.Subject, error) {
	name = strings.TrimSpace(name)
	department = strings.TrimSpace(department)
	if name == "" || department == "" {
		return nil, apperrors.NewValidationError("subject name and department are required")
	}
	if len(name) > validation.NameMaxLength || len(department) > validation.NameMaxLength {
		return nil, apperrors.NewValidationError("subject name and department are limited to 100 characters")
	}

	return s.subjectRepo.FindOrCreate(ctx, name, department)
}

// EnrollStudent registers the student for the subject named by the pair,
// creating the subject if it does not exist yet.
func (s *EnrollmentService) EnrollStudent(ctx context.Context, studentID int64, name, department string) (*models.StudentSubject, error) {
	subject, err := s.FindOrCreateSubject(ctx, name, department)
	if err != nil {
		return nil, err
	}

	edge, err := s.edgeRepo.EnrollStudent(ctx, studentID, subject.ID)
	if err != nil {
		return nil, err
	}
	edge.Subject = subject

	s.logger.Info().Int64("studentID", studentID).Int64("subjectID", subject.ID).Msg("Student enrolled in subject")
	return edge, nil
}

// WithdrawStudent removes the student's own enrollment edge.
func (s *EnrollmentService) WithdrawStudent(ctx context.Context, studentID, subjectID int64) error {
	if subjectID <= 0 {
		return apperrors.NewValidationError("invalid subject id")
	}

	if err := s.edgeRepo.WithdrawStudent(ctx, studentID, subjectID); err != nil {
		return err
	}

	s.logger.Info().Int64("studentID", studentID).Int64("subjectID", subjectID).Msg("Student withdrawn from subject")
	return nil
}

// AssignTeacher assigns the teacher to the subject named by the pair,
// creating the subject if it does not exist yet.
func (s *EnrollmentService) AssignTeacher(ctx context.Context, teacherID int64, name, department string) (*models.TeacherSubject, error) {
	subject, err := s.FindOrCreateSubject(ctx, name, department)
	if err != nil {
		return nil, err
	}

	edge, err := s.edgeRepo.AssignTeacher(ctx, teacherID, subject.ID)
	if err != nil {
		return nil, err
	}
	edge.Subject = subject

	s.logger.Info().Int64("teacherID", teacherID).Int64("subjectID", subject.ID).Msg("Teacher assigned to subject")
	return edge, nil
}

// UnassignTeacher removes the teacher's own assignment edge.
func (s *EnrollmentService) UnassignTeacher(ctx context.Context, teacherID, subjectID int64) error {
	if subjectID <= 0 {
		return apperrors.NewValidationError("invalid subject id")
	}

	if err := s.edgeRepo.UnassignTeacher(ctx, teacherID, subjectID); err != nil {
		return err
	}

	s.logger.Info().Int64("teacherID", teacherID).Int64("subjectID", subjectID).Msg("Teacher unassigned from subject")
	return nil
}

// ListSubjectsForStudent returns the subjects the student is enrolled in.
func (s *EnrollmentService) ListSubjectsForStudent(ctx context.Context, studentID int64) ([]*models.Subject, error) {
	return s.edgeRepo.ListSubjectsForStudent(ctx, studentID)
}

// ListSubjectsForTeacher returns the subjects the teacher is assigned to.
func (s *EnrollmentService) ListSubjectsForTeacher(ctx context.Context, teacherID int64) ([]*models.Subject, error) {
	return s.edgeRepo.ListSubjectsForTeacher(ctx, teacherID)
}

// ListAllSubjects returns every subject, for the query submission form.
func (s *EnrollmentService) ListAllSubjects(ctx context.Context) ([]*models.Subject, error) {
	return s.subjectRepo.GetAll(ctx)
}

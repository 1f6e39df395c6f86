package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meric/queryportal/internal/app/models"
	"github.com/meric/queryportal/internal/pkg/apperrors"
	"github.com/meric/queryportal/internal/pkg/dberrors"
)

// EnrollmentRepository handles the student_subjects and teacher_subjects
// edge tables.
type EnrollmentRepository struct {
	db *pgxpool.Pool
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
	}
}

// EnrollStudent inserts a student↔subject edge.
// The unique constraint on (student_id, subject_id) guards duplicates.
func (r *EnrollmentRepository) EnrollStudent(ctx context.Context, studentID, subjectID int64) (*models.StudentSubject, error) {
	query := `
		INSERT INTO student_subjects (student_id, subject_id)
		VALUES ($1, $2)
		RETURNING id, registered_at
	`

	edge := &models.StudentSubject{StudentID: studentID, SubjectID: subjectID}
	err := r.db.QueryRow(ctx, query, studentID, subjectID).Scan(&edge.ID, &edge.RegisteredAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "student_subjects_student_id_subject_id_key") {
			return nil, apperrors.ErrAlreadyEnrolled
		}
		if dberrors.IsForeignKeyViolation(err) {
			return nil, apperrors.ErrSubjectNotFound
		}
		return nil, fmt.Errorf("error enrolling student: %w", err)
	}

	return edge, nil
}

// WithdrawStudent deletes a student↔subject edge.
func (r *EnrollmentRepository) WithdrawStudent(ctx context.Context, studentID, subjectID int64) error {
	query := `DELETE FROM student_subjects WHERE student_id = $1 AND subject_id = $2`

	cmdTag, err := r.db.Exec(ctx, query, studentID, subjectID)
	if err != nil {
		return fmt.Errorf("error withdrawing student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	return nil
}

// AssignTeacher inserts a teacher↔subject edge.
func (r *EnrollmentRepository) AssignTeacher(ctx context.Context, teacherID, subjectID int64) (*models.TeacherSubject, error) {
	query := `
		INSERT INTO teacher_subjects (teacher_id, subject_id)
		VALUES ($1, $2)
		RETURNING id, assigned_at
	`

	edge := &models.TeacherSubject{TeacherID: teacherID, SubjectID: subjectID}
	err := r.db.QueryRow(ctx, query, teacherID, subjectID).Scan(&edge.ID, &edge.AssignedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "teacher_subjects_teacher_id_subject_id_key") {
			return nil, apperrors.ErrAlreadyAssigned
		}
		if dberrors.IsForeignKeyViolation(err) {
			return nil, apperrors.ErrSubjectNotFound
		}
		return nil, fmt.Errorf("error assigning teacher: %w", err)
	}

	return edge, nil
}

// UnassignTeacher deletes a teacher↔subject edge.
func (r *EnrollmentRepository) UnassignTeacher(ctx context.Context, teacherID, subjectID int64) error {
	query := `DELETE FROM teacher_subjects WHERE teacher_id = $1 AND subject_id = $2`

	cmdTag, err := r.db.Exec(ctx, query, teacherID, subjectID)
	if err != nil {
		return fmt.Errorf("error unassigning teacher: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAssignmentNotFound
	}

	return nil
}

// ListSubjectsForStudent joins subjects over the enrollment edge table,
// ordered by edge insertion.
func (r *EnrollmentRepository) ListSubjectsForStudent(ctx context.Context, studentID int64) ([]*models.Subject, error) {
	query := `
		SELECT s.id, s.name, s.department
		FROM subjects s
		JOIN student_subjects ss ON ss.subject_id = s.id
		WHERE ss.student_id = $1
		ORDER BY ss.id
	`

	return r.listSubjects(ctx, query, studentID)
}

// ListSubjectsForTeacher joins subjects over the assignment edge table,
// ordered by edge insertion.
func (r *EnrollmentRepository) ListSubjectsForTeacher(ctx context.Context, teacherID int64) ([]*models.Subject, error) {
	query := `
		SELECT s.id, s.name, s.department
		FROM subjects s
		JOIN teacher_subjects ts ON ts.subject_id = s.id
		WHERE ts.teacher_id = $1
		ORDER BY ts.id
	`

	return r.listSubjects(ctx, query, teacherID)
}

func (r *EnrollmentRepository) listSubjects(ctx context.Context, query string, userID int64) ([]*models.Subject, error) {
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing subjects: %w", err)
	}
	defer rows.Close()

	var subjects []*models.Subject
	for rows.Next() {
		var subject models.Subject
		if err := rows.Scan(&subject.ID, &subject.Name, &subject.Department); err != nil {
			return nil, err
		}
		subjects = append(subjects, &subject)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return subjects, nil
}

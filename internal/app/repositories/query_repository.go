package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meric/queryportal/internal/app/models"
	"github.com/meric/queryportal/internal/pkg/apperrors"
	"github.com/meric/queryportal/internal/pkg/dberrors"
)

// QueryRepository handles database operations for query threads
type QueryRepository struct {
	db *pgxpool.Pool
}

// NewQueryRepository creates a new query repository
func NewQueryRepository(db *pgxpool.Pool) *QueryRepository {
	return &QueryRepository{
		db: db,
	}
}

// Create inserts a new pending query.
func (r *QueryRepository) Create(ctx context.Context, query *models.Query) error {
	sql := `
		INSERT INTO queries (student_id, teacher_id, subject_id, message, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, sql,
		query.StudentID, query.TeacherID, query.SubjectID, query.Message, models.QueryStatusPending,
	).Scan(&query.ID, &query.CreatedAt, &query.UpdatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewValidationError("referenced student, teacher or subject does not exist")
		}
		return fmt.Errorf("error creating query: %w", err)
	}

	query.Status = models.QueryStatusPending
	return nil
}

// GetByIDForTeacher retrieves a query only when it is addressed to the given
// teacher. A missing row and a row owned by another teacher produce the same
// ErrQueryNotFound.
func (r *QueryRepository) GetByIDForTeacher(ctx context.Context, queryID, teacherID int64) (*models.Query, error) {
	sql := `
		SELECT id, student_id, teacher_id, subject_id, message, reply, status, created_at, updated_at
		FROM queries
		WHERE id = $1 AND teacher_id = $2
	`

	var q models.Query
	err := r.db.QueryRow(ctx, sql, queryID, teacherID).Scan(
		&q.ID,
		&q.StudentID,
		&q.TeacherID,
		&q.SubjectID,
		&q.Message,
		&q.Reply,
		&q.Status,
		&q.CreatedAt,
		&q.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrQueryNotFound
		}
		return nil, fmt.Errorf("error retrieving query: %w", err)
	}

	return &q, nil
}

// SetReply records the teacher's reply, flips the status to answered and
// refreshes the update timestamp. The teacher id is part of the predicate so
// the write is also the ownership check.
func (r *QueryRepository) SetReply(ctx context.Context, queryID, teacherID int64, reply string) (*models.Query, error) {
	sql := `
		UPDATE queries
		SET reply = $1, status = $2, updated_at = NOW()
		WHERE id = $3 AND teacher_id = $4
		RETURNING id, student_id, teacher_id, subject_id, message, reply, status, created_at, updated_at
	`

	var q models.Query
	err := r.db.QueryRow(ctx, sql, reply, models.QueryStatusAnswered, queryID, teacherID).Scan(
		&q.ID,
		&q.StudentID,
		&q.TeacherID,
		&q.SubjectID,
		&q.Message,
		&q.Reply,
		&q.Status,
		&q.CreatedAt,
		&q.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrQueryNotFound
		}
		return nil, fmt.Errorf("error updating query reply: %w", err)
	}

	return &q, nil
}

// ListByStudent retrieves all queries submitted by a student, newest first.
// A non-positive limit returns all rows.
func (r *QueryRepository) ListByStudent(ctx context.Context, studentID int64, limit int) ([]*models.Query, error) {
	sql := `
		SELECT id, student_id, teacher_id, subject_id, message, reply, status, created_at, updated_at
		FROM queries
		WHERE student_id = $1
		ORDER BY created_at DESC
	`
	args := []interface{}{studentID}
	if limit > 0 {
		sql += ` LIMIT $2`
		args = append(args, limit)
	}

	return r.list(ctx, sql, args...)
}

// ListByTeacher retrieves queries addressed to a teacher, newest first,
// optionally filtered by status. A non-positive limit returns all rows.
func (r *QueryRepository) ListByTeacher(ctx context.Context, teacherID int64, status *models.QueryStatus, limit int) ([]*models.Query, error) {
	sql := `
		SELECT id, student_id, teacher_id, subject_id, message, reply, status, created_at, updated_at
		FROM queries
		WHERE teacher_id = $1
	`
	args := []interface{}{teacherID}

	if status != nil {
		args = append(args, *status)
		sql += fmt.Sprintf(` AND status = $%d`, len(args))
	}

	sql += ` ORDER BY created_at DESC`

	if limit > 0 {
		args = append(args, limit)
		sql += fmt.Sprintf(` LIMIT $%d`, len(args))
	}

	return r.list(ctx, sql, args...)
}

func (r *QueryRepository) list(ctx context.Context, sql string, args ...interface{}) ([]*models.Query, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing queries: %w", err)
	}
	defer rows.Close()

	var queries []*models.Query
	for rows.Next() {
		var q models.Query
		if err := rows.Scan(
			&q.ID,
			&q.StudentID,
			&q.TeacherID,
			&q.SubjectID,
			&q.Message,
			&q.Reply,
			&q.Status,
			&q.CreatedAt,
			&q.UpdatedAt,
		); err != nil {
			return nil, err
		}
		queries = append(queries, &q)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return queries, nil
}

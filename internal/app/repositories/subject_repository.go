package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meric/queryportal/internal/app/models"
	"github.com/meric/queryportal/internal/pkg/apperrors"
)

// SubjectRepository handles database operations for subjects
type SubjectRepository struct {
	db *pgxpool.Pool
}

// NewSubjectRepository creates a new subject repository
func NewSubjectRepository(db *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{
		db: db,
	}
}

// GetByID retrieves a subject by id.
func (r *SubjectRepository) GetByID(ctx context.Context, id int64) (*models.Subject, error) {
	query := `
		SELECT id, name, department
		FROM subjects
		WHERE id = $1
	`

	var subject models.Subject
	err := r.db.QueryRow(ctx, query, id).Scan(&subject.ID, &subject.Name, &subject.Department)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubjectNotFound
		}
		return nil, fmt.Errorf("error retrieving subject: %w", err)
	}

	return &subject, nil
}

// GetByNameAndDepartment retrieves a subject by its natural key.
func (r *SubjectRepository) GetByNameAndDepartment(ctx context.Context, name, department string) (*models.Subject, error) {
	query := `
		SELECT id, name, department
		FROM subjects
		WHERE name = $1 AND department = $2
	`

	var subject models.Subject
	err := r.db.QueryRow(ctx, query, name, department).Scan(&subject.ID, &subject.Name, &subject.Department)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubjectNotFound
		}
		return nil, fmt.Errorf("error retrieving subject: %w", err)
	}

	return &subject, nil
}

// FindOrCreate returns the subject for (name, department), inserting it first
// if absent. Concurrent identical inserts are resolved by the unique
// constraint on (name, department): ON CONFLICT DO NOTHING makes the loser
// fall through to re-reading the winner row.
func (r *SubjectRepository) FindOrCreate(ctx context.Context, name, department string) (*models.Subject, error) {
	insert := `
		INSERT INTO subjects (name, department)
		VALUES ($1, $2)
		ON CONFLICT (name, department) DO NOTHING
		RETURNING id
	`

	var subject models.Subject
	subject.Name = name
	subject.Department = department

	err := r.db.QueryRow(ctx, insert, name, department).Scan(&subject.ID)
	if err == nil {
		return &subject, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("error creating subject: %w", err)
	}

	// Row already existed; read the winner.
	return r.GetByNameAndDepartment(ctx, name, department)
}

// GetAll retrieves all subjects in insertion order.
func (r *SubjectRepository) GetAll(ctx context.Context) ([]*models.Subject, error) {
	query := `
		SELECT id, name, department
		FROM subjects
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
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

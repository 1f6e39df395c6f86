// Package seed populates demo data for local development
package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	appModels "github.com/meric/queryportal/internal/app/models"
	appRepos "github.com/meric/queryportal/internal/app/repositories"
	"github.com/meric/queryportal/internal/pkg/apperrors"
	"github.com/meric/queryportal/internal/pkg/auth"
	"github.com/rs/zerolog"
)

// demo account credentials for local development only
const demoPassword = "password123"

// CreateDefaultData creates a demo teacher, student and subject set if they
// don't exist. Errors are collected and logged rather than aborting startup.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	subjectRepo := appRepos.NewSubjectRepository(dbPool)
	enrollmentRepo := appRepos.NewEnrollmentRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")

	passwordHash, err := auth.HashPassword(demoPassword)
	if err != nil {
		return err
	}

	var finalErr error

	teacherID, err := ensureUser(ctx, userRepo, &appModels.User{
		Role:         appModels.RoleTeacher,
		Name:         "Asha Verma",
		Email:        "asha.verma@example.edu",
		PasswordHash: passwordHash,
		Department:   "Computer Science",
	})
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating demo teacher")
		finalErr = errors.Join(finalErr, err)
	}

	rollNo := "CS-2024-001"
	studentID, err := ensureUser(ctx, userRepo, &appModels.User{
		Role:         appModels.RoleStudent,
		Name:         "Rohan Gupta",
		Email:        "rohan.gupta@example.edu",
		PasswordHash: passwordHash,
		Department:   "Computer Science",
		RollNo:       &rollNo,
	})
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating demo student")
		finalErr = errors.Join(finalErr, err)
	}

	subjectNames := []string{"Operating Systems", "Databases", "Computer Networks"}
	for i, name := range subjectNames {
		subject, err := subjectRepo.FindOrCreate(ctx, name, "Computer Science")
		if err != nil {
			lgr.Error().Err(err).Str("subject", name).Msg("Error creating demo subject")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		if teacherID > 0 {
			if _, err := enrollmentRepo.AssignTeacher(ctx, teacherID, subject.ID); err != nil &&
				!errors.Is(err, apperrors.ErrAlreadyAssigned) {
				lgr.Error().Err(err).Str("subject", name).Msg("Error assigning demo subject")
				finalErr = errors.Join(finalErr, err)
			}
		}

		// Enroll the student in the first two subjects only, leaving one
		// free so the enroll flow can be exercised by hand.
		if studentID > 0 && i < 2 {
			if _, err := enrollmentRepo.EnrollStudent(ctx, studentID, subject.ID); err != nil &&
				!errors.Is(err, apperrors.ErrAlreadyEnrolled) {
				lgr.Error().Err(err).Str("subject", name).Msg("Error enrolling demo student")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	if finalErr == nil {
		lgr.Info().Msg("Default data ready")
	}
	return finalErr
}

// ensureUser creates the user or resolves the existing account's ID when
// the email is already registered.
func ensureUser(ctx context.Context, userRepo *appRepos.UserRepository, user *appModels.User) (int64, error) {
	id, err := userRepo.CreateUser(ctx, user)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		return 0, err
	}

	existing, err := userRepo.GetUserByEmail(ctx, user.Email)
	if err != nil {
		return 0, err
	}
	return existing.ID, nil
}

package services

import (
	"context"
	"testing"

	"github.com/meric/queryportal/internal/app/models"
	"github.com/meric/queryportal/internal/app/models/dto"
	"github.com/meric/queryportal/internal/pkg/apperrors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserServiceForTest() (*UserService, *fakeUserRepo) {
	userRepo := newFakeUserRepo()
	return NewUserService(userRepo, zerolog.Nop()), userRepo
}

func TestUserServiceGetProfile(t *testing.T) {
	ctx := context.Background()
	svc, userRepo := newUserServiceForTest()

	seeded := userRepo.addUser(&models.User{
		Role: models.RoleTeacher, Name: "Asha Verma",
		Email: "asha@example.edu", Department: "Computer Science",
	})

	user, err := svc.GetProfile(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha Verma", user.Name)

	_, err = svc.GetProfile(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUserServiceUpdateProfile(t *testing.T) {
	ctx := context.Background()

	rollNo := "CS-2024-001"
	newStudent := func(repo *fakeUserRepo) *models.User {
		return repo.addUser(&models.User{
			Role: models.RoleStudent, Name: "Rohan Gupta",
			Email: "rohan@example.edu", Department: "Computer Science", RollNo: &rollNo,
		})
	}

	t.Run("ok", func(t *testing.T) {
		svc, userRepo := newUserServiceForTest()
		student := newStudent(userRepo)

		updated, err := svc.UpdateProfile(ctx, student.ID, &dto.UpdateProfileRequest{
			Name:       "Rohan K. Gupta",
			Email:      "Rohan.K@Example.EDU",
			Department: "Mathematics",
			RollNo:     "MA-2024-042",
		})
		require.NoError(t, err)
		assert.Equal(t, "Rohan K. Gupta", updated.Name)
		assert.Equal(t, "Rohan.K@Example.EDU", updated.Email, "email case is kept as submitted")
		assert.Equal(t, "Mathematics", updated.Department)
		require.NotNil(t, updated.RollNo)
		assert.Equal(t, "MA-2024-042", *updated.RollNo)
	})

	t.Run("email taken by another user", func(t *testing.T) {
		svc, userRepo := newUserServiceForTest()
		student := newStudent(userRepo)
		userRepo.addUser(&models.User{
			Role: models.RoleTeacher, Name: "Asha Verma",
			Email: "asha@example.edu", Department: "Computer Science",
		})

		_, err := svc.UpdateProfile(ctx, student.ID, &dto.UpdateProfileRequest{
			Name: "Rohan", Email: "asha@example.edu",
			Department: "Computer Science", RollNo: rollNo,
		})
		assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	})

	t.Run("keeping own email is allowed", func(t *testing.T) {
		svc, userRepo := newUserServiceForTest()
		student := newStudent(userRepo)

		_, err := svc.UpdateProfile(ctx, student.ID, &dto.UpdateProfileRequest{
			Name: "Rohan Gupta", Email: "rohan@example.edu",
			Department: "Computer Science", RollNo: rollNo,
		})
		assert.NoError(t, err)
	})

	t.Run("student cannot clear roll number", func(t *testing.T) {
		svc, userRepo := newUserServiceForTest()
		student := newStudent(userRepo)

		_, err := svc.UpdateProfile(ctx, student.ID, &dto.UpdateProfileRequest{
			Name: "Rohan", Email: "rohan@example.edu",
			Department: "Computer Science", RollNo: "  ",
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, _ := newUserServiceForTest()
		_, err := svc.UpdateProfile(ctx, 999, &dto.UpdateProfileRequest{
			Name: "X", Email: "x@example.edu", Department: "Y",
		})
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}

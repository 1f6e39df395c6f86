package services

import (
	"context"
	"strings"
	"testing"

	"github.com/meric/queryportal/internal/pkg/apperrors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEnrollmentServiceForTest() (*EnrollmentService, *fakeSubjectRepo, *fakeEdgeRepo) {
	subjectRepo := newFakeSubjectRepo()
	edgeRepo := newFakeEdgeRepo(subjectRepo)
	svc := NewEnrollmentService(subjectRepo, edgeRepo, zerolog.Nop())
	return svc, subjectRepo, edgeRepo
}

func TestFindOrCreateSubject(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newEnrollmentServiceForTest()

	first, err := svc.FindOrCreateSubject(ctx, "Databases", "Computer Science")
	require.NoError(t, err)

	// Same pair resolves to the same row, including after trimming.
	again, err := svc.FindOrCreateSubject(ctx, "  Databases ", "Computer Science")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	// Same name in another department is a distinct subject.
	other, err := svc.FindOrCreateSubject(ctx, "Databases", "Mathematics")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)

	t.Run("rejects empty and oversized names", func(t *testing.T) {
		_, err := svc.FindOrCreateSubject(ctx, "   ", "Computer Science")
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

		_, err = svc.FindOrCreateSubject(ctx, strings.Repeat("x", 101), "Computer Science")
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestEnrollAndWithdrawStudent(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newEnrollmentServiceForTest()
	const studentID = int64(7)

	edge, err := svc.EnrollStudent(ctx, studentID, "Operating Systems", "Computer Science")
	require.NoError(t, err)
	require.NotNil(t, edge.Subject)
	assert.Equal(t, "Operating Systems", edge.Subject.Name)

	t.Run("double enrollment is rejected", func(t *testing.T) {
		_, err := svc.EnrollStudent(ctx, studentID, "Operating Systems", "Computer Science")
		assert.ErrorIs(t, err, apperrors.ErrAlreadyEnrolled)
	})

	t.Run("withdraw removes the enrollment only", func(t *testing.T) {
		require.NoError(t, svc.WithdrawStudent(ctx, studentID, edge.SubjectID))

		subjects, err := svc.ListSubjectsForStudent(ctx, studentID)
		require.NoError(t, err)
		assert.Empty(t, subjects)

		// The subject row itself survives the withdrawal.
		all, err := svc.ListAllSubjects(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("withdraw without enrollment", func(t *testing.T) {
		err := svc.WithdrawStudent(ctx, studentID, edge.SubjectID)
		assert.ErrorIs(t, err, apperrors.ErrEnrollmentNotFound)
	})

	t.Run("withdraw with bad subject id", func(t *testing.T) {
		err := svc.WithdrawStudent(ctx, studentID, 0)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestAssignAndUnassignTeacher(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newEnrollmentServiceForTest()
	const teacherID = int64(3)

	edge, err := svc.AssignTeacher(ctx, teacherID, "Computer Networks", "Computer Science")
	require.NoError(t, err)
	require.NotNil(t, edge.Subject)

	_, err = svc.AssignTeacher(ctx, teacherID, "Computer Networks", "Computer Science")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyAssigned)

	subjects, err := svc.ListSubjectsForTeacher(ctx, teacherID)
	require.NoError(t, err)
	require.Len(t, subjects, 1)

	require.NoError(t, svc.UnassignTeacher(ctx, teacherID, edge.SubjectID))

	err = svc.UnassignTeacher(ctx, teacherID, edge.SubjectID)
	assert.ErrorIs(t, err, apperrors.ErrAssignmentNotFound)
}

func TestEnrollmentsAreIndependentPerUser(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newEnrollmentServiceForTest()

	_, err := svc.EnrollStudent(ctx, 1, "Algebra", "Mathematics")
	require.NoError(t, err)
	_, err = svc.EnrollStudent(ctx, 2, "Algebra", "Mathematics")
	require.NoError(t, err)

	require.NoError(t, svc.WithdrawStudent(ctx, 1, 1))

	// Student 2 keeps their enrollment.
	subjects, err := svc.ListSubjectsForStudent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, subjects, 1)
}

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

type queryFixture struct {
	svc       *QueryService
	queryRepo *fakeQueryRepo
	teacher   *models.User
	student   *models.User
	subject   *models.Subject
}

func newQueryFixture(t *testing.T) *queryFixture {
	t.Helper()

	userRepo := newFakeUserRepo()
	subjectRepo := newFakeSubjectRepo()
	queryRepo := newFakeQueryRepo()

	teacher := userRepo.addUser(&models.User{
		Role: models.RoleTeacher, Name: "Asha Verma",
		Email: "asha@example.edu", Department: "Computer Science",
	})
	rollNo := "CS-2024-001"
	student := userRepo.addUser(&models.User{
		Role: models.RoleStudent, Name: "Rohan Gupta",
		Email: "rohan@example.edu", Department: "Computer Science", RollNo: &rollNo,
	})

	subject, err := subjectRepo.FindOrCreate(context.Background(), "Databases", "Computer Science")
	require.NoError(t, err)

	return &queryFixture{
		svc:       NewQueryService(queryRepo, userRepo, subjectRepo, zerolog.Nop()),
		queryRepo: queryRepo,
		teacher:   teacher,
		student:   student,
		subject:   subject,
	}
}

func (fx *queryFixture) submit(t *testing.T, message string) *models.Query {
	t.Helper()
	query, err := fx.svc.Submit(context.Background(), fx.student.ID, &dto.SubmitQueryRequest{
		TeacherID: fx.teacher.ID,
		SubjectID: fx.subject.ID,
		Message:   message,
	})
	require.NoError(t, err)
	return query
}

func TestQuerySubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		fx := newQueryFixture(t)

		query := fx.submit(t, "  What is a B-tree?  ")
		assert.Equal(t, models.QueryStatusPending, query.Status)
		assert.Equal(t, "What is a B-tree?", query.Message)
		assert.Nil(t, query.Reply)
	})

	t.Run("empty message", func(t *testing.T) {
		fx := newQueryFixture(t)
		_, err := fx.svc.Submit(ctx, fx.student.ID, &dto.SubmitQueryRequest{
			TeacherID: fx.teacher.ID, SubjectID: fx.subject.ID, Message: "   ",
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("unknown teacher", func(t *testing.T) {
		fx := newQueryFixture(t)
		_, err := fx.svc.Submit(ctx, fx.student.ID, &dto.SubmitQueryRequest{
			TeacherID: 999, SubjectID: fx.subject.ID, Message: "hello",
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("addressed user is a student", func(t *testing.T) {
		fx := newQueryFixture(t)
		_, err := fx.svc.Submit(ctx, fx.student.ID, &dto.SubmitQueryRequest{
			TeacherID: fx.student.ID, SubjectID: fx.subject.ID, Message: "hello",
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("unknown subject", func(t *testing.T) {
		fx := newQueryFixture(t)
		_, err := fx.svc.Submit(ctx, fx.student.ID, &dto.SubmitQueryRequest{
			TeacherID: fx.teacher.ID, SubjectID: 999, Message: "hello",
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestQueryRespond(t *testing.T) {
	ctx := context.Background()

	t.Run("answer moves query to answered", func(t *testing.T) {
		fx := newQueryFixture(t)
		query := fx.submit(t, "What is a B-tree?")

		answered, err := fx.svc.Respond(ctx, query.ID, fx.teacher.ID, " A balanced tree. ")
		require.NoError(t, err)
		assert.Equal(t, models.QueryStatusAnswered, answered.Status)
		require.NotNil(t, answered.Reply)
		assert.Equal(t, "A balanced tree.", *answered.Reply)
	})

	t.Run("another teacher cannot answer", func(t *testing.T) {
		fx := newQueryFixture(t)
		query := fx.submit(t, "What is a B-tree?")

		_, err := fx.svc.Respond(ctx, query.ID, fx.teacher.ID+100, "nope")
		assert.ErrorIs(t, err, apperrors.ErrQueryNotFound)

		// The query is untouched by the failed attempt.
		stored := fx.queryRepo.queries[query.ID]
		assert.Equal(t, models.QueryStatusPending, stored.Status)
		assert.Nil(t, stored.Reply)
	})

	t.Run("re-answering overwrites the reply", func(t *testing.T) {
		fx := newQueryFixture(t)
		query := fx.submit(t, "What is a B-tree?")

		_, err := fx.svc.Respond(ctx, query.ID, fx.teacher.ID, "first answer")
		require.NoError(t, err)

		answered, err := fx.svc.Respond(ctx, query.ID, fx.teacher.ID, "better answer")
		require.NoError(t, err)
		assert.Equal(t, "better answer", *answered.Reply)
		assert.Equal(t, models.QueryStatusAnswered, answered.Status)
	})

	t.Run("empty reply", func(t *testing.T) {
		fx := newQueryFixture(t)
		query := fx.submit(t, "What is a B-tree?")

		_, err := fx.svc.Respond(ctx, query.ID, fx.teacher.ID, "   ")
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("unknown query", func(t *testing.T) {
		fx := newQueryFixture(t)
		_, err := fx.svc.Respond(ctx, 404, fx.teacher.ID, "hello")
		assert.ErrorIs(t, err, apperrors.ErrQueryNotFound)
	})
}

func TestQueryGetForTeacher(t *testing.T) {
	ctx := context.Background()
	fx := newQueryFixture(t)
	query := fx.submit(t, "What is a B-tree?")

	t.Run("addressed teacher sees the query", func(t *testing.T) {
		got, err := fx.svc.GetForTeacher(ctx, query.ID, fx.teacher.ID)
		require.NoError(t, err)
		assert.Equal(t, query.ID, got.ID)
		assert.Equal(t, "What is a B-tree?", got.Message)
	})

	t.Run("another teacher gets not found", func(t *testing.T) {
		_, err := fx.svc.GetForTeacher(ctx, query.ID, fx.teacher.ID+100)
		assert.ErrorIs(t, err, apperrors.ErrQueryNotFound)
	})

	t.Run("unknown query", func(t *testing.T) {
		_, err := fx.svc.GetForTeacher(ctx, 404, fx.teacher.ID)
		assert.ErrorIs(t, err, apperrors.ErrQueryNotFound)
	})
}

func TestQueryListing(t *testing.T) {
	ctx := context.Background()
	fx := newQueryFixture(t)

	first := fx.submit(t, "first question")
	second := fx.submit(t, "second question")
	third := fx.submit(t, "third question")

	_, err := fx.svc.Respond(ctx, second.ID, fx.teacher.ID, "answered")
	require.NoError(t, err)

	t.Run("student sees own queries newest first", func(t *testing.T) {
		queries, err := fx.svc.ListForStudent(ctx, fx.student.ID, 0)
		require.NoError(t, err)
		require.Len(t, queries, 3)
		assert.Equal(t, third.ID, queries[0].ID)
		assert.Equal(t, first.ID, queries[2].ID)
	})

	t.Run("limit", func(t *testing.T) {
		queries, err := fx.svc.ListForStudent(ctx, fx.student.ID, 2)
		require.NoError(t, err)
		assert.Len(t, queries, 2)
	})

	t.Run("teacher filter pending", func(t *testing.T) {
		queries, err := fx.svc.ListForTeacher(ctx, fx.teacher.ID, "pending", 0)
		require.NoError(t, err)
		require.Len(t, queries, 2)
		for _, q := range queries {
			assert.Equal(t, models.QueryStatusPending, q.Status)
		}
	})

	t.Run("teacher filter answered", func(t *testing.T) {
		queries, err := fx.svc.ListForTeacher(ctx, fx.teacher.ID, "answered", 0)
		require.NoError(t, err)
		require.Len(t, queries, 1)
		assert.Equal(t, second.ID, queries[0].ID)
	})

	t.Run("no filter returns everything", func(t *testing.T) {
		queries, err := fx.svc.ListForTeacher(ctx, fx.teacher.ID, "", 0)
		require.NoError(t, err)
		assert.Len(t, queries, 3)
	})

	t.Run("bad filter", func(t *testing.T) {
		_, err := fx.svc.ListForTeacher(ctx, fx.teacher.ID, "closed", 0)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

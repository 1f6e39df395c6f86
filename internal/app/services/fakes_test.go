package services

import (
	"context"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/meric/queryportal/internal/app/models"
	"github.com/meric/queryportal/internal/db"
	"github.com/meric/queryportal/internal/pkg/apperrors"
)

// In-memory stand-ins for the repository layer. They mimic the database
// behavior the services depend on, including the sentinel errors the real
// repositories return.

type fakeUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*models.User), nextID: 1}
}

func (f *fakeUserRepo) addUser(u *models.User) *models.User {
	u.ID = f.nextID
	u.CreatedAt = time.Now()
	f.nextID++
	f.users[u.ID] = u
	return u
}

func (f *fakeUserRepo) CreateUserTx(_ context.Context, _ pgx.Tx, user *models.User) (int64, error) {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	f.addUser(user)
	return user.ID, nil
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) EmailTakenByOther(_ context.Context, email string, userID int64) (bool, error) {
	for _, u := range f.users {
		if u.Email == email && u.ID != userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, user *models.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return apperrors.ErrUserNotFound
	}
	f.users[user.ID] = user
	return nil
}

type tokenRecord struct {
	userID  int64
	expiry  time.Time
	revoked bool
}

type fakeTokenRepo struct {
	tokens map[string]*tokenRecord

	// createErr, when set, makes every token insert fail.
	createErr error
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]*tokenRecord)}
}

func (f *fakeTokenRepo) CreateToken(_ context.Context, token string, userID int64, expiryDate time.Time) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.tokens[token]; ok {
		return apperrors.ErrTokenInvalid
	}
	f.tokens[token] = &tokenRecord{userID: userID, expiry: expiryDate}
	return nil
}

func (f *fakeTokenRepo) CreateTokenTx(ctx context.Context, _ pgx.Tx, token string, userID int64, expiryDate time.Time) error {
	return f.CreateToken(ctx, token, userID, expiryDate)
}

func (f *fakeTokenRepo) GetTokenUser(_ context.Context, token string) (int64, error) {
	rec, ok := f.tokens[token]
	if !ok {
		return 0, apperrors.ErrTokenNotFound
	}
	if rec.revoked {
		return 0, apperrors.ErrTokenRevoked
	}
	if rec.expiry.Before(time.Now()) {
		return 0, apperrors.ErrTokenExpired
	}
	return rec.userID, nil
}

func (f *fakeTokenRepo) RevokeToken(_ context.Context, token string) error {
	rec, ok := f.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	rec.revoked = true
	return nil
}

func (f *fakeTokenRepo) RevokeTokenTx(ctx context.Context, _ pgx.Tx, token string) error {
	return f.RevokeToken(ctx, token)
}

func (f *fakeTokenRepo) RevokeAllForUser(_ context.Context, userID int64) error {
	for _, rec := range f.tokens {
		if rec.userID == userID {
			rec.revoked = true
		}
	}
	return nil
}

// fakeTxRunner stands in for the database transaction helper. It emulates
// rollback by restoring the user and token fakes to their pre-transaction
// state when the wrapped function fails.
type fakeTxRunner struct {
	users  *fakeUserRepo
	tokens *fakeTokenRepo
}

func (f *fakeTxRunner) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	userSnap := make(map[int64]*models.User, len(f.users.users))
	for id, u := range f.users.users {
		copied := *u
		userSnap[id] = &copied
	}
	tokenSnap := make(map[string]*tokenRecord, len(f.tokens.tokens))
	for tok, rec := range f.tokens.tokens {
		copied := *rec
		tokenSnap[tok] = &copied
	}

	if err := fn(ctx, nil); err != nil {
		f.users.users = userSnap
		f.tokens.tokens = tokenSnap
		return err
	}
	return nil
}

type fakeSubjectRepo struct {
	subjects map[int64]*models.Subject
	nextID   int64
}

func newFakeSubjectRepo() *fakeSubjectRepo {
	return &fakeSubjectRepo{subjects: make(map[int64]*models.Subject), nextID: 1}
}

func (f *fakeSubjectRepo) FindOrCreate(_ context.Context, name, department string) (*models.Subject, error) {
	for _, s := range f.subjects {
		if s.Name == name && s.Department == department {
			return s, nil
		}
	}
	subject := &models.Subject{ID: f.nextID, Name: name, Department: department}
	f.nextID++
	f.subjects[subject.ID] = subject
	return subject, nil
}

func (f *fakeSubjectRepo) GetByID(_ context.Context, id int64) (*models.Subject, error) {
	subject, ok := f.subjects[id]
	if !ok {
		return nil, apperrors.ErrSubjectNotFound
	}
	return subject, nil
}

func (f *fakeSubjectRepo) GetAll(_ context.Context) ([]*models.Subject, error) {
	out := make([]*models.Subject, 0, len(f.subjects))
	for _, s := range f.subjects {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type edgeKey struct {
	userID    int64
	subjectID int64
}

type fakeEdgeRepo struct {
	subjects     *fakeSubjectRepo
	studentEdges map[edgeKey]time.Time
	teacherEdges map[edgeKey]time.Time
	nextID       int64
}

func newFakeEdgeRepo(subjects *fakeSubjectRepo) *fakeEdgeRepo {
	return &fakeEdgeRepo{
		subjects:     subjects,
		studentEdges: make(map[edgeKey]time.Time),
		teacherEdges: make(map[edgeKey]time.Time),
		nextID:       1,
	}
}

func (f *fakeEdgeRepo) EnrollStudent(_ context.Context, studentID, subjectID int64) (*models.StudentSubject, error) {
	key := edgeKey{studentID, subjectID}
	if _, ok := f.studentEdges[key]; ok {
		return nil, apperrors.ErrAlreadyEnrolled
	}
	if _, ok := f.subjects.subjects[subjectID]; !ok {
		return nil, apperrors.ErrSubjectNotFound
	}
	now := time.Now()
	f.studentEdges[key] = now
	edge := &models.StudentSubject{ID: f.nextID, StudentID: studentID, SubjectID: subjectID, RegisteredAt: now}
	f.nextID++
	return edge, nil
}

func (f *fakeEdgeRepo) WithdrawStudent(_ context.Context, studentID, subjectID int64) error {
	key := edgeKey{studentID, subjectID}
	if _, ok := f.studentEdges[key]; !ok {
		return apperrors.ErrEnrollmentNotFound
	}
	delete(f.studentEdges, key)
	return nil
}

func (f *fakeEdgeRepo) AssignTeacher(_ context.Context, teacherID, subjectID int64) (*models.TeacherSubject, error) {
	key := edgeKey{teacherID, subjectID}
	if _, ok := f.teacherEdges[key]; ok {
		return nil, apperrors.ErrAlreadyAssigned
	}
	if _, ok := f.subjects.subjects[subjectID]; !ok {
		return nil, apperrors.ErrSubjectNotFound
	}
	now := time.Now()
	f.teacherEdges[key] = now
	edge := &models.TeacherSubject{ID: f.nextID, TeacherID: teacherID, SubjectID: subjectID, AssignedAt: now}
	f.nextID++
	return edge, nil
}

func (f *fakeEdgeRepo) UnassignTeacher(_ context.Context, teacherID, subjectID int64) error {
	key := edgeKey{teacherID, subjectID}
	if _, ok := f.teacherEdges[key]; !ok {
		return apperrors.ErrAssignmentNotFound
	}
	delete(f.teacherEdges, key)
	return nil
}

func (f *fakeEdgeRepo) ListSubjectsForStudent(_ context.Context, studentID int64) ([]*models.Subject, error) {
	return f.listSubjects(f.studentEdges, studentID), nil
}

func (f *fakeEdgeRepo) ListSubjectsForTeacher(_ context.Context, teacherID int64) ([]*models.Subject, error) {
	return f.listSubjects(f.teacherEdges, teacherID), nil
}

func (f *fakeEdgeRepo) listSubjects(edges map[edgeKey]time.Time, userID int64) []*models.Subject {
	var out []*models.Subject
	for key := range edges {
		if key.userID == userID {
			out = append(out, f.subjects.subjects[key.subjectID])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type fakeQueryRepo struct {
	queries map[int64]*models.Query
	nextID  int64
}

func newFakeQueryRepo() *fakeQueryRepo {
	return &fakeQueryRepo{queries: make(map[int64]*models.Query), nextID: 1}
}

func (f *fakeQueryRepo) Create(_ context.Context, query *models.Query) error {
	now := time.Now()
	query.ID = f.nextID
	query.Status = models.QueryStatusPending
	query.CreatedAt = now
	query.UpdatedAt = now
	f.nextID++
	f.queries[query.ID] = query
	return nil
}

func (f *fakeQueryRepo) GetByIDForTeacher(_ context.Context, queryID, teacherID int64) (*models.Query, error) {
	query, ok := f.queries[queryID]
	if !ok || query.TeacherID != teacherID {
		return nil, apperrors.ErrQueryNotFound
	}
	return query, nil
}

func (f *fakeQueryRepo) SetReply(_ context.Context, queryID, teacherID int64, reply string) (*models.Query, error) {
	query, ok := f.queries[queryID]
	if !ok || query.TeacherID != teacherID {
		return nil, apperrors.ErrQueryNotFound
	}
	query.Reply = &reply
	query.Status = models.QueryStatusAnswered
	query.UpdatedAt = time.Now()
	return query, nil
}

func (f *fakeQueryRepo) ListByStudent(_ context.Context, studentID int64, limit int) ([]*models.Query, error) {
	return f.list(func(q *models.Query) bool { return q.StudentID == studentID }, limit), nil
}

func (f *fakeQueryRepo) ListByTeacher(_ context.Context, teacherID int64, status *models.QueryStatus, limit int) ([]*models.Query, error) {
	return f.list(func(q *models.Query) bool {
		if q.TeacherID != teacherID {
			return false
		}
		return status == nil || q.Status == *status
	}, limit), nil
}

func (f *fakeQueryRepo) list(match func(*models.Query) bool, limit int) []*models.Query {
	var out []*models.Query
	for _, q := range f.queries {
		if match(q) {
			out = append(out, q)
		}
	}
	// newest first, matching the repository ordering
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

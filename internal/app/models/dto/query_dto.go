package dto

import (
	"time"

	"github.com/meric/queryportal/internal/app/models"
)

// SubmitQueryRequest creates a new pending query addressed to a teacher.
type SubmitQueryRequest struct {
	TeacherID int64  `json:"teacherId" binding:"required,min=1"`
	SubjectID int64  `json:"subjectId" binding:"required,min=1"`
	Message   string `json:"message" binding:"required"`
}

// RespondQueryRequest answers a pending query.
type RespondQueryRequest struct {
	Reply string `json:"reply" binding:"required"`
}

// QueryResponse represents a query thread
type QueryResponse struct {
	ID        int64     `json:"id"`
	StudentID int64     `json:"studentId"`
	TeacherID int64     `json:"teacherId"`
	SubjectID int64     `json:"subjectId"`
	Message   string    `json:"message"`
	Reply     *string   `json:"reply,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewQueryResponse maps a query model to its response form.
func NewQueryResponse(q *models.Query) QueryResponse {
	return QueryResponse{
		ID:        q.ID,
		StudentID: q.StudentID,
		TeacherID: q.TeacherID,
		SubjectID: q.SubjectID,
		Message:   q.Message,
		Reply:     q.Reply,
		Status:    string(q.Status),
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}
}

// NewQueryListResponse maps a slice of queries to response form.
func NewQueryListResponse(queries []*models.Query) []QueryResponse {
	out := make([]QueryResponse, 0, len(queries))
	for _, q := range queries {
		out = append(out, NewQueryResponse(q))
	}
	return out
}

// DashboardResponse bundles the data shown on a role dashboard:
// the actor's subjects plus their most recent queries.
type DashboardResponse struct {
	User     UserResponse      `json:"user"`
	Subjects []SubjectResponse `json:"subjects"`
	Queries  []QueryResponse   `json:"recentQueries"`
}

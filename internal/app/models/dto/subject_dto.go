package dto

import "github.com/meric/queryportal/internal/app/models"

// EnrollSubjectRequest registers the acting student for a subject,
// creating the subject on first use of the (name, department) pair.
type EnrollSubjectRequest struct {
	Name       string `json:"name" binding:"required,max=100"`
	Department string `json:"department" binding:"required,max=100"`
}

// AssignSubjectRequest is the teacher analogue of EnrollSubjectRequest.
type AssignSubjectRequest struct {
	Name       string `json:"name" binding:"required,max=100"`
	Department string `json:"department" binding:"required,max=100"`
}

// SubjectResponse represents a subject
type SubjectResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
}

// NewSubjectResponse maps a subject model to its response form.
func NewSubjectResponse(s *models.Subject) SubjectResponse {
	return SubjectResponse{
		ID:         s.ID,
		Name:       s.Name,
		Department: s.Department,
	}
}

// NewSubjectListResponse maps a slice of subjects to response form.
func NewSubjectListResponse(subjects []*models.Subject) []SubjectResponse {
	out := make([]SubjectResponse, 0, len(subjects))
	for _, s := range subjects {
		out = append(out, NewSubjectResponse(s))
	}
	return out
}

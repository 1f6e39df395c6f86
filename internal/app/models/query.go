package models

import "time"

// Query represents a question thread from a student to a teacher, scoped to a subject.
// Status is 'answered' exactly when Reply is non-nil.
type Query struct {
	ID        int64       `json:"id" db:"id"`
	StudentID int64       `json:"studentId" db:"student_id"`
	TeacherID int64       `json:"teacherId" db:"teacher_id"`
	SubjectID int64       `json:"subjectId" db:"subject_id"`
	Message   string      `json:"message" db:"message"`
	Reply     *string     `json:"reply,omitempty" db:"reply"`
	Status    QueryStatus `json:"status" db:"status"`
	CreatedAt time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time   `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Student *User    `json:"student,omitempty"`
	Teacher *User    `json:"teacher,omitempty"`
	Subject *Subject `json:"subject,omitempty"`
}

// IsPending reports whether the query has not been answered yet.
func (q *Query) IsPending() bool {
	return q.Status == QueryStatusPending
}

// IsAnswered reports whether the query has been answered.
func (q *Query) IsAnswered() bool {
	return q.Status == QueryStatusAnswered
}

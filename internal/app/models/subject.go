package models

import "time"

// Subject represents a (name, department) course context
type Subject struct {
	ID         int64  `json:"id" db:"id"`
	Name       string `json:"name" db:"name"`
	Department string `json:"department" db:"department"`
}

// StudentSubject is the enrollment edge between a student and a subject
type StudentSubject struct {
	ID           int64     `json:"id" db:"id"`
	StudentID    int64     `json:"studentId" db:"student_id"`
	SubjectID    int64     `json:"subjectId" db:"subject_id"`
	RegisteredAt time.Time `json:"registeredAt" db:"registered_at"`

	Subject *Subject `json:"subject,omitempty"` // Relation, no db tag
}

// TeacherSubject is the assignment edge between a teacher and a subject
type TeacherSubject struct {
	ID         int64     `json:"id" db:"id"`
	TeacherID  int64     `json:"teacherId" db:"teacher_id"`
	SubjectID  int64     `json:"subjectId" db:"subject_id"`
	AssignedAt time.Time `json:"assignedAt" db:"assigned_at"`

	Subject *Subject `json:"subject,omitempty"` // Relation, no db tag
}

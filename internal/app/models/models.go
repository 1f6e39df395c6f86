package models

// Role defines the user role type
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleTeacher
}

// QueryStatus defines the lifecycle state of a query thread
type QueryStatus string

const (
	QueryStatusPending  QueryStatus = "pending"
	QueryStatusAnswered QueryStatus = "answered"
)

package validation

import (
	"regexp"
	"strings"
)

// Validation rule patterns
var (
	// EmailPattern is the accepted email address format
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// RollNoPattern accepts institutional roll numbers (alphanumeric with - and /)
	RollNoPattern = `^[A-Za-z0-9\-/]{1,50}$`

	// PasswordMinLength is the minimum accepted password length
	PasswordMinLength = 8

	// NameMaxLength bounds user and subject names
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email  *regexp.Regexp
	RollNo *regexp.Regexp
}{
	Email:  regexp.MustCompile(EmailPattern),
	RollNo: regexp.MustCompile(RollNoPattern),
}

// IsValidEmail reports whether email matches the accepted format.
func IsValidEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(strings.ToLower(strings.TrimSpace(email)))
}

// IsValidRollNo reports whether rollNo matches the accepted format.
func IsValidRollNo(rollNo string) bool {
	return CompiledPatterns.RollNo.MatchString(strings.TrimSpace(rollNo))
}

// NonEmpty reports whether s contains any non-whitespace content.
func NonEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

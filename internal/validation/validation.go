package validation

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"specialcare/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

const (
	MaxNameLength = 100
	MinChildAge   = 1
	MaxChildAge   = 18
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidateName checks if a name is valid
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	n := utf8.RuneCountInString(name)
	if n < 2 {
		return ValidationError{Field: "name", Message: "name must be at least 2 characters"}
	}
	if n > MaxNameLength {
		return ValidationError{Field: "name", Message: fmt.Sprintf("name must be at most %d characters", MaxNameLength)}
	}
	return nil
}

// ValidateAge checks a child's age in whole years
func ValidateAge(age int) error {
	if age < MinChildAge || age > MaxChildAge {
		return ValidationError{Field: "age", Message: fmt.Sprintf("age must be between %d and %d", MinChildAge, MaxChildAge)}
	}
	return nil
}

// ValidateBirthDate accepts an empty value or a YYYY-MM-DD date not in the future
func ValidateBirthDate(date string, now time.Time) error {
	if date == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ValidationError{Field: "birth_date", Message: "birth date must be YYYY-MM-DD"}
	}
	if t.After(now) {
		return ValidationError{Field: "birth_date", Message: "birth date cannot be in the future"}
	}
	return nil
}

// ValidateScore checks a test score is present and within 0-100
func ValidateScore(score *float64) error {
	if score == nil {
		return ValidationError{Field: "score", Message: "score is required"}
	}
	s := *score
	if math.IsNaN(s) || math.IsInf(s, 0) || s < 0 || s > 100 {
		return ValidationError{Field: "score", Message: "score must be between 0 and 100"}
	}
	return nil
}

// ValidatePerformanceLevel checks the level is a known value
func ValidatePerformanceLevel(level models.PerformanceLevel) error {
	if !level.Valid() {
		return ValidationError{Field: "performance_level", Message: fmt.Sprintf("unknown performance level %q", level)}
	}
	return nil
}

// ValidateTestType requires a type tag; unknown tags need a capability domain
func ValidateTestType(testType models.TestType, capability models.Domain) error {
	if strings.TrimSpace(string(testType)) == "" {
		return ValidationError{Field: "test_type", Message: "test type is required"}
	}
	if testType.Family() == models.FamilyUnknown && !capability.Valid() {
		return ValidationError{Field: "test_type", Message: fmt.Sprintf("unknown test type %q needs a capability", testType)}
	}
	if capability != "" && !capability.Valid() {
		return ValidationError{Field: "capability", Message: fmt.Sprintf("unknown capability %q", capability)}
	}
	return nil
}

// ValidatePlanType checks the plan type is weekly or monthly
func ValidatePlanType(planType models.PlanType) error {
	if planType != models.PlanWeekly && planType != models.PlanMonthly {
		return ValidationError{Field: "plan_type", Message: "plan type must be weekly or monthly"}
	}
	return nil
}

// ValidatePlanStatus checks the status is a known value
func ValidatePlanStatus(status models.PlanStatus) error {
	if !status.Valid() {
		return ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", status)}
	}
	return nil
}

// ValidateChild checks the caregiver-supplied fields of a child profile
func ValidateChild(child *models.ChildInfo, now time.Time) error {
	if child == nil {
		return ValidationError{Field: "child", Message: "child is required"}
	}
	if err := ValidateName(child.Name); err != nil {
		return err
	}
	if err := ValidateAge(child.Age); err != nil {
		return err
	}
	if err := ValidateBirthDate(child.BirthDate, now); err != nil {
		return err
	}
	for _, p := range child.Problems {
		if strings.TrimSpace(p) == "" {
			return ValidationError{Field: "problems", Message: "problem tags cannot be blank"}
		}
	}
	return nil
}

// ValidateTestResult checks a result before it is appended to a history
func ValidateTestResult(r *models.TestResult) error {
	if r == nil {
		return ValidationError{Field: "result", Message: "test result is required"}
	}
	if err := ValidateTestType(r.TestType, r.Capability); err != nil {
		return err
	}
	if err := ValidateScore(r.Score); err != nil {
		return err
	}
	return ValidatePerformanceLevel(r.PerformanceLevel)
}

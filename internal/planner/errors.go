package planner

import (
	"errors"
	"fmt"

	"specialcare/internal/models"
)

var (
	ErrUnknownDay   = errors.New("day not found in plan")
	ErrNilPlan      = errors.New("plan is nil")
	ErrInvalidChild = errors.New("child info is required")
)

// InputDataError describes a test result excluded from scoring. It is logged,
// never returned from plan generation
type InputDataError struct {
	Index    int
	ResultID int64
	TestType models.TestType
	Reason   string
}

func (e *InputDataError) Error() string {
	return fmt.Sprintf("test result %d (index %d, type %q): %s", e.ResultID, e.Index, e.TestType, e.Reason)
}

// CatalogGap reports a tier with no activity suitable for the child's age;
// the selector falls back to the unfiltered tier
type CatalogGap struct {
	Domain models.Domain
	Tier   models.PerformanceLevel
	Age    int
}

func (e *CatalogGap) Error() string {
	return fmt.Sprintf("no %s activity in tier %q suits age %d", e.Domain, e.Tier, e.Age)
}

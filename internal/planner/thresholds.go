package planner

import (
	"errors"
	"fmt"
)

// DefaultAge stands in for a missing or non-positive child age
const DefaultAge = 6

// Ages for the scheduled test type: observation below the first, colour and
// shape matching below the second, the grid test from then on
const (
	ObservationTestBelowAge = 3
	GridTestFromAge         = 6
)

// Day-progress boundaries for the activity window
const (
	earlyPhaseEnd = 0.33
	midPhaseEnd   = 0.67
)

const (
	maxFocusAreas     = 3
	maxGoals          = 5
	maxDayActivities  = 5
	minDayActivities  = 2
	perAreaActivities = 2
)

// Thresholds holds the tunable numbers of the rule engine. Scores are on a
// 0-100 scale, durations in minutes and ages in whole years
type Thresholds struct {
	// Mean score below which a domain is severe
	SevereBelow float64
	// Mean score below which a domain needs improvement; also the
	// intervention cut-off for goals
	ModerateBelow float64
	// Pooled mean at or above which a plan extends strengths
	EnrichmentAt float64
	// Age-adaptive tests scoring at least this count toward cognitive too
	AgeAdaptiveSplit float64

	// Minutes added per needs_improvement outcome, and the per-activity cap
	DurationStep int
	DurationCap  int

	// Upper bounds of the goal-wording age bands
	ToddlerMaxAge     int
	PreschoolMaxAge   int
	EarlySchoolMaxAge int
}

// DefaultThresholds returns the stock rule values
func DefaultThresholds() Thresholds {
	return Thresholds{
		SevereBelow:       50,
		ModerateBelow:     70,
		EnrichmentAt:      85,
		AgeAdaptiveSplit:  70,
		DurationStep:      5,
		DurationCap:       30,
		ToddlerMaxAge:     3,
		PreschoolMaxAge:   5,
		EarlySchoolMaxAge: 7,
	}
}

// Validate checks the thresholds are ordered and in range
func (t Thresholds) Validate() error {
	var errs []error
	for name, v := range map[string]float64{
		"severe":       t.SevereBelow,
		"moderate":     t.ModerateBelow,
		"enrichment":   t.EnrichmentAt,
		"age adaptive": t.AgeAdaptiveSplit,
	} {
		if v < 0 || v > 100 {
			errs = append(errs, fmt.Errorf("%s threshold %v outside 0-100", name, v))
		}
	}
	if t.SevereBelow > t.ModerateBelow || t.ModerateBelow > t.EnrichmentAt {
		errs = append(errs, fmt.Errorf("score thresholds must satisfy severe <= moderate <= enrichment"))
	}
	if t.DurationStep <= 0 || t.DurationCap <= 0 {
		errs = append(errs, fmt.Errorf("duration step and cap must be positive"))
	}
	if !(t.ToddlerMaxAge < t.PreschoolMaxAge && t.PreschoolMaxAge < t.EarlySchoolMaxAge) {
		errs = append(errs, fmt.Errorf("age bands must be strictly increasing"))
	}
	return errors.Join(errs...)
}

type ageBand int

const (
	bandToddler ageBand = iota
	bandPreschool
	bandEarlySchool
	bandSchool
)

func (t Thresholds) band(age int) ageBand {
	switch {
	case age <= t.ToddlerMaxAge:
		return bandToddler
	case age <= t.PreschoolMaxAge:
		return bandPreschool
	case age <= t.EarlySchoolMaxAge:
		return bandEarlySchool
	}
	return bandSchool
}

// Translation keys for the attention span and task size of each band
func (b ageBand) keys() (attention, task string) {
	switch b {
	case bandToddler:
		return "duration.attention.toddler", "duration.short_task"
	case bandPreschool:
		return "duration.attention.preschool", "duration.simple_task"
	case bandEarlySchool:
		return "duration.attention.early_school", "duration.medium_task"
	}
	return "duration.attention.school", "duration.complex_task"
}

func normalizeAge(age int) int {
	if age <= 0 {
		return DefaultAge
	}
	return age
}

package models

import (
	"math"
	"time"
)

// PerformanceLevel is the categorical outcome of a test
type PerformanceLevel string

const (
	LevelExcellent        PerformanceLevel = "excellent"
	LevelGood             PerformanceLevel = "good"
	LevelAverage          PerformanceLevel = "average"
	LevelNeedsImprovement PerformanceLevel = "needs_improvement"
)

// PerformanceLevels lists every level from best to worst
var PerformanceLevels = []PerformanceLevel{
	LevelExcellent,
	LevelGood,
	LevelAverage,
	LevelNeedsImprovement,
}

// Valid reports whether the level is one of the known levels
func (l PerformanceLevel) Valid() bool {
	switch l {
	case LevelExcellent, LevelGood, LevelAverage, LevelNeedsImprovement:
		return true
	}
	return false
}

// TestResult represents one recorded test outcome for a child.
// Score is nil when the payload carried no usable score
type TestResult struct {
	ID               int64            `json:"id"`
	ChildID          int64            `json:"child_id"`
	TestType         TestType         `json:"test_type"`
	Capability       Domain           `json:"capability,omitempty"`
	Payload          map[string]any   `json:"payload,omitempty"`
	Score            *float64         `json:"score"`
	PerformanceLevel PerformanceLevel `json:"performance_level"`
	RecordedAt       time.Time        `json:"recorded_at"`
}

// ScoreOf returns a pointer to a score value
func ScoreOf(v float64) *float64 {
	return &v
}

// ValidScore reports whether the result carries a finite score in 0-100
func (r *TestResult) ValidScore() bool {
	if r == nil || r.Score == nil {
		return false
	}
	s := *r.Score
	return !math.IsNaN(s) && !math.IsInf(s, 0) && s >= 0 && s <= 100
}

// Clone returns a copy that shares no mutable state with r
func (r *TestResult) Clone() *TestResult {
	if r == nil {
		return nil
	}
	out := *r
	if r.Score != nil {
		out.Score = ScoreOf(*r.Score)
	}
	if r.Payload != nil {
		out.Payload = make(map[string]any, len(r.Payload))
		for k, v := range r.Payload {
			out.Payload[k] = v
		}
	}
	return &out
}

package models

import "time"

// ChildInfo represents a child profile owned by a caregiver account
type ChildInfo struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Age        int       `json:"age"`
	Gender     string    `json:"gender"`
	BirthDate  string    `json:"birth_date"`
	ParentName string    `json:"parent_name"`
	Condition  string    `json:"condition,omitempty"`
	Problems   []string  `json:"problems,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// HasProblems reports whether the caregiver reported any problem tag
func (c *ChildInfo) HasProblems() bool {
	return c != nil && len(c.Problems) > 0
}

// HasProblem reports whether a reported tag parses to the given problem
func (c *ChildInfo) HasProblem(p Problem) bool {
	if c == nil {
		return false
	}
	for _, tag := range c.Problems {
		if parsed, ok := ParseProblem(tag); ok && parsed == p {
			return true
		}
	}
	return false
}

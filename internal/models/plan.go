package models

import "time"

// ActivityType tags the kind of activity embedded in a daily task
type ActivityType string

const (
	ActivityOnlineGame   ActivityType = "online_game"
	ActivityReading      ActivityType = "reading"
	ActivityOffline      ActivityType = "offline"
	ActivityTask         ActivityType = "task"
	ActivityGuided       ActivityType = "guided"
	ActivityRolePlay     ActivityType = "role_play"
	ActivityConversation ActivityType = "conversation"
	ActivityExercise     ActivityType = "exercise"
	ActivityFineMotor    ActivityType = "fine_motor"
	ActivityMindfulness  ActivityType = "mindfulness"
)

// Valid reports whether the type is known
func (t ActivityType) Valid() bool {
	switch t {
	case ActivityOnlineGame, ActivityReading, ActivityOffline, ActivityTask, ActivityGuided,
		ActivityRolePlay, ActivityConversation, ActivityExercise, ActivityFineMotor, ActivityMindfulness:
		return true
	}
	return false
}

// Activity is one entry of a day's program. Instances embedded in a task are
// independent copies of the catalog entry
type Activity struct {
	Key          string       `json:"key"`
	Type         ActivityType `json:"type"`
	Name         string       `json:"name"`
	Duration     int          `json:"duration"`
	Description  string       `json:"description"`
	MinAge       int          `json:"min_age,omitempty"`
	Online       bool         `json:"can_play_online"`
	GameType     string       `json:"game_type,omitempty"`
	Instructions string       `json:"detailed_instructions,omitempty"`
}

// SuitableFor reports whether the activity's age gate admits a child of age
func (a Activity) SuitableFor(age int) bool {
	return a.MinAge <= age
}

// DailyTask represents one day of a training plan
type DailyTask struct {
	ID            string      `json:"task_id"`
	Day           int         `json:"day"`
	Date          string      `json:"date"` // YYYY-MM-DD
	Activities    []Activity  `json:"activities"`
	Guidance      string      `json:"parent_guidance"`
	TestRequired  bool        `json:"test_required"`
	TestType      TestType    `json:"test_type,omitempty"`
	Completed     bool        `json:"completed"`
	TestCompleted bool        `json:"test_completed"`
	TestResult    *TestResult `json:"test_result,omitempty"`
	Escalate      bool        `json:"escalate,omitempty"`
}

// TotalMinutes sums the durations of the task's activities
func (t *DailyTask) TotalMinutes() int {
	total := 0
	for _, a := range t.Activities {
		total += a.Duration
	}
	return total
}

// PlanType selects the plan length
type PlanType string

const (
	PlanWeekly  PlanType = "weekly"
	PlanMonthly PlanType = "monthly"
)

// Days returns the plan length; anything but weekly is a monthly plan
func (p PlanType) Days() int {
	if p == PlanWeekly {
		return 7
	}
	return 30
}

// PlanStatus is the lifecycle state of a plan
type PlanStatus string

const (
	StatusActive    PlanStatus = "active"
	StatusCompleted PlanStatus = "completed"
	StatusPaused    PlanStatus = "paused"
)

// Valid reports whether the status is known
func (s PlanStatus) Valid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusPaused:
		return true
	}
	return false
}

// TrainingPlan represents a generated day-by-day plan for one child
type TrainingPlan struct {
	ID           string      `json:"plan_id"`
	ChildID      int64       `json:"child_id"`
	PlanType     PlanType    `json:"plan_type"`
	DurationDays int         `json:"duration_days"`
	Language     string      `json:"language"`
	StartDate    string      `json:"start_date"`
	EndDate      string      `json:"end_date"`
	DailyTasks   []DailyTask `json:"daily_tasks"`
	FocusAreas   []Domain    `json:"focus_areas"`
	Goals        []string    `json:"goals"`
	CreatedAt    time.Time   `json:"created_at"`
	Status       PlanStatus  `json:"status"`
}

// Task returns the task for a day index
func (p *TrainingPlan) Task(day int) (*DailyTask, bool) {
	if p == nil {
		return nil, false
	}
	for i := range p.DailyTasks {
		if p.DailyTasks[i].Day == day {
			return &p.DailyTasks[i], true
		}
	}
	return nil, false
}

// Clone returns a deep copy so mutations never leak into the source plan
func (p *TrainingPlan) Clone() *TrainingPlan {
	if p == nil {
		return nil
	}
	out := *p
	out.FocusAreas = append([]Domain(nil), p.FocusAreas...)
	out.Goals = append([]string(nil), p.Goals...)
	out.DailyTasks = make([]DailyTask, len(p.DailyTasks))
	for i, task := range p.DailyTasks {
		task.Activities = append([]Activity(nil), task.Activities...)
		task.TestResult = task.TestResult.Clone()
		out.DailyTasks[i] = task
	}
	return &out
}

// Progress summarizes task completion for a plan
type Progress struct {
	Completed  int     `json:"completed"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// Trend describes how test scores moved over a plan
type Trend string

const (
	TrendInsufficientData       Trend = "insufficient_data"
	TrendSignificantImprovement Trend = "significant_improvement"
	TrendSteadyImprovement      Trend = "steady_improvement"
	TrendSlightImprovement      Trend = "slight_improvement"
	TrendNeedsAttention         Trend = "needs_attention"
	TrendStable                 Trend = "stable"
)

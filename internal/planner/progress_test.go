package planner

import (
	"testing"
	"time"

	"specialcare/internal/models"
)

func TestProgress(t *testing.T) {
	tests := []struct {
		name      string
		completed []bool
		want      models.Progress
	}{
		{"empty", nil, models.Progress{}},
		{"none", []bool{false, false}, models.Progress{Completed: 0, Total: 2, Percentage: 0}},
		{"one of three", []bool{true, false, false}, models.Progress{Completed: 1, Total: 3, Percentage: 33.3}},
		{"two of three", []bool{true, true, false}, models.Progress{Completed: 2, Total: 3, Percentage: 66.7}},
		{"all", []bool{true, true}, models.Progress{Completed: 2, Total: 2, Percentage: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := &models.TrainingPlan{}
			for i, c := range tt.completed {
				plan.DailyTasks = append(plan.DailyTasks, models.DailyTask{Day: i + 1, Completed: c})
			}
			if got := Progress(plan); got != tt.want {
				t.Errorf("Progress() = %+v, want %+v", got, tt.want)
			}
		})
	}

	if got := Progress(nil); got != (models.Progress{}) {
		t.Errorf("Progress(nil) = %+v, want zero", got)
	}
}

func TestTestCompletion(t *testing.T) {
	plan := &models.TrainingPlan{DailyTasks: []models.DailyTask{
		{Day: 1},
		{Day: 2, TestRequired: true, TestCompleted: true},
		{Day: 3},
		{Day: 4, TestRequired: true},
		{Day: 5, TestRequired: true},
	}}

	want := models.Progress{Completed: 1, Total: 3, Percentage: 33.3}
	if got := TestCompletion(plan); got != want {
		t.Errorf("TestCompletion() = %+v, want %+v", got, want)
	}

	noTests := &models.TrainingPlan{DailyTasks: []models.DailyTask{{Day: 1, Completed: true}}}
	if got := TestCompletion(noTests); got != (models.Progress{}) {
		t.Errorf("TestCompletion() without test days = %+v, want zero", got)
	}
}

func TestTrend(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		want   models.Trend
	}{
		{"no scores", nil, models.TrendInsufficientData},
		{"one score", []float64{50}, models.TrendInsufficientData},
		{"significant", []float64{50, 40, 60}, models.TrendSignificantImprovement},
		{"steady", []float64{50, 53}, models.TrendSteadyImprovement},
		{"exactly ten percent is steady", []float64{50, 55}, models.TrendSteadyImprovement},
		{"slight", []float64{50, 52}, models.TrendSlightImprovement},
		{"exactly five percent is slight", []float64{60, 63}, models.TrendSlightImprovement},
		{"from zero", []float64{0, 1}, models.TrendSignificantImprovement},
		{"decline", []float64{70, 90, 65}, models.TrendNeedsAttention},
		{"stable", []float64{70, 20, 70}, models.TrendStable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Trend(tt.scores); got != tt.want {
				t.Errorf("Trend(%v) = %q, want %q", tt.scores, got, tt.want)
			}
		})
	}
}

func TestRecordedScores(t *testing.T) {
	plan := &models.TrainingPlan{DailyTasks: []models.DailyTask{
		{Day: 1},
		{Day: 2, TestResult: &models.TestResult{Score: models.ScoreOf(40)}},
		{Day: 3, TestResult: &models.TestResult{}},
		{Day: 4, TestResult: &models.TestResult{Score: models.ScoreOf(55)}},
	}}

	got := RecordedScores(plan)
	if len(got) != 2 || got[0] != 40 || got[1] != 55 {
		t.Errorf("RecordedScores() = %v, want [40 55]", got)
	}
}

func TestTaskForDate(t *testing.T) {
	b, _ := newTestBuilder(t)
	plan := weeklyPlan(t, b)

	task, ok := TaskForDate(plan, fixedNow.AddDate(0, 0, 3))
	if !ok || task.Day != 4 {
		t.Errorf("TaskForDate(+3d) = day %d, %v, want day 4", task.Day, ok)
	}
	if _, ok := TaskForDate(plan, fixedNow.Add(-24*time.Hour)); ok {
		t.Error("TaskForDate() before the plan found a task")
	}
	if _, ok := TaskForDate(nil, fixedNow); ok {
		t.Error("TaskForDate(nil) found a task")
	}
}

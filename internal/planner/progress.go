package planner

import (
	"math"
	"time"

	"specialcare/internal/models"
)

// Relative gains, in percent, separating the improvement trends
const (
	significantGain = 10.0
	steadyGain      = 5.0
)

// Progress counts completed tasks. Percentage is rounded to one decimal
func Progress(plan *models.TrainingPlan) models.Progress {
	if plan == nil || len(plan.DailyTasks) == 0 {
		return models.Progress{}
	}
	p := models.Progress{Total: len(plan.DailyTasks)}
	for _, t := range plan.DailyTasks {
		if t.Completed {
			p.Completed++
		}
	}
	p.Percentage = percentage(p.Completed, p.Total)
	return p
}

// TestCompletion counts completed tests among the days that require one
func TestCompletion(plan *models.TrainingPlan) models.Progress {
	var p models.Progress
	if plan == nil {
		return p
	}
	for _, t := range plan.DailyTasks {
		if !t.TestRequired {
			continue
		}
		p.Total++
		if t.TestCompleted {
			p.Completed++
		}
	}
	if p.Total > 0 {
		p.Percentage = percentage(p.Completed, p.Total)
	}
	return p
}

func percentage(completed, total int) float64 {
	return math.Round(float64(completed)/float64(total)*1000) / 10
}

// Trend compares the first and last score
func Trend(scores []float64) models.Trend {
	if len(scores) < 2 {
		return models.TrendInsufficientData
	}
	first, last := scores[0], scores[len(scores)-1]
	switch {
	case last > first:
		if first <= 0 {
			return models.TrendSignificantImprovement
		}
		gain := (last - first) / first * 100
		switch {
		case gain > significantGain:
			return models.TrendSignificantImprovement
		case gain > steadyGain:
			return models.TrendSteadyImprovement
		}
		return models.TrendSlightImprovement
	case last < first:
		return models.TrendNeedsAttention
	}
	return models.TrendStable
}

// RecordedScores returns the valid scores recorded on the plan's tasks in day
// order
func RecordedScores(plan *models.TrainingPlan) []float64 {
	if plan == nil {
		return nil
	}
	var scores []float64
	for _, t := range plan.DailyTasks {
		if t.TestResult != nil && t.TestResult.ValidScore() {
			scores = append(scores, *t.TestResult.Score)
		}
	}
	return scores
}

// TaskForDate returns the task scheduled on the calendar date of day
func TaskForDate(plan *models.TrainingPlan, day time.Time) (models.DailyTask, bool) {
	if plan == nil {
		return models.DailyTask{}, false
	}
	date := day.Format(DateLayout)
	for _, t := range plan.DailyTasks {
		if t.Date == date {
			return t, true
		}
	}
	return models.DailyTask{}, false
}

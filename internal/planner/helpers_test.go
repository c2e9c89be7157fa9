package planner

import (
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"specialcare/internal/i18n"
	"specialcare/internal/logger"
	"specialcare/internal/models"
)

var fixedNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

var testBundle = i18n.MustLoadEmbedded()

func newTestBuilder(t *testing.T, opts ...Option) (*Builder, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	base := []Option{
		WithLogger(logger.FromZap(zap.New(core))),
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string { return "plan-test" }),
	}
	return NewBuilder(testBundle, append(base, opts...)...), logs
}

func result(tt models.TestType, score float64, level models.PerformanceLevel) models.TestResult {
	return models.TestResult{TestType: tt, Score: models.ScoreOf(score), PerformanceLevel: level}
}

func tr(key string, params i18n.Params) string {
	return testBundle.T("en", key, params)
}

func durations(task models.DailyTask) []int {
	out := make([]int, len(task.Activities))
	for i, a := range task.Activities {
		out[i] = a.Duration
	}
	return out
}

func keys(activities []models.Activity) []string {
	out := make([]string, len(activities))
	for i, a := range activities {
		out[i] = a.Key
	}
	return out
}

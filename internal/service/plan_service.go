package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"specialcare/internal/database"
	"specialcare/internal/i18n"
	"specialcare/internal/logger"
	"specialcare/internal/models"
	"specialcare/internal/planner"
	"specialcare/internal/repository"
	"specialcare/internal/validation"
)

var (
	ErrPlanNotFound = errors.New("plan not found")
)

// DayScore is a test score recorded on one plan day
type DayScore struct {
	Day              int                     `json:"day"`
	Score            float64                 `json:"score"`
	PerformanceLevel models.PerformanceLevel `json:"performance_level"`
}

// PlanProgress summarizes how far a child is through a plan
type PlanProgress struct {
	PlanID     string          `json:"plan_id"`
	Tasks      models.Progress `json:"tasks"`
	Tests      models.Progress `json:"tests"`
	TestScores []DayScore      `json:"test_scores"`
	Trend      models.Trend    `json:"improvement_trend"`
	Summary    string          `json:"summary"`
	TrendText  string          `json:"trend_text"`
}

// PlanService generates plans and records their daily outcomes
type PlanService struct {
	db         *database.DB
	childRepo  *repository.ChildRepository
	resultRepo *repository.TestResultRepository
	planRepo   *repository.PlanRepository
	builder    *planner.Builder
	tr         i18n.Translator
	log        *logger.Logger
	now        func() time.Time
}

// NewPlanService creates a new plan service
func NewPlanService(db *database.DB, builder *planner.Builder, tr i18n.Translator, log *logger.Logger) *PlanService {
	if log == nil {
		log = logger.Nop()
	}
	return &PlanService{
		db:         db,
		childRepo:  repository.NewChildRepository(db),
		resultRepo: repository.NewTestResultRepository(db),
		planRepo:   repository.NewPlanRepository(db),
		builder:    builder,
		tr:         tr,
		log:        log,
		now:        time.Now,
	}
}

// GeneratePlan builds a new plan from the child's profile and test history
// and stores it
func (s *PlanService) GeneratePlan(childID int64, planType models.PlanType, lang string) (*models.TrainingPlan, error) {
	if err := validation.ValidatePlanType(planType); err != nil {
		return nil, err
	}

	child, err := s.childRepo.GetChildByID(childID)
	if err != nil {
		return nil, fmt.Errorf("failed to get child: %w", err)
	}
	if child == nil {
		return nil, ErrChildNotFound
	}

	history, err := s.resultRepo.GetChildResults(childID)
	if err != nil {
		return nil, fmt.Errorf("failed to get test history: %w", err)
	}

	plan, err := s.builder.Generate(child, history, planType, lang)
	if err != nil {
		return nil, fmt.Errorf("failed to generate plan: %w", err)
	}
	if err := s.planRepo.SavePlan(plan); err != nil {
		return nil, fmt.Errorf("failed to save plan: %w", err)
	}
	return plan, nil
}

// GetPlan retrieves a plan by ID
func (s *PlanService) GetPlan(planID string) (*models.TrainingPlan, error) {
	plan, err := s.planRepo.GetPlan(planID)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		return nil, ErrPlanNotFound
	}
	return plan, nil
}

// ListChildPlans returns a child's plans, newest first
func (s *PlanService) ListChildPlans(childID int64) ([]models.TrainingPlan, error) {
	child, err := s.childRepo.GetChildByID(childID)
	if err != nil {
		return nil, fmt.Errorf("failed to get child: %w", err)
	}
	if child == nil {
		return nil, ErrChildNotFound
	}

	plans, err := s.planRepo.ListChildPlans(childID)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return plans, nil
}

// RecordTaskOutcome marks a day completed or reopened and, when a result is
// given, records it on the day, adapts the remaining days and appends it to
// the child's history. The whole update runs in one transaction against a
// freshly loaded plan
func (s *PlanService) RecordTaskOutcome(planID string, day int, completed bool, result *models.TestResult) (*models.TrainingPlan, error) {
	var updated *models.TrainingPlan
	err := s.db.WithTx(func(tx *database.Tx) error {
		planRepo := repository.NewPlanRepository(tx)

		plan, err := planRepo.GetPlan(planID)
		if err != nil {
			return fmt.Errorf("failed to get plan: %w", err)
		}
		if plan == nil {
			return ErrPlanNotFound
		}

		plan, err = s.builder.MarkTaskCompleted(plan, day, completed)
		if err != nil {
			return err
		}

		if result != nil {
			r, err := s.prepareResult(plan, day, *result)
			if err != nil {
				return err
			}
			saved, err := repository.NewTestResultRepository(tx).CreateResult(r)
			if err != nil {
				return fmt.Errorf("failed to record test result: %w", err)
			}
			plan, err = s.builder.ApplyTestResult(plan, day, *saved)
			if err != nil {
				return err
			}
		}

		if err := planRepo.SavePlan(plan); err != nil {
			return fmt.Errorf("failed to save plan: %w", err)
		}
		updated = plan
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("task outcome recorded",
		"plan_id", planID,
		"day", day,
		"completed", completed,
		"with_result", result != nil,
		"status", string(updated.Status),
	)
	return updated, nil
}

// prepareResult fills the defaults of a submitted day result and validates it
func (s *PlanService) prepareResult(plan *models.TrainingPlan, day int, r models.TestResult) (models.TestResult, error) {
	r.ChildID = plan.ChildID
	if r.TestType == "" {
		if task, ok := plan.Task(day); ok {
			r.TestType = task.TestType
		}
	}
	if r.PerformanceLevel == "" {
		r.PerformanceLevel = models.LevelAverage
	}
	if r.RecordedAt.IsZero() {
		r.RecordedAt = s.now().UTC()
	}
	if err := validation.ValidateTestResult(&r); err != nil {
		return r, err
	}
	return r, nil
}

// GetProgress reports task and test completion and the score trend,
// with localized summary lines
func (s *PlanService) GetProgress(planID, lang string) (*PlanProgress, error) {
	plan, err := s.GetPlan(planID)
	if err != nil {
		return nil, err
	}
	if lang == "" {
		lang = plan.Language
	}

	progress := &PlanProgress{
		PlanID:     plan.ID,
		Tasks:      planner.Progress(plan),
		Tests:      planner.TestCompletion(plan),
		TestScores: []DayScore{},
		Trend:      planner.Trend(planner.RecordedScores(plan)),
	}
	for _, task := range plan.DailyTasks {
		if task.TestResult != nil && task.TestResult.ValidScore() {
			progress.TestScores = append(progress.TestScores, DayScore{
				Day:              task.Day,
				Score:            *task.TestResult.Score,
				PerformanceLevel: task.TestResult.PerformanceLevel,
			})
		}
	}

	progress.Summary = s.tr.T(lang, "progress.summary", i18n.Params{
		"completed":  progress.Tasks.Completed,
		"total":      progress.Tasks.Total,
		"percentage": strconv.FormatFloat(progress.Tasks.Percentage, 'f', -1, 64),
	})
	progress.TrendText = s.tr.T(lang, "progress.trend", i18n.Params{
		"trend": s.tr.T(lang, "trend."+string(progress.Trend), nil),
	})
	return progress, nil
}

// SetStatus pauses, resumes or completes a plan
func (s *PlanService) SetStatus(planID string, status models.PlanStatus) error {
	if err := validation.ValidatePlanStatus(status); err != nil {
		return err
	}

	plan, err := s.GetPlan(planID)
	if err != nil {
		return err
	}
	if err := s.planRepo.UpdateStatus(plan.ID, status); err != nil {
		return fmt.Errorf("failed to update plan status: %w", err)
	}
	s.log.Info("plan status changed", "plan_id", plan.ID, "from", string(plan.Status), "to", string(status))
	return nil
}

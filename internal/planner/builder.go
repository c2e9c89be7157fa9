// Package planner generates and adapts day-by-day training plans. It is a
// deterministic rule engine: no I/O, and the only state it keeps is a
// per-language cache of rendered activity catalogs
package planner

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"specialcare/internal/i18n"
	"specialcare/internal/logger"
	"specialcare/internal/models"
)

// DateLayout is the calendar date format of plan and task dates
const DateLayout = "2006-01-02"

// Builder composes the analyzer, selector and composers into plans.
// Methods never mutate their arguments and are safe for concurrent use
type Builder struct {
	tr       i18n.Translator
	log      *logger.Logger
	now      func() time.Time
	newID    func() string
	th       Thresholds
	source   *CatalogSource
	catalogs *catalogCache
}

// Option configures a Builder
type Option func(*Builder)

func WithLogger(l *logger.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.log = l
		}
	}
}

// WithClock replaces time.Now, mainly so tests get stable dates
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

func WithIDGenerator(gen func() string) Option {
	return func(b *Builder) {
		if gen != nil {
			b.newID = gen
		}
	}
}

func WithThresholds(t Thresholds) Option {
	return func(b *Builder) {
		b.th = t
	}
}

// WithCatalogSource swaps the embedded activity catalog
func WithCatalogSource(src *CatalogSource) Option {
	return func(b *Builder) {
		if src != nil {
			b.source = src
		}
	}
}

// NewBuilder returns a Builder that renders text through tr
func NewBuilder(tr i18n.Translator, opts ...Option) *Builder {
	b := &Builder{
		tr:       tr,
		log:      logger.Nop(),
		now:      time.Now,
		newID:    uuid.NewString,
		th:       DefaultThresholds(),
		source:   defaultCatalogSource,
		catalogs: newCatalogCache(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Thresholds returns the rule values in use
func (b *Builder) Thresholds() Thresholds {
	return b.th
}

type languageMatcher interface {
	Match(lang string) (string, bool)
}

// resolveLanguage maps lang to a language the translator supports, so an
// unsupported language shares the default catalog
func (b *Builder) resolveLanguage(lang string) string {
	m, ok := b.tr.(languageMatcher)
	if !ok {
		if lang == "" {
			return i18n.DefaultLanguage
		}
		return lang
	}
	resolved, ok := m.Match(lang)
	if !ok && lang != "" {
		b.log.Warn("unsupported language, using default catalog", "language", lang, "fallback", resolved)
	}
	return resolved
}

// Catalog returns the activity catalog rendered for lang, building it on
// first use
func (b *Builder) Catalog(lang string) *Catalog {
	lang = b.resolveLanguage(lang)
	return b.catalogs.get(lang, func() *Catalog {
		b.log.Debug("rendering activity catalog", "language", lang)
		return renderCatalog(b.source, b.tr, lang)
	})
}

// ResetCatalogs drops every cached catalog
func (b *Builder) ResetCatalogs() {
	b.catalogs.reset()
}

// Generate builds a complete plan for child. Focus areas and goals are
// computed once; the performance tier comes from the latest result
func (b *Builder) Generate(child *models.ChildInfo, history []models.TestResult, planType models.PlanType, lang string) (*models.TrainingPlan, error) {
	if child == nil {
		return nil, ErrInvalidChild
	}
	if planType != models.PlanWeekly {
		planType = models.PlanMonthly
	}
	lang = b.resolveLanguage(lang)
	days := planType.Days()
	age := normalizeAge(child.Age)

	a := b.assess(history)
	areas := b.analyze(a, child.Problems)
	tier := b.latestTier(history)
	cat := b.Catalog(lang)

	start := b.now()
	tasks := make([]models.DailyTask, 0, days)
	for day := 1; day <= days; day++ {
		activities := b.selectDay(cat, areas, tier, day, days, age)
		task := models.DailyTask{
			ID:           fmt.Sprintf("task_%d", day),
			Day:          day,
			Date:         start.AddDate(0, 0, day-1).Format(DateLayout),
			Activities:   activities,
			Guidance:     b.renderGuidance(areas, day, activities, lang),
			TestRequired: day%2 == 0 || day == days,
		}
		if task.TestRequired {
			task.TestType = ScheduledTestType(age)
		}
		tasks = append(tasks, task)
	}

	plan := &models.TrainingPlan{
		ID:           b.newID(),
		ChildID:      child.ID,
		PlanType:     planType,
		DurationDays: days,
		Language:     lang,
		StartDate:    start.Format(DateLayout),
		EndDate:      start.AddDate(0, 0, days-1).Format(DateLayout),
		DailyTasks:   tasks,
		FocusAreas:   areas,
		Goals:        b.computeGoals(areas, a, child, lang),
		CreatedAt:    start,
		Status:       models.StatusActive,
	}

	b.log.Info("generated training plan",
		"plan_id", plan.ID,
		"child_id", child.ID,
		"plan_type", string(planType),
		"focus_areas", areas,
		"tier", string(tier),
	)
	return plan, nil
}

func (b *Builder) latestTier(history []models.TestResult) models.PerformanceLevel {
	if len(history) == 0 {
		return models.LevelAverage
	}
	latest := history[len(history)-1]
	if !latest.PerformanceLevel.Valid() {
		b.log.Warn("latest test result has unknown performance level, using average",
			"result_id", latest.ID, "performance_level", string(latest.PerformanceLevel))
		return models.LevelAverage
	}
	return latest.PerformanceLevel
}

// ScheduledTestType returns the test scheduled on test days for a child
func ScheduledTestType(age int) models.TestType {
	age = normalizeAge(age)
	switch {
	case age < ObservationTestBelowAge:
		return models.TestObservation
	case age < GridTestFromAge:
		return models.TestColorShape
	}
	return models.TestSchulte
}

// ApplyTestResult records result on the given day and adapts later days that
// are not yet completed: excellent or good marks them for escalation,
// needs_improvement lengthens each activity by the duration step up to the
// cap. The input plan is never modified
func (b *Builder) ApplyTestResult(plan *models.TrainingPlan, day int, result models.TestResult) (*models.TrainingPlan, error) {
	if plan == nil {
		return nil, ErrNilPlan
	}
	out := plan.Clone()
	task, ok := out.Task(day)
	if !ok {
		return nil, fmt.Errorf("%w: day %d", ErrUnknownDay, day)
	}
	task.TestCompleted = true
	task.TestResult = result.Clone()

	if day < out.DurationDays {
		b.adjustFutureTasks(out, day, result.PerformanceLevel)
	}
	return out, nil
}

func (b *Builder) adjustFutureTasks(plan *models.TrainingPlan, fromDay int, level models.PerformanceLevel) {
	for i := range plan.DailyTasks {
		task := &plan.DailyTasks[i]
		if task.Day <= fromDay || task.Completed {
			continue
		}
		switch level {
		case models.LevelExcellent, models.LevelGood:
			task.Escalate = true
		case models.LevelNeedsImprovement:
			for j := range task.Activities {
				if d := task.Activities[j].Duration; d < b.th.DurationCap {
					task.Activities[j].Duration = min(d+b.th.DurationStep, b.th.DurationCap)
				}
			}
		}
	}
}

// MarkTaskCompleted sets the completion flag of a day. The plan becomes
// completed once every task is, and active again if a task is reopened
func (b *Builder) MarkTaskCompleted(plan *models.TrainingPlan, day int, completed bool) (*models.TrainingPlan, error) {
	if plan == nil {
		return nil, ErrNilPlan
	}
	out := plan.Clone()
	task, ok := out.Task(day)
	if !ok {
		return nil, fmt.Errorf("%w: day %d", ErrUnknownDay, day)
	}
	task.Completed = completed

	switch {
	case allCompleted(out):
		out.Status = models.StatusCompleted
	case out.Status == models.StatusCompleted:
		out.Status = models.StatusActive
	}
	return out, nil
}

func allCompleted(plan *models.TrainingPlan) bool {
	if len(plan.DailyTasks) == 0 {
		return false
	}
	for _, t := range plan.DailyTasks {
		if !t.Completed {
			return false
		}
	}
	return true
}

package planner

import (
	"specialcare/internal/i18n"
	"specialcare/internal/models"
)

// Goals added for reported problems regardless of focus areas, in order
var problemGoals = []struct {
	problem models.Problem
	key     string
}{
	{models.ProblemLearningDifficulty, "goal.learning.improve_methods"},
	{models.ProblemLanguageDelay, "goal.language.promote_development"},
	{models.ProblemBehaviorIssue, "goal.behavior.improve_performance"},
}

var generalGoals = []string{
	"goal.general.overall_cognitive",
	"goal.general.learning_performance",
	"goal.general.self_confidence",
}

// ComputeGoals returns one to five localized training goals: focus-area goals
// first, then problem goals, else the generic fallback
func (b *Builder) ComputeGoals(areas []models.Domain, history []models.TestResult, child *models.ChildInfo, lang string) []string {
	return b.computeGoals(areas, b.assess(history), child, b.resolveLanguage(lang))
}

func (b *Builder) computeGoals(areas []models.Domain, a assessment, child *models.ChildInfo, lang string) []string {
	if child == nil {
		child = &models.ChildInfo{}
	}
	var keys []string
	var params []i18n.Params
	add := func(key string, p i18n.Params) {
		keys = append(keys, key)
		params = append(params, p)
	}

	// With no usable scores the mean sits exactly at the cut-off, which is
	// not an intervention on its own
	overall, ok := mean(a.perResult)
	if !ok {
		overall = b.th.ModerateBelow
	}
	intervention := overall < b.th.ModerateBelow || child.HasProblems()

	durKey, taskKey := b.th.band(normalizeAge(child.Age)).keys()
	span := i18n.Params{
		"duration":  b.tr.T(lang, durKey, nil),
		"task_type": b.tr.T(lang, taskKey, nil),
	}

	if models.ContainsDomain(areas, models.DomainAttention) {
		switch avg, scored := a.mean(models.DomainAttention); {
		case !intervention:
			add("goal.attention.enhance_level", span)
			add("goal.attention.complex_tasks", nil)
		case !scored:
			add("goal.attention.establish_basic", span)
			add("goal.attention.reduce_hyperactivity", nil)
		case avg < b.th.SevereBelow:
			add("goal.attention.improve_focus", span)
			add("goal.attention.reduce_distraction", nil)
		case avg < b.th.ModerateBelow:
			add("goal.attention.improve_persistence", span)
			add("goal.attention.improve_switching", nil)
		}
	}

	if models.ContainsDomain(areas, models.DomainCognitive) {
		switch avg, scored := a.mean(models.DomainCognitive); {
		case !intervention:
			add("goal.cognitive.enhance_processing", nil)
			add("goal.cognitive.advanced_functions", nil)
		case !scored:
			add("goal.cognitive.improve_basic", nil)
		case avg < b.th.SevereBelow:
			add("goal.cognitive.establish_basic", nil)
			add("goal.cognitive.improve_memory", nil)
		case avg < b.th.ModerateBelow:
			add("goal.cognitive.enhance_speed", nil)
			add("goal.cognitive.working_memory", nil)
		}
	}

	if models.ContainsDomain(areas, models.DomainSocial) {
		if intervention {
			add("goal.social.improve_interaction", nil)
			add("goal.social.emotion_regulation", nil)
			if child.HasProblem(models.ProblemMoodSwings) {
				add("goal.social.emotion_management", nil)
			}
			if child.HasProblem(models.ProblemSocialDifficulty) {
				add("goal.social.improve_skills", nil)
			}
		} else {
			add("goal.social.enhance_leadership", nil)
		}
	}

	if models.ContainsDomain(areas, models.DomainMotor) {
		if intervention {
			add("goal.motor.improve_coordination", nil)
			add("goal.motor.body_coordination", nil)
		} else {
			add("goal.motor.enhance_skills", nil)
		}
	}

	for _, pg := range problemGoals {
		if child.HasProblem(pg.problem) {
			add(pg.key, nil)
		}
	}

	if len(keys) == 0 {
		for _, k := range generalGoals {
			add(k, nil)
		}
	}
	if len(keys) > maxGoals {
		keys = keys[:maxGoals]
	}

	goals := make([]string, len(keys))
	for i, k := range keys {
		goals[i] = b.tr.T(lang, k, params[i])
	}
	return goals
}

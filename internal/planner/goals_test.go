package planner

import (
	"reflect"
	"strings"
	"testing"

	"specialcare/internal/i18n"
	"specialcare/internal/models"
)

func TestComputeGoals(t *testing.T) {
	A, C, S, M := models.DomainAttention, models.DomainCognitive, models.DomainSocial, models.DomainMotor
	early := i18n.Params{"duration": "15-20 minutes", "task_type": "medium tasks"}

	tests := []struct {
		name    string
		areas   []models.Domain
		history []models.TestResult
		child   models.ChildInfo
		want    []string
	}{
		{
			name:  "enrichment without history",
			areas: []models.Domain{A, C},
			child: models.ChildInfo{Age: 6},
			want: []string{
				tr("goal.attention.enhance_level", early),
				tr("goal.attention.complex_tasks", nil),
				tr("goal.cognitive.enhance_processing", nil),
				tr("goal.cognitive.advanced_functions", nil),
			},
		},
		{
			name:    "severe attention",
			areas:   []models.Domain{A},
			history: []models.TestResult{result(models.TestSchulte, 40, models.LevelNeedsImprovement)},
			child:   models.ChildInfo{Age: 6},
			want: []string{
				tr("goal.attention.improve_focus", early),
				tr("goal.attention.reduce_distraction", nil),
			},
		},
		{
			name:    "moderate attention and cognitive",
			areas:   []models.Domain{A, C},
			history: []models.TestResult{result(models.TestSchulte, 60, models.LevelAverage), result(models.TestMemory, 45, models.LevelNeedsImprovement)},
			child:   models.ChildInfo{Age: 7},
			want: []string{
				tr("goal.attention.improve_persistence", early),
				tr("goal.attention.improve_switching", nil),
				tr("goal.cognitive.establish_basic", nil),
				tr("goal.cognitive.improve_memory", nil),
			},
		},
		{
			name:    "moderate cognitive",
			areas:   []models.Domain{C},
			history: []models.TestResult{result(models.TestMemoryCards, 65, models.LevelAverage)},
			child:   models.ChildInfo{Age: 7},
			want: []string{
				tr("goal.cognitive.enhance_speed", nil),
				tr("goal.cognitive.working_memory", nil),
			},
		},
		{
			name:  "intervention without scores",
			areas: []models.Domain{A, C},
			child: models.ChildInfo{Age: 2, Problems: []string{"hyperactivity"}},
			want: []string{
				tr("goal.attention.establish_basic", i18n.Params{"duration": "5-10 minutes"}),
				tr("goal.attention.reduce_hyperactivity", nil),
				tr("goal.cognitive.improve_basic", nil),
			},
		},
		{
			name:  "social problems",
			areas: []models.Domain{S},
			child: models.ChildInfo{Age: 9, Problems: []string{"mood swings", "社交困难"}},
			want: []string{
				tr("goal.social.improve_interaction", nil),
				tr("goal.social.emotion_regulation", nil),
				tr("goal.social.emotion_management", nil),
				tr("goal.social.improve_skills", nil),
			},
		},
		{
			name:  "enrichment social and motor",
			areas: []models.Domain{S, M},
			child: models.ChildInfo{Age: 9},
			want: []string{
				tr("goal.social.enhance_leadership", nil),
				tr("goal.motor.enhance_skills", nil),
			},
		},
		{
			name:  "motor intervention",
			areas: []models.Domain{M},
			child: models.ChildInfo{Age: 9, Problems: []string{"poor_coordination"}},
			want: []string{
				tr("goal.motor.improve_coordination", nil),
				tr("goal.motor.body_coordination", nil),
			},
		},
		{
			name:    "problem goals without matching area",
			areas:   []models.Domain{A},
			history: []models.TestResult{result(models.TestSchulte, 80, models.LevelGood)},
			child:   models.ChildInfo{Age: 6, Problems: []string{"learning difficulty", "language delay", "behavior issue"}},
			want: []string{
				tr("goal.learning.improve_methods", nil),
				tr("goal.language.promote_development", nil),
				tr("goal.behavior.improve_performance", nil),
			},
		},
		{
			name:    "general fallback",
			areas:   []models.Domain{A},
			history: []models.TestResult{result(models.TestSchulte, 80, models.LevelGood)},
			child:   models.ChildInfo{Age: 6, Problems: []string{"hyperactivity"}},
			want: []string{
				tr("goal.general.overall_cognitive", nil),
				tr("goal.general.learning_performance", nil),
				tr("goal.general.self_confidence", nil),
			},
		},
		{
			name:  "capped at five",
			areas: []models.Domain{A, C, S},
			child: models.ChildInfo{Age: 6, Problems: []string{"mood swings", "learning difficulty"}},
			want: []string{
				tr("goal.attention.establish_basic", early),
				tr("goal.attention.reduce_hyperactivity", nil),
				tr("goal.cognitive.improve_basic", nil),
				tr("goal.social.improve_interaction", nil),
				tr("goal.social.emotion_regulation", nil),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := newTestBuilder(t)
			child := tt.child
			got := b.ComputeGoals(tt.areas, tt.history, &child, "en")
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ComputeGoals() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestComputeGoalsAgeBands(t *testing.T) {
	tests := []struct {
		age  int
		want string
	}{
		{1, "5-10 minutes"},
		{3, "5-10 minutes"},
		{4, "10-15 minutes"},
		{5, "10-15 minutes"},
		{6, "15-20 minutes"},
		{7, "15-20 minutes"},
		{8, "20-30 minutes"},
		{0, "15-20 minutes"},
	}

	b, _ := newTestBuilder(t)
	for _, tt := range tests {
		child := models.ChildInfo{Age: tt.age}
		goals := b.ComputeGoals([]models.Domain{models.DomainAttention}, nil, &child, "en")
		if !strings.Contains(goals[0], tt.want) {
			t.Errorf("age %d: goal %q does not mention %q", tt.age, goals[0], tt.want)
		}
	}
}

func TestComputeGoalsChinese(t *testing.T) {
	b, _ := newTestBuilder(t)
	child := models.ChildInfo{Age: 6}
	goals := b.ComputeGoals([]models.Domain{models.DomainAttention}, nil, &child, "zh")
	if want := "进一步提升注意力水平，将专注时间延长到15-20分钟以上"; goals[0] != want {
		t.Errorf("goals[0] = %q, want %q", goals[0], want)
	}
}

func TestComputeGoalsCustomThresholds(t *testing.T) {
	th := DefaultThresholds()
	th.SevereBelow = 30
	b, _ := newTestBuilder(t, WithThresholds(th))

	child := models.ChildInfo{Age: 6}
	history := []models.TestResult{result(models.TestSchulte, 40, models.LevelNeedsImprovement)}
	goals := b.ComputeGoals([]models.Domain{models.DomainAttention}, history, &child, "en")

	if want := tr("goal.attention.improve_persistence", i18n.Params{"duration": "15-20 minutes"}); goals[0] != want {
		t.Errorf("goals[0] = %q, want %q", goals[0], want)
	}
}

package models

import (
	"math"
	"reflect"
	"testing"
)

func TestTestTypeClassify(t *testing.T) {
	tests := []struct {
		name     string
		testType TestType
		score    float64
		want     []Domain
	}{
		{"schulte is attention", TestSchulte, 40, []Domain{DomainAttention}},
		{"observation is attention", TestObservation, 90, []Domain{DomainAttention}},
		{"memory is cognitive", TestMemory, 55, []Domain{DomainCognitive}},
		{"puzzle is cognitive", TestPuzzle, 55, []Domain{DomainCognitive}},
		{"social", TestSocial, 55, []Domain{DomainSocial}},
		{"age adaptive below split", TestAgeAdaptive, 69.9, []Domain{DomainAttention}},
		{"age adaptive at split", TestColorShape, 70, []Domain{DomainAttention, DomainCognitive}},
		{"unknown type", TestType("reaction_time"), 80, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.testType.Classify(tt.score, 70)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Classify(%v) = %v, want %v", tt.score, got, tt.want)
			}
		})
	}
}

func TestParseProblem(t *testing.T) {
	tests := []struct {
		tag    string
		want   Problem
		wantOK bool
	}{
		{"attention_deficit", ProblemAttentionDeficit, true},
		{"  Poor Memory ", ProblemPoorMemory, true},
		{"hyperactive", ProblemHyperactivity, true},
		{"社交困难", ProblemSocialDifficulty, true},
		{"运动协调性差", ProblemPoorCoordination, true},
		{"", "", false},
		{"picky eating", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got, ok := ParseProblem(tt.tag)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseProblem(%q) = %v, %v, want %v, %v", tt.tag, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestProblemDomainIsTotal(t *testing.T) {
	for p := range problemAliases {
		if _, ok := p.Domain(); !ok {
			t.Errorf("%s has no domain", p)
		}
	}
}

func TestValidScore(t *testing.T) {
	tests := []struct {
		name   string
		result *TestResult
		want   bool
	}{
		{"nil result", nil, false},
		{"missing score", &TestResult{}, false},
		{"zero", &TestResult{Score: ScoreOf(0)}, true},
		{"hundred", &TestResult{Score: ScoreOf(100)}, true},
		{"negative", &TestResult{Score: ScoreOf(-1)}, false},
		{"over hundred", &TestResult{Score: ScoreOf(100.5)}, false},
		{"NaN", &TestResult{Score: ScoreOf(math.NaN())}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.ValidScore(); got != tt.want {
				t.Errorf("ValidScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPlanCloneIsDeep(t *testing.T) {
	plan := &TrainingPlan{
		ID:         "p1",
		FocusAreas: []Domain{DomainAttention},
		Goals:      []string{"focus"},
		DailyTasks: []DailyTask{{
			Day:        1,
			Activities: []Activity{{Key: "schulte_grid", Duration: 10}},
			TestResult: &TestResult{Score: ScoreOf(50), Payload: map[string]any{"grid": 3}},
		}},
	}

	clone := plan.Clone()
	clone.FocusAreas[0] = DomainMotor
	clone.Goals[0] = "changed"
	clone.DailyTasks[0].Completed = true
	clone.DailyTasks[0].Activities[0].Duration = 20
	*clone.DailyTasks[0].TestResult.Score = 90
	clone.DailyTasks[0].TestResult.Payload["grid"] = 5

	task := plan.DailyTasks[0]
	if plan.FocusAreas[0] != DomainAttention || plan.Goals[0] != "focus" {
		t.Errorf("clone shares slices with the source: %+v", plan)
	}
	if task.Completed || task.Activities[0].Duration != 10 {
		t.Errorf("clone shares tasks with the source: %+v", task)
	}
	if *task.TestResult.Score != 50 || task.TestResult.Payload["grid"] != 3 {
		t.Errorf("clone shares the test result with the source: %+v", task.TestResult)
	}
}

func TestPlanTypeDays(t *testing.T) {
	if got := PlanWeekly.Days(); got != 7 {
		t.Errorf("PlanWeekly.Days() = %d, want 7", got)
	}
	if got := PlanMonthly.Days(); got != 30 {
		t.Errorf("PlanMonthly.Days() = %d, want 30", got)
	}
}

func TestChildHasProblem(t *testing.T) {
	child := &ChildInfo{Problems: []string{"poor memory", "unknown"}}
	if !child.HasProblem(ProblemPoorMemory) {
		t.Error("HasProblem(poor_memory) = false, want true")
	}
	if child.HasProblem(ProblemHyperactivity) {
		t.Error("HasProblem(hyperactivity) = true, want false")
	}
	var none *ChildInfo
	if none.HasProblems() || none.HasProblem(ProblemPoorMemory) {
		t.Error("nil child reports problems")
	}
}

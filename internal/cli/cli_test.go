package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"specialcare/internal/models"
	"specialcare/internal/service"
)

// resetFlags restores every flag to its default, since RootCmd keeps
// values between Execute calls
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			sv.Replace(nil)
		} else {
			f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

type cliEnv struct {
	t  *testing.T
	db string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping CLI test in short mode")
	}
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("LOG_MODE", "prod")
	t.Setenv("SES_FROM_EMAIL", "")
	t.Setenv("MIGRATIONS_PATH", "")
	t.Setenv("DEFAULT_LANGUAGE", "en")
	return &cliEnv{t: t, db: filepath.Join(t.TempDir(), "cli.db")}
}

func (e *cliEnv) run(args ...string) (string, error) {
	e.t.Helper()
	resetFlags(RootCmd)

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetArgs(append([]string{"--db", e.db}, args...))
	err := RootCmd.Execute()
	return out.String(), err
}

func (e *cliEnv) mustRun(v interface{}, args ...string) string {
	e.t.Helper()
	out, err := e.run(args...)
	if err != nil {
		e.t.Fatalf("%s: error = %v\n%s", strings.Join(args, " "), err, out)
	}
	if v != nil {
		if err := json.Unmarshal([]byte(out), v); err != nil {
			e.t.Fatalf("%s: output is not JSON: %v\n%s", strings.Join(args, " "), err, out)
		}
	}
	return out
}

func TestPlanLifecycle(t *testing.T) {
	env := newCLIEnv(t)

	var child models.ChildInfo
	env.mustRun(&child, "child", "add", "--name", "Mia", "--age", "6", "--parent", "Sam",
		"--problem", "attention_deficit", "--problem", "poor memory")
	if child.ID == 0 || len(child.Problems) != 2 {
		t.Fatalf("child add = %+v", child)
	}

	var result models.TestResult
	env.mustRun(&result, "result", "add", "--child", "1", "--type", "schulte", "--score", "45", "--level", "needs_improvement")
	if result.Score == nil || *result.Score != 45 {
		t.Errorf("result add score = %v", result.Score)
	}

	var plan models.TrainingPlan
	env.mustRun(&plan, "plan", "generate", "--child", "1", "--type", "weekly")
	if plan.DurationDays != 7 || len(plan.DailyTasks) != 7 {
		t.Fatalf("plan generate = %d days, %d tasks", plan.DurationDays, len(plan.DailyTasks))
	}
	if plan.FocusAreas[0] != models.DomainAttention {
		t.Errorf("FocusAreas = %v, want attention first", plan.FocusAreas)
	}

	var task models.DailyTask
	env.mustRun(&task, "plan", "show", "--id", plan.ID, "--day", "3")
	if task.Day != 3 {
		t.Errorf("plan show --day 3 returned day %d", task.Day)
	}

	var updated models.TrainingPlan
	env.mustRun(&updated, "plan", "task", "--id", plan.ID, "--day", "1", "--completed=true")
	day1, _ := updated.Task(1)
	if !day1.Completed || day1.TestCompleted {
		t.Errorf("day 1 after task = completed %v, test %v", day1.Completed, day1.TestCompleted)
	}

	env.mustRun(&updated, "plan", "task", "--id", plan.ID, "--day", "4", "--score", "90", "--level", "excellent")
	day4, _ := updated.Task(4)
	if !day4.TestCompleted || day4.TestResult == nil || day4.TestResult.TestType != day4.TestType {
		t.Errorf("day 4 after test = %+v", day4)
	}

	var progress service.PlanProgress
	env.mustRun(&progress, "plan", "progress", "--id", plan.ID)
	if progress.Tasks.Completed != 2 || progress.Tasks.Total != 7 {
		t.Errorf("progress = %+v", progress.Tasks)
	}
	if len(progress.TestScores) != 1 || progress.TestScores[0].Day != 4 {
		t.Errorf("TestScores = %+v", progress.TestScores)
	}

	env.mustRun(&updated, "plan", "status", "--id", plan.ID, "--set", "paused")
	if updated.Status != models.StatusPaused {
		t.Errorf("Status = %s, want paused", updated.Status)
	}

	var plans []models.TrainingPlan
	env.mustRun(&plans, "plan", "list", "--child", "1")
	if len(plans) != 1 || plans[0].ID != plan.ID {
		t.Errorf("plan list = %d plans", len(plans))
	}

	var digest service.Digest
	env.mustRun(&digest, "plan", "digest", "--id", plan.ID, "--day", "2")
	if !strings.Contains(digest.Subject, "Mia") || !strings.Contains(digest.TextBody, "Hello Sam,") {
		t.Errorf("digest = %+v", digest)
	}
}

func TestTextFormat(t *testing.T) {
	env := newCLIEnv(t)

	env.mustRun(nil, "child", "add", "--name", "Leo", "--age", "4")
	out := env.mustRun(nil, "--format", "text", "child", "list")
	if !strings.Contains(out, "Leo") || !strings.HasPrefix(out, "ID") {
		t.Errorf("child list text output:\n%s", out)
	}

	out = env.mustRun(nil, "--format", "text", "--lang", "zh-CN", "plan", "generate", "--child", "1", "--type", "weekly")
	if strings.Contains(out, "plan.weekly") || strings.Contains(out, "status.active") {
		t.Errorf("plan generate text output has untranslated keys:\n%s", out)
	}
}

func TestTextFormatEscalation(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(nil, "child", "add", "--name", "Mia", "--age", "6")
	env.mustRun(nil, "child", "add", "--name", "Leo", "--age", "6")

	var good, weak models.TrainingPlan
	env.mustRun(&good, "plan", "generate", "--child", "1", "--type", "weekly")
	env.mustRun(&weak, "plan", "generate", "--child", "2", "--type", "weekly")

	const escalate = "ready for more challenging activities"

	out := env.mustRun(nil, "--format", "text", "plan", "task", "--id", good.ID, "--day", "2", "--score", "95", "--level", "excellent")
	if !strings.HasPrefix(out, "Day 2 recorded.") || !strings.Contains(out, escalate) {
		t.Errorf("task after excellent result:\n%s", out)
	}
	if strings.Contains(out, "professional review") {
		t.Errorf("escalation reported as a concern:\n%s", out)
	}

	out = env.mustRun(nil, "--format", "text", "plan", "show", "--id", good.ID, "--day", "3")
	if !strings.Contains(out, escalate) {
		t.Errorf("plan show of an escalated day:\n%s", out)
	}

	out = env.mustRun(nil, "--format", "text", "--lang", "zh", "plan", "task", "--id", good.ID, "--day", "3")
	if !strings.HasPrefix(out, "第3天已记录。") || !strings.Contains(out, "更有挑战性") {
		t.Errorf("zh task output:\n%s", out)
	}

	out = env.mustRun(nil, "--format", "text", "plan", "task", "--id", weak.ID, "--day", "2", "--score", "40", "--level", "needs_improvement")
	if strings.Contains(out, escalate) {
		t.Errorf("task after weak result mentions escalation:\n%s", out)
	}
}

func TestCommandErrors(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(nil, "child", "add", "--name", "Mia", "--age", "6")

	tests := []struct {
		name string
		args []string
	}{
		{"unknown format", []string{"--format", "xml", "child", "list"}},
		{"missing required flag", []string{"child", "add", "--name", "Mia"}},
		{"invalid age", []string{"child", "add", "--name", "Mia", "--age", "30"}},
		{"unknown child", []string{"plan", "generate", "--child", "99", "--type", "weekly"}},
		{"bad plan type", []string{"plan", "generate", "--child", "1", "--type", "daily"}},
		{"unknown plan", []string{"plan", "show", "--id", "missing"}},
		{"level without score", []string{"plan", "task", "--id", "missing", "--day", "1", "--level", "good"}},
		{"digest without sender", []string{"plan", "digest", "--id", "missing", "--to", "a@example.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := env.run(tt.args...); err == nil {
				t.Errorf("%v: error = nil, want error", tt.args)
			}
		})
	}
}

func TestBackupCommands(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(nil, "child", "add", "--name", "Mia", "--age", "6", "--problem", "poor_coordination")
	env.mustRun(nil, "plan", "generate", "--child", "1", "--type", "monthly")

	file := filepath.Join(t.TempDir(), "backup.json")
	env.mustRun(nil, "backup", "export", "--out", file)
	if info, err := os.Stat(file); err != nil || info.Size() == 0 {
		t.Fatalf("backup file not written: %v", err)
	}

	restored := newCLIEnv(t)
	restored.mustRun(nil, "backup", "import", "--in", file)

	var children []models.ChildInfo
	restored.mustRun(&children, "child", "list")
	if len(children) != 1 || children[0].Name != "Mia" {
		t.Errorf("restored children = %+v", children)
	}
	var plans []models.TrainingPlan
	restored.mustRun(&plans, "plan", "list", "--child", "1")
	if len(plans) != 1 || plans[0].DurationDays != 30 {
		t.Errorf("restored plans = %+v", plans)
	}
}

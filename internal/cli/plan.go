package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"specialcare/internal/i18n"
	"specialcare/internal/models"
	"specialcare/internal/planner"
	"specialcare/internal/service"
)

func init() {
	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate and track training plans",
	}

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a plan for a child from their profile and test history",
		RunE:  withApp(runPlanGenerate),
	}
	generateCmd.Flags().Int64("child", 0, "Child ID (required)")
	generateCmd.Flags().String("type", string(models.PlanWeekly), "Plan type: weekly or monthly")
	generateCmd.MarkFlagRequired("child")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show a plan, or a single day of it",
		RunE:  withApp(runPlanShow),
	}
	showCmd.Flags().String("id", "", "Plan ID (required)")
	showCmd.Flags().Int("day", 0, "Day to show (default: the whole plan)")
	showCmd.MarkFlagRequired("id")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List a child's plans, newest first",
		RunE:  withApp(runPlanList),
	}
	listCmd.Flags().Int64("child", 0, "Child ID (required)")
	listCmd.MarkFlagRequired("child")

	taskCmd := &cobra.Command{
		Use:   "task",
		Short: "Record a day's completion and optional test result",
		Long: `Record a day's completion and optional test result.

Passing --score records a test result for the day. The test type defaults to
the one scheduled for that day and the level defaults to average.`,
		RunE: withApp(runPlanTask),
	}
	taskCmd.Flags().String("id", "", "Plan ID (required)")
	taskCmd.Flags().Int("day", 0, "Day number (required)")
	taskCmd.Flags().Bool("completed", true, "Whether the day's activities were completed")
	taskCmd.Flags().Float64("score", 0, "Test score from 0 to 100")
	taskCmd.Flags().String("level", "", "Performance level of the test")
	taskCmd.Flags().String("type", "", "Test type (default: the day's scheduled test)")
	taskCmd.MarkFlagRequired("id")
	taskCmd.MarkFlagRequired("day")

	progressCmd := &cobra.Command{
		Use:   "progress",
		Short: "Show completion and score trend of a plan",
		RunE:  withApp(runPlanProgress),
	}
	progressCmd.Flags().String("id", "", "Plan ID (required)")
	progressCmd.MarkFlagRequired("id")

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Pause, resume or complete a plan",
		RunE:  withApp(runPlanStatus),
	}
	statusCmd.Flags().String("id", "", "Plan ID (required)")
	statusCmd.Flags().String("set", "", "New status: active, paused or completed (required)")
	statusCmd.MarkFlagRequired("id")
	statusCmd.MarkFlagRequired("set")

	digestCmd := &cobra.Command{
		Use:   "digest",
		Short: "Render or email a day's guidance to the parent",
		Long: `Render or email a day's guidance to the parent.

Without --to the digest is printed. With --to it is sent through SES using
SES_FROM_EMAIL and the default AWS credential chain.`,
		RunE: withApp(runPlanDigest),
	}
	digestCmd.Flags().String("id", "", "Plan ID (required)")
	digestCmd.Flags().Int("day", 0, "Day number (default: today's task)")
	digestCmd.Flags().String("to", "", "Recipient email address")
	digestCmd.MarkFlagRequired("id")

	planCmd.AddCommand(generateCmd, showCmd, listCmd, taskCmd, progressCmd, statusCmd, digestCmd)
	RootCmd.AddCommand(planCmd)
}

func runPlanGenerate(cmd *cobra.Command, a *app) error {
	childID, _ := cmd.Flags().GetInt64("child")
	planType, _ := cmd.Flags().GetString("type")

	lang := a.lang()
	plan, err := a.plans.GeneratePlan(childID, models.PlanType(planType), lang)
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), plan, func(w io.Writer) {
		a.writePlanSummary(w, plan, lang)
	})
}

func runPlanShow(cmd *cobra.Command, a *app) error {
	id, _ := cmd.Flags().GetString("id")
	day, _ := cmd.Flags().GetInt("day")

	plan, err := a.plans.GetPlan(id)
	if err != nil {
		return err
	}
	lang := a.lang()

	if day == 0 {
		return render(cmd.OutOrStdout(), plan, func(w io.Writer) {
			a.writePlanSummary(w, plan, lang)
			for i := range plan.DailyTasks {
				fmt.Fprintln(w)
				a.writeTask(w, &plan.DailyTasks[i], lang)
			}
		})
	}

	task, ok := plan.Task(day)
	if !ok {
		return fmt.Errorf("%w: %d", planner.ErrUnknownDay, day)
	}
	return render(cmd.OutOrStdout(), task, func(w io.Writer) {
		a.writeTask(w, task, lang)
	})
}

func runPlanList(cmd *cobra.Command, a *app) error {
	childID, _ := cmd.Flags().GetInt64("child")
	plans, err := a.plans.ListChildPlans(childID)
	if err != nil {
		return err
	}
	if plans == nil {
		plans = []models.TrainingPlan{}
	}

	lang := a.lang()
	return render(cmd.OutOrStdout(), plans, func(w io.Writer) {
		for i := range plans {
			a.writePlanSummary(w, &plans[i], lang)
		}
	})
}

func runPlanTask(cmd *cobra.Command, a *app) error {
	flags := cmd.Flags()
	id, _ := flags.GetString("id")
	day, _ := flags.GetInt("day")
	completed, _ := flags.GetBool("completed")

	var result *models.TestResult
	if flags.Changed("score") {
		score, _ := flags.GetFloat64("score")
		level, _ := flags.GetString("level")
		testType, _ := flags.GetString("type")
		result = &models.TestResult{
			TestType:         models.TestType(testType),
			Score:            models.ScoreOf(score),
			PerformanceLevel: models.PerformanceLevel(level),
		}
	} else if flags.Changed("level") || flags.Changed("type") {
		return errors.New("--level and --type need --score")
	}

	plan, err := a.plans.RecordTaskOutcome(id, day, completed, result)
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), plan, func(w io.Writer) {
		progress := planner.Progress(plan)
		summary := a.text("progress.summary", i18n.Params{
			"completed":  progress.Completed,
			"total":      progress.Total,
			"percentage": strconv.FormatFloat(progress.Percentage, 'f', -1, 64),
		})
		fmt.Fprintln(w, a.text("cli.day_recorded", i18n.Params{"day": day, "summary": summary}))
		for i := range plan.DailyTasks {
			if next := &plan.DailyTasks[i]; next.Day > day && next.Escalate && !next.Completed {
				fmt.Fprintln(w, a.text("plan.escalate", nil))
				break
			}
		}
	})
}

func runPlanProgress(cmd *cobra.Command, a *app) error {
	id, _ := cmd.Flags().GetString("id")
	progress, err := a.plans.GetProgress(id, langFlagOrEmpty(a))
	if err != nil {
		return err
	}
	lang := a.lang()
	return render(cmd.OutOrStdout(), progress, func(w io.Writer) {
		fmt.Fprintln(w, progress.Summary)
		fmt.Fprintln(w, progress.TrendText)
		for _, s := range progress.TestScores {
			fmt.Fprintln(w, "  "+a.text("cli.day_score", i18n.Params{
				"day":   s.Day,
				"score": strconv.FormatFloat(s.Score, 'f', 1, 64),
				"level": a.label(lang, "performance", string(s.PerformanceLevel)),
			}))
		}
	})
}

func runPlanStatus(cmd *cobra.Command, a *app) error {
	id, _ := cmd.Flags().GetString("id")
	status, _ := cmd.Flags().GetString("set")

	if err := a.plans.SetStatus(id, models.PlanStatus(status)); err != nil {
		return err
	}
	plan, err := a.plans.GetPlan(id)
	if err != nil {
		return err
	}
	lang := a.lang()
	return render(cmd.OutOrStdout(), plan, func(w io.Writer) {
		fmt.Fprintln(w, a.text("cli.plan_status", i18n.Params{
			"id":     plan.ID,
			"status": a.label(lang, "status", string(plan.Status)),
		}))
	})
}

func runPlanDigest(cmd *cobra.Command, a *app) error {
	id, _ := cmd.Flags().GetString("id")
	day, _ := cmd.Flags().GetInt("day")
	to, _ := cmd.Flags().GetString("to")

	plan, err := a.plans.GetPlan(id)
	if err != nil {
		return err
	}
	if day == 0 {
		task, ok := planner.TaskForDate(plan, time.Now())
		if !ok {
			return errors.New(a.text("cli.no_task_today", i18n.Params{
				"id":    plan.ID,
				"start": plan.StartDate,
				"end":   plan.EndDate,
			}))
		}
		day = task.Day
	}
	child, err := a.children.GetChild(plan.ChildID)
	if err != nil {
		return err
	}

	emails, err := service.NewEmailService(cmd.Context(), a.cfg, a.bundle, a.log)
	if err != nil {
		return err
	}
	lang := langFlagOrEmpty(a)

	if to != "" {
		if !emails.IsEnabled() {
			return errors.New("email is not configured: set SES_FROM_EMAIL")
		}
		if err := emails.SendDailyGuidance(cmd.Context(), to, child, plan, day, lang); err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), map[string]interface{}{"sent": true, "to": to, "day": day}, func(w io.Writer) {
			fmt.Fprintln(w, a.text("cli.digest_sent", i18n.Params{"day": day, "to": to}))
		})
	}

	digest, err := emails.RenderDailyGuidance(child, plan, day, lang)
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), digest, func(w io.Writer) {
		fmt.Fprintf(w, "%s\n\n%s\n", a.text("cli.digest_subject", i18n.Params{"subject": digest.Subject}), digest.TextBody)
	})
}

// langFlagOrEmpty resolves --lang, leaving it empty so the plan's own
// language applies when the flag is unset
func langFlagOrEmpty(a *app) string {
	if langFlag == "" {
		return ""
	}
	return a.lang()
}

func (a *app) writePlanSummary(w io.Writer, plan *models.TrainingPlan, lang string) {
	areas := make([]string, len(plan.FocusAreas))
	for i, d := range plan.FocusAreas {
		areas[i] = a.label(lang, "focus", string(d))
	}
	progress := planner.Progress(plan)

	fmt.Fprintf(w, "%s  %s  %s  %s  %d/%d\n",
		plan.ID,
		a.label(lang, "plan", string(plan.PlanType)),
		a.bundle.T(lang, "plan.dates", i18n.Params{"start": plan.StartDate, "end": plan.EndDate}),
		a.label(lang, "status", string(plan.Status)),
		progress.Completed,
		progress.Total,
	)
	fmt.Fprintf(w, "  %s\n", strings.Join(areas, ", "))
	for _, goal := range plan.Goals {
		fmt.Fprintf(w, "  - %s\n", goal)
	}
}

func (a *app) writeTask(w io.Writer, task *models.DailyTask, lang string) {
	mark := " "
	if task.Completed {
		mark = "x"
	}
	minutes := a.bundle.T(lang, "cli.task_minutes", i18n.Params{"minutes": task.TotalMinutes()})
	fmt.Fprintf(w, "[%s] %s (%s)\n", mark, task.Date, minutes)
	if task.TestRequired {
		status := a.bundle.T(lang, "cli.test_pending", nil)
		if task.TestCompleted {
			status = a.bundle.T(lang, "cli.test_done", nil)
		}
		fmt.Fprintf(w, "    %s: %s\n", a.label(lang, "test", string(task.TestType)), status)
	}
	if task.Escalate && !task.Completed {
		fmt.Fprintf(w, "    %s\n", a.bundle.T(lang, "plan.escalate", nil))
	}
	fmt.Fprintln(w, task.Guidance)
}

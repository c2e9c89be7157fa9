package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"specialcare/internal/i18n"
	"specialcare/internal/models"
)

func init() {
	resultCmd := &cobra.Command{
		Use:   "result",
		Short: "Record test results",
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Append a test result to a child's history",
		RunE:  withApp(runResultAdd),
	}
	addCmd.Flags().Int64("child", 0, "Child ID (required)")
	addCmd.Flags().String("type", "", "Test type, e.g. schulte, memory, age_adaptive (required)")
	addCmd.Flags().Float64("score", 0, "Score from 0 to 100 (required)")
	addCmd.Flags().String("level", "", "Performance level: excellent, good, average or needs_improvement (required)")
	addCmd.Flags().String("capability", "", "Domain measured by a custom test type")
	addCmd.MarkFlagRequired("child")
	addCmd.MarkFlagRequired("type")
	addCmd.MarkFlagRequired("score")
	addCmd.MarkFlagRequired("level")

	resultCmd.AddCommand(addCmd)
	RootCmd.AddCommand(resultCmd)
}

func runResultAdd(cmd *cobra.Command, a *app) error {
	childID, _ := cmd.Flags().GetInt64("child")
	testType, _ := cmd.Flags().GetString("type")
	score, _ := cmd.Flags().GetFloat64("score")
	level, _ := cmd.Flags().GetString("level")
	capability, _ := cmd.Flags().GetString("capability")

	saved, err := a.children.RecordTestResult(models.TestResult{
		ChildID:          childID,
		TestType:         models.TestType(testType),
		Capability:       models.Domain(capability),
		Score:            models.ScoreOf(score),
		PerformanceLevel: models.PerformanceLevel(level),
	})
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), saved, func(w io.Writer) {
		fmt.Fprintln(w, a.text("cli.result_recorded", i18n.Params{"id": saved.ID, "child": saved.ChildID}))
	})
}

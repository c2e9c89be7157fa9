package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"specialcare/internal/i18n"
	"specialcare/internal/models"
)

func init() {
	childCmd := &cobra.Command{
		Use:   "child",
		Short: "Manage child profiles",
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create a child profile",
		RunE:  withApp(runChildAdd),
	}
	addChildFlags(addCmd)
	addCmd.MarkFlagRequired("name")
	addCmd.MarkFlagRequired("age")

	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Change fields of a child profile",
		Long:  "Change fields of a child profile. Only the flags given are updated.",
		RunE:  withApp(runChildUpdate),
	}
	updateCmd.Flags().Int64("id", 0, "Child ID (required)")
	updateCmd.MarkFlagRequired("id")
	addChildFlags(updateCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List child profiles",
		RunE:  withApp(runChildList),
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show a child profile with its test history",
		RunE:  withApp(runChildShow),
	}
	showCmd.Flags().Int64("id", 0, "Child ID (required)")
	showCmd.MarkFlagRequired("id")

	childCmd.AddCommand(addCmd, updateCmd, listCmd, showCmd)
	RootCmd.AddCommand(childCmd)
}

func addChildFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Child's name")
	cmd.Flags().Int("age", 0, "Age in years")
	cmd.Flags().String("gender", "", "Gender")
	cmd.Flags().String("birth-date", "", "Birth date (YYYY-MM-DD)")
	cmd.Flags().String("parent", "", "Parent or caregiver name")
	cmd.Flags().String("condition", "", "Free-text condition notes")
	cmd.Flags().StringSlice("problem", nil, "Reported problem tag, repeatable (e.g. attention_deficit, \"poor memory\")")
}

// applyChildFlags copies the flags the user set onto child
func applyChildFlags(cmd *cobra.Command, child *models.ChildInfo) {
	flags := cmd.Flags()
	if flags.Changed("name") {
		child.Name, _ = flags.GetString("name")
	}
	if flags.Changed("age") {
		child.Age, _ = flags.GetInt("age")
	}
	if flags.Changed("gender") {
		child.Gender, _ = flags.GetString("gender")
	}
	if flags.Changed("birth-date") {
		child.BirthDate, _ = flags.GetString("birth-date")
	}
	if flags.Changed("parent") {
		child.ParentName, _ = flags.GetString("parent")
	}
	if flags.Changed("condition") {
		child.Condition, _ = flags.GetString("condition")
	}
	if flags.Changed("problem") {
		child.Problems, _ = flags.GetStringSlice("problem")
	}
}

func runChildAdd(cmd *cobra.Command, a *app) error {
	var child models.ChildInfo
	applyChildFlags(cmd, &child)

	created, err := a.children.CreateChild(child)
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), created, func(w io.Writer) {
		fmt.Fprintln(w, a.text("cli.child_created", i18n.Params{"id": created.ID, "name": created.Name}))
	})
}

func runChildUpdate(cmd *cobra.Command, a *app) error {
	id, _ := cmd.Flags().GetInt64("id")
	child, err := a.children.GetChild(id)
	if err != nil {
		return err
	}
	applyChildFlags(cmd, child)

	if err := a.children.UpdateChild(child); err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), child, func(w io.Writer) {
		fmt.Fprintln(w, a.text("cli.child_updated", i18n.Params{"id": child.ID, "name": child.Name}))
	})
}

func runChildList(cmd *cobra.Command, a *app) error {
	children, err := a.children.ListChildren()
	if err != nil {
		return err
	}
	if children == nil {
		children = []models.ChildInfo{}
	}
	return render(cmd.OutOrStdout(), children, func(w io.Writer) {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, a.text("cli.child_header", nil))
		for _, c := range children {
			fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", c.ID, c.Name, c.Age, strings.Join(c.Problems, ", "))
		}
		tw.Flush()
	})
}

type childDetail struct {
	*models.ChildInfo
	TestHistory []models.TestResult `json:"test_history"`
}

func runChildShow(cmd *cobra.Command, a *app) error {
	id, _ := cmd.Flags().GetInt64("id")
	child, err := a.children.GetChild(id)
	if err != nil {
		return err
	}
	history, err := a.children.GetTestHistory(id)
	if err != nil {
		return err
	}
	if history == nil {
		history = []models.TestResult{}
	}

	lang := a.lang()
	return render(cmd.OutOrStdout(), childDetail{ChildInfo: child, TestHistory: history}, func(w io.Writer) {
		fmt.Fprintf(w, "%s (#%d), %d\n", child.Name, child.ID, child.Age)
		if child.ParentName != "" {
			fmt.Fprintln(w, a.text("cli.parent", i18n.Params{"name": child.ParentName}))
		}
		if len(child.Problems) > 0 {
			fmt.Fprintln(w, a.text("cli.problems", i18n.Params{"problems": strings.Join(child.Problems, ", ")}))
		}
		for _, r := range history {
			score := "-"
			if r.Score != nil {
				score = fmt.Sprintf("%g", *r.Score)
			}
			fmt.Fprintf(w, "%s  %s  %s  %s\n",
				r.RecordedAt.Format("2006-01-02"),
				a.label(lang, "test", string(r.TestType)),
				score,
				a.label(lang, "performance", string(r.PerformanceLevel)),
			)
		}
	})
}

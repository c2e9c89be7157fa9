package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"specialcare/internal/i18n"
)

func init() {
	backupCmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or import all children, results and plans as JSON",
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write a JSON backup",
		RunE:  withApp(runBackupExport),
	}
	exportCmd.Flags().StringP("out", "o", "", "Output file (default: stdout)")

	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Restore a JSON backup into the database",
		Long: `Restore a JSON backup into the database.

Existing data is kept. Imported children and test results get new IDs;
plans keep theirs.`,
		RunE: withApp(runBackupImport),
	}
	importCmd.Flags().StringP("in", "i", "", "Backup file to read (required)")
	importCmd.MarkFlagRequired("in")

	backupCmd.AddCommand(exportCmd, importCmd)
	RootCmd.AddCommand(backupCmd)
}

func runBackupExport(cmd *cobra.Command, a *app) error {
	out, _ := cmd.Flags().GetString("out")

	var w io.Writer = cmd.OutOrStdout()
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("failed to create backup file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := a.backup.ExportToWriter(w); err != nil {
		return err
	}
	if out != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), a.text("cli.backup_written", i18n.Params{"path": out}))
	}
	return nil
}

func runBackupImport(cmd *cobra.Command, a *app) error {
	in, _ := cmd.Flags().GetString("in")

	f, err := os.Open(in)
	if err != nil {
		return fmt.Errorf("failed to open backup file: %w", err)
	}
	defer f.Close()

	if err := a.backup.ImportFromReader(f); err != nil {
		return err
	}
	fmt.Fprintln(cmd.ErrOrStderr(), a.text("cli.backup_imported", i18n.Params{"path": in}))
	return nil
}

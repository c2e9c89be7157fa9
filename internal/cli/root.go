// Package cli implements the planner command line
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"specialcare/internal/config"
	"specialcare/internal/database"
	"specialcare/internal/i18n"
	"specialcare/internal/logger"
	"specialcare/internal/planner"
	"specialcare/internal/repository"
	"specialcare/internal/service"
)

var (
	dbPath     string
	langFlag   string
	formatFlag string
)

// RootCmd is the top-level command
var RootCmd = &cobra.Command{
	Use:           "planner",
	Short:         "Developmental training plans for children",
	Long:          "Generate, track and adapt daily training plans from a child's profile and test history.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "SQLite database path (default: $DB_PATH)")
	RootCmd.PersistentFlags().StringVarP(&langFlag, "lang", "l", "", "Output language, e.g. en, zh or zh-CN (default: $DEFAULT_LANGUAGE)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
}

// app holds everything a command needs, built from the environment
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	db       *database.DB
	bundle   *i18n.Bundle
	builder  *planner.Builder
	children *service.ChildService
	plans    *service.PlanService
	backup   *service.BackupService
	language string
}

func openApp() (*app, error) {
	if formatFlag != "json" && formatFlag != "text" {
		return nil, fmt.Errorf("unknown format %q: use json or text", formatFlag)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.DatabaseType = "sqlite"
		cfg.DatabasePath = dbPath
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, err
	}

	bundle, err := i18n.LoadEmbeddedWithDefault(cfg.DefaultLanguage)
	if err != nil {
		return nil, fmt.Errorf("failed to load translations: %w", err)
	}

	db, err := database.InitializeWithConfig(cfg, log)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(cfg.MigrationsPath); err != nil {
		db.Close()
		return nil, err
	}

	builder := planner.NewBuilder(bundle,
		planner.WithLogger(log),
		planner.WithThresholds(cfg.Thresholds()),
	)

	a := &app{
		cfg:      cfg,
		log:      log,
		db:       db,
		bundle:   bundle,
		builder:  builder,
		children: service.NewChildService(repository.NewChildRepository(db), repository.NewTestResultRepository(db), log),
		plans:    service.NewPlanService(db, builder, bundle, log),
		backup:   service.NewBackupService(db, log),
	}
	a.language = a.resolveLanguage()
	return a, nil
}

func (a *app) Close() {
	a.db.Close()
	a.log.Sync()
}

// resolveLanguage maps --lang to a supported language, or the configured default
func (a *app) resolveLanguage() string {
	if langFlag == "" {
		return a.bundle.Default()
	}
	lang, ok := a.bundle.Match(langFlag)
	if !ok {
		a.log.Warn("unsupported language, using default", "requested", langFlag, "language", lang)
	}
	return lang
}

func (a *app) lang() string {
	return a.language
}

// text translates key into the output language
func (a *app) text(key string, params i18n.Params) string {
	return a.bundle.T(a.language, key, params)
}

// label translates prefix.value, falling back to the raw value
func (a *app) label(lang, prefix, value string) string {
	if msg, ok := a.bundle.Message(lang, prefix+"."+value); ok {
		return msg
	}
	return value
}

// withApp wraps a command body with app setup and teardown
func withApp(run func(cmd *cobra.Command, a *app) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()
		return run(cmd, a)
	}
}

// render writes v as indented JSON, or through text in text format
func render(w io.Writer, v interface{}, text func(w io.Writer)) error {
	if formatFlag == "text" && text != nil {
		text(w)
		return nil
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

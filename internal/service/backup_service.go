package service

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"specialcare/internal/database"
	"specialcare/internal/logger"
	"specialcare/internal/models"
	"specialcare/internal/repository"
)

// BackupVersion is written to every export and checked on import
const BackupVersion = "1.0"

// BackupData represents the complete database backup structure
type BackupData struct {
	Version      string        `json:"version"`
	ExportedAt   time.Time     `json:"exported_at"`
	DatabaseType string        `json:"database_type"`
	Children     []ChildBackup `json:"children"`
}

// ChildBackup is a child with everything recorded for it
type ChildBackup struct {
	Child       models.ChildInfo      `json:"child"`
	TestResults []models.TestResult   `json:"test_results"`
	Plans       []models.TrainingPlan `json:"plans"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db  *database.DB
	log *logger.Logger
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB, log *logger.Logger) *BackupService {
	if log == nil {
		log = logger.Nop()
	}
	return &BackupService{db: db, log: log}
}

// ExportToWriter writes every child, test result and plan as JSON
func (s *BackupService) ExportToWriter(w io.Writer) error {
	backup := BackupData{
		Version:      BackupVersion,
		ExportedAt:   time.Now().UTC(),
		DatabaseType: s.db.Dialect.DriverName(),
		Children:     []ChildBackup{},
	}

	childRepo := repository.NewChildRepository(s.db)
	resultRepo := repository.NewTestResultRepository(s.db)
	planRepo := repository.NewPlanRepository(s.db)

	children, err := childRepo.ListChildren()
	if err != nil {
		return fmt.Errorf("failed to export children: %w", err)
	}

	var results, plans int
	for _, child := range children {
		history, err := resultRepo.GetChildResults(child.ID)
		if err != nil {
			return fmt.Errorf("failed to export test results for child %d: %w", child.ID, err)
		}
		childPlans, err := planRepo.ListChildPlans(child.ID)
		if err != nil {
			return fmt.Errorf("failed to export plans for child %d: %w", child.ID, err)
		}
		backup.Children = append(backup.Children, ChildBackup{
			Child:       child,
			TestResults: history,
			Plans:       childPlans,
		})
		results += len(history)
		plans += len(childPlans)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	s.log.Info("database exported", "children", len(children), "test_results", results, "plans", plans)
	return nil
}

// ImportFromReader restores a backup in one transaction. Children and test
// results get new IDs; plans keep theirs and replace any stored copy
func (s *BackupService) ImportFromReader(r io.Reader) error {
	var backup BackupData
	if err := json.NewDecoder(r).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}
	if backup.Version != BackupVersion {
		return fmt.Errorf("unsupported backup version %q", backup.Version)
	}
	s.log.Info("importing backup", "version", backup.Version, "exported_at", backup.ExportedAt)

	var results, plans int
	err := s.db.WithTx(func(tx *database.Tx) error {
		childRepo := repository.NewChildRepository(tx)
		resultRepo := repository.NewTestResultRepository(tx)
		planRepo := repository.NewPlanRepository(tx)

		for _, entry := range backup.Children {
			child, err := childRepo.CreateChild(entry.Child)
			if err != nil {
				return fmt.Errorf("failed to import child %q: %w", entry.Child.Name, err)
			}

			for _, result := range entry.TestResults {
				result.ChildID = child.ID
				if _, err := resultRepo.CreateResult(result); err != nil {
					return fmt.Errorf("failed to import test result for child %q: %w", child.Name, err)
				}
				results++
			}

			for i := range entry.Plans {
				plan := &entry.Plans[i]
				plan.ChildID = child.ID
				for j := range plan.DailyTasks {
					if tr := plan.DailyTasks[j].TestResult; tr != nil {
						tr.ChildID = child.ID
					}
				}
				if err := planRepo.SavePlan(plan); err != nil {
					return fmt.Errorf("failed to import plan %s: %w", plan.ID, err)
				}
				plans++
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("database import completed", "children", len(backup.Children), "test_results", results, "plans", plans)
	return nil
}

package service

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"specialcare/internal/logger"
	"specialcare/internal/models"
	"specialcare/internal/repository"
	"specialcare/internal/validation"
)

var (
	ErrChildNotFound = errors.New("child not found")
)

// ChildService handles child profiles and their test history
type ChildService struct {
	childRepo  *repository.ChildRepository
	resultRepo *repository.TestResultRepository
	log        *logger.Logger
	now        func() time.Time
}

// NewChildService creates a new child service
func NewChildService(childRepo *repository.ChildRepository, resultRepo *repository.TestResultRepository, log *logger.Logger) *ChildService {
	if log == nil {
		log = logger.Nop()
	}
	return &ChildService{
		childRepo:  childRepo,
		resultRepo: resultRepo,
		log:        log,
		now:        time.Now,
	}
}

// CreateChild validates and stores a new child profile
func (s *ChildService) CreateChild(child models.ChildInfo) (*models.ChildInfo, error) {
	child.Name = strings.TrimSpace(child.Name)
	child.Problems = normalizeProblems(child.Problems)
	if err := validation.ValidateChild(&child, s.now()); err != nil {
		return nil, err
	}

	created, err := s.childRepo.CreateChild(child)
	if err != nil {
		return nil, fmt.Errorf("failed to create child: %w", err)
	}
	s.log.Info("child created", "child_id", created.ID, "parent_name", created.ParentName)
	return created, nil
}

// GetChild retrieves a child by ID
func (s *ChildService) GetChild(childID int64) (*models.ChildInfo, error) {
	child, err := s.childRepo.GetChildByID(childID)
	if err != nil {
		return nil, fmt.Errorf("failed to get child: %w", err)
	}
	if child == nil {
		return nil, ErrChildNotFound
	}
	return child, nil
}

// ListChildren returns every stored child
func (s *ChildService) ListChildren() ([]models.ChildInfo, error) {
	children, err := s.childRepo.ListChildren()
	if err != nil {
		return nil, fmt.Errorf("failed to list children: %w", err)
	}
	return children, nil
}

// UpdateChild replaces the editable fields of an existing child
func (s *ChildService) UpdateChild(child *models.ChildInfo) error {
	if child == nil {
		return validation.ValidationError{Field: "child", Message: "child is required"}
	}
	child.Name = strings.TrimSpace(child.Name)
	child.Problems = normalizeProblems(child.Problems)
	if err := validation.ValidateChild(child, s.now()); err != nil {
		return err
	}

	err := s.childRepo.UpdateChild(child)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrChildNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update child: %w", err)
	}
	return nil
}

// RecordTestResult validates a result and appends it to the child's history
func (s *ChildService) RecordTestResult(result models.TestResult) (*models.TestResult, error) {
	if _, err := s.GetChild(result.ChildID); err != nil {
		return nil, err
	}
	if err := validation.ValidateTestResult(&result); err != nil {
		return nil, err
	}
	if result.RecordedAt.IsZero() {
		result.RecordedAt = s.now().UTC()
	}

	saved, err := s.resultRepo.CreateResult(result)
	if err != nil {
		return nil, fmt.Errorf("failed to record test result: %w", err)
	}
	return saved, nil
}

// GetTestHistory returns the child's results in ascending time order
func (s *ChildService) GetTestHistory(childID int64) ([]models.TestResult, error) {
	if _, err := s.GetChild(childID); err != nil {
		return nil, err
	}
	history, err := s.resultRepo.GetChildResults(childID)
	if err != nil {
		return nil, fmt.Errorf("failed to get test history: %w", err)
	}
	return history, nil
}

// normalizeProblems trims tags and stores recognized ones in canonical form.
// Unrecognized tags are kept so caregivers' notes are not lost
func normalizeProblems(tags []string) []string {
	var out []string
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if p, ok := models.ParseProblem(tag); ok {
			tag = string(p)
		}
		out = append(out, tag)
	}
	return out
}

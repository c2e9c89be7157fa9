package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"specialcare/internal/database"
	"specialcare/internal/models"
)

// TestResultRepository stores each child's test history
type TestResultRepository struct {
	db database.DBTX
}

// NewTestResultRepository creates a new test result repository
func NewTestResultRepository(db database.DBTX) *TestResultRepository {
	return &TestResultRepository{db: db}
}

// CreateResult appends a result to a child's history
func (r *TestResultRepository) CreateResult(result models.TestResult) (*models.TestResult, error) {
	if result.RecordedAt.IsZero() {
		result.RecordedAt = time.Now().UTC()
	}

	var payload sql.NullString
	if len(result.Payload) > 0 {
		data, err := json.Marshal(result.Payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode payload: %w", err)
		}
		payload = sql.NullString{String: string(data), Valid: true}
	}

	var score sql.NullFloat64
	if result.Score != nil {
		score = sql.NullFloat64{Float64: *result.Score, Valid: true}
	}

	query := `
		INSERT INTO test_results (child_id, test_type, capability, payload, score, performance_level, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		result.ChildID, string(result.TestType), string(result.Capability), payload,
		score, string(result.PerformanceLevel), result.RecordedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create test result: %w", err)
	}

	result.ID = id
	return &result, nil
}

// GetChildResults returns a child's history, oldest first
func (r *TestResultRepository) GetChildResults(childID int64) ([]models.TestResult, error) {
	query := `
		SELECT id, child_id, test_type, capability, payload, score, performance_level, recorded_at
		FROM test_results
		WHERE child_id = ?
		ORDER BY recorded_at ASC, id ASC
	`
	rows, err := r.db.Query(query, childID)
	if err != nil {
		return nil, fmt.Errorf("failed to query test results: %w", err)
	}
	defer rows.Close()

	var results []models.TestResult
	for rows.Next() {
		var (
			result          models.TestResult
			testType, level string
			capability      string
			payload         sql.NullString
			score           sql.NullFloat64
		)
		err := rows.Scan(
			&result.ID,
			&result.ChildID,
			&testType,
			&capability,
			&payload,
			&score,
			&level,
			&result.RecordedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan test result: %w", err)
		}

		result.TestType = models.TestType(testType)
		result.Capability = models.Domain(capability)
		result.PerformanceLevel = models.PerformanceLevel(level)
		if score.Valid {
			result.Score = models.ScoreOf(score.Float64)
		}
		if payload.Valid && payload.String != "" {
			if err := json.Unmarshal([]byte(payload.String), &result.Payload); err != nil {
				return nil, fmt.Errorf("failed to decode payload: %w", err)
			}
		}
		results = append(results, result)
	}
	return results, rows.Err()
}

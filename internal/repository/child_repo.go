package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"specialcare/internal/database"
	"specialcare/internal/models"
)

// ChildRepository handles database operations for children
type ChildRepository struct {
	db database.DBTX
}

// NewChildRepository creates a new child repository
func NewChildRepository(db database.DBTX) *ChildRepository {
	return &ChildRepository{db: db}
}

// CreateChild inserts a child profile and returns it with its new ID
func (r *ChildRepository) CreateChild(child models.ChildInfo) (*models.ChildInfo, error) {
	problems, err := encodeProblems(child.Problems)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	query := `
		INSERT INTO children (name, age, gender, birth_date, parent_name, condition_notes, problems, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	childID, err := r.db.ExecReturningID(query,
		child.Name, child.Age, child.Gender, child.BirthDate, child.ParentName,
		child.Condition, problems, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create child: %w", err)
	}

	child.ID = childID
	child.CreatedAt = now
	child.UpdatedAt = now
	return &child, nil
}

// GetChildByID retrieves a child by ID
func (r *ChildRepository) GetChildByID(childID int64) (*models.ChildInfo, error) {
	query := `
		SELECT id, name, age, gender, birth_date, parent_name, condition_notes, problems, created_at, updated_at
		FROM children
		WHERE id = ?
	`
	child, err := scanChild(r.db.QueryRow(query, childID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get child: %w", err)
	}
	return child, nil
}

// ListChildren retrieves all children in creation order
func (r *ChildRepository) ListChildren() ([]models.ChildInfo, error) {
	query := `
		SELECT id, name, age, gender, birth_date, parent_name, condition_notes, problems, created_at, updated_at
		FROM children
		ORDER BY id ASC
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query children: %w", err)
	}
	defer rows.Close()

	var children []models.ChildInfo
	for rows.Next() {
		child, err := scanChild(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan child: %w", err)
		}
		children = append(children, *child)
	}
	return children, rows.Err()
}

// UpdateChild overwrites the mutable profile fields
func (r *ChildRepository) UpdateChild(child *models.ChildInfo) error {
	problems, err := encodeProblems(child.Problems)
	if err != nil {
		return err
	}

	child.UpdatedAt = time.Now().UTC()
	query := `
		UPDATE children
		SET name = ?, age = ?, gender = ?, birth_date = ?, parent_name = ?, condition_notes = ?, problems = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := r.db.Exec(query,
		child.Name, child.Age, child.Gender, child.BirthDate, child.ParentName,
		child.Condition, problems, child.UpdatedAt, child.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update child: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanChild(row rowScanner) (*models.ChildInfo, error) {
	child := &models.ChildInfo{}
	var condition, problems sql.NullString
	err := row.Scan(
		&child.ID,
		&child.Name,
		&child.Age,
		&child.Gender,
		&child.BirthDate,
		&child.ParentName,
		&condition,
		&problems,
		&child.CreatedAt,
		&child.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	child.Condition = condition.String
	if problems.Valid && problems.String != "" {
		if err := json.Unmarshal([]byte(problems.String), &child.Problems); err != nil {
			return nil, fmt.Errorf("failed to decode problems: %w", err)
		}
	}
	return child, nil
}

func encodeProblems(problems []string) (string, error) {
	if problems == nil {
		problems = []string{}
	}
	data, err := json.Marshal(problems)
	if err != nil {
		return "", fmt.Errorf("failed to encode problems: %w", err)
	}
	return string(data), nil
}

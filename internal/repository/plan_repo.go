package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"specialcare/internal/database"
	"specialcare/internal/models"
)

// PlanRepository persists training plans and their daily tasks
type PlanRepository struct {
	db database.DBTX
}

// NewPlanRepository creates a new plan repository
func NewPlanRepository(db database.DBTX) *PlanRepository {
	return &PlanRepository{db: db}
}

// SavePlan inserts or replaces a plan together with all of its tasks.
// On a plain connection the write runs in its own transaction
func (r *PlanRepository) SavePlan(plan *models.TrainingPlan) error {
	if db, ok := r.db.(*database.DB); ok {
		return db.WithTx(func(tx *database.Tx) error {
			return savePlan(tx, plan)
		})
	}
	return savePlan(r.db, plan)
}

func savePlan(db database.DBTX, plan *models.TrainingPlan) error {
	focus, err := json.Marshal(plan.FocusAreas)
	if err != nil {
		return fmt.Errorf("failed to encode focus areas: %w", err)
	}
	goals, err := json.Marshal(plan.Goals)
	if err != nil {
		return fmt.Errorf("failed to encode goals: %w", err)
	}

	var exists int
	if err := db.QueryRow("SELECT COUNT(*) FROM plans WHERE id = ?", plan.ID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check plan: %w", err)
	}

	now := time.Now().UTC()
	if exists == 0 {
		query := `
			INSERT INTO plans (id, child_id, plan_type, duration_days, language, start_date, end_date, focus_areas, goals, status, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`
		_, err = db.Exec(query,
			plan.ID, plan.ChildID, string(plan.PlanType), plan.DurationDays, plan.Language,
			plan.StartDate, plan.EndDate, string(focus), string(goals), string(plan.Status),
			plan.CreatedAt, now,
		)
	} else {
		query := `
			UPDATE plans
			SET child_id = ?, plan_type = ?, duration_days = ?, language = ?, start_date = ?, end_date = ?, focus_areas = ?, goals = ?, status = ?, updated_at = ?
			WHERE id = ?
		`
		_, err = db.Exec(query,
			plan.ChildID, string(plan.PlanType), plan.DurationDays, plan.Language, plan.StartDate, plan.EndDate,
			string(focus), string(goals), string(plan.Status), now, plan.ID,
		)
	}
	if err != nil {
		return fmt.Errorf("failed to save plan: %w", err)
	}

	if _, err := db.Exec("DELETE FROM daily_tasks WHERE plan_id = ?", plan.ID); err != nil {
		return fmt.Errorf("failed to clear tasks: %w", err)
	}

	query := `
		INSERT INTO daily_tasks (plan_id, day, task_id, task_date, activities, parent_guidance, test_required, test_type, completed, test_completed, test_result, escalate)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	for _, task := range plan.DailyTasks {
		activities, err := json.Marshal(task.Activities)
		if err != nil {
			return fmt.Errorf("failed to encode activities for day %d: %w", task.Day, err)
		}
		var result sql.NullString
		if task.TestResult != nil {
			data, err := json.Marshal(task.TestResult)
			if err != nil {
				return fmt.Errorf("failed to encode test result for day %d: %w", task.Day, err)
			}
			result = sql.NullString{String: string(data), Valid: true}
		}

		_, err = db.Exec(query,
			plan.ID, task.Day, task.ID, task.Date, string(activities), task.Guidance,
			task.TestRequired, string(task.TestType), task.Completed, task.TestCompleted,
			result, task.Escalate,
		)
		if err != nil {
			return fmt.Errorf("failed to save task for day %d: %w", task.Day, err)
		}
	}
	return nil
}

// GetPlan loads a plan and its tasks, or nil when it does not exist
func (r *PlanRepository) GetPlan(planID string) (*models.TrainingPlan, error) {
	query := `
		SELECT id, child_id, plan_type, duration_days, language, start_date, end_date, focus_areas, goals, status, created_at
		FROM plans
		WHERE id = ?
	`
	plan, err := scanPlan(r.db.QueryRow(query, planID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	tasks, err := r.getTasks(planID)
	if err != nil {
		return nil, err
	}
	plan.DailyTasks = tasks
	return plan, nil
}

// ListChildPlans returns a child's plans, newest first, with their tasks
func (r *PlanRepository) ListChildPlans(childID int64) ([]models.TrainingPlan, error) {
	query := `
		SELECT id, child_id, plan_type, duration_days, language, start_date, end_date, focus_areas, goals, status, created_at
		FROM plans
		WHERE child_id = ?
		ORDER BY created_at DESC, id ASC
	`
	rows, err := r.db.Query(query, childID)
	if err != nil {
		return nil, fmt.Errorf("failed to query plans: %w", err)
	}

	var plans []models.TrainingPlan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		plans = append(plans, *plan)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range plans {
		tasks, err := r.getTasks(plans[i].ID)
		if err != nil {
			return nil, err
		}
		plans[i].DailyTasks = tasks
	}
	return plans, nil
}

// UpdateStatus changes a plan's lifecycle status
func (r *PlanRepository) UpdateStatus(planID string, status models.PlanStatus) error {
	result, err := r.db.Exec("UPDATE plans SET status = ?, updated_at = ? WHERE id = ?",
		string(status), time.Now().UTC(), planID)
	if err != nil {
		return fmt.Errorf("failed to update plan status: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountCompletedTasks returns how many of a plan's tasks are done
func (r *PlanRepository) CountCompletedTasks(planID string) (int, error) {
	query := "SELECT COUNT(*) FROM daily_tasks WHERE plan_id = ? AND completed = " +
		r.db.GetDialect().BoolValue(true)
	var count int
	if err := r.db.QueryRow(query, planID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count completed tasks: %w", err)
	}
	return count, nil
}

func (r *PlanRepository) getTasks(planID string) ([]models.DailyTask, error) {
	query := `
		SELECT day, task_id, task_date, activities, parent_guidance, test_required, test_type, completed, test_completed, test_result, escalate
		FROM daily_tasks
		WHERE plan_id = ?
		ORDER BY day ASC
	`
	rows, err := r.db.Query(query, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.DailyTask
	for rows.Next() {
		var (
			task       models.DailyTask
			activities string
			testType   string
			result     sql.NullString
		)
		err := rows.Scan(
			&task.Day,
			&task.ID,
			&task.Date,
			&activities,
			&task.Guidance,
			&task.TestRequired,
			&testType,
			&task.Completed,
			&task.TestCompleted,
			&result,
			&task.Escalate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}

		task.TestType = models.TestType(testType)
		if err := json.Unmarshal([]byte(activities), &task.Activities); err != nil {
			return nil, fmt.Errorf("failed to decode activities for day %d: %w", task.Day, err)
		}
		if result.Valid && result.String != "" {
			task.TestResult = &models.TestResult{}
			if err := json.Unmarshal([]byte(result.String), task.TestResult); err != nil {
				return nil, fmt.Errorf("failed to decode test result for day %d: %w", task.Day, err)
			}
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func scanPlan(row rowScanner) (*models.TrainingPlan, error) {
	var (
		plan             models.TrainingPlan
		planType, status string
		focus, goals     string
	)
	err := row.Scan(
		&plan.ID,
		&plan.ChildID,
		&planType,
		&plan.DurationDays,
		&plan.Language,
		&plan.StartDate,
		&plan.EndDate,
		&focus,
		&goals,
		&status,
		&plan.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	plan.PlanType = models.PlanType(planType)
	plan.Status = models.PlanStatus(status)
	if err := json.Unmarshal([]byte(focus), &plan.FocusAreas); err != nil {
		return nil, fmt.Errorf("failed to decode focus areas: %w", err)
	}
	if err := json.Unmarshal([]byte(goals), &plan.Goals); err != nil {
		return nil, fmt.Errorf("failed to decode goals: %w", err)
	}
	return &plan, nil
}

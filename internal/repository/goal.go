package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/templui/taskflow/internal/dates"
	"github.com/templui/taskflow/internal/model"
)

const (
	GoalSortCreated = "created"
	GoalSortTime    = "time"
	GoalSortTitle   = "title"
)

var (
	// ErrGoalNotFound is returned both for missing goals and for goals owned by someone else.
	ErrGoalNotFound = errors.New("goal not found")
)

type GoalRepository interface {
	Create(ctx context.Context, goal *model.Goal) error
	ByID(ctx context.Context, userID, goalID string) (*model.Goal, error)
	Goals(ctx context.Context, userID, sortBy string) ([]*model.Goal, error)
	Update(ctx context.Context, goal *model.Goal) error
	Delete(ctx context.Context, userID, goalID string) error
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

type goalDay struct {
	GoalID    string `db:"goal_id"`
	DayOfWeek string `db:"day_of_week"`
}

// Create inserts the goal and its day set in one transaction.
func (r *goalRepository) Create(ctx context.Context, goal *model.Goal) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `INSERT INTO goals (id, user_id, title, type, total_steps, target_date, time_of_day, created_at, updated_at)
		          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

		_, err := tx.ExecContext(ctx, query,
			goal.ID,
			goal.UserID,
			goal.Title,
			goal.Type,
			goal.TotalSteps,
			goal.TargetDate,
			goal.Time,
			goal.CreatedAt,
			goal.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert goal: %w", err)
		}

		return insertDays(ctx, tx, goal.ID, goal.DaysOfWeek)
	})
}

func (r *goalRepository) ByID(ctx context.Context, userID, goalID string) (*model.Goal, error) {
	goal := &model.Goal{}
	query := `SELECT * FROM goals WHERE id = $1 AND user_id = $2`

	err := r.db.GetContext(ctx, goal, query, goalID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}

	err = r.attachDays(ctx, []*model.Goal{goal})
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// Goals returns every goal of the user. The default order is creation order.
func (r *goalRepository) Goals(ctx context.Context, userID, sortBy string) ([]*model.Goal, error) {
	var goals []*model.Goal

	var orderBy string
	switch sortBy {
	case GoalSortTime:
		orderBy = "ORDER BY CASE WHEN time_of_day IS NULL THEN 1 ELSE 0 END, time_of_day ASC, created_at ASC, id ASC"
	case GoalSortTitle:
		orderBy = "ORDER BY LOWER(title) ASC, created_at ASC, id ASC"
	default: // GoalSortCreated or empty
		orderBy = "ORDER BY created_at ASC, id ASC"
	}

	query := `SELECT * FROM goals WHERE user_id = $1 ` + orderBy

	err := r.db.SelectContext(ctx, &goals, query, userID)
	if err != nil {
		return nil, err
	}

	err = r.attachDays(ctx, goals)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

// Update rewrites the mutable fields and replaces the whole day set.
// Both happen in one transaction, so a failed replace keeps the old set.
func (r *goalRepository) Update(ctx context.Context, goal *model.Goal) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `UPDATE goals
		          SET title = $1, type = $2, total_steps = $3, target_date = $4, time_of_day = $5, updated_at = $6
		          WHERE id = $7 AND user_id = $8`

		result, err := tx.ExecContext(ctx, query,
			goal.Title,
			goal.Type,
			goal.TotalSteps,
			goal.TargetDate,
			goal.Time,
			goal.UpdatedAt,
			goal.ID,
			goal.UserID,
		)
		if err != nil {
			return fmt.Errorf("failed to update goal: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return err
		}

		if rows == 0 {
			return ErrGoalNotFound
		}

		_, err = tx.ExecContext(ctx, `DELETE FROM goal_days_of_week WHERE goal_id = $1`, goal.ID)
		if err != nil {
			return fmt.Errorf("failed to clear days of week: %w", err)
		}

		return insertDays(ctx, tx, goal.ID, goal.DaysOfWeek)
	})
}

// Delete removes the goal with its logs and day set. There is no undo.
func (r *goalRepository) Delete(ctx context.Context, userID, goalID string) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var owned int
		err := tx.GetContext(ctx, &owned, `SELECT COUNT(*) FROM goals WHERE id = $1 AND user_id = $2`, goalID, userID)
		if err != nil {
			return err
		}

		if owned == 0 {
			return ErrGoalNotFound
		}

		_, err = tx.ExecContext(ctx, `DELETE FROM goal_logs WHERE goal_id = $1`, goalID)
		if err != nil {
			return fmt.Errorf("failed to delete goal logs: %w", err)
		}

		_, err = tx.ExecContext(ctx, `DELETE FROM goal_days_of_week WHERE goal_id = $1`, goalID)
		if err != nil {
			return fmt.Errorf("failed to delete days of week: %w", err)
		}

		_, err = tx.ExecContext(ctx, `DELETE FROM goals WHERE id = $1 AND user_id = $2`, goalID, userID)
		if err != nil {
			return fmt.Errorf("failed to delete goal: %w", err)
		}

		return nil
	})
}

// attachDays loads the day sets of all goals with a single query.
func (r *goalRepository) attachDays(ctx context.Context, goals []*model.Goal) error {
	if len(goals) == 0 {
		return nil
	}

	ids := make([]string, 0, len(goals))
	byID := make(map[string]*model.Goal, len(goals))
	for _, goal := range goals {
		goal.DaysOfWeek = []string{}
		ids = append(ids, goal.ID)
		byID[goal.ID] = goal
	}

	query, args, err := sqlx.In(`SELECT goal_id, day_of_week FROM goal_days_of_week WHERE goal_id IN (?)`, ids)
	if err != nil {
		return err
	}

	var days []goalDay
	err = r.db.SelectContext(ctx, &days, r.db.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("failed to load days of week: %w", err)
	}

	for _, d := range days {
		goal := byID[d.GoalID]
		goal.DaysOfWeek = append(goal.DaysOfWeek, d.DayOfWeek)
	}

	for _, goal := range goals {
		// stored values are canonical, this only fixes the order
		normalized, err := dates.NormalizeWeekdays(goal.DaysOfWeek)
		if err == nil {
			goal.DaysOfWeek = normalized
		}
	}

	return nil
}

func insertDays(ctx context.Context, tx *sqlx.Tx, goalID string, days []string) error {
	query := `INSERT INTO goal_days_of_week (goal_id, day_of_week) VALUES ($1, $2)`
	for _, day := range days {
		_, err := tx.ExecContext(ctx, query, goalID, day)
		if err != nil {
			return fmt.Errorf("failed to insert day %s: %w", day, err)
		}
	}
	return nil
}

// withTx runs fn in a transaction, committing on success and rolling back otherwise.
func withTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = fn(tx)
	if err != nil {
		return err
	}

	return tx.Commit()
}

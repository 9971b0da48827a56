package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sethvargo/go-retry"
	"github.com/templui/taskflow/internal/model"
)

var (
	ErrGoalLogNotFound = errors.New("goal log not found")
)

// upsertRetries bounds how often a conflicting upsert is replayed.
const upsertRetries = 3

// GoalLogRepository stores one completion counter per goal and calendar day.
// Days are passed as YYYY-MM-DD keys.
type GoalLogRepository interface {
	CompletedSteps(ctx context.Context, goalID, day string) (int, error)
	ByGoalAndDate(ctx context.Context, goalID, day string) (*model.GoalLog, error)
	ByGoal(ctx context.Context, goalID string) ([]*model.GoalLog, error)
	Set(ctx context.Context, goalID, day string, steps int) (*model.GoalLog, error)
	Add(ctx context.Context, goalID, day string, delta int) (*model.GoalLog, error)
}

type goalLogRepository struct {
	db      *sqlx.DB
	backoff func() retry.Backoff
}

func NewGoalLogRepository(db *sqlx.DB) GoalLogRepository {
	return &goalLogRepository{
		db: db,
		backoff: func() retry.Backoff {
			return retry.WithMaxRetries(upsertRetries, retry.NewExponential(10*time.Millisecond))
		},
	}
}

// CompletedSteps returns the day's counter, or 0 when nothing was logged.
func (r *goalLogRepository) CompletedSteps(ctx context.Context, goalID, day string) (int, error) {
	log, err := r.ByGoalAndDate(ctx, goalID, day)
	if errors.Is(err, ErrGoalLogNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return log.CompletedSteps, nil
}

func (r *goalLogRepository) ByGoalAndDate(ctx context.Context, goalID, day string) (*model.GoalLog, error) {
	log := &model.GoalLog{}
	query := `SELECT * FROM goal_logs WHERE goal_id = $1 AND log_date = $2`

	err := r.db.GetContext(ctx, log, query, goalID, day)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGoalLogNotFound
	}
	if err != nil {
		return nil, err
	}

	return log, nil
}

func (r *goalLogRepository) ByGoal(ctx context.Context, goalID string) ([]*model.GoalLog, error) {
	var logs []*model.GoalLog
	query := `SELECT * FROM goal_logs WHERE goal_id = $1 ORDER BY log_date ASC`

	err := r.db.SelectContext(ctx, &logs, query, goalID)
	if err != nil {
		return nil, err
	}

	return logs, nil
}

// Set stores an absolute counter for the day, creating the row on first use.
// Values are clamped to [0, model.MaxSteps].
func (r *goalLogRepository) Set(ctx context.Context, goalID, day string, steps int) (*model.GoalLog, error) {
	query := `INSERT INTO goal_logs (id, goal_id, log_date, completed_steps, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          ON CONFLICT (goal_id, log_date) DO UPDATE
	          SET completed_steps = excluded.completed_steps, updated_at = excluded.updated_at`

	return r.upsert(ctx, goalID, day, func(ctx context.Context) error {
		now := time.Now().UTC()
		_, err := r.db.ExecContext(ctx, query,
			uuid.New().String(), goalID, day, clampSteps(steps), now, now,
		)
		return err
	})
}

// Add applies a signed delta to the day's counter in a single statement.
// The result saturates at 0 and model.MaxSteps; the sum is evaluated as BIGINT.
func (r *goalLogRepository) Add(ctx context.Context, goalID, day string, delta int) (*model.GoalLog, error) {
	query := `INSERT INTO goal_logs (id, goal_id, log_date, completed_steps, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          ON CONFLICT (goal_id, log_date) DO UPDATE
	          SET completed_steps = CASE
	                  WHEN CAST(goal_logs.completed_steps AS BIGINT) + $7 < 0 THEN 0
	                  WHEN CAST(goal_logs.completed_steps AS BIGINT) + $8 > $9 THEN $10
	                  ELSE goal_logs.completed_steps + $11
	              END,
	              updated_at = excluded.updated_at`

	delta = min(max(delta, -model.MaxSteps), model.MaxSteps)

	return r.upsert(ctx, goalID, day, func(ctx context.Context) error {
		now := time.Now().UTC()
		_, err := r.db.ExecContext(ctx, query,
			uuid.New().String(), goalID, day, clampSteps(delta), now, now,
			int64(delta), int64(delta), int64(model.MaxSteps), model.MaxSteps, delta,
		)
		return err
	})
}

func clampSteps(steps int) int {
	return min(max(steps, 0), model.MaxSteps)
}

// upsert runs stmt, replaying it when the database reports a uniqueness
// conflict or a busy lock. Both resolve to an update on the next attempt.
// The stored row is read back afterwards.
func (r *goalLogRepository) upsert(ctx context.Context, goalID, day string, stmt func(ctx context.Context) error) (*model.GoalLog, error) {
	err := retry.Do(ctx, r.backoff(), func(ctx context.Context) error {
		err := stmt(ctx)
		if isRetryable(err) {
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	return r.ByGoalAndDate(ctx, goalID, day)
}

func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	// Works for both SQLite and PostgreSQL
	errStr := err.Error()
	return strings.Contains(errStr, "UNIQUE constraint failed") ||
		strings.Contains(errStr, "duplicate key value") ||
		strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "SQLITE_BUSY")
}

package model

import (
	"time"
)

// GoalLog is the completion counter of a goal for one calendar day.
// There is at most one per (GoalID, Date).
type GoalLog struct {
	ID             string    `db:"id" json:"id"`
	GoalID         string    `db:"goal_id" json:"goalId"`
	Date           string    `db:"log_date" json:"date"` // YYYY-MM-DD
	CompletedSteps int       `db:"completed_steps" json:"completedSteps"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}

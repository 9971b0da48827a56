package model

import (
	"math"
	"time"
)

const (
	GoalTypeDaily    = "DAILY"
	GoalTypePunctual = "PUNCTUAL"
)

// MaxSteps bounds step counts so they fit a 32-bit INTEGER column on every backend.
const MaxSteps = math.MaxInt32

type Goal struct {
	ID         string    `db:"id" json:"id"`
	UserID     string    `db:"user_id" json:"-"`
	Title      string    `db:"title" json:"title"`
	Type       string    `db:"type" json:"type"`
	TotalSteps int       `db:"total_steps" json:"totalSteps"`
	TargetDate *string   `db:"target_date" json:"targetDate"` // YYYY-MM-DD, PUNCTUAL only
	Time       *string   `db:"time_of_day" json:"time"`       // HH:MM, display only
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`

	// Stored in goal_days_of_week. Empty means every day. DAILY only.
	DaysOfWeek []string `db:"-" json:"daysOfWeek"`
}

func (g *Goal) IsDaily() bool {
	return g.Type == GoalTypeDaily
}

func (g *Goal) IsPunctual() bool {
	return g.Type == GoalTypePunctual
}

// DueGoal is a goal scheduled on a given day together with that day's progress.
type DueGoal struct {
	Goal
	CompletedSteps int `json:"completedSteps"`
}

func (d *DueGoal) IsComplete() bool {
	return d.CompletedSteps >= d.TotalSteps
}

package model

import "time"

// Export is a full snapshot of a user's goals and their progress history.
type Export struct {
	UserID     string       `json:"userId"`
	ExportedAt time.Time    `json:"exportedAt"`
	Goals      []ExportGoal `json:"goals"`
}

type ExportGoal struct {
	Goal
	Logs []*GoalLog `json:"logs"`
}

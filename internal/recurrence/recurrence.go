// Package recurrence decides whether a goal is scheduled on a given day.
package recurrence

import (
	"slices"
	"time"

	"github.com/templui/taskflow/internal/dates"
	"github.com/templui/taskflow/internal/model"
)

// IsScheduledOn reports whether goal occurs on the calendar day of t.
//
// PUNCTUAL goals occur on their target date only. DAILY goals occur on
// every listed weekday, or on every day when none are listed. Unknown
// types never occur.
func IsScheduledOn(goal *model.Goal, t time.Time) bool {
	switch goal.Type {
	case model.GoalTypePunctual:
		return goal.TargetDate != nil && *goal.TargetDate == dates.Key(t)
	case model.GoalTypeDaily:
		return len(goal.DaysOfWeek) == 0 || slices.Contains(goal.DaysOfWeek, dates.Weekday(t))
	default:
		return false
	}
}

// Filter returns the goals scheduled on the day of t, keeping their order.
func Filter(goals []*model.Goal, t time.Time) []*model.Goal {
	scheduled := make([]*model.Goal, 0, len(goals))
	for _, goal := range goals {
		if IsScheduledOn(goal, t) {
			scheduled = append(scheduled, goal)
		}
	}
	return scheduled
}

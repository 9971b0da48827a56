package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/templui/taskflow/internal/dates"
	"github.com/templui/taskflow/internal/model"
	"github.com/templui/taskflow/internal/recurrence"
	"github.com/templui/taskflow/internal/repository"
	"github.com/templui/taskflow/internal/validation"
)

// ErrValidation matches every input error of the goal service.
var ErrValidation = errors.New("validation failed")

var (
	ErrTitleRequired      = newValidationError("title is required")
	ErrInvalidGoalType    = newValidationError("type must be DAILY or PUNCTUAL")
	ErrInvalidTotalSteps  = newValidationError("total steps must be at least 1")
	ErrTargetDateRequired = newValidationError("target date is required for punctual goals")
	ErrInvalidDate        = newValidationError("date must be YYYY-MM-DD")
	ErrInvalidDayOfWeek   = newValidationError("invalid day of week")
	ErrInvalidTime        = newValidationError("time must be HH:MM")
	ErrInvalidProgress    = newValidationError("provide exactly one of stepDelta or completedSteps")
	ErrTooManySteps       = newValidationError(fmt.Sprintf("steps must not exceed %d", model.MaxSteps))
)

type validationError struct {
	msg string
}

func newValidationError(msg string) error {
	return &validationError{msg: msg}
}

func (e *validationError) Error() string {
	return e.msg
}

func (e *validationError) Is(target error) bool {
	return target == ErrValidation
}

// GoalInput is the data needed to create a goal.
type GoalInput struct {
	Title      string
	Type       string
	TotalSteps int
	TargetDate *string
	Time       *string
	DaysOfWeek []string
}

// GoalPatch holds the fields to change on a goal; nil fields are left as they are.
// A non-nil DaysOfWeek replaces the whole day set.
type GoalPatch struct {
	Title      *string
	Type       *string
	TotalSteps *int
	TargetDate *string
	Time       *string
	DaysOfWeek *[]string
}

// ProgressChange carries either a signed Delta or an absolute Steps value.
type ProgressChange struct {
	Delta *int
	Steps *int
}

type GoalService struct {
	repo    repository.GoalRepository
	logRepo repository.GoalLogRepository
}

func NewGoalService(repo repository.GoalRepository, logRepo repository.GoalLogRepository) *GoalService {
	return &GoalService{
		repo:    repo,
		logRepo: logRepo,
	}
}

func (s *GoalService) Create(ctx context.Context, userID string, input GoalInput) (*model.Goal, error) {
	now := time.Now().UTC()
	goal := &model.Goal{
		ID:         uuid.New().String(),
		UserID:     userID,
		Title:      input.Title,
		Type:       input.Type,
		TotalSteps: input.TotalSteps,
		TargetDate: input.TargetDate,
		Time:       input.Time,
		DaysOfWeek: input.DaysOfWeek,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := normalizeGoal(goal)
	if err != nil {
		return nil, err
	}

	err = s.repo.Create(ctx, goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	slog.Info("goal created", "user_id", userID, "goal_id", goal.ID, "type", goal.Type)
	return goal, nil
}

func (s *GoalService) ByID(ctx context.Context, userID, goalID string) (*model.Goal, error) {
	return s.repo.ByID(ctx, userID, goalID)
}

func (s *GoalService) Goals(ctx context.Context, userID, sortBy string) ([]*model.Goal, error) {
	return s.repo.Goals(ctx, userID, sortBy)
}

// DueGoals returns the goals scheduled on the calendar day of day, each with
// the steps completed that day. It never writes.
func (s *GoalService) DueGoals(ctx context.Context, userID string, day time.Time, sortBy string) ([]*model.DueGoal, error) {
	goals, err := s.repo.Goals(ctx, userID, sortBy)
	if err != nil {
		return nil, fmt.Errorf("failed to load goals: %w", err)
	}

	key := dates.Key(day)
	scheduled := recurrence.Filter(goals, day)

	due := make([]*model.DueGoal, 0, len(scheduled))
	for _, goal := range scheduled {
		steps, err := s.logRepo.CompletedSteps(ctx, goal.ID, key)
		if err != nil {
			return nil, fmt.Errorf("failed to load progress: %w", err)
		}
		due = append(due, &model.DueGoal{Goal: *goal, CompletedSteps: steps})
	}

	return due, nil
}

// ApplyProgress records progress for the calendar day of day. Goals that do
// not exist or belong to another user are reported as ErrGoalNotFound.
func (s *GoalService) ApplyProgress(ctx context.Context, userID, goalID string, day time.Time, change ProgressChange) (*model.GoalLog, error) {
	if (change.Delta == nil) == (change.Steps == nil) {
		return nil, ErrInvalidProgress
	}
	if change.Steps != nil && *change.Steps > model.MaxSteps {
		return nil, ErrTooManySteps
	}
	if change.Delta != nil && (*change.Delta > model.MaxSteps || *change.Delta < -model.MaxSteps) {
		return nil, ErrTooManySteps
	}

	_, err := s.repo.ByID(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	key := dates.Key(day)

	var log *model.GoalLog
	if change.Steps != nil {
		log, err = s.logRepo.Set(ctx, goalID, key, *change.Steps)
	} else {
		log, err = s.logRepo.Add(ctx, goalID, key, *change.Delta)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to record progress: %w", err)
	}

	slog.Debug("progress recorded", "user_id", userID, "goal_id", goalID, "date", key, "completed_steps", log.CompletedSteps)
	return log, nil
}

func (s *GoalService) Update(ctx context.Context, userID, goalID string, patch GoalPatch) (*model.Goal, error) {
	// Verify ownership
	goal, err := s.repo.ByID(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		goal.Title = *patch.Title
	}
	if patch.Type != nil {
		goal.Type = *patch.Type
	}
	if patch.TotalSteps != nil {
		goal.TotalSteps = *patch.TotalSteps
	}
	if patch.TargetDate != nil {
		goal.TargetDate = patch.TargetDate
	}
	if patch.Time != nil {
		goal.Time = patch.Time
	}
	if patch.DaysOfWeek != nil {
		goal.DaysOfWeek = *patch.DaysOfWeek
	}

	err = normalizeGoal(goal)
	if err != nil {
		return nil, err
	}

	goal.UpdatedAt = time.Now().UTC()

	err = s.repo.Update(ctx, goal)
	if err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	return goal, nil
}

func (s *GoalService) Delete(ctx context.Context, userID, goalID string) error {
	err := s.repo.Delete(ctx, userID, goalID)
	if err != nil {
		return err
	}

	slog.Info("goal deleted", "user_id", userID, "goal_id", goalID)
	return nil
}

// normalizeGoal validates goal in place and clears the field that does not
// apply to its type.
func normalizeGoal(goal *model.Goal) error {
	goal.Title = strings.TrimSpace(goal.Title)
	if goal.Title == "" {
		return ErrTitleRequired
	}
	err := validation.ValidateTitle(goal.Title)
	if err != nil {
		return newValidationError(err.Error())
	}

	goal.Type = strings.ToUpper(strings.TrimSpace(goal.Type))

	if goal.TotalSteps < 1 {
		return ErrInvalidTotalSteps
	}
	if goal.TotalSteps > model.MaxSteps {
		return ErrTooManySteps
	}

	if goal.Time != nil {
		if strings.TrimSpace(*goal.Time) == "" {
			goal.Time = nil
		} else {
			t, err := dates.NormalizeTime(*goal.Time)
			if err != nil {
				return ErrInvalidTime
			}
			goal.Time = &t
		}
	}

	switch goal.Type {
	case model.GoalTypePunctual:
		if goal.TargetDate == nil || strings.TrimSpace(*goal.TargetDate) == "" {
			return ErrTargetDateRequired
		}
		d, err := dates.NormalizeDate(*goal.TargetDate)
		if err != nil {
			return ErrInvalidDate
		}
		goal.TargetDate = &d
		goal.DaysOfWeek = []string{}

	case model.GoalTypeDaily:
		days, err := dates.NormalizeWeekdays(goal.DaysOfWeek)
		if err != nil {
			return ErrInvalidDayOfWeek
		}
		goal.DaysOfWeek = days
		goal.TargetDate = nil

	default:
		return ErrInvalidGoalType
	}

	return nil
}

package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/templui/taskflow/internal/ctxkeys"
	"github.com/templui/taskflow/internal/dates"
	"github.com/templui/taskflow/internal/model"
	"github.com/templui/taskflow/internal/repository"
	"github.com/templui/taskflow/internal/service"
)

type GoalHandler struct {
	goalService *service.GoalService
	loc         *time.Location
}

// NewGoalHandler returns a handler that resolves "today" in loc.
func NewGoalHandler(goalService *service.GoalService, loc *time.Location) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
		loc:         loc,
	}
}

type goalRequest struct {
	Title      string   `json:"title"`
	Type       string   `json:"type"`
	TotalSteps *int     `json:"totalSteps"`
	TargetDate *string  `json:"targetDate"`
	Time       *string  `json:"time"`
	DaysOfWeek []string `json:"daysOfWeek"`
}

type goalPatchRequest struct {
	Title      *string   `json:"title"`
	Type       *string   `json:"type"`
	TotalSteps *int      `json:"totalSteps"`
	TargetDate *string   `json:"targetDate"`
	Time       *string   `json:"time"`
	DaysOfWeek *[]string `json:"daysOfWeek"`
}

type progressRequest struct {
	StepDelta      *int `json:"stepDelta"`
	CompletedSteps *int `json:"completedSteps"`
}

// DueGoals lists the goals scheduled on ?date= (default today) with that day's progress.
func (h *GoalHandler) DueGoals(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	day, err := h.day(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	goals, err := h.goalService.DueGoals(r.Context(), user.ID, day, sortParam(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, goals)
}

func (h *GoalHandler) Goals(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	goals, err := h.goalService.Goals(r.Context(), user.ID, sortParam(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	if goals == nil {
		goals = []*model.Goal{}
	}
	writeJSON(w, http.StatusOK, goals)
}

func (h *GoalHandler) Goal(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	goal, err := h.goalService.ByID(r.Context(), user.ID, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req goalRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	input := service.GoalInput{
		Title:      req.Title,
		Type:       req.Type,
		TotalSteps: 1,
		TargetDate: req.TargetDate,
		Time:       req.Time,
		DaysOfWeek: req.DaysOfWeek,
	}
	if req.TotalSteps != nil {
		input.TotalSteps = *req.TotalSteps
	}

	goal, err := h.goalService.Create(r.Context(), user.ID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, goal)
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req goalPatchRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	goal, err := h.goalService.Update(r.Context(), user.ID, r.PathValue("id"), service.GoalPatch{
		Title:      req.Title,
		Type:       req.Type,
		TotalSteps: req.TotalSteps,
		TargetDate: req.TargetDate,
		Time:       req.Time,
		DaysOfWeek: req.DaysOfWeek,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.goalService.Delete(r.Context(), user.ID, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Log applies progress to the goal on ?date= (default today).
func (h *GoalHandler) Log(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	day, err := h.day(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req progressRequest
	err = decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log, err := h.goalService.ApplyProgress(r.Context(), user.ID, r.PathValue("id"), day, service.ProgressChange{
		Delta: req.StepDelta,
		Steps: req.CompletedSteps,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, log)
}

func (h *GoalHandler) day(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("date")
	if strings.TrimSpace(raw) == "" {
		return dates.Today(h.loc), nil
	}

	day, err := dates.Parse(raw)
	if err != nil {
		return time.Time{}, service.ErrInvalidDate
	}
	return day, nil
}

func sortParam(r *http.Request) string {
	switch sortBy := r.URL.Query().Get("sort"); sortBy {
	case repository.GoalSortTime, repository.GoalSortTitle:
		return sortBy
	default:
		return repository.GoalSortCreated
	}
}

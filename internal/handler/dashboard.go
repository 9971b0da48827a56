package handler

import (
	"net/http"
	"time"

	"github.com/templui/taskflow/internal/ctxkeys"
	"github.com/templui/taskflow/internal/dates"
	"github.com/templui/taskflow/internal/model"
	"github.com/templui/taskflow/internal/repository"
	"github.com/templui/taskflow/internal/service"
)

type DashboardHandler struct {
	goalService *service.GoalService
	loc         *time.Location
}

func NewDashboardHandler(goalService *service.GoalService, loc *time.Location) *DashboardHandler {
	return &DashboardHandler{
		goalService: goalService,
		loc:         loc,
	}
}

type todayResponse struct {
	Date      string           `json:"date"`
	Completed int              `json:"completed"`
	Total     int              `json:"total"`
	Goals     []*model.DueGoal `json:"goals"`
}

// Today summarises the current day in the server's timezone, ordered by time of day.
func (h *DashboardHandler) Today(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	today := dates.Today(h.loc)

	goals, err := h.goalService.DueGoals(r.Context(), user.ID, today, repository.GoalSortTime)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := todayResponse{
		Date:  dates.Key(today),
		Total: len(goals),
		Goals: goals,
	}
	for _, g := range goals {
		if g.IsComplete() {
			resp.Completed++
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

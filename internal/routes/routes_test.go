package routes_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/taskflow/internal/app"
	"github.com/templui/taskflow/internal/config"
	"github.com/templui/taskflow/internal/dates"
	"github.com/templui/taskflow/internal/db/dbtest"
	"github.com/templui/taskflow/internal/routes"
)

const password = "correct-horse-battery"

type goalJSON struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Type           string   `json:"type"`
	TotalSteps     int      `json:"totalSteps"`
	TargetDate     *string  `json:"targetDate"`
	Time           *string  `json:"time"`
	DaysOfWeek     []string `json:"daysOfWeek"`
	CompletedSteps int      `json:"completedSteps"`
}

type logJSON struct {
	GoalID         string `json:"goalId"`
	Date           string `json:"date"`
	CompletedSteps int    `json:"completedSteps"`
}

func newServer(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{
		AppName:   "Taskflow",
		AppEnv:    "development",
		AppURL:    "http://localhost:8090",
		Timezone:  "UTC",
		JWTSecret: "secret",
		JWTExpiry: time.Hour,
	}
	a := app.NewWithDB(cfg, dbtest.New(t), nil)
	t.Cleanup(func() { _ = a.Close() })
	return routes.SetupRoutes(a)
}

func do(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func signUp(t *testing.T, h http.Handler, email string) string {
	t.Helper()

	rec := do(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": email, "password": password, "name": "Tester",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	login := decode[struct {
		Token string `json:"token"`
		Type  string `json:"type"`
	}](t, rec)
	require.Equal(t, "Bearer", login.Type)
	require.NotEmpty(t, login.Token)
	return login.Token
}

func TestHealth(t *testing.T) {
	h := newServer(t)

	rec := do(t, h, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestAuthFlow(t *testing.T) {
	h := newServer(t)

	rec := do(t, h, http.MethodGet, "/api/goals", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := signUp(t, h, "ana@example.com")

	rec = do(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "ana@example.com", "password": password, "name": "Again",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ana@example.com", "password": "not-the-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[map[string]any](t, rec)
	assert.Equal(t, "ana@example.com", me["email"])
	assert.NotContains(t, me, "passwordHash")

	rec = do(t, h, http.MethodGet, "/api/me", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGoalLifecycle(t *testing.T) {
	h := newServer(t)
	token := signUp(t, h, "ana@example.com")

	rec := do(t, h, http.MethodPost, "/api/goals", token, map[string]any{
		"title": "Drink water", "type": "DAILY", "totalSteps": 8,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	water := decode[goalJSON](t, rec)
	assert.Equal(t, []string{}, water.DaysOfWeek)

	rec = do(t, h, http.MethodPost, "/api/goals", token, map[string]any{
		"title": "Dentist", "type": "PUNCTUAL",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"target date is required for punctual goals"}`, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/goals", token, map[string]any{
		"title": "Gym", "type": "DAILY", "daysOfWeek": []string{"MONDAY"}, "time": "18:00",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	gym := decode[goalJSON](t, rec)
	assert.Equal(t, 1, gym.TotalSteps, "total steps default to 1")

	for range 3 {
		rec = do(t, h, http.MethodPost, "/api/goals/"+water.ID+"/log?date=2024-03-15", token, map[string]int{"stepDelta": 1})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}
	log := decode[logJSON](t, rec)
	assert.Equal(t, 3, log.CompletedSteps)
	assert.Equal(t, "2024-03-15", log.Date)
	assert.Equal(t, water.ID, log.GoalID)

	rec = do(t, h, http.MethodPost, "/api/goals/"+water.ID+"/log?date=2024-03-15", token, map[string]int{"stepDelta": 1, "completedSteps": 2})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/goals/"+water.ID+"/log?date=15-03-2024", token, map[string]int{"stepDelta": 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// 2024-03-15 is a Friday: the Monday gym goal is not due
	rec = do(t, h, http.MethodGet, "/api/goals?date=2024-03-15", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	due := decode[[]goalJSON](t, rec)
	require.Len(t, due, 1)
	assert.Equal(t, "Drink water", due[0].Title)
	assert.Equal(t, 3, due[0].CompletedSteps)

	rec = do(t, h, http.MethodGet, "/api/goals?date=2024-03-18&sort=time", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	due = decode[[]goalJSON](t, rec)
	require.Len(t, due, 2)
	assert.Equal(t, "Gym", due[0].Title, "goals with a time come first")
	assert.Zero(t, due[1].CompletedSteps)

	rec = do(t, h, http.MethodPut, "/api/goals/"+gym.ID, token, map[string]any{"daysOfWeek": []string{"friday"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []string{"FRIDAY"}, decode[goalJSON](t, rec).DaysOfWeek)

	rec = do(t, h, http.MethodGet, "/api/goals/"+gym.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"FRIDAY"}, decode[goalJSON](t, rec).DaysOfWeek)

	rec = do(t, h, http.MethodGet, "/api/goals/all?sort=title", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	all := decode[[]goalJSON](t, rec)
	require.Len(t, all, 2)
	assert.Equal(t, "Drink water", all[0].Title)

	rec = do(t, h, http.MethodDelete, "/api/goals/"+water.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/goals/"+water.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"goal not found"}`, rec.Body.String())

	rec = do(t, h, http.MethodDelete, "/api/goals/"+water.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOwnershipIsolation(t *testing.T) {
	h := newServer(t)
	ana := signUp(t, h, "ana@example.com")
	bob := signUp(t, h, "bob@example.com")

	rec := do(t, h, http.MethodPost, "/api/goals", ana, map[string]any{"title": "Private", "type": "DAILY"})
	require.Equal(t, http.StatusCreated, rec.Code)
	goal := decode[goalJSON](t, rec)

	for _, tc := range []struct {
		method, path string
		body         any
	}{
		{http.MethodGet, "/api/goals/" + goal.ID, nil},
		{http.MethodPut, "/api/goals/" + goal.ID, map[string]any{"title": "mine"}},
		{http.MethodPost, "/api/goals/" + goal.ID + "/log", map[string]int{"stepDelta": 1}},
		{http.MethodDelete, "/api/goals/" + goal.ID, nil},
	} {
		rec := do(t, h, tc.method, tc.path, bob, tc.body)
		assert.Equal(t, http.StatusNotFound, rec.Code, tc.method+" "+tc.path)
	}

	rec = do(t, h, http.MethodGet, "/api/goals/all", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/goals/"+goal.ID, ana, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Private", decode[goalJSON](t, rec).Title)
}

func TestTodayAndExport(t *testing.T) {
	h := newServer(t)
	token := signUp(t, h, "ana@example.com")

	rec := do(t, h, http.MethodPost, "/api/goals", token, map[string]any{"title": "Stretch", "type": "DAILY", "totalSteps": 2})
	require.Equal(t, http.StatusCreated, rec.Code)
	goal := decode[goalJSON](t, rec)

	rec = do(t, h, http.MethodPost, "/api/goals/"+goal.ID+"/log", token, map[string]int{"completedSteps": 2})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, dates.Key(dates.Today(time.UTC)), decode[logJSON](t, rec).Date, "missing date means today")

	rec = do(t, h, http.MethodGet, "/api/today", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	today := decode[struct {
		Date      string     `json:"date"`
		Completed int        `json:"completed"`
		Total     int        `json:"total"`
		Goals     []goalJSON `json:"goals"`
	}](t, rec)
	assert.Equal(t, 1, today.Total)
	assert.Equal(t, 1, today.Completed)

	rec = do(t, h, http.MethodGet, "/api/goals/export", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	export := decode[struct {
		Goals []struct {
			Title string    `json:"title"`
			Logs  []logJSON `json:"logs"`
		} `json:"goals"`
	}](t, rec)
	require.Len(t, export.Goals, 1)
	require.Len(t, export.Goals[0].Logs, 1)
	assert.Equal(t, 2, export.Goals[0].Logs[0].CompletedSteps)
}

func TestMalformedBody(t *testing.T) {
	h := newServer(t)
	token := signUp(t, h, "ana@example.com")

	req := httptest.NewRequest(http.MethodPost, "/api/goals", bytes.NewBufferString("{not json"))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

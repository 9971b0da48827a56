package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/taskflow/internal/db"
	"github.com/templui/taskflow/internal/model"
	"github.com/templui/taskflow/internal/repository"
	"github.com/templui/taskflow/internal/service"
	"github.com/templui/taskflow/internal/validation"
)

// Env carries what the commands share. The database is opened on first use.
type Env struct {
	Driver   string
	Open     func() (*sqlx.DB, error)
	Location *time.Location
	Email    *service.EmailService

	db *sqlx.DB
}

func (e *Env) DB() (*sqlx.DB, error) {
	if e.db != nil {
		return e.db, nil
	}

	database, err := e.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	e.db = database
	return database, nil
}

func (e *Env) Close() error {
	if e.db == nil {
		return nil
	}
	database := e.db
	e.db = nil
	return db.Close(database)
}

func (e *Env) goalService() (*service.GoalService, error) {
	database, err := e.DB()
	if err != nil {
		return nil, err
	}
	return service.NewGoalService(
		repository.NewGoalRepository(database),
		repository.NewGoalLogRepository(database),
	), nil
}

// user resolves --user, which accepts either an id or an email address.
func (e *Env) user(ctx context.Context, ref string) (*model.User, error) {
	database, err := e.DB()
	if err != nil {
		return nil, err
	}

	users := repository.NewUserRepository(database)
	if strings.Contains(ref, "@") {
		email, err := validation.NormalizeEmail(ref)
		if err != nil {
			return nil, fmt.Errorf("invalid --user %q: %w", ref, err)
		}
		return users.ByEmail(ctx, email)
	}
	return users.ByID(ctx, strings.TrimSpace(ref))
}

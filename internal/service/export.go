package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/templui/taskflow/internal/model"
	"github.com/templui/taskflow/internal/repository"
	"github.com/templui/taskflow/internal/storage"
)

var ErrStorageDisabled = errors.New("export storage is not configured")

type ExportService struct {
	goalRepo repository.GoalRepository
	logRepo  repository.GoalLogRepository
	storage  storage.Storage
}

// NewExportService builds the export service. store may be nil, in which
// case only inline snapshots are available.
func NewExportService(goalRepo repository.GoalRepository, logRepo repository.GoalLogRepository, store storage.Storage) *ExportService {
	return &ExportService{
		goalRepo: goalRepo,
		logRepo:  logRepo,
		storage:  store,
	}
}

func (s *ExportService) StorageEnabled() bool {
	return s.storage != nil
}

// Snapshot collects every goal of the user with its full log history.
func (s *ExportService) Snapshot(ctx context.Context, userID string) (*model.Export, error) {
	goals, err := s.goalRepo.Goals(ctx, userID, repository.GoalSortCreated)
	if err != nil {
		return nil, fmt.Errorf("failed to load goals: %w", err)
	}

	export := &model.Export{
		UserID:     userID,
		ExportedAt: time.Now().UTC(),
		Goals:      make([]model.ExportGoal, 0, len(goals)),
	}

	for _, goal := range goals {
		logs, err := s.logRepo.ByGoal(ctx, goal.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load logs for goal %s: %w", goal.ID, err)
		}
		if logs == nil {
			logs = []*model.GoalLog{}
		}
		export.Goals = append(export.Goals, model.ExportGoal{Goal: *goal, Logs: logs})
	}

	return export, nil
}

// Publish uploads a snapshot to storage and returns a temporary download link.
func (s *ExportService) Publish(ctx context.Context, userID string) (string, error) {
	if s.storage == nil {
		return "", ErrStorageDisabled
	}

	export, err := s.Snapshot(ctx, userID)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode export: %w", err)
	}

	key := exportKey(userID, export.ExportedAt)

	err = s.storage.Save(ctx, key, bytes.NewReader(data), "application/json")
	if err != nil {
		return "", fmt.Errorf("failed to save export: %w", err)
	}

	url, err := s.storage.URL(ctx, key)
	if err != nil {
		return "", fmt.Errorf("failed to sign export url: %w", err)
	}

	slog.Info("export published", "user_id", userID, "key", key, "goals", len(export.Goals))
	return url, nil
}

// exportKey is unique per call: exports/<user>/<timestamp>-<random>.json.
func exportKey(userID string, at time.Time) string {
	name := at.UTC().Format("20060102T150405.000000000Z") + "-" + uuid.NewString()[:8] + ".json"
	return path.Join("exports", userID, name)
}

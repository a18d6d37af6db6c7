package activity

import (
	"log/slog"

	apperrors "github.com/tracksure/tracksure/internal"
	"github.com/tracksure/tracksure/internal/auth"
)

const defaultListLimit = 100

type Service struct {
	repo   RepositoryAPI
	guard  PermissionGuardAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, guard PermissionGuardAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, guard: guard, logger: logger}
}

func (s *Service) List(actorID, tenantID int64, limit int) ([]ActivityLog, error) {
	if _, err := s.guard.CheckPermission(actorID, tenantID, auth.PermActivityRead); err != nil {
		return nil, err
	}

	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}

	logs, err := s.repo.ListByTenant(tenantID, limit)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list activity logs", err)
	}
	return logs, nil
}

package tenant

import (
	"log/slog"

	apperrors "github.com/tracksure/tracksure/internal"
	"github.com/tracksure/tracksure/internal/auth"
)

type Service struct {
	repo   RepositoryAPI
	guard  PermissionGuardAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, guard PermissionGuardAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, guard: guard, logger: logger}
}

func (s *Service) Get(tenantID int64) (*Tenant, error) {
	t, err := s.repo.GetByID(tenantID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load tenant", err)
	}
	if t == nil {
		return nil, apperrors.NewNotFoundError("Tenant not found", apperrors.ErrCodeTenantNotFound)
	}
	return t, nil
}

func (s *Service) Update(userID, tenantID int64, dto UpdateTenantDTO) (*Tenant, error) {
	if _, err := s.guard.CheckPermission(userID, tenantID, auth.PermTenantUpdate); err != nil {
		return nil, err
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	t, err := s.repo.Update(tenantID, dto)
	if err != nil {
		if appErr, ok := apperrors.IsAppError(err); ok {
			return nil, appErr
		}
		return nil, apperrors.NewInternalError("failed to update tenant", err)
	}
	if t == nil {
		return nil, apperrors.NewNotFoundError("Tenant not found", apperrors.ErrCodeTenantNotFound)
	}

	s.logger.Info("tenant updated", "tenant_id", tenantID, "user_id", userID)
	return t, nil
}

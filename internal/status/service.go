package status

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

func (s *Service) List(actorID, tenantID int64) ([]ProductStatus, error) {
	if _, err := s.guard.CheckPermission(actorID, tenantID, auth.PermStatusRead); err != nil {
		return nil, err
	}

	statuses, err := s.repo.List(tenantID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list statuses", err)
	}
	return statuses, nil
}

func (s *Service) Create(actorID, tenantID int64, dto StatusDTO) (*ProductStatus, error) {
	if _, err := s.guard.CheckPermission(actorID, tenantID, auth.PermStatusCreate); err != nil {
		return nil, err
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(tenantID, dto)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to create status", err)
	}

	s.logger.Info("status created", "tenant_id", tenantID, "status_id", created.ID)
	return created, nil
}

func (s *Service) Update(actorID, tenantID, statusID int64, dto StatusDTO) (*ProductStatus, error) {
	if _, err := s.guard.CheckPermission(actorID, tenantID, auth.PermStatusUpdate); err != nil {
		return nil, err
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, deleted, err := s.repo.GetByID(tenantID, statusID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load status", err)
	}
	if existing == nil || deleted {
		return nil, apperrors.NewNotFoundError("Status not found", apperrors.ErrCodeStatusNotFound)
	}

	updated, err := s.repo.Update(tenantID, statusID, dto)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to update status", err)
	}
	return updated, nil
}

func (s *Service) Delete(actorID, tenantID, statusID int64) error {
	if _, err := s.guard.CheckPermission(actorID, tenantID, auth.PermStatusDelete); err != nil {
		return err
	}

	existing, deleted, err := s.repo.GetByID(tenantID, statusID)
	if err != nil {
		return apperrors.NewInternalError("failed to load status", err)
	}
	if existing == nil {
		return apperrors.NewNotFoundError("Status not found", apperrors.ErrCodeStatusNotFound)
	}
	if deleted {
		return apperrors.NewConflictError("Status already deleted", apperrors.ErrCodeAlreadyDeleted)
	}

	if err := s.repo.SoftDelete(tenantID, statusID); err != nil {
		return apperrors.NewInternalError("failed to delete status", err)
	}

	s.logger.Info("status deleted", "tenant_id", tenantID, "status_id", statusID)
	return nil
}

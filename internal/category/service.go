package category

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

func (s *Service) List(actorID, tenantID int64) ([]Category, error) {
	if _, err := s.guard.CheckPermission(actorID, tenantID, auth.PermCategoryRead); err != nil {
		return nil, err
	}

	categories, err := s.repo.List(tenantID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list categories", err)
	}
	return categories, nil
}

func (s *Service) Create(actorID, tenantID int64, dto CategoryDTO) (*Category, error) {
	if _, err := s.guard.CheckPermission(actorID, tenantID, auth.PermCategoryCreate); err != nil {
		return nil, err
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(tenantID, dto)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to create category", err)
	}

	s.logger.Info("category created", "tenant_id", tenantID, "category_id", created.ID)
	return created, nil
}

func (s *Service) Update(actorID, tenantID, categoryID int64, dto CategoryDTO) (*Category, error) {
	if _, err := s.guard.CheckPermission(actorID, tenantID, auth.PermCategoryUpdate); err != nil {
		return nil, err
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, deleted, err := s.repo.GetByID(tenantID, categoryID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load category", err)
	}
	if existing == nil || deleted {
		return nil, apperrors.NewNotFoundError("Category not found", apperrors.ErrCodeCategoryNotFound)
	}

	updated, err := s.repo.Update(tenantID, categoryID, dto)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to update category", err)
	}
	return updated, nil
}

// Delete soft-deletes once; a second delete of the same row is an error, not
// a no-op.
func (s *Service) Delete(actorID, tenantID, categoryID int64) error {
	if _, err := s.guard.CheckPermission(actorID, tenantID, auth.PermCategoryDelete); err != nil {
		return err
	}

	existing, deleted, err := s.repo.GetByID(tenantID, categoryID)
	if err != nil {
		return apperrors.NewInternalError("failed to load category", err)
	}
	if existing == nil {
		return apperrors.NewNotFoundError("Category not found", apperrors.ErrCodeCategoryNotFound)
	}
	if deleted {
		return apperrors.NewConflictError("Category already deleted", apperrors.ErrCodeAlreadyDeleted)
	}

	if err := s.repo.SoftDelete(tenantID, categoryID); err != nil {
		return apperrors.NewInternalError("failed to delete category", err)
	}

	s.logger.Info("category deleted", "tenant_id", tenantID, "category_id", categoryID)
	return nil
}

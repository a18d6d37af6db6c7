package product

import (
	"context"
	"fmt"
	"log/slog"

	apperrors "github.com/tracksure/tracksure/internal"
	"github.com/tracksure/tracksure/internal/auth"
	"github.com/tracksure/tracksure/internal/core/events"
)

type EventPublisherAPI interface {
	Publish(ctx context.Context, event events.Event) error
}

type Service struct {
	repo   RepositoryAPI
	guard  PermissionGuardAPI
	bus    EventPublisherAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, guard PermissionGuardAPI, bus EventPublisherAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, guard: guard, bus: bus, logger: logger}
}

func (s *Service) List(actorID, tenantID int64) ([]Product, error) {
	if _, err := s.guard.CheckPermission(actorID, tenantID, auth.PermProductRead); err != nil {
		return nil, err
	}

	products, err := s.repo.List(tenantID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list products", err)
	}
	return products, nil
}

func (s *Service) Get(actorID, tenantID, productID int64) (*Product, error) {
	if _, err := s.guard.CheckPermission(actorID, tenantID, auth.PermProductRead); err != nil {
		return nil, err
	}

	p, deleted, err := s.repo.GetByID(tenantID, productID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load product", err)
	}
	if p == nil || deleted {
		return nil, apperrors.NewNotFoundError("Product not found", apperrors.ErrCodeProductNotFound)
	}
	return p, nil
}

func (s *Service) Create(actorID, tenantID int64, dto CreateProductDTO) (*Product, error) {
	if _, err := s.guard.CheckPermission(actorID, tenantID, auth.PermProductCreate); err != nil {
		return nil, err
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	for _, userID := range []int64{dto.ManufacturerID, dto.CurrentOwnerID} {
		exists, err := s.repo.UserExists(tenantID, userID)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to verify user", err)
		}
		if !exists {
			return nil, apperrors.NewNotFoundError("User not found", apperrors.ErrCodeUserNotFound)
		}
	}

	created, err := s.repo.Create(tenantID, dto)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to create product", err)
	}

	ctx := context.Background()
	s.bus.Publish(ctx, events.NewProductCreatedEvent(
		tenantID, actorID, created.ID, created.Name, created.CurrentOwnerID, created.ManufacturerID))
	s.bus.Publish(ctx, events.NewAuditEvent(
		tenantID, actorID, "create", "product", created.ID,
		fmt.Sprintf("created product %q", created.Name)))

	s.logger.Info("product created", "tenant_id", tenantID, "product_id", created.ID)
	return created, nil
}

func (s *Service) Update(actorID, tenantID, productID int64, dto UpdateProductDTO) (*Product, error) {
	if _, err := s.guard.CheckPermission(actorID, tenantID, auth.PermProductUpdate); err != nil {
		return nil, err
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, deleted, err := s.repo.GetByID(tenantID, productID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load product", err)
	}
	if existing == nil || deleted {
		return nil, apperrors.NewNotFoundError("Product not found", apperrors.ErrCodeProductNotFound)
	}

	if dto.CurrentOwnerID != nil {
		exists, err := s.repo.UserExists(tenantID, *dto.CurrentOwnerID)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to verify user", err)
		}
		if !exists {
			return nil, apperrors.NewNotFoundError("User not found", apperrors.ErrCodeUserNotFound)
		}
	}

	updated, err := s.repo.Update(tenantID, productID, dto)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to update product", err)
	}

	ctx := context.Background()
	if dto.CurrentOwnerID != nil && *dto.CurrentOwnerID != existing.CurrentOwnerID {
		s.bus.Publish(ctx, events.NewOwnershipChangedEvent(
			tenantID, actorID, *dto.CurrentOwnerID, []int64{productID}))
	}
	s.bus.Publish(ctx, events.NewProductUpdatedEvent(
		tenantID, actorID, updated.ID, updated.Name, updated.CurrentOwnerID))
	s.bus.Publish(ctx, events.NewAuditEvent(
		tenantID, actorID, "update", "product", updated.ID,
		fmt.Sprintf("updated product %q", updated.Name)))

	return updated, nil
}

// BulkUpdate applies one change set to many products. When ownership moves,
// the whole batch produces a single grouped event for the new owner.
func (s *Service) BulkUpdate(actorID, tenantID int64, dto BulkUpdateRequestDTO) error {
	if _, err := s.guard.CheckPermission(actorID, tenantID, auth.PermProductUpdate); err != nil {
		return err
	}

	if err := dto.Validate(); err != nil {
		return err
	}

	count, err := s.repo.CountByIDs(tenantID, dto.ProductIDs)
	if err != nil {
		return apperrors.NewInternalError("failed to verify products", err)
	}
	if count != int64(len(dto.ProductIDs)) {
		return apperrors.NewNotFoundError("Product not found", apperrors.ErrCodeProductNotFound)
	}

	if dto.CurrentOwnerID != nil {
		exists, err := s.repo.UserExists(tenantID, *dto.CurrentOwnerID)
		if err != nil {
			return apperrors.NewInternalError("failed to verify user", err)
		}
		if !exists {
			return apperrors.NewNotFoundError("User not found", apperrors.ErrCodeUserNotFound)
		}
	}

	err = s.repo.BulkUpdate(tenantID, dto.ProductIDs, BulkUpdateDTO{
		CurrentOwnerID: dto.CurrentOwnerID,
		StatusID:       dto.StatusID,
		CategoryID:     dto.CategoryID,
	})
	if err != nil {
		return apperrors.NewInternalError("failed to bulk update products", err)
	}

	ctx := context.Background()
	if dto.CurrentOwnerID != nil {
		s.bus.Publish(ctx, events.NewOwnershipChangedEvent(
			tenantID, actorID, *dto.CurrentOwnerID, dto.ProductIDs))
	}
	s.bus.Publish(ctx, events.NewAuditEvent(
		tenantID, actorID, "bulk_update", "product", 0,
		fmt.Sprintf("bulk updated %d products", len(dto.ProductIDs))))

	s.logger.Info("products bulk updated",
		"tenant_id", tenantID,
		"count", len(dto.ProductIDs))
	return nil
}

func (s *Service) Delete(actorID, tenantID, productID int64) error {
	if _, err := s.guard.CheckPermission(actorID, tenantID, auth.PermProductDelete); err != nil {
		return err
	}

	existing, deleted, err := s.repo.GetByID(tenantID, productID)
	if err != nil {
		return apperrors.NewInternalError("failed to load product", err)
	}
	if existing == nil {
		return apperrors.NewNotFoundError("Product not found", apperrors.ErrCodeProductNotFound)
	}
	if deleted {
		return apperrors.NewConflictError("Product already deleted", apperrors.ErrCodeAlreadyDeleted)
	}

	if err := s.repo.SoftDelete(tenantID, productID); err != nil {
		return apperrors.NewInternalError("failed to delete product", err)
	}

	s.bus.Publish(context.Background(), events.NewAuditEvent(
		tenantID, actorID, "delete", "product", productID,
		fmt.Sprintf("deleted product %q", existing.Name)))
	return nil
}

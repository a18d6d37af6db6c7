package user

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/tracksure/tracksure/internal"
	"github.com/tracksure/tracksure/internal/auth"
)

type Service struct {
	repo       RepositoryAPI
	guard      PermissionGuardAPI
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, guard PermissionGuardAPI, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{repo: repo, guard: guard, bcryptCost: bcryptCost, logger: logger}
}

func (s *Service) ListUsers(actorID, tenantID int64) ([]User, error) {
	if _, err := s.guard.CheckPermission(actorID, tenantID, auth.PermUserRead); err != nil {
		return nil, err
	}

	users, err := s.repo.ListUsers(tenantID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list users", err)
	}
	return users, nil
}

func (s *Service) CreateUser(actorID, tenantID int64, dto CreateUserDTO) (*User, error) {
	if _, err := s.guard.CheckPermission(actorID, tenantID, auth.PermUserCreate); err != nil {
		return nil, err
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	role, err := s.repo.GetRole(tenantID, dto.RoleID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load role", err)
	}
	if role == nil {
		return nil, apperrors.NewNotFoundError("Role not found", apperrors.ErrCodeRoleNotFound)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to hash password", err)
	}

	created, err := s.repo.CreateUser(tenantID, dto, string(hash))
	if err != nil {
		if appErr, ok := apperrors.IsAppError(err); ok {
			return nil, appErr
		}
		return nil, apperrors.NewInternalError("failed to create user", err)
	}

	s.logger.Info("user created", "tenant_id", tenantID, "user_id", created.ID, "actor_id", actorID)
	return created, nil
}

func (s *Service) UpdateUser(actorID, tenantID, userID int64, dto UpdateUserDTO) (*User, error) {
	if _, err := s.guard.CheckPermission(actorID, tenantID, auth.PermUserUpdate); err != nil {
		return nil, err
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if dto.RoleID != nil {
		role, err := s.repo.GetRole(tenantID, *dto.RoleID)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to load role", err)
		}
		if role == nil {
			return nil, apperrors.NewNotFoundError("Role not found", apperrors.ErrCodeRoleNotFound)
		}
	}

	updated, err := s.repo.UpdateUser(tenantID, userID, dto)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to update user", err)
	}
	if updated == nil {
		return nil, apperrors.NewNotFoundError("User not found", apperrors.ErrCodeUserNotFound)
	}
	return updated, nil
}

func (s *Service) DeleteUser(actorID, tenantID, userID int64) error {
	if _, err := s.guard.CheckPermission(actorID, tenantID, auth.PermUserDelete); err != nil {
		return err
	}

	existing, err := s.repo.GetUser(tenantID, userID)
	if err != nil {
		return apperrors.NewInternalError("failed to load user", err)
	}
	if existing == nil {
		return apperrors.NewNotFoundError("User not found", apperrors.ErrCodeUserNotFound)
	}

	if err := s.repo.SoftDeleteUser(tenantID, userID); err != nil {
		return apperrors.NewInternalError("failed to delete user", err)
	}

	s.logger.Info("user deleted", "tenant_id", tenantID, "user_id", userID, "actor_id", actorID)
	return nil
}

func (s *Service) ListRoles(actorID, tenantID int64) ([]Role, error) {
	if _, err := s.guard.CheckPermission(actorID, tenantID, auth.PermRoleRead); err != nil {
		return nil, err
	}

	roles, err := s.repo.ListRoles(tenantID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list roles", err)
	}
	return roles, nil
}

func (s *Service) CreateRole(actorID, tenantID int64, dto RoleDTO) (*Role, error) {
	if _, err := s.guard.CheckPermission(actorID, tenantID, auth.PermRoleCreate); err != nil {
		return nil, err
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if err := validatePermissions(dto.Permissions); err != nil {
		return nil, err
	}

	taken, err := s.repo.RoleNameExists(tenantID, dto.Name, 0)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to check role name", err)
	}
	if taken {
		return nil, apperrors.NewConflictError(
			fmt.Sprintf("Role %q already exists", dto.Name), apperrors.ErrCodeDuplicateName)
	}

	permissionsJSON, err := json.Marshal(dto.Permissions)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode permissions", err)
	}

	role, err := s.repo.CreateRole(tenantID, dto.Name, string(permissionsJSON))
	if err != nil {
		return nil, apperrors.NewInternalError("failed to create role", err)
	}
	return role, nil
}

func (s *Service) UpdateRole(actorID, tenantID, roleID int64, dto RoleDTO) (*Role, error) {
	if _, err := s.guard.CheckPermission(actorID, tenantID, auth.PermRoleUpdate); err != nil {
		return nil, err
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if err := validatePermissions(dto.Permissions); err != nil {
		return nil, err
	}

	taken, err := s.repo.RoleNameExists(tenantID, dto.Name, roleID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to check role name", err)
	}
	if taken {
		return nil, apperrors.NewConflictError(
			fmt.Sprintf("Role %q already exists", dto.Name), apperrors.ErrCodeDuplicateName)
	}

	permissionsJSON, err := json.Marshal(dto.Permissions)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode permissions", err)
	}

	encoded := string(permissionsJSON)
	role, err := s.repo.UpdateRole(tenantID, roleID, &dto.Name, &encoded)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to update role", err)
	}
	if role == nil {
		return nil, apperrors.NewNotFoundError("Role not found", apperrors.ErrCodeRoleNotFound)
	}
	return role, nil
}

func (s *Service) DeleteRole(actorID, tenantID, roleID int64) error {
	if _, err := s.guard.CheckPermission(actorID, tenantID, auth.PermRoleDelete); err != nil {
		return err
	}

	role, err := s.repo.GetRole(tenantID, roleID)
	if err != nil {
		return apperrors.NewInternalError("failed to load role", err)
	}
	if role == nil {
		return apperrors.NewNotFoundError("Role not found", apperrors.ErrCodeRoleNotFound)
	}

	if err := s.repo.SoftDeleteRole(tenantID, roleID); err != nil {
		return apperrors.NewInternalError("failed to delete role", err)
	}
	return nil
}

func validatePermissions(permissions []string) *apperrors.AppError {
	known := make(map[string]struct{}, len(auth.DefaultPermissions))
	for _, p := range auth.DefaultPermissions {
		known[p] = struct{}{}
	}
	for _, p := range permissions {
		if _, ok := known[p]; !ok {
			return apperrors.NewValidationFieldError("permissions",
				fmt.Sprintf("unknown permission %q", p), apperrors.ErrCodeValidationFailed)
		}
	}
	return nil
}

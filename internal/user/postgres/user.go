package postgres

import (
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/tracksure/tracksure/internal"
	tenantmodel "github.com/tracksure/tracksure/internal/core/datamodel/tenant"
	usermodel "github.com/tracksure/tracksure/internal/core/datamodel/user"
	domain "github.com/tracksure/tracksure/internal/user"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) ListUsers(tenantID int64) ([]domain.User, error) {
	var rows []usermodel.User
	err := r.db.Where("tenant_id = ? AND is_deleted = ?", tenantID, false).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	roleNames, err := r.roleNames(tenantID)
	if err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(rows))
	for i := range rows {
		u := toDomainUser(&rows[i])
		u.RoleName = roleNames[rows[i].RoleID]
		users = append(users, *u)
	}
	return users, nil
}

func (r *UserRepository) GetUser(tenantID, userID int64) (*domain.User, error) {
	var row usermodel.User
	err := r.db.Where("id = ? AND tenant_id = ? AND is_deleted = ?", userID, tenantID, false).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toDomainUser(&row), nil
}

func (r *UserRepository) CreateUser(tenantID int64, dto domain.CreateUserDTO, passwordHash string) (*domain.User, error) {
	row := usermodel.User{
		TenantID:     tenantID,
		RoleID:       dto.RoleID,
		Name:         dto.Name,
		Email:        dto.Email,
		PasswordHash: passwordHash,
	}
	if err := r.db.Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.NewConflictError("Email is already registered", apperrors.ErrCodeEmailTaken)
		}
		return nil, err
	}
	return toDomainUser(&row), nil
}

func (r *UserRepository) UpdateUser(tenantID, userID int64, dto domain.UpdateUserDTO) (*domain.User, error) {
	updates := map[string]interface{}{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.RoleID != nil {
		updates["role_id"] = *dto.RoleID
	}
	if dto.AvatarURL != nil {
		updates["avatar_url"] = *dto.AvatarURL
	}

	if len(updates) > 0 {
		result := r.db.Model(&usermodel.User{}).
			Where("id = ? AND tenant_id = ? AND is_deleted = ?", userID, tenantID, false).
			Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, nil
		}
	}

	return r.GetUser(tenantID, userID)
}

func (r *UserRepository) SoftDeleteUser(tenantID, userID int64) error {
	return r.db.Model(&usermodel.User{}).
		Where("id = ? AND tenant_id = ?", userID, tenantID).
		Update("is_deleted", true).Error
}

func (r *UserRepository) ListRoles(tenantID int64) ([]domain.Role, error) {
	var rows []tenantmodel.Role
	err := r.db.Where("tenant_id = ? AND is_deleted = ?", tenantID, false).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	roles := make([]domain.Role, 0, len(rows))
	for i := range rows {
		role, err := toDomainRole(&rows[i])
		if err != nil {
			return nil, err
		}
		roles = append(roles, *role)
	}
	return roles, nil
}

func (r *UserRepository) GetRole(tenantID, roleID int64) (*domain.Role, error) {
	var row tenantmodel.Role
	err := r.db.Where("id = ? AND tenant_id = ? AND is_deleted = ?", roleID, tenantID, false).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toDomainRole(&row)
}

func (r *UserRepository) RoleNameExists(tenantID int64, name string, excludeID int64) (bool, error) {
	query := r.db.Model(&tenantmodel.Role{}).
		Where("tenant_id = ? AND name = ? AND is_deleted = ?", tenantID, name, false)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *UserRepository) CreateRole(tenantID int64, name string, permissionsJSON string) (*domain.Role, error) {
	row := tenantmodel.Role{
		TenantID:    tenantID,
		Name:        name,
		Permissions: permissionsJSON,
	}
	if err := r.db.Create(&row).Error; err != nil {
		return nil, err
	}
	return toDomainRole(&row)
}

func (r *UserRepository) UpdateRole(tenantID, roleID int64, name *string, permissionsJSON *string) (*domain.Role, error) {
	updates := map[string]interface{}{}
	if name != nil {
		updates["name"] = *name
	}
	if permissionsJSON != nil {
		updates["permissions"] = *permissionsJSON
	}

	if len(updates) > 0 {
		result := r.db.Model(&tenantmodel.Role{}).
			Where("id = ? AND tenant_id = ? AND is_deleted = ?", roleID, tenantID, false).
			Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, nil
		}
	}

	return r.GetRole(tenantID, roleID)
}

func (r *UserRepository) SoftDeleteRole(tenantID, roleID int64) error {
	return r.db.Model(&tenantmodel.Role{}).
		Where("id = ? AND tenant_id = ?", roleID, tenantID).
		Update("is_deleted", true).Error
}

func (r *UserRepository) roleNames(tenantID int64) (map[int64]string, error) {
	var rows []tenantmodel.Role
	if err := r.db.Select("id", "name").Where("tenant_id = ?", tenantID).Find(&rows).Error; err != nil {
		return nil, err
	}

	names := make(map[int64]string, len(rows))
	for i := range rows {
		names[rows[i].ID] = rows[i].Name
	}
	return names, nil
}

func toDomainUser(row *usermodel.User) *domain.User {
	return &domain.User{
		ID:            row.ID,
		TenantID:      row.TenantID,
		RoleID:        row.RoleID,
		Email:         row.Email,
		Name:          row.Name,
		AvatarURL:     row.AvatarURL,
		EmailVerified: row.EmailVerified,
	}
}

func toDomainRole(row *tenantmodel.Role) (*domain.Role, error) {
	role := &domain.Role{
		ID:       row.ID,
		TenantID: row.TenantID,
		Name:     row.Name,
	}
	if row.Permissions != "" {
		if err := json.Unmarshal([]byte(row.Permissions), &role.Permissions); err != nil {
			return nil, err
		}
	}
	return role, nil
}

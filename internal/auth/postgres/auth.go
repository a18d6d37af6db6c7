package postgres

import (
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/tracksure/tracksure/internal"
	"github.com/tracksure/tracksure/internal/auth"
	tenantmodel "github.com/tracksure/tracksure/internal/core/datamodel/tenant"
	usermodel "github.com/tracksure/tracksure/internal/core/datamodel/user"
)

type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) *AuthRepository {
	return &AuthRepository{db: db}
}

func (r *AuthRepository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&usermodel.User{}).
		Where("email = ? AND is_deleted = ?", email, false).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AuthRepository) GetCredentials(email string) (*auth.User, string, error) {
	var row usermodel.User
	err := r.db.Where("email = ? AND is_deleted = ?", email, false).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", err
	}

	user, err := r.toAuthUser(&row)
	if err != nil {
		return nil, "", err
	}
	return user, row.PasswordHash, nil
}

// GetUserWithRole returns nil, nil when the user does not exist or is
// deleted; the guard treats that as a tenant scope failure.
func (r *AuthRepository) GetUserWithRole(userID int64) (*auth.User, error) {
	var row usermodel.User
	err := r.db.Where("id = ? AND is_deleted = ?", userID, false).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.toAuthUser(&row)
}

func (r *AuthRepository) toAuthUser(row *usermodel.User) (*auth.User, error) {
	user := &auth.User{
		ID:            row.ID,
		TenantID:      row.TenantID,
		RoleID:        row.RoleID,
		Email:         row.Email,
		Name:          row.Name,
		EmailVerified: row.EmailVerified,
	}

	var role tenantmodel.Role
	err := r.db.Where("id = ? AND is_deleted = ?", row.RoleID, false).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user, nil
	}
	if err != nil {
		return nil, err
	}

	user.RoleName = role.Name
	if role.Permissions != "" {
		if err := json.Unmarshal([]byte(role.Permissions), &user.Permissions); err != nil {
			return nil, err
		}
	}
	return user, nil
}

// CreateTenantWithAdmin inserts the tenant, its admin role and the first user
// in a single transaction.
func (r *AuthRepository) CreateTenantWithAdmin(brandName, roleName, permissionsJSON, email, userName, passwordHash string) (*auth.User, error) {
	var created usermodel.User
	var role tenantmodel.Role

	err := r.db.Transaction(func(tx *gorm.DB) error {
		tenant := tenantmodel.Tenant{BrandName: brandName}
		if err := tx.Create(&tenant).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.NewConflictError("Brand name is already taken", apperrors.ErrCodeDuplicateName)
			}
			return err
		}

		role = tenantmodel.Role{
			TenantID:    tenant.ID,
			Name:        roleName,
			Permissions: permissionsJSON,
		}
		if err := tx.Create(&role).Error; err != nil {
			return err
		}

		created = usermodel.User{
			TenantID:     tenant.ID,
			RoleID:       role.ID,
			Name:         userName,
			Email:        email,
			PasswordHash: passwordHash,
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		return nil, err
	}

	var permissions []string
	if err := json.Unmarshal([]byte(permissionsJSON), &permissions); err != nil {
		return nil, err
	}

	return &auth.User{
		ID:            created.ID,
		TenantID:      created.TenantID,
		RoleID:        created.RoleID,
		RoleName:      role.Name,
		Email:         created.Email,
		Name:          created.Name,
		EmailVerified: created.EmailVerified,
		Permissions:   permissions,
	}, nil
}

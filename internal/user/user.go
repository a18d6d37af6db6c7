package user

import "github.com/tracksure/tracksure/internal/auth"

type User struct {
	ID            int64  `json:"id"`
	TenantID      int64  `json:"tenant_id"`
	RoleID        int64  `json:"role_id"`
	RoleName      string `json:"role_name,omitempty"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	AvatarURL     string `json:"avatar_url,omitempty"`
	EmailVerified bool   `json:"email_verified"`
}

type Role struct {
	ID          int64    `json:"id"`
	TenantID    int64    `json:"tenant_id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

type RepositoryAPI interface {
	ListUsers(tenantID int64) ([]User, error)
	GetUser(tenantID, userID int64) (*User, error)
	CreateUser(tenantID int64, dto CreateUserDTO, passwordHash string) (*User, error)
	UpdateUser(tenantID, userID int64, dto UpdateUserDTO) (*User, error)
	SoftDeleteUser(tenantID, userID int64) error

	ListRoles(tenantID int64) ([]Role, error)
	GetRole(tenantID, roleID int64) (*Role, error)
	RoleNameExists(tenantID int64, name string, excludeID int64) (bool, error)
	CreateRole(tenantID int64, name string, permissionsJSON string) (*Role, error)
	UpdateRole(tenantID, roleID int64, name *string, permissionsJSON *string) (*Role, error)
	SoftDeleteRole(tenantID, roleID int64) error
}

type PermissionGuardAPI interface {
	CheckPermission(userID, tenantID int64, permission string) (*auth.User, error)
}

type ServiceAPI interface {
	ListUsers(actorID, tenantID int64) ([]User, error)
	CreateUser(actorID, tenantID int64, dto CreateUserDTO) (*User, error)
	UpdateUser(actorID, tenantID, userID int64, dto UpdateUserDTO) (*User, error)
	DeleteUser(actorID, tenantID, userID int64) error

	ListRoles(actorID, tenantID int64) ([]Role, error)
	CreateRole(actorID, tenantID int64, dto RoleDTO) (*Role, error)
	UpdateRole(actorID, tenantID, roleID int64, dto RoleDTO) (*Role, error)
	DeleteRole(actorID, tenantID, roleID int64) error
}

package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// HeaderJWT is the canonical auth header. The platform never used the
// standard Authorization bearer scheme; this custom header is the contract
// the frontend ships with.
const HeaderJWT = "X-Jwt-Bearer"

// Permission vocabulary. Roles hold a subset of these; the signup admin role
// gets all of them.
const (
	PermProductCreate  = "PRODUCT_CREATE"
	PermProductRead    = "PRODUCT_READ"
	PermProductUpdate  = "PRODUCT_UPDATE"
	PermProductDelete  = "PRODUCT_DELETE"
	PermCategoryCreate = "CATEGORY_CREATE"
	PermCategoryRead   = "CATEGORY_READ"
	PermCategoryUpdate = "CATEGORY_UPDATE"
	PermCategoryDelete = "CATEGORY_DELETE"
	PermStatusCreate   = "STATUS_CREATE"
	PermStatusRead     = "STATUS_READ"
	PermStatusUpdate   = "STATUS_UPDATE"
	PermStatusDelete   = "STATUS_DELETE"
	PermDocumentCreate = "DOCUMENT_CREATE"
	PermDocumentRead   = "DOCUMENT_READ"
	PermDocumentUpdate = "DOCUMENT_UPDATE"
	PermDocumentDelete = "DOCUMENT_DELETE"
	PermQRCodeCreate   = "QRCODE_CREATE"
	PermQRCodeRead     = "QRCODE_READ"
	PermUserCreate     = "USER_CREATE"
	PermUserRead       = "USER_READ"
	PermUserUpdate     = "USER_UPDATE"
	PermUserDelete     = "USER_DELETE"
	PermRoleCreate     = "ROLE_CREATE"
	PermRoleRead       = "ROLE_READ"
	PermRoleUpdate     = "ROLE_UPDATE"
	PermRoleDelete     = "ROLE_DELETE"
	PermTenantUpdate   = "TENANT_UPDATE"
	PermActivityRead   = "ACTIVITY_READ"
	PermDashboardRead  = "DASHBOARD_READ"
)

// DefaultPermissions is the full fixed list granted to the tenant admin role
// created at signup.
var DefaultPermissions = []string{
	PermProductCreate, PermProductRead, PermProductUpdate, PermProductDelete,
	PermCategoryCreate, PermCategoryRead, PermCategoryUpdate, PermCategoryDelete,
	PermStatusCreate, PermStatusRead, PermStatusUpdate, PermStatusDelete,
	PermDocumentCreate, PermDocumentRead, PermDocumentUpdate, PermDocumentDelete,
	PermQRCodeCreate, PermQRCodeRead,
	PermUserCreate, PermUserRead, PermUserUpdate, PermUserDelete,
	PermRoleCreate, PermRoleRead, PermRoleUpdate, PermRoleDelete,
	PermTenantUpdate, PermActivityRead, PermDashboardRead,
}

// User is the authenticated view of a user: identity plus the permission
// strings resolved from its role.
type User struct {
	ID            int64    `json:"id"`
	TenantID      int64    `json:"tenant_id"`
	RoleID        int64    `json:"role_id"`
	RoleName      string   `json:"role_name"`
	Email         string   `json:"email"`
	Name          string   `json:"name"`
	EmailVerified bool     `json:"email_verified"`
	Permissions   []string `json:"permissions,omitempty"`
}

func (u *User) HasPermission(permission string) bool {
	for _, p := range u.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// Claims mirror the wire contract: {id, tenant_id, email, email_verified}.
type Claims struct {
	UserID        int64  `json:"id"`
	TenantID      int64  `json:"tenant_id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	jwt.RegisteredClaims
}

type ServiceAPI interface {
	Signup(dto SignupDTO) (*SignupResult, error)
	Authenticate(dto LoginDTO) (*AuthResult, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	CurrentUser(userID int64) (*User, error)
}

type TokenGeneratorAPI interface {
	GenerateToken(user *User) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type RepositoryAPI interface {
	EmailExists(email string) (bool, error)
	GetCredentials(email string) (user *User, passwordHash string, err error)
	GetUserWithRole(userID int64) (*User, error)
	CreateTenantWithAdmin(brandName, roleName, permissionsJSON, email, userName, passwordHash string) (*User, error)
}

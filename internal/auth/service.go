package auth

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/tracksure/tracksure/internal"
)

type Service struct {
	repo       RepositoryAPI
	tokens     TokenGeneratorAPI
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, tokens TokenGeneratorAPI, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Signup provisions a brand in one shot: the tenant, an admin role named
// "<username>-admin" holding every permission, and the first user bound to
// that role. All three rows commit or none do.
func (s *Service) Signup(dto SignupDTO) (*SignupResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	taken, err := s.repo.EmailExists(dto.Email)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to check email availability", err)
	}
	if taken {
		return nil, apperrors.NewConflictError("Email is already registered", apperrors.ErrCodeEmailTaken)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to hash password", err)
	}

	permissionsJSON, err := json.Marshal(DefaultPermissions)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode permissions", err)
	}

	roleName := fmt.Sprintf("%s-admin", dto.Username)
	user, err := s.repo.CreateTenantWithAdmin(dto.Username, roleName, string(permissionsJSON), dto.Email, dto.Username, string(hash))
	if err != nil {
		if appErr, ok := apperrors.IsAppError(err); ok {
			return nil, appErr
		}
		return nil, apperrors.NewInternalError("failed to create tenant", err)
	}

	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to generate token", err)
	}

	s.logger.Info("tenant signed up",
		"tenant_id", user.TenantID,
		"user_id", user.ID)

	return &SignupResult{Token: token, User: user}, nil
}

// Authenticate returns the same error for unknown emails and wrong passwords
// so callers cannot probe which addresses exist.
func (s *Service) Authenticate(dto LoginDTO) (*AuthResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	user, hash, err := s.repo.GetCredentials(dto.Email)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load credentials", err)
	}
	if user == nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(dto.Password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to generate token", err)
	}

	return &AuthResult{Token: token, User: user}, nil
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokens.ValidateToken(tokenString)
}

func (s *Service) CurrentUser(userID int64) (*User, error) {
	user, err := s.repo.GetUserWithRole(userID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load user", err)
	}
	if user == nil {
		return nil, apperrors.NewNotFoundError("User not found", apperrors.ErrCodeUserNotFound)
	}
	return user, nil
}

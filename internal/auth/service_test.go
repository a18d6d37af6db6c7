package auth_test

import (
	"encoding/json"
	"io"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	internal "github.com/tracksure/tracksure/internal"
	"github.com/tracksure/tracksure/internal/auth"
)

type mockAuthRepo struct {
	emailTaken   bool
	credUser     *auth.User
	credHash     string
	users        map[int64]*auth.User
	createdBrand string
	createdRole  string
	createdPerms string
}

func (m *mockAuthRepo) EmailExists(email string) (bool, error) {
	return m.emailTaken, nil
}

func (m *mockAuthRepo) GetCredentials(email string) (*auth.User, string, error) {
	return m.credUser, m.credHash, nil
}

func (m *mockAuthRepo) GetUserWithRole(userID int64) (*auth.User, error) {
	return m.users[userID], nil
}

func (m *mockAuthRepo) CreateTenantWithAdmin(brandName, roleName, permissionsJSON, email, userName, passwordHash string) (*auth.User, error) {
	m.createdBrand = brandName
	m.createdRole = roleName
	m.createdPerms = permissionsJSON

	var perms []string
	if err := json.Unmarshal([]byte(permissionsJSON), &perms); err != nil {
		return nil, err
	}
	return &auth.User{
		ID:          1,
		TenantID:    1,
		RoleID:      1,
		RoleName:    roleName,
		Email:       email,
		Name:        userName,
		Permissions: perms,
	}, nil
}

type mockTokens struct {
	token string
}

func (m *mockTokens) GenerateToken(user *auth.User) (string, error) { return m.token, nil }
func (m *mockTokens) ValidateToken(tokenString string) (*auth.Claims, error) {
	return &auth.Claims{}, nil
}

var _ = Describe("Service", func() {
	var (
		repo    *mockAuthRepo
		service *auth.Service
	)

	BeforeEach(func() {
		repo = &mockAuthRepo{users: map[int64]*auth.User{}}
		service = auth.NewService(repo, &mockTokens{token: "signed"}, bcrypt.MinCost, slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	Describe("Signup", func() {
		It("creates a tenant with an admin role holding every permission", func() {
			result, err := service.Signup(auth.SignupDTO{
				Username: "acme",
				Email:    "owner@acme.test",
				Password: "correct-horse",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Token).To(Equal("signed"))
			Expect(repo.createdBrand).To(Equal("acme"))
			Expect(repo.createdRole).To(Equal("acme-admin"))

			var perms []string
			Expect(json.Unmarshal([]byte(repo.createdPerms), &perms)).To(Succeed())
			Expect(perms).To(ConsistOf(auth.DefaultPermissions))
		})

		It("rejects an email that is already registered", func() {
			repo.emailTaken = true

			_, err := service.Signup(auth.SignupDTO{
				Username: "acme",
				Email:    "owner@acme.test",
				Password: "correct-horse",
			})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeEmailTaken))
			Expect(appErr.StatusCode).To(Equal(409))
		})

		It("rejects a short password before touching the store", func() {
			_, err := service.Signup(auth.SignupDTO{
				Username: "acme",
				Email:    "owner@acme.test",
				Password: "short",
			})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeValidationFailed))
		})
	})

	Describe("Authenticate", func() {
		BeforeEach(func() {
			hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
			Expect(err).NotTo(HaveOccurred())
			repo.credUser = &auth.User{ID: 1, TenantID: 1, Email: "owner@acme.test"}
			repo.credHash = string(hash)
		})

		It("returns a token for valid credentials", func() {
			result, err := service.Authenticate(auth.LoginDTO{
				Email:    "owner@acme.test",
				Password: "correct-horse",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Token).To(Equal("signed"))
			Expect(result.User.ID).To(Equal(int64(1)))
		})

		It("uses the same error for a wrong password and an unknown email", func() {
			_, wrongPassword := service.Authenticate(auth.LoginDTO{
				Email:    "owner@acme.test",
				Password: "wrong",
			})

			repo.credUser = nil
			repo.credHash = ""
			_, unknownEmail := service.Authenticate(auth.LoginDTO{
				Email:    "ghost@acme.test",
				Password: "correct-horse",
			})

			Expect(wrongPassword).To(MatchError("Invalid email or password"))
			Expect(unknownEmail).To(MatchError("Invalid email or password"))
		})
	})
})

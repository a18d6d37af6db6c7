package auth_test

import (
	"errors"
	"io"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	internal "github.com/tracksure/tracksure/internal"
	"github.com/tracksure/tracksure/internal/auth"
)

type mockGuardRepo struct {
	users map[int64]*auth.User
	err   error
}

func (m *mockGuardRepo) GetUserWithRole(userID int64) (*auth.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.users[userID], nil
}

var _ = Describe("Guard", func() {
	var (
		repo  *mockGuardRepo
		guard *auth.Guard
	)

	BeforeEach(func() {
		repo = &mockGuardRepo{users: map[int64]*auth.User{
			1: {
				ID:          1,
				TenantID:    10,
				RoleName:    "acme-admin",
				Permissions: []string{auth.PermProductRead, auth.PermProductCreate},
			},
		}}
		guard = auth.NewGuard(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	Describe("CheckPermission", func() {
		It("returns the user when tenant and permission match", func() {
			user, err := guard.CheckPermission(1, 10, auth.PermProductRead)
			Expect(err).NotTo(HaveOccurred())
			Expect(user.ID).To(Equal(int64(1)))
		})

		It("rejects a user that does not exist", func() {
			_, err := guard.CheckPermission(99, 10, auth.PermProductRead)
			Expect(err).To(MatchError("Unauthorized tenant scope"))
		})

		It("rejects a user from another tenant", func() {
			_, err := guard.CheckPermission(1, 20, auth.PermProductRead)
			Expect(err).To(MatchError("Unauthorized tenant scope"))

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(403))
		})

		It("fails closed when the store errors", func() {
			repo.err = errors.New("connection reset")

			_, err := guard.CheckPermission(1, 10, auth.PermProductRead)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeTenantScope))
		})

		It("rejects a permission the role does not hold", func() {
			_, err := guard.CheckPermission(1, 10, auth.PermProductDelete)
			Expect(err).To(MatchError("Permission denied"))
		})
	})
})

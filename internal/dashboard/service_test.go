package dashboard_test

import (
	"errors"
	"io"
	"log/slog"
	"sync/atomic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	apperrors "github.com/tracksure/tracksure/internal"
	"github.com/tracksure/tracksure/internal/auth"
	"github.com/tracksure/tracksure/internal/dashboard"
)

type mockCounts struct {
	products, categories, statuses, users, documents, qrCodes, unread int64

	documentsErr error
	calls        atomic.Int64
}

func (m *mockCounts) CountProducts(tenantID int64) (int64, error) {
	m.calls.Add(1)
	return m.products, nil
}

func (m *mockCounts) CountCategories(tenantID int64) (int64, error) {
	m.calls.Add(1)
	return m.categories, nil
}

func (m *mockCounts) CountStatuses(tenantID int64) (int64, error) {
	m.calls.Add(1)
	return m.statuses, nil
}

func (m *mockCounts) CountUsers(tenantID int64) (int64, error) {
	m.calls.Add(1)
	return m.users, nil
}

func (m *mockCounts) CountDocuments(tenantID int64) (int64, error) {
	m.calls.Add(1)
	if m.documentsErr != nil {
		return 0, m.documentsErr
	}
	return m.documents, nil
}

func (m *mockCounts) CountQRCodes(tenantID int64) (int64, error) {
	m.calls.Add(1)
	return m.qrCodes, nil
}

func (m *mockCounts) CountUnreadNotifications(userID int64) (int64, error) {
	m.calls.Add(1)
	return m.unread, nil
}

type allowAllGuard struct{}

func (allowAllGuard) CheckPermission(userID, tenantID int64, permission string) (*auth.User, error) {
	return &auth.User{ID: userID, TenantID: tenantID}, nil
}

type denyGuard struct{}

func (denyGuard) CheckPermission(userID, tenantID int64, permission string) (*auth.User, error) {
	return nil, apperrors.ErrPermissionDenied
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ = Describe("Service", func() {
	It("assembles every counter into the summary", func() {
		repo := &mockCounts{products: 12, categories: 3, statuses: 4, users: 5, documents: 6, qrCodes: 7, unread: 2}
		service := dashboard.NewService(repo, allowAllGuard{}, discardLogger())

		summary, err := service.Summary(1, 10)
		Expect(err).NotTo(HaveOccurred())
		Expect(*summary).To(Equal(dashboard.Summary{
			Products:            12,
			Categories:          3,
			Statuses:            4,
			Users:               5,
			Documents:           6,
			QRCodes:             7,
			UnreadNotifications: 2,
		}))
		Expect(repo.calls.Load()).To(Equal(int64(7)))
	})

	It("fails the whole summary when any counter fails", func() {
		repo := &mockCounts{documentsErr: errors.New("connection refused")}
		service := dashboard.NewService(repo, allowAllGuard{}, discardLogger())

		_, err := service.Summary(1, 10)
		Expect(err).To(HaveOccurred())

		appErr, ok := apperrors.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.StatusCode).To(Equal(500))
	})

	It("requires dashboard permission", func() {
		service := dashboard.NewService(&mockCounts{}, denyGuard{}, discardLogger())

		_, err := service.Summary(1, 10)
		Expect(err).To(MatchError("Permission denied"))
	})
})

package category_test

import (
	"io"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	internal "github.com/tracksure/tracksure/internal"
	"github.com/tracksure/tracksure/internal/auth"
	"github.com/tracksure/tracksure/internal/category"
)

type mockCategoryRepo struct {
	rows    map[int64]*category.Category
	deleted map[int64]bool
	nextID  int64
}

func newMockCategoryRepo() *mockCategoryRepo {
	return &mockCategoryRepo{
		rows:    map[int64]*category.Category{},
		deleted: map[int64]bool{},
		nextID:  1,
	}
}

func (m *mockCategoryRepo) List(tenantID int64) ([]category.Category, error) {
	var out []category.Category
	for id, row := range m.rows {
		if row.TenantID == tenantID && !m.deleted[id] {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (m *mockCategoryRepo) GetByID(tenantID, categoryID int64) (*category.Category, bool, error) {
	row, ok := m.rows[categoryID]
	if !ok || row.TenantID != tenantID {
		return nil, false, nil
	}
	return row, m.deleted[categoryID], nil
}

func (m *mockCategoryRepo) Create(tenantID int64, dto category.CategoryDTO) (*category.Category, error) {
	row := &category.Category{ID: m.nextID, TenantID: tenantID, Name: dto.Name, Description: dto.Description}
	m.rows[m.nextID] = row
	m.nextID++
	return row, nil
}

func (m *mockCategoryRepo) Update(tenantID, categoryID int64, dto category.CategoryDTO) (*category.Category, error) {
	row := m.rows[categoryID]
	row.Name = dto.Name
	row.Description = dto.Description
	return row, nil
}

func (m *mockCategoryRepo) SoftDelete(tenantID, categoryID int64) error {
	m.deleted[categoryID] = true
	return nil
}

type allowAllGuard struct{}

func (allowAllGuard) CheckPermission(userID, tenantID int64, permission string) (*auth.User, error) {
	return &auth.User{ID: userID, TenantID: tenantID}, nil
}

type denyGuard struct{ err error }

func (g denyGuard) CheckPermission(userID, tenantID int64, permission string) (*auth.User, error) {
	return nil, g.err
}

var _ = Describe("Service", func() {
	var (
		repo    *mockCategoryRepo
		service *category.Service
	)

	BeforeEach(func() {
		repo = newMockCategoryRepo()
		service = category.NewService(repo, allowAllGuard{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	Describe("Delete", func() {
		It("soft-deletes once, then rejects the second delete", func() {
			created, err := service.Create(1, 10, category.CategoryDTO{Name: "Sneakers"})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Delete(1, 10, created.ID)).To(Succeed())

			err = service.Delete(1, 10, created.ID)
			Expect(err).To(MatchError("Category already deleted"))

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(409))
			Expect(appErr.Code).To(Equal(internal.ErrCodeAlreadyDeleted))
		})

		It("hides soft-deleted rows from listings", func() {
			created, err := service.Create(1, 10, category.CategoryDTO{Name: "Sneakers"})
			Expect(err).NotTo(HaveOccurred())
			Expect(service.Delete(1, 10, created.ID)).To(Succeed())

			listed, err := service.List(1, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(listed).To(BeEmpty())
		})

		It("returns not found for another tenant's category", func() {
			created, err := service.Create(1, 10, category.CategoryDTO{Name: "Sneakers"})
			Expect(err).NotTo(HaveOccurred())

			err = service.Delete(1, 20, created.ID)
			Expect(err).To(MatchError("Category not found"))
		})
	})

	Describe("permission gate", func() {
		It("propagates the guard's tenant scope rejection untouched", func() {
			service = category.NewService(repo, denyGuard{err: internal.ErrTenantScope}, slog.New(slog.NewTextHandler(io.Discard, nil)))

			_, err := service.List(1, 10)
			Expect(err).To(MatchError("Unauthorized tenant scope"))
		})
	})

	Describe("Create", func() {
		It("rejects an empty name", func() {
			_, err := service.Create(1, 10, category.CategoryDTO{})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(400))
		})
	})
})

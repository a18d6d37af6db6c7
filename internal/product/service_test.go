package product_test

import (
	"context"
	"io"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	internal "github.com/tracksure/tracksure/internal"
	"github.com/tracksure/tracksure/internal/auth"
	"github.com/tracksure/tracksure/internal/core/events"
	"github.com/tracksure/tracksure/internal/product"
)

type mockProductRepo struct {
	rows    map[int64]*product.Product
	deleted map[int64]bool
	users   map[int64]int64
	nextID  int64
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{
		rows:    map[int64]*product.Product{},
		deleted: map[int64]bool{},
		users:   map[int64]int64{},
		nextID:  1,
	}
}

func (m *mockProductRepo) List(tenantID int64) ([]product.Product, error) {
	var out []product.Product
	for id, row := range m.rows {
		if row.TenantID == tenantID && !m.deleted[id] {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (m *mockProductRepo) GetByID(tenantID, productID int64) (*product.Product, bool, error) {
	row, ok := m.rows[productID]
	if !ok || row.TenantID != tenantID {
		return nil, false, nil
	}
	return row, m.deleted[productID], nil
}

func (m *mockProductRepo) Create(tenantID int64, dto product.CreateProductDTO) (*product.Product, error) {
	row := &product.Product{
		ID:             m.nextID,
		TenantID:       tenantID,
		Name:           dto.Name,
		ManufacturerID: dto.ManufacturerID,
		CurrentOwnerID: dto.CurrentOwnerID,
		CategoryID:     dto.CategoryID,
		StatusID:       dto.StatusID,
	}
	m.rows[m.nextID] = row
	m.nextID++
	return row, nil
}

func (m *mockProductRepo) Update(tenantID, productID int64, dto product.UpdateProductDTO) (*product.Product, error) {
	row := m.rows[productID]
	if dto.Name != nil {
		row.Name = *dto.Name
	}
	if dto.CurrentOwnerID != nil {
		row.CurrentOwnerID = *dto.CurrentOwnerID
	}
	return row, nil
}

func (m *mockProductRepo) BulkUpdate(tenantID int64, productIDs []int64, dto product.BulkUpdateDTO) error {
	for _, id := range productIDs {
		if dto.CurrentOwnerID != nil {
			m.rows[id].CurrentOwnerID = *dto.CurrentOwnerID
		}
		if dto.StatusID != nil {
			m.rows[id].StatusID = dto.StatusID
		}
	}
	return nil
}

func (m *mockProductRepo) SoftDelete(tenantID, productID int64) error {
	m.deleted[productID] = true
	return nil
}

func (m *mockProductRepo) CountByIDs(tenantID int64, productIDs []int64) (int64, error) {
	var count int64
	for _, id := range productIDs {
		row, ok := m.rows[id]
		if ok && row.TenantID == tenantID && !m.deleted[id] {
			count++
		}
	}
	return count, nil
}

func (m *mockProductRepo) UserExists(tenantID, userID int64) (bool, error) {
	return m.users[userID] == tenantID, nil
}

type allowAllGuard struct{}

func (allowAllGuard) CheckPermission(userID, tenantID int64, permission string) (*auth.User, error) {
	return &auth.User{ID: userID, TenantID: tenantID}, nil
}

type recordingBus struct {
	published []events.Event
}

func (b *recordingBus) Publish(ctx context.Context, event events.Event) error {
	b.published = append(b.published, event)
	return nil
}

func (b *recordingBus) ownershipEvents() []*events.OwnershipChangedEvent {
	var out []*events.OwnershipChangedEvent
	for _, e := range b.published {
		if oe, ok := e.(*events.OwnershipChangedEvent); ok {
			out = append(out, oe)
		}
	}
	return out
}

var _ = Describe("Service", func() {
	var (
		repo    *mockProductRepo
		bus     *recordingBus
		service *product.Service
	)

	owner := func(id int64) *int64 { return &id }

	BeforeEach(func() {
		repo = newMockProductRepo()
		repo.users[5] = 10
		repo.users[6] = 10
		bus = &recordingBus{}
		service = product.NewService(repo, allowAllGuard{}, bus, slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	Describe("BulkUpdate", func() {
		var ids []int64

		BeforeEach(func() {
			ids = nil
			for i := 0; i < 3; i++ {
				p, err := service.Create(1, 10, product.CreateProductDTO{
					Name:           "Widget",
					ManufacturerID: 5,
					CurrentOwnerID: 5,
				})
				Expect(err).NotTo(HaveOccurred())
				ids = append(ids, p.ID)
			}
			bus.published = nil
		})

		It("publishes one grouped ownership event for the whole batch", func() {
			err := service.BulkUpdate(1, 10, product.BulkUpdateRequestDTO{
				ProductIDs:     ids,
				CurrentOwnerID: owner(6),
			})
			Expect(err).NotTo(HaveOccurred())

			ownership := bus.ownershipEvents()
			Expect(ownership).To(HaveLen(1))
			Expect(ownership[0].NewOwnerID).To(Equal(int64(6)))
			Expect(ownership[0].Count).To(Equal(3))
			Expect(ownership[0].ProductIDs).To(Equal(ids))
		})

		It("publishes no ownership event when only the status changes", func() {
			status := int64(2)
			err := service.BulkUpdate(1, 10, product.BulkUpdateRequestDTO{
				ProductIDs: ids,
				StatusID:   &status,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(bus.ownershipEvents()).To(BeEmpty())
		})

		It("rejects a batch containing another tenant's product", func() {
			foreign, err := service.Create(1, 10, product.CreateProductDTO{
				Name:           "Widget",
				ManufacturerID: 5,
				CurrentOwnerID: 5,
			})
			Expect(err).NotTo(HaveOccurred())
			repo.rows[foreign.ID].TenantID = 20

			err = service.BulkUpdate(1, 10, product.BulkUpdateRequestDTO{
				ProductIDs:     append(ids, foreign.ID),
				CurrentOwnerID: owner(6),
			})
			Expect(err).To(MatchError("Product not found"))
			Expect(bus.ownershipEvents()).To(BeEmpty())
		})

		It("rejects an empty change set", func() {
			err := service.BulkUpdate(1, 10, product.BulkUpdateRequestDTO{ProductIDs: ids})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(400))
		})
	})

	Describe("Update", func() {
		It("publishes an ownership event only when the owner actually changes", func() {
			p, err := service.Create(1, 10, product.CreateProductDTO{
				Name:           "Widget",
				ManufacturerID: 5,
				CurrentOwnerID: 5,
			})
			Expect(err).NotTo(HaveOccurred())
			bus.published = nil

			_, err = service.Update(1, 10, p.ID, product.UpdateProductDTO{CurrentOwnerID: owner(5)})
			Expect(err).NotTo(HaveOccurred())
			Expect(bus.ownershipEvents()).To(BeEmpty())

			_, err = service.Update(1, 10, p.ID, product.UpdateProductDTO{CurrentOwnerID: owner(6)})
			Expect(err).NotTo(HaveOccurred())
			Expect(bus.ownershipEvents()).To(HaveLen(1))
		})
	})

	Describe("Delete", func() {
		It("rejects deleting the same product twice", func() {
			p, err := service.Create(1, 10, product.CreateProductDTO{
				Name:           "Widget",
				ManufacturerID: 5,
				CurrentOwnerID: 5,
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Delete(1, 10, p.ID)).To(Succeed())
			Expect(service.Delete(1, 10, p.ID)).To(MatchError("Product already deleted"))
		})
	})
})

package qrcode_test

import (
	"context"
	"io"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	internal "github.com/tracksure/tracksure/internal"
	"github.com/tracksure/tracksure/internal/auth"
	"github.com/tracksure/tracksure/internal/qrcode"
	"github.com/tracksure/tracksure/internal/tenant"
)

type mockQRRepo struct {
	codes    map[string]*qrcode.QRCode
	product  *qrcode.ProductDetails
	products map[int64]int64
	nextID   int64
}

func newMockQRRepo() *mockQRRepo {
	return &mockQRRepo{codes: map[string]*qrcode.QRCode{}, products: map[int64]int64{}, nextID: 1}
}

func (m *mockQRRepo) ListByProduct(tenantID, productID int64) ([]qrcode.QRCode, error) {
	return nil, nil
}

func (m *mockQRRepo) ListByTenant(tenantID int64) ([]qrcode.QRCode, error) {
	return nil, nil
}

func (m *mockQRRepo) Create(code *qrcode.QRCode) error {
	code.ID = m.nextID
	m.nextID++
	m.codes[code.Token] = code
	return nil
}

func (m *mockQRRepo) ResolveToken(tenantID int64, token string) (*qrcode.QRCode, *qrcode.ProductDetails, error) {
	code, ok := m.codes[token]
	if !ok || m.product == nil || m.product.TenantID != tenantID {
		return nil, nil, nil
	}
	return code, m.product, nil
}

func (m *mockQRRepo) ProductExists(tenantID, productID int64) (bool, error) {
	return m.products[productID] == tenantID, nil
}

type mockUploader struct {
	uploads int
}

func (m *mockUploader) Upload(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	m.uploads++
	return "https://cdn.example/" + objectName, nil
}

type mockTenantReader struct{}

func (mockTenantReader) Get(tenantID int64) (*tenant.Tenant, error) {
	return &tenant.Tenant{ID: tenantID, BrandName: "Acme"}, nil
}

type allowAllGuard struct{}

func (allowAllGuard) CheckPermission(userID, tenantID int64, permission string) (*auth.User, error) {
	return &auth.User{ID: userID, TenantID: tenantID}, nil
}

var _ = Describe("Token", func() {
	It("is a unix-millisecond timestamp followed by a UUID", func() {
		token := qrcode.NewToken()
		Expect(token).To(MatchRegexp(`^\d{13}[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`))
	})

	It("never repeats", func() {
		seen := map[string]bool{}
		for i := 0; i < 100; i++ {
			token := qrcode.NewToken()
			Expect(seen[token]).To(BeFalse())
			seen[token] = true
		}
	})
})

var _ = Describe("ScanURL", func() {
	It("matches the frontend route shape exactly", func() {
		url := qrcode.ScanURL("https://app.example", 42, "abc123")
		Expect(url).To(Equal("https://app.example/scan/42/?token=abc123"))
	})
})

var _ = Describe("Service", func() {
	var (
		repo     *mockQRRepo
		uploader *mockUploader
		service  *qrcode.Service
	)

	viewer := func(id int64) *int64 { return &id }

	BeforeEach(func() {
		repo = newMockQRRepo()
		repo.products[7] = 10
		uploader = &mockUploader{}
		service = qrcode.NewService(repo, allowAllGuard{}, mockTenantReader{}, uploader,
			"https://app.example", slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	Describe("Create", func() {
		It("stores a rendered PNG and a resolvable token", func() {
			code, err := service.Create(1, 10, qrcode.CreateQRCodeDTO{
				ProductID:      7,
				Name:           "Batch 1",
				Details:        []string{qrcode.FieldProductName},
				ViewPermission: qrcode.PublicView,
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(uploader.uploads).To(Equal(1))
			Expect(code.Token).To(MatchRegexp(`^\d{13}`))
			Expect(code.ImageURL).To(HavePrefix("https://cdn.example/qrcodes/10/"))
		})

		It("rejects a product from another tenant", func() {
			_, err := service.Create(1, 20, qrcode.CreateQRCodeDTO{
				ProductID: 7,
				Name:      "Batch 1",
			})
			Expect(err).To(MatchError("Product not found"))
			Expect(uploader.uploads).To(BeZero())
		})

		It("rejects detail fields outside the fixed vocabulary", func() {
			_, err := service.Create(1, 10, qrcode.CreateQRCodeDTO{
				ProductID: 7,
				Name:      "Batch 1",
				Details:   []string{"serialNumber"},
			})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(400))
		})
	})

	Describe("Scan", func() {
		var token string

		BeforeEach(func() {
			code, err := service.Create(1, 10, qrcode.CreateQRCodeDTO{
				ProductID:      7,
				Name:           "Batch 1",
				Details:        []string{qrcode.FieldProductName, qrcode.FieldProductStatus},
				ViewPermission: qrcode.PublicView,
			})
			Expect(err).NotTo(HaveOccurred())
			token = code.Token

			repo.product = &qrcode.ProductDetails{
				ProductID:    7,
				TenantID:     10,
				Name:         "Widget",
				OwnerName:    "Dana",
				Manufacturer: "Acme Plant",
				StatusName:   "",
			}
		})

		It("substitutes NA for fields outside the allow-list and empty fields", func() {
			result, err := service.Scan(10, token, nil)
			Expect(err).NotTo(HaveOccurred())

			Expect(result.Details).To(Equal(map[string]string{
				"productName":     "Widget",
				"currentOwner":    "NA",
				"manufacturer":    "NA",
				"productImage":    "NA",
				"productStatus":   "NA",
				"productCategory": "NA",
			}))
			Expect(result.Tenant.BrandName).To(Equal("Acme"))
		})

		It("returns the same payload on repeated scans", func() {
			first, err := service.Scan(10, token, nil)
			Expect(err).NotTo(HaveOccurred())
			second, err := service.Scan(10, token, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(second).To(Equal(first))
		})

		It("rejects an unknown token", func() {
			_, err := service.Scan(10, "nope", nil)
			Expect(err).To(MatchError("QR code not found"))
		})

		It("rejects a token scanned under the wrong tenant", func() {
			_, err := service.Scan(20, token, nil)
			Expect(err).To(MatchError("QR code not found"))
		})

		Context("restricted codes", func() {
			BeforeEach(func() {
				repo.codes[token].ViewPermission = 5
			})

			It("rejects anonymous viewers", func() {
				_, err := service.Scan(10, token, nil)
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeQRViewRestricted))
			})

			It("rejects the wrong viewer and admits the permitted one", func() {
				_, err := service.Scan(10, token, viewer(6))
				Expect(err).To(HaveOccurred())

				result, err := service.Scan(10, token, viewer(5))
				Expect(err).NotTo(HaveOccurred())
				Expect(result.Details["productName"]).To(Equal("Widget"))
			})
		})
	})
})

var _ = Describe("NormalizeDetails", func() {
	It("always returns exactly the six fixed fields", func() {
		out := qrcode.NormalizeDetails(nil, &qrcode.ProductDetails{Name: "Widget"})
		Expect(out).To(HaveLen(6))
		for _, field := range qrcode.ScanFields {
			Expect(out).To(HaveKey(field))
		}
		Expect(out["productName"]).To(Equal("NA"))
	})
})

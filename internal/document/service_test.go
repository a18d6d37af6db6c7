package document_test

import (
	"io"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	internal "github.com/tracksure/tracksure/internal"
	"github.com/tracksure/tracksure/internal/auth"
	"github.com/tracksure/tracksure/internal/document"
)

type mockDocumentRepo struct {
	folders map[int64]*document.Folder
	docs    map[int64]*document.Document
	nextID  int64
}

func newMockDocumentRepo() *mockDocumentRepo {
	return &mockDocumentRepo{
		folders: map[int64]*document.Folder{},
		docs:    map[int64]*document.Document{},
		nextID:  1,
	}
}

func (m *mockDocumentRepo) ListFolders(tenantID int64) ([]document.Folder, error) {
	var out []document.Folder
	for _, f := range m.folders {
		if f.TenantID == tenantID {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (m *mockDocumentRepo) GetFolder(tenantID, folderID int64) (*document.Folder, error) {
	f, ok := m.folders[folderID]
	if !ok || f.TenantID != tenantID {
		return nil, nil
	}
	return f, nil
}

func (m *mockDocumentRepo) CreateFolder(tenantID int64, dto document.FolderDTO) (*document.Folder, error) {
	f := &document.Folder{ID: m.nextID, TenantID: tenantID, Name: dto.Name, ParentID: dto.ParentID}
	m.folders[m.nextID] = f
	m.nextID++
	return f, nil
}

func (m *mockDocumentRepo) UpdateFolder(tenantID, folderID int64, dto document.FolderDTO) (*document.Folder, error) {
	f, _ := m.GetFolder(tenantID, folderID)
	if f == nil {
		return nil, nil
	}
	f.Name = dto.Name
	f.ParentID = dto.ParentID
	return f, nil
}

func (m *mockDocumentRepo) DeleteFolder(tenantID, folderID int64) error {
	delete(m.folders, folderID)
	return nil
}

func (m *mockDocumentRepo) ListDocuments(tenantID int64, folderID *int64, trashed bool) ([]document.Document, error) {
	var out []document.Document
	for _, d := range m.docs {
		if d.TenantID == tenantID && d.IsTrashed == trashed {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (m *mockDocumentRepo) GetDocument(tenantID, documentID int64) (*document.Document, error) {
	d, ok := m.docs[documentID]
	if !ok || d.TenantID != tenantID {
		return nil, nil
	}
	return d, nil
}

func (m *mockDocumentRepo) CreateDocument(tenantID int64, dto document.CreateDocumentDTO) (*document.Document, error) {
	d := &document.Document{
		ID:       m.nextID,
		TenantID: tenantID,
		Name:     dto.Name,
		FileURL:  dto.FileURL,
		FolderID: dto.FolderID,
	}
	m.docs[m.nextID] = d
	m.nextID++
	return d, nil
}

func (m *mockDocumentRepo) UpdateDocument(tenantID, documentID int64, dto document.UpdateDocumentDTO) (*document.Document, error) {
	d, _ := m.GetDocument(tenantID, documentID)
	if d == nil {
		return nil, nil
	}
	if dto.Name != nil {
		d.Name = *dto.Name
	}
	return d, nil
}

func (m *mockDocumentRepo) SetTrashed(tenantID, documentID int64, trashed bool) error {
	m.docs[documentID].IsTrashed = trashed
	return nil
}

func (m *mockDocumentRepo) DeletePermanently(tenantID, documentID int64) error {
	delete(m.docs, documentID)
	return nil
}

type allowAllGuard struct{}

func (allowAllGuard) CheckPermission(userID, tenantID int64, permission string) (*auth.User, error) {
	return &auth.User{ID: userID, TenantID: tenantID}, nil
}

var _ = Describe("Service", func() {
	var (
		repo    *mockDocumentRepo
		service *document.Service
	)

	BeforeEach(func() {
		repo = newMockDocumentRepo()
		service = document.NewService(repo, allowAllGuard{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	Describe("two-stage delete", func() {
		var doc *document.Document

		BeforeEach(func() {
			var err error
			doc, err = service.CreateDocument(1, 10, document.CreateDocumentDTO{
				Name:    "datasheet.pdf",
				FileURL: "https://cdn.example/datasheet.pdf",
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("refuses permanent deletion of a live document", func() {
			err := service.Delete(1, 10, doc.ID, true)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeNotTrashed))
		})

		It("trashes, then permanently deletes", func() {
			Expect(service.Delete(1, 10, doc.ID, false)).To(Succeed())

			trashed, err := service.ListDocuments(1, 10, nil, true)
			Expect(err).NotTo(HaveOccurred())
			Expect(trashed).To(HaveLen(1))

			Expect(service.Delete(1, 10, doc.ID, true)).To(Succeed())
			Expect(service.Delete(1, 10, doc.ID, true)).To(MatchError("Document not found"))
		})

		It("rejects trashing the same document twice", func() {
			Expect(service.Delete(1, 10, doc.ID, false)).To(Succeed())
			Expect(service.Delete(1, 10, doc.ID, false)).To(MatchError("Document already deleted"))
		})

		It("restores only trashed documents", func() {
			err := service.Restore(1, 10, doc.ID)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeNotTrashed))

			Expect(service.Delete(1, 10, doc.ID, false)).To(Succeed())
			Expect(service.Restore(1, 10, doc.ID)).To(Succeed())

			live, err := service.ListDocuments(1, 10, nil, false)
			Expect(err).NotTo(HaveOccurred())
			Expect(live).To(HaveLen(1))
		})
	})

	Describe("folders", func() {
		It("rejects a document pointing at a missing folder", func() {
			missing := int64(99)
			_, err := service.CreateDocument(1, 10, document.CreateDocumentDTO{
				Name:     "datasheet.pdf",
				FileURL:  "https://cdn.example/datasheet.pdf",
				FolderID: &missing,
			})
			Expect(err).To(MatchError("Folder not found"))
		})
	})
})

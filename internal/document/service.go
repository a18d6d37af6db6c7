package document

import (
	"log/slog"

	apperrors "github.com/tracksure/tracksure/internal"
	"github.com/tracksure/tracksure/internal/auth"
)

type Service struct {
	repo   RepositoryAPI
	guard  PermissionGuardAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, guard PermissionGuardAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, guard: guard, logger: logger}
}

func (s *Service) ListFolders(actorID, tenantID int64) ([]Folder, error) {
	if _, err := s.guard.CheckPermission(actorID, tenantID, auth.PermDocumentRead); err != nil {
		return nil, err
	}

	folders, err := s.repo.ListFolders(tenantID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list folders", err)
	}
	return folders, nil
}

func (s *Service) CreateFolder(actorID, tenantID int64, dto FolderDTO) (*Folder, error) {
	if _, err := s.guard.CheckPermission(actorID, tenantID, auth.PermDocumentCreate); err != nil {
		return nil, err
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if dto.ParentID != nil {
		parent, err := s.repo.GetFolder(tenantID, *dto.ParentID)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to load parent folder", err)
		}
		if parent == nil {
			return nil, apperrors.NewNotFoundError("Folder not found", apperrors.ErrCodeFolderNotFound)
		}
	}

	folder, err := s.repo.CreateFolder(tenantID, dto)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to create folder", err)
	}
	return folder, nil
}

func (s *Service) UpdateFolder(actorID, tenantID, folderID int64, dto FolderDTO) (*Folder, error) {
	if _, err := s.guard.CheckPermission(actorID, tenantID, auth.PermDocumentUpdate); err != nil {
		return nil, err
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	folder, err := s.repo.UpdateFolder(tenantID, folderID, dto)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to update folder", err)
	}
	if folder == nil {
		return nil, apperrors.NewNotFoundError("Folder not found", apperrors.ErrCodeFolderNotFound)
	}
	return folder, nil
}

func (s *Service) DeleteFolder(actorID, tenantID, folderID int64) error {
	if _, err := s.guard.CheckPermission(actorID, tenantID, auth.PermDocumentDelete); err != nil {
		return err
	}

	folder, err := s.repo.GetFolder(tenantID, folderID)
	if err != nil {
		return apperrors.NewInternalError("failed to load folder", err)
	}
	if folder == nil {
		return apperrors.NewNotFoundError("Folder not found", apperrors.ErrCodeFolderNotFound)
	}

	if err := s.repo.DeleteFolder(tenantID, folderID); err != nil {
		return apperrors.NewInternalError("failed to delete folder", err)
	}
	return nil
}

func (s *Service) ListDocuments(actorID, tenantID int64, folderID *int64, trashed bool) ([]Document, error) {
	if _, err := s.guard.CheckPermission(actorID, tenantID, auth.PermDocumentRead); err != nil {
		return nil, err
	}

	documents, err := s.repo.ListDocuments(tenantID, folderID, trashed)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list documents", err)
	}
	return documents, nil
}

func (s *Service) CreateDocument(actorID, tenantID int64, dto CreateDocumentDTO) (*Document, error) {
	if _, err := s.guard.CheckPermission(actorID, tenantID, auth.PermDocumentCreate); err != nil {
		return nil, err
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if dto.FolderID != nil {
		folder, err := s.repo.GetFolder(tenantID, *dto.FolderID)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to load folder", err)
		}
		if folder == nil {
			return nil, apperrors.NewNotFoundError("Folder not found", apperrors.ErrCodeFolderNotFound)
		}
	}

	doc, err := s.repo.CreateDocument(tenantID, dto)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to create document", err)
	}

	s.logger.Info("document created", "tenant_id", tenantID, "document_id", doc.ID)
	return doc, nil
}

func (s *Service) UpdateDocument(actorID, tenantID, documentID int64, dto UpdateDocumentDTO) (*Document, error) {
	if _, err := s.guard.CheckPermission(actorID, tenantID, auth.PermDocumentUpdate); err != nil {
		return nil, err
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	doc, err := s.repo.UpdateDocument(tenantID, documentID, dto)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to update document", err)
	}
	if doc == nil {
		return nil, apperrors.NewNotFoundError("Document not found", apperrors.ErrCodeDocumentNotFound)
	}
	return doc, nil
}

// Delete trashes a live document. Permanent deletion only applies to a
// document already in the trash; trashing a trashed document is an error.
func (s *Service) Delete(actorID, tenantID, documentID int64, permanent bool) error {
	if _, err := s.guard.CheckPermission(actorID, tenantID, auth.PermDocumentDelete); err != nil {
		return err
	}

	doc, err := s.repo.GetDocument(tenantID, documentID)
	if err != nil {
		return apperrors.NewInternalError("failed to load document", err)
	}
	if doc == nil {
		return apperrors.NewNotFoundError("Document not found", apperrors.ErrCodeDocumentNotFound)
	}

	if permanent {
		if !doc.IsTrashed {
			return apperrors.NewConflictError("Document must be trashed before permanent deletion", apperrors.ErrCodeNotTrashed)
		}
		if err := s.repo.DeletePermanently(tenantID, documentID); err != nil {
			return apperrors.NewInternalError("failed to delete document", err)
		}
		s.logger.Info("document permanently deleted", "tenant_id", tenantID, "document_id", documentID)
		return nil
	}

	if doc.IsTrashed {
		return apperrors.NewConflictError("Document already deleted", apperrors.ErrCodeAlreadyDeleted)
	}
	if err := s.repo.SetTrashed(tenantID, documentID, true); err != nil {
		return apperrors.NewInternalError("failed to trash document", err)
	}
	return nil
}

func (s *Service) Restore(actorID, tenantID, documentID int64) error {
	if _, err := s.guard.CheckPermission(actorID, tenantID, auth.PermDocumentUpdate); err != nil {
		return err
	}

	doc, err := s.repo.GetDocument(tenantID, documentID)
	if err != nil {
		return apperrors.NewInternalError("failed to load document", err)
	}
	if doc == nil {
		return apperrors.NewNotFoundError("Document not found", apperrors.ErrCodeDocumentNotFound)
	}
	if !doc.IsTrashed {
		return apperrors.NewConflictError("Document is not in the trash", apperrors.ErrCodeNotTrashed)
	}

	if err := s.repo.SetTrashed(tenantID, documentID, false); err != nil {
		return apperrors.NewInternalError("failed to restore document", err)
	}
	return nil
}

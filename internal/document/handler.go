package document

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	internal "github.com/tracksure/tracksure/internal"
	"github.com/tracksure/tracksure/internal/transport"
)

type Handler struct {
	transport.BaseHandler
	service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{service: service}
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (internal.Session, bool) {
	sess, ok := internal.SessionFromContext(r.Context())
	if !ok {
		h.WriteError(w, internal.ErrInvalidToken)
	}
	return sess, ok
}

// ListFolders godoc
// @Summary List the tenant's folder tree
// @Tags docs
// @Produce json
// @Success 200 {array} Folder
// @Router /api/v1/docs/folders [get]
func (h *Handler) ListFolders(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	folders, err := h.service.ListFolders(sess.UserID, sess.TenantID)
	if err != nil {
		h.WriteError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, folders)
}

func (h *Handler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var dto FolderDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteError(w, err)
		return
	}

	folder, err := h.service.CreateFolder(sess.UserID, sess.TenantID, dto)
	if err != nil {
		h.WriteError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, folder)
}

func (h *Handler) UpdateFolder(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	folderID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, internal.NewValidationError("Invalid folder id", internal.ErrCodeValidationFailed))
		return
	}

	var dto FolderDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteError(w, err)
		return
	}

	folder, err := h.service.UpdateFolder(sess.UserID, sess.TenantID, folderID, dto)
	if err != nil {
		h.WriteError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, folder)
}

func (h *Handler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	folderID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, internal.NewValidationError("Invalid folder id", internal.ErrCodeValidationFailed))
		return
	}

	if err := h.service.DeleteFolder(sess.UserID, sess.TenantID, folderID); err != nil {
		h.WriteError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusNoContent, nil)
}

// ListDocuments godoc
// @Summary List documents, optionally filtered by folder or trash state
// @Tags docs
// @Produce json
// @Param folder_id query int false "Folder filter"
// @Param trashed query bool false "List the trash instead of live documents"
// @Success 200 {array} Document
// @Router /api/v1/docs [get]
func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var folderID *int64
	if raw := r.URL.Query().Get("folder_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.WriteError(w, internal.NewValidationError("Invalid folder id", internal.ErrCodeValidationFailed))
			return
		}
		folderID = &id
	}
	trashed := r.URL.Query().Get("trashed") == "true"

	documents, err := h.service.ListDocuments(sess.UserID, sess.TenantID, folderID, trashed)
	if err != nil {
		h.WriteError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, documents)
}

func (h *Handler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var dto CreateDocumentDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteError(w, err)
		return
	}

	doc, err := h.service.CreateDocument(sess.UserID, sess.TenantID, dto)
	if err != nil {
		h.WriteError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, doc)
}

func (h *Handler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	documentID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, internal.NewValidationError("Invalid document id", internal.ErrCodeValidationFailed))
		return
	}

	var dto UpdateDocumentDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteError(w, err)
		return
	}

	doc, err := h.service.UpdateDocument(sess.UserID, sess.TenantID, documentID, dto)
	if err != nil {
		h.WriteError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, doc)
}

// DeleteDocument godoc
// @Summary Trash a document, or delete it permanently from the trash
// @Tags docs
// @Param permanent query bool false "Permanently delete a trashed document"
// @Success 204
// @Router /api/v1/docs/{id} [delete]
func (h *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	documentID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, internal.NewValidationError("Invalid document id", internal.ErrCodeValidationFailed))
		return
	}

	permanent := r.URL.Query().Get("permanent") == "true"
	if err := h.service.Delete(sess.UserID, sess.TenantID, documentID, permanent); err != nil {
		h.WriteError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) RestoreDocument(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	documentID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, internal.NewValidationError("Invalid document id", internal.ErrCodeValidationFailed))
		return
	}

	if err := h.service.Restore(sess.UserID, sess.TenantID, documentID); err != nil {
		h.WriteError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusNoContent, nil)
}

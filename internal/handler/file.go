package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"cloudstore/internal/domain"
	fsSvc "cloudstore/internal/domain/services/filesystem"
	"cloudstore/internal/httputil"
)

// multipartOverhead is the allowance for form boundaries and extra fields
// on top of the upload limit
const multipartOverhead = 1 << 20

// FileHandler handles file HTTP requests. Every route is scoped by the
// folder in its path.
type FileHandler struct {
	fileService    fsSvc.FileService
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewFileHandler creates a new file handler
func NewFileHandler(fileService fsSvc.FileService, maxUploadBytes int64, logger *slog.Logger) *FileHandler {
	return &FileHandler{
		fileService:    fileService,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// ListFiles lists files directly in a folder
// GET /api/folders/{folder_id}/files
func (h *FileHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	files, err := h.fileService.ListFiles(r.Context(), userID, r.PathValue("folder_id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, files)
}

// UploadFile stores a multipart upload ("file", optional "name")
// POST /api/folders/{folder_id}/files
func (h *FileHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartOverhead)
	if err := r.ParseMultipartForm(multipartOverhead); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			handleError(w, h.logger, err)
			return
		}
		httputil.RespondError(w, http.StatusBadRequest, "expected a multipart/form-data body")
		return
	}
	defer r.MultipartForm.RemoveAll()

	upload, header, err := r.FormFile("file")
	if err != nil {
		handleError(w, h.logger, domain.NewValidationError("file", "no file was submitted"))
		return
	}
	defer upload.Close()

	file, err := h.fileService.CreateFile(r.Context(), &fsSvc.CreateFileRequest{
		OwnerID:  userID,
		FolderID: r.PathValue("folder_id"),
		Name:     r.FormValue("name"),
		Filename: header.Filename,
		Content:  upload,
	})
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, file)
}

// GetFile retrieves file metadata
// GET /api/folders/{folder_id}/files/{file_id}
func (h *FileHandler) GetFile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	file, err := h.fileService.GetFile(r.Context(), userID, r.PathValue("folder_id"), r.PathValue("file_id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, file)
}

// UpdateFile renames and/or moves a file
// PUT, PATCH /api/folders/{folder_id}/files/{file_id}
func (h *FileHandler) UpdateFile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req fsSvc.UpdateFileRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	file, err := h.fileService.UpdateFile(r.Context(), userID, r.PathValue("folder_id"), r.PathValue("file_id"), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, file)
}

// DeleteFile deletes a file and its content
// DELETE /api/folders/{folder_id}/files/{file_id}
func (h *FileHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.fileService.DeleteFile(r.Context(), userID, r.PathValue("folder_id"), r.PathValue("file_id")); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DownloadFile redirects to the file's content
// GET /api/folders/{folder_id}/files/{file_id}/file
func (h *FileHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	location, err := h.fileService.ResolveContentLocation(r.Context(), userID, r.PathValue("folder_id"), r.PathValue("file_id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	http.Redirect(w, r, location, http.StatusFound)
}

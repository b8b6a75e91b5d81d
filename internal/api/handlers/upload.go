package handlers

import (
	"fmt"
	"net/http"

	"github.com/dom/studio-api/internal/api/respond"
	"github.com/dom/studio-api/internal/domain"
	"github.com/dom/studio-api/internal/service"
)

// MaxImagesPerRequest bounds POST /upload/images
const MaxImagesPerRequest = 10

type UploadHandler struct {
	uploadService *service.UploadService
	maxBody       int64
}

func NewUploadHandler(uploadService *service.UploadService, maxBody int64) *UploadHandler {
	return &UploadHandler{uploadService: uploadService, maxBody: maxBody}
}

type UploadManyResponse struct {
	Files []*domain.StoredMedia `json:"files"`
}

func (h *UploadHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	files, p, err := h.files(w, r, "image")
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer p.Close()

	if len(files) > 1 {
		files = files[:1]
	}
	stored, err := h.uploadService.UploadImages(r.Context(), files, "image")
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, stored[0])
}

func (h *UploadHandler) UploadImages(w http.ResponseWriter, r *http.Request) {
	files, p, err := h.files(w, r, "images")
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer p.Close()

	if len(files) > MaxImagesPerRequest {
		errs := &domain.ValidationError{}
		errs.Add("images", fmt.Sprintf("At most %d images can be uploaded at once", MaxImagesPerRequest))
		writeError(w, r, errs)
		return
	}

	stored, err := h.uploadService.UploadImages(r.Context(), files, "images")
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, UploadManyResponse{Files: stored})
}

func (h *UploadHandler) files(w http.ResponseWriter, r *http.Request, field string) ([]domain.UploadedFile, *payload, error) {
	p, err := parsePayload(w, r, h.maxBody)
	if err != nil {
		return nil, nil, err
	}
	if p.form == nil {
		p.Close()
		return nil, nil, &requestError{http.StatusBadRequest, "Expected a multipart/form-data upload"}
	}

	files := p.Files(field)
	if err := p.Err(); err != nil {
		p.Close()
		return nil, nil, err
	}
	return files, p, nil
}

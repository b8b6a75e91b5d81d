package handlers

import (
	"net/http"

	"github.com/dom/studio-api/internal/api/respond"
	"github.com/dom/studio-api/internal/domain"
	"github.com/dom/studio-api/internal/repository"
	"github.com/dom/studio-api/internal/service"
)

type VideoHandler struct {
	videoService *service.VideoService
	maxBody      int64
}

func NewVideoHandler(videoService *service.VideoService, maxBody int64) *VideoHandler {
	return &VideoHandler{videoService: videoService, maxBody: maxBody}
}

func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	errs := &domain.ValidationError{}
	filter := repository.VideoFilter{
		Category: queryCategory(r, errs),
		Featured: queryBool(r, "featured", errs),
	}
	if err := errs.OrNil(); err != nil {
		writeError(w, r, err)
		return
	}

	videos, err := h.videoService.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, videos)
}

func (h *VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "video")
	if err != nil {
		writeError(w, r, err)
		return
	}

	video, err := h.videoService.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, video)
}

func (h *VideoHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, err := parsePayload(w, r, h.maxBody)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer p.Close()

	input := videoInput(p)
	if err := p.Err(); err != nil {
		writeError(w, r, err)
		return
	}

	video, err := h.videoService.Create(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, video)
}

func (h *VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "video")
	if err != nil {
		writeError(w, r, err)
		return
	}

	p, err := parsePayload(w, r, h.maxBody)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer p.Close()

	input := videoInput(p)
	if err := p.Err(); err != nil {
		writeError(w, r, err)
		return
	}

	video, err := h.videoService.Update(r.Context(), id, input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, video)
}

func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "video")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.videoService.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, respond.Message{Message: "Video deleted"})
}

func videoInput(p *payload) service.VideoInput {
	return service.VideoInput{
		Title:       p.String("title"),
		Description: p.String("description"),
		Category:    p.Category("category"),
		Featured:    p.Bool("featured"),
		Video:       p.Media("video", "videoUrl"),
		Thumbnail:   p.Media("thumbnail", "thumbnailUrl"),
	}
}

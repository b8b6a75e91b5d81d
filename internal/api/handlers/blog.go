package handlers

import (
	"net/http"
	"strings"

	"github.com/dom/studio-api/internal/api/middleware"
	"github.com/dom/studio-api/internal/api/respond"
	"github.com/dom/studio-api/internal/repository"
	"github.com/dom/studio-api/internal/service"
	"github.com/go-chi/chi/v5"
)

type BlogHandler struct {
	blogService *service.BlogService
	maxBody     int64
}

func NewBlogHandler(blogService *service.BlogService, maxBody int64) *BlogHandler {
	return &BlogHandler{blogService: blogService, maxBody: maxBody}
}

// List is the public listing: published posts only, optionally by tag
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

// ListAll includes drafts and is mounted behind middleware.Auth
func (h *BlogHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

func (h *BlogHandler) list(w http.ResponseWriter, r *http.Request, publishedOnly bool) {
	filter := repository.BlogFilter{
		PublishedOnly: publishedOnly,
		Tag:           strings.ToLower(strings.TrimSpace(r.URL.Query().Get("tag"))),
	}

	posts, err := h.blogService.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, posts)
}

func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "blog post")
	if err != nil {
		writeError(w, r, err)
		return
	}

	post, err := h.blogService.Get(r.Context(), id, false)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, post)
}

func (h *BlogHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	post, err := h.blogService.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, post)
}

func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, err := parsePayload(w, r, h.maxBody)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer p.Close()

	input := blogInput(p)
	if err := p.Err(); err != nil {
		writeError(w, r, err)
		return
	}

	admin, _ := middleware.AdminFromContext(r.Context())
	post, err := h.blogService.Create(r.Context(), admin, input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, post)
}

func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "blog post")
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

	input := blogInput(p)
	if err := p.Err(); err != nil {
		writeError(w, r, err)
		return
	}

	post, err := h.blogService.Update(r.Context(), id, input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, post)
}

func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "blog post")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.blogService.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, respond.Message{Message: "Blog post deleted"})
}

func blogInput(p *payload) service.BlogInput {
	return service.BlogInput{
		Title:      p.String("title"),
		Content:    p.String("content"),
		Excerpt:    p.String("excerpt"),
		Author:     p.String("author"),
		Tags:       p.Strings("tags"),
		Published:  p.Bool("published"),
		CoverImage: p.Media("coverImage", "coverImageUrl"),
	}
}

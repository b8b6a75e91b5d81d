package handlers

import (
	"net/http"
	"strings"

	"github.com/dom/studio-api/internal/api/respond"
	"github.com/dom/studio-api/internal/domain"
	"github.com/dom/studio-api/internal/repository"
	"github.com/dom/studio-api/internal/service"
)

const commentBodyLimit = 64 << 10

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// List shows approved comments only
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	serviceName := strings.TrimSpace(r.URL.Query().Get("serviceName"))
	comments, err := h.commentService.ListApproved(r.Context(), serviceName)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, comments)
}

// ListAll is the moderation queue view
func (h *CommentHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	errs := &domain.ValidationError{}
	filter := repository.CommentFilter{
		ServiceName: strings.TrimSpace(r.URL.Query().Get("serviceName")),
		Approved:    queryBool(r, "approved", errs),
	}
	if err := errs.OrNil(); err != nil {
		writeError(w, r, err)
		return
	}

	comments, err := h.commentService.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, comments)
}

func (h *CommentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "comment")
	if err != nil {
		writeError(w, r, err)
		return
	}

	c, err := h.commentService.GetApproved(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, c)
}

func (h *CommentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	p, err := parsePayload(w, r, commentBodyLimit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer p.Close()

	input := commentInput(p)
	if err := p.Err(); err != nil {
		writeError(w, r, err)
		return
	}

	c, err := h.commentService.Submit(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, c)
}

func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "comment")
	if err != nil {
		writeError(w, r, err)
		return
	}

	p, err := parsePayload(w, r, commentBodyLimit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer p.Close()

	input := commentInput(p)
	if err := p.Err(); err != nil {
		writeError(w, r, err)
		return
	}

	c, err := h.commentService.Update(r.Context(), id, input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, c)
}

// Approve sets the approval flag; an empty body approves
func (h *CommentHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "comment")
	if err != nil {
		writeError(w, r, err)
		return
	}

	p, err := parsePayload(w, r, commentBodyLimit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer p.Close()

	approved := p.Bool("approved")
	if err := p.Err(); err != nil {
		writeError(w, r, err)
		return
	}
	if approved == nil {
		yes := true
		approved = &yes
	}

	c, err := h.commentService.Approve(r.Context(), id, *approved)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, c)
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "comment")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.commentService.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, respond.Message{Message: "Comment deleted"})
}

func commentInput(p *payload) service.CommentInput {
	return service.CommentInput{
		ServiceName: p.String("serviceName"),
		UserName:    p.String("userName"),
		UserEmail:   p.String("userEmail"),
		Comment:     p.String("comment"),
		Rating:      p.Int("rating"),
		Approved:    p.Bool("approved"),
	}
}

package handlers

import (
	"net/http"

	"github.com/dom/studio-api/internal/api/respond"
	"github.com/dom/studio-api/internal/domain"
	"github.com/dom/studio-api/internal/repository"
	"github.com/dom/studio-api/internal/service"
)

type PortfolioHandler struct {
	portfolioService *service.PortfolioService
	maxBody          int64
}

func NewPortfolioHandler(portfolioService *service.PortfolioService, maxBody int64) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService, maxBody: maxBody}
}

func (h *PortfolioHandler) List(w http.ResponseWriter, r *http.Request) {
	errs := &domain.ValidationError{}
	filter := repository.PortfolioFilter{
		Category: queryCategory(r, errs),
		Featured: queryBool(r, "featured", errs),
	}
	if err := errs.OrNil(); err != nil {
		writeError(w, r, err)
		return
	}

	items, err := h.portfolioService.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, items)
}

func (h *PortfolioHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "portfolio item")
	if err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.portfolioService.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, item)
}

func (h *PortfolioHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, err := parsePayload(w, r, h.maxBody)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer p.Close()

	input := portfolioInput(p)
	if err := p.Err(); err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.portfolioService.Create(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, item)
}

func (h *PortfolioHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "portfolio item")
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

	input := portfolioInput(p)
	if err := p.Err(); err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.portfolioService.Update(r.Context(), id, input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, item)
}

func (h *PortfolioHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "portfolio item")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.portfolioService.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, respond.Message{Message: "Portfolio item deleted"})
}

func portfolioInput(p *payload) service.PortfolioInput {
	return service.PortfolioInput{
		Title:       p.String("title"),
		Description: p.String("description"),
		Category:    p.Category("category"),
		Location:    p.String("location"),
		Featured:    p.Bool("featured"),
		Image:       p.Media("image", "imageUrl"),
	}
}

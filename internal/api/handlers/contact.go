package handlers

import (
	"net/http"
	"strings"

	"github.com/dom/studio-api/internal/api/respond"
	"github.com/dom/studio-api/internal/domain"
	"github.com/dom/studio-api/internal/repository"
	"github.com/dom/studio-api/internal/service"
)

// contactBodyLimit caps the public contact form
const contactBodyLimit = 64 << 10

type ContactHandler struct {
	contactService *service.ContactService
}

func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	p, err := parsePayload(w, r, contactBodyLimit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer p.Close()

	input := contactInput(p)
	if err := p.Err(); err != nil {
		writeError(w, r, err)
		return
	}

	c, err := h.contactService.Submit(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, c)
}

func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter repository.ContactFilter
	if v := strings.TrimSpace(r.URL.Query().Get("status")); v != "" {
		status := domain.ContactStatus(v)
		if !status.IsValid() {
			errs := &domain.ValidationError{}
			errs.Add("status", "Status must be one of new, contacted, booked, archived")
			writeError(w, r, errs)
			return
		}
		filter.Status = &status
	}

	contacts, err := h.contactService.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, contacts)
}

func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "contact")
	if err != nil {
		writeError(w, r, err)
		return
	}

	c, err := h.contactService.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, c)
}

func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "contact")
	if err != nil {
		writeError(w, r, err)
		return
	}

	p, err := parsePayload(w, r, contactBodyLimit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer p.Close()

	input := contactInput(p)
	if err := p.Err(); err != nil {
		writeError(w, r, err)
		return
	}

	c, err := h.contactService.Update(r.Context(), id, input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, c)
}

func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "contact")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.contactService.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, respond.Message{Message: "Contact deleted"})
}

func contactInput(p *payload) service.ContactInput {
	return service.ContactInput{
		Name:      p.String("name"),
		Email:     p.String("email"),
		Phone:     p.String("phone"),
		EventType: p.String("eventType"),
		EventDate: p.Date("eventDate"),
		Venue:     p.String("venue"),
		Message:   p.String("message"),
		Status:    p.ContactStatus("status"),
		Notes:     p.String("notes"),
	}
}

package handlers

import (
	"net/http"

	"github.com/dom/studio-api/internal/api/respond"
	"github.com/dom/studio-api/internal/domain"
	"github.com/dom/studio-api/internal/repository"
	"github.com/dom/studio-api/internal/service"
)

type TestimonialHandler struct {
	testimonialService *service.TestimonialService
	maxBody            int64
}

func NewTestimonialHandler(testimonialService *service.TestimonialService, maxBody int64) *TestimonialHandler {
	return &TestimonialHandler{testimonialService: testimonialService, maxBody: maxBody}
}

func (h *TestimonialHandler) List(w http.ResponseWriter, r *http.Request) {
	errs := &domain.ValidationError{}
	filter := repository.TestimonialFilter{Featured: queryBool(r, "featured", errs)}
	if err := errs.OrNil(); err != nil {
		writeError(w, r, err)
		return
	}

	testimonials, err := h.testimonialService.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, testimonials)
}

func (h *TestimonialHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "testimonial")
	if err != nil {
		writeError(w, r, err)
		return
	}

	t, err := h.testimonialService.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, t)
}

// Submit is the public testimonial form; it accepts JSON only
func (h *TestimonialHandler) Submit(w http.ResponseWriter, r *http.Request) {
	p, err := parsePayload(w, r, authBodyLimit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer p.Close()

	input := testimonialInput(p)
	if err := p.Err(); err != nil {
		writeError(w, r, err)
		return
	}

	t, err := h.testimonialService.Submit(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, t)
}

func (h *TestimonialHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "testimonial")
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

	input := testimonialInput(p)
	if err := p.Err(); err != nil {
		writeError(w, r, err)
		return
	}

	t, err := h.testimonialService.Update(r.Context(), id, input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, t)
}

func (h *TestimonialHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "testimonial")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.testimonialService.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, respond.Message{Message: "Testimonial deleted"})
}

func testimonialInput(p *payload) service.TestimonialInput {
	return service.TestimonialInput{
		ClientName: p.String("clientName"),
		Content:    p.String("content"),
		EventType:  p.String("eventType"),
		Rating:     p.Int("rating"),
		Featured:   p.Bool("featured"),
		Image:      p.Media("image", "imageUrl"),
	}
}

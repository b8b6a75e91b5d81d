// Package respond writes the JSON bodies shared by handlers and middleware.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"unicode/utf8"

	"github.com/dom/studio-api/internal/domain"
	"github.com/dom/studio-api/internal/service"
	"github.com/dom/studio-api/internal/token"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrorBody is the shape of every error response
type ErrorBody struct {
	Message string              `json:"message"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
}

// Message is used for plain acknowledgements such as deletes
type Message struct {
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("failed to encode response")
	}
}

func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorBody{Message: message})
}

// Err maps an error from the service layer onto a status code. Anything not
// recognised is logged and reported as a bare 500.
func Err(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validation *domain.ValidationError
		duplicate  *domain.DuplicateError
	)

	switch {
	case errors.As(err, &validation):
		JSON(w, http.StatusBadRequest, ErrorBody{Message: "Validation failed", Errors: validation.Fields})
	case errors.As(err, &duplicate):
		JSON(w, http.StatusBadRequest, ErrorBody{
			Message: duplicate.Error(),
			Errors:  []domain.FieldError{{Field: duplicate.Field, Message: duplicate.Error()}},
		})
	case errors.Is(err, service.ErrInvalidCredentials):
		Error(w, http.StatusUnauthorized, "Invalid credentials")
	case IsAuthFailure(err):
		Error(w, http.StatusUnauthorized, "Token is not valid")
	case errors.Is(err, domain.ErrNotFound):
		Error(w, http.StatusNotFound, capitalize(err.Error()))
	default:
		log.WithFields(log.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
			"error":  err,
		}).Error("request failed")
		Error(w, http.StatusInternalServerError, "Server error")
	}
}

// IsAuthFailure reports whether err means the bearer token cannot be trusted
func IsAuthFailure(err error) bool {
	return errors.Is(err, token.ErrInvalidSignature) ||
		errors.Is(err, token.ErrExpired) ||
		errors.Is(err, token.ErrMalformed) ||
		errors.Is(err, service.ErrAdminNotFound)
}

// capitalize upper-cases the first letter only, e.g. "blog post not found"
func capitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return cases.Upper(language.English).String(string(r)) + s[n:]
}

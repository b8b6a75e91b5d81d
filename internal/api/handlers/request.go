package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dom/studio-api/internal/api/respond"
	"github.com/dom/studio-api/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// multipartMemory is how much of a multipart body is kept in memory before
// spilling to temp files
const multipartMemory = 8 << 20

// requestError is a problem with the request itself rather than its content
type requestError struct {
	status  int
	message string
}

func (e *requestError) Error() string { return e.message }

var errInvalidBody = &requestError{http.StatusBadRequest, "Invalid request body"}

// writeError extends respond.Err with request-level failures
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		reqErr *requestError
		tooBig *http.MaxBytesError
	)
	switch {
	case errors.As(err, &reqErr):
		respond.Error(w, reqErr.status, reqErr.message)
	case errors.As(err, &tooBig):
		respond.Error(w, http.StatusRequestEntityTooLarge, "Request body too large")
	default:
		respond.Err(w, r, err)
	}
}

// pathID parses the {id} route parameter. A malformed id cannot match any
// record, so it is reported as not found.
func pathID(r *http.Request, entity string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, domain.NotFound(entity)
	}
	return id, nil
}

// payload gives uniform access to a JSON object or a multipart form. Values
// that have the wrong type are collected and reported together by Err.
type payload struct {
	fields map[string]json.RawMessage
	form   *multipart.Form
	files  []multipart.File
	errs   domain.ValidationError
}

func parsePayload(w http.ResponseWriter, r *http.Request, maxBytes int64) (*payload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			var tooBig *http.MaxBytesError
			if errors.As(err, &tooBig) {
				return nil, err
			}
			return nil, errInvalidBody
		}
		return &payload{form: r.MultipartForm}, nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	p := &payload{fields: map[string]json.RawMessage{}}
	if len(bytes.TrimSpace(body)) == 0 {
		return p, nil
	}
	if err := json.Unmarshal(body, &p.fields); err != nil {
		return nil, errInvalidBody
	}
	return p, nil
}

// Close releases uploaded files and the form's temp files
func (p *payload) Close() {
	for _, f := range p.files {
		f.Close()
	}
	if p.form != nil {
		p.form.RemoveAll()
	}
}

func (p *payload) Err() error {
	return p.errs.OrNil()
}

// raw returns the value for key and whether it was supplied. JSON null counts
// as not supplied.
func (p *payload) raw(key string) (json.RawMessage, string, bool) {
	if p.form != nil {
		vals, ok := p.form.Value[key]
		if !ok || len(vals) == 0 {
			return nil, "", false
		}
		return nil, vals[0], true
	}
	v, ok := p.fields[key]
	if !ok || string(v) == "null" {
		return nil, "", false
	}
	return v, "", true
}

func (p *payload) String(key string) *string {
	js, formVal, ok := p.raw(key)
	if !ok {
		return nil
	}
	if js == nil {
		return &formVal
	}
	var s string
	if err := json.Unmarshal(js, &s); err != nil {
		p.errs.Add(key, key+" must be a string")
		return nil
	}
	return &s
}

func (p *payload) Bool(key string) *bool {
	js, formVal, ok := p.raw(key)
	if !ok {
		return nil
	}
	if js != nil {
		var b bool
		if err := json.Unmarshal(js, &b); err == nil {
			return &b
		}
		if err := json.Unmarshal(js, &formVal); err != nil {
			p.errs.Add(key, key+" must be true or false")
			return nil
		}
	}
	b, err := strconv.ParseBool(strings.TrimSpace(formVal))
	if err != nil {
		p.errs.Add(key, key+" must be true or false")
		return nil
	}
	return &b
}

func (p *payload) Int(key string) *int {
	js, formVal, ok := p.raw(key)
	if !ok {
		return nil
	}
	if js != nil {
		var n int
		if err := json.Unmarshal(js, &n); err == nil {
			return &n
		}
		if err := json.Unmarshal(js, &formVal); err != nil {
			p.errs.Add(key, key+" must be a whole number")
			return nil
		}
	}
	n, err := strconv.Atoi(strings.TrimSpace(formVal))
	if err != nil {
		p.errs.Add(key, key+" must be a whole number")
		return nil
	}
	return &n
}

// Strings accepts a JSON array, repeated form fields or a comma separated string
func (p *payload) Strings(key string) *[]string {
	js, formVal, ok := p.raw(key)
	if !ok {
		return nil
	}
	if js == nil {
		vals := p.form.Value[key]
		if len(vals) == 1 {
			vals = strings.Split(formVal, ",")
		}
		return &vals
	}
	var list []string
	if err := json.Unmarshal(js, &list); err == nil {
		return &list
	}
	var s string
	if err := json.Unmarshal(js, &s); err != nil {
		p.errs.Add(key, key+" must be a list of strings")
		return nil
	}
	list = strings.Split(s, ",")
	return &list
}

// Date accepts RFC 3339 timestamps or plain yyyy-mm-dd dates
func (p *payload) Date(key string) *time.Time {
	s := p.String(key)
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, strings.TrimSpace(*s)); err == nil {
			return &t
		}
	}
	p.errs.Add(key, key+" must be a date (YYYY-MM-DD)")
	return nil
}

func (p *payload) Category(key string) *domain.Category {
	s := p.String(key)
	if s == nil {
		return nil
	}
	c := domain.Category(strings.TrimSpace(*s))
	return &c
}

func (p *payload) ContactStatus(key string) *domain.ContactStatus {
	s := p.String(key)
	if s == nil {
		return nil
	}
	st := domain.ContactStatus(strings.TrimSpace(*s))
	return &st
}

// Media prefers an uploaded file in fileField over a URL. The URL may be sent
// under urlField or, as a plain string, under fileField itself.
func (p *payload) Media(fileField, urlField string) domain.MediaSource {
	if files := p.Files(fileField); len(files) > 0 {
		return files[0]
	}
	for _, key := range []string{urlField, fileField} {
		if u := p.String(key); u != nil {
			return domain.RemoteURL(*u)
		}
	}
	return nil
}

// Files opens every file sent under field; they are closed by Close
func (p *payload) Files(field string) []domain.UploadedFile {
	if p.form == nil {
		return nil
	}
	var out []domain.UploadedFile
	for _, fh := range p.form.File[field] {
		f, err := fh.Open()
		if err != nil {
			p.errs.Add(field, "Could not read uploaded file")
			continue
		}
		p.files = append(p.files, f)
		out = append(out, domain.UploadedFile{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Body:        f,
		})
	}
	return out
}

// queryBool parses an optional boolean query parameter
func queryBool(r *http.Request, key string, errs *domain.ValidationError) *bool {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		errs.Add(key, key+" must be true or false")
		return nil
	}
	return &b
}

func queryCategory(r *http.Request, errs *domain.ValidationError) *domain.Category {
	v := strings.TrimSpace(r.URL.Query().Get("category"))
	if v == "" {
		return nil
	}
	c := domain.Category(v)
	if !c.IsValid() {
		errs.Add("category", "Category must be one of weddings, pre-wedding, engagement")
		return nil
	}
	return &c
}

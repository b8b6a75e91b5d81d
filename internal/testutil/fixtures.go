package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/dom/studio-api/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AdminBuilder creates test admins with a builder pattern
type AdminBuilder struct {
	username string
	email    string
	password string
}

// NewAdminBuilder creates a new AdminBuilder with random identity
func NewAdminBuilder() *AdminBuilder {
	return &AdminBuilder{
		username: "admin_" + uuid.New().String()[:8],
		email:    uuid.New().String()[:8] + "@" + gofakeit.DomainName(),
		password: "testpassword123",
	}
}

func (b *AdminBuilder) WithUsername(username string) *AdminBuilder {
	b.username = username
	return b
}

func (b *AdminBuilder) WithEmail(email string) *AdminBuilder {
	b.email = email
	return b
}

func (b *AdminBuilder) WithPassword(password string) *AdminBuilder {
	b.password = password
	return b
}

// Build creates the admin in the database and returns it with the raw password
func (b *AdminBuilder) Build(t *testing.T, db *gorm.DB) (*domain.Admin, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	admin := &domain.Admin{
		ID:           uuid.New(),
		Username:     b.username,
		Email:        domain.NormalizeEmail(b.email),
		PasswordHash: string(hashedPassword),
	}

	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("failed to create admin: %v", err)
	}

	return admin, b.password
}

// AuthResponse matches the register/login response
type AuthResponse struct {
	Token string       `json:"token"`
	Admin domain.Admin `json:"admin"`
}

// BuildAndAuthenticate registers the admin through the API and returns it with its token
func (b *AdminBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.Admin, string) {
	t.Helper()

	resp := DoJSON(t, http.MethodPost, ts.APIURL("/admin/register"), map[string]string{
		"username": b.username,
		"email":    b.email,
		"password": b.password,
	}, "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("unexpected status code %d registering admin: %s", resp.StatusCode, body)
	}

	var authResp AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	return &authResp.Admin, authResp.Token
}

// PortfolioBuilder creates portfolio items directly in the database
type PortfolioBuilder struct {
	item domain.PortfolioItem
}

func NewPortfolioBuilder() *PortfolioBuilder {
	return &PortfolioBuilder{item: domain.PortfolioItem{
		Title:    gofakeit.FirstName() + " & " + gofakeit.FirstName(),
		Category: domain.CategoryWeddings,
		ImageURL: gofakeit.URL() + "/photo.jpg",
		Location: gofakeit.City(),
	}}
}

func (b *PortfolioBuilder) WithCategory(c domain.Category) *PortfolioBuilder {
	b.item.Category = c
	return b
}

func (b *PortfolioBuilder) Featured() *PortfolioBuilder {
	b.item.Featured = true
	return b
}

func (b *PortfolioBuilder) Build(t *testing.T, db *gorm.DB) *domain.PortfolioItem {
	t.Helper()
	item := b.item
	item.ID = uuid.New()
	item.ThumbnailURL = item.ImageURL
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("failed to create portfolio item: %v", err)
	}
	return &item
}

// BlogBuilder creates blog posts directly in the database
type BlogBuilder struct {
	post domain.BlogPost
	tags []string
}

func NewBlogBuilder() *BlogBuilder {
	return &BlogBuilder{post: domain.BlogPost{
		Title:     gofakeit.Sentence(4),
		Content:   gofakeit.Paragraph(1, 3, 10, " "),
		Author:    gofakeit.Name(),
		Published: true,
	}}
}

func (b *BlogBuilder) WithSlug(slug string) *BlogBuilder {
	b.post.Slug = slug
	return b
}

func (b *BlogBuilder) WithTags(tags ...string) *BlogBuilder {
	b.tags = tags
	return b
}

func (b *BlogBuilder) Draft() *BlogBuilder {
	b.post.Published = false
	return b
}

func (b *BlogBuilder) Build(t *testing.T, db *gorm.DB) *domain.BlogPost {
	t.Helper()
	post := b.post
	post.ID = uuid.New()
	if post.Slug == "" {
		post.Slug = "post-" + post.ID.String()[:8]
	}
	post.ContentHTML = "<p>" + post.Content + "</p>"
	post.SetTags(b.tags)
	if err := db.Create(&post).Error; err != nil {
		t.Fatalf("failed to create blog post: %v", err)
	}
	return &post
}

// CommentBuilder creates comments directly in the database
type CommentBuilder struct {
	comment domain.Comment
}

func NewCommentBuilder() *CommentBuilder {
	return &CommentBuilder{comment: domain.Comment{
		ServiceName: "weddings",
		UserName:    gofakeit.Name(),
		UserEmail:   gofakeit.Email(),
		Comment:     gofakeit.Sentence(10),
		Rating:      5,
	}}
}

func (b *CommentBuilder) WithService(name string) *CommentBuilder {
	b.comment.ServiceName = name
	return b
}

func (b *CommentBuilder) Approved() *CommentBuilder {
	b.comment.Approved = true
	return b
}

func (b *CommentBuilder) Build(t *testing.T, db *gorm.DB) *domain.Comment {
	t.Helper()
	c := b.comment
	c.ID = uuid.New()
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("failed to create comment: %v", err)
	}
	return &c
}

// ContactBuilder creates enquiries directly in the database
type ContactBuilder struct {
	contact domain.Contact
}

func NewContactBuilder() *ContactBuilder {
	return &ContactBuilder{contact: domain.Contact{
		Name:      gofakeit.Name(),
		Email:     gofakeit.Email(),
		Phone:     gofakeit.Phone(),
		EventType: "Wedding",
		Message:   gofakeit.Sentence(12),
		Status:    domain.ContactStatusNew,
	}}
}

func (b *ContactBuilder) WithStatus(s domain.ContactStatus) *ContactBuilder {
	b.contact.Status = s
	return b
}

func (b *ContactBuilder) Build(t *testing.T, db *gorm.DB) *domain.Contact {
	t.Helper()
	c := b.contact
	c.ID = uuid.New()
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("failed to create contact: %v", err)
	}
	return &c
}

// CreateAuthenticatedRequest creates an HTTP request with auth token
func CreateAuthenticatedRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	var bodyReader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	} else {
		bodyReader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}

// DoJSON sends a JSON request and returns the response; the caller closes the body
func DoJSON(t *testing.T, method, url string, body interface{}, token string) *http.Response {
	t.Helper()

	resp, err := http.DefaultClient.Do(CreateAuthenticatedRequest(t, method, url, body, token))
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, url, err)
	}
	return resp
}

// MultipartFile is one file part of a multipart request
type MultipartFile struct {
	Field    string
	Filename string
	Content  []byte
}

// DoMultipart sends fields and files as multipart/form-data
func DoMultipart(t *testing.T, method, url string, fields map[string]string, files []MultipartFile, token string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("failed to write field: %v", err)
		}
	}
	for _, f := range files {
		part, err := mw.CreateFormFile(f.Field, f.Filename)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		part.Write(f.Content)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, &buf)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, url, err)
	}
	return resp
}

// PNG returns an encoded solid-colour PNG of the given size
func PNG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 90, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

// WebM returns bytes that sniff as video/webm: the EBML magic plus padding
func WebM() []byte {
	return append([]byte("\x1A\x45\xDF\xA3"), make([]byte, 508)...)
}

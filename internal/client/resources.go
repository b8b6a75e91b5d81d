package client

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dom/studio-api/internal/domain"
)

type PortfolioRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Category    domain.Category `json:"category"`
	ImageURL    string          `json:"imageUrl"`
	Location    string          `json:"location,omitempty"`
	Featured    bool            `json:"featured"`
}

type VideoRequest struct {
	Title        string          `json:"title"`
	Description  string          `json:"description,omitempty"`
	VideoURL     string          `json:"videoUrl"`
	ThumbnailURL string          `json:"thumbnailUrl,omitempty"`
	Category     domain.Category `json:"category,omitempty"`
	Featured     bool            `json:"featured"`
}

type BlogRequest struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Excerpt       string   `json:"excerpt,omitempty"`
	CoverImageURL string   `json:"coverImageUrl,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Published     *bool    `json:"published,omitempty"`
}

type TestimonialRequest struct {
	ClientName string `json:"clientName"`
	Content    string `json:"content"`
	Rating     int    `json:"rating,omitempty"`
	EventType  string `json:"eventType,omitempty"`
}

type ContactRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	EventType string `json:"eventType,omitempty"`
	EventDate string `json:"eventDate,omitempty"`
	Venue     string `json:"venue,omitempty"`
	Message   string `json:"message"`
}

type CommentRequest struct {
	ServiceName string `json:"serviceName"`
	UserName    string `json:"userName"`
	UserEmail   string `json:"userEmail"`
	Comment     string `json:"comment"`
	Rating      int    `json:"rating"`
}

type UploadResult struct {
	Files []domain.StoredMedia `json:"files"`
}

func (c *Client) ListPortfolio(ctx context.Context, category domain.Category, featuredOnly bool) ([]domain.PortfolioItem, error) {
	q := url.Values{}
	if category != "" {
		q.Set("category", string(category))
	}
	if featuredOnly {
		q.Set("featured", "true")
	}
	var out []domain.PortfolioItem
	if err := c.do(ctx, http.MethodGet, withQuery("/portfolio", q), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreatePortfolio(ctx context.Context, req PortfolioRequest) (*domain.PortfolioItem, error) {
	var out domain.PortfolioItem
	if err := c.do(ctx, http.MethodPost, "/portfolio", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeletePortfolio(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/portfolio/"+url.PathEscape(id), nil, &messageResponse{})
}

func (c *Client) CreateVideo(ctx context.Context, req VideoRequest) (*domain.Video, error) {
	var out domain.Video
	if err := c.do(ctx, http.MethodPost, "/videos", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListBlogs returns published posts, or every post when all is set (admin only)
func (c *Client) ListBlogs(ctx context.Context, tag string, all bool) ([]domain.BlogPost, error) {
	path := "/blogs"
	if all {
		path = "/blogs/all"
	}
	q := url.Values{}
	if tag != "" {
		q.Set("tag", tag)
	}
	var out []domain.BlogPost
	if err := c.do(ctx, http.MethodGet, withQuery(path, q), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateBlog(ctx context.Context, req BlogRequest) (*domain.BlogPost, error) {
	var out domain.BlogPost
	if err := c.do(ctx, http.MethodPost, "/blogs", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SubmitTestimonial(ctx context.Context, req TestimonialRequest) (*domain.Testimonial, error) {
	var out domain.Testimonial
	if err := c.do(ctx, http.MethodPost, "/testimonials", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SubmitContact(ctx context.Context, req ContactRequest) (*domain.Contact, error) {
	var out domain.Contact
	if err := c.do(ctx, http.MethodPost, "/contact", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListContacts(ctx context.Context, status domain.ContactStatus) ([]domain.Contact, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", string(status))
	}
	var out []domain.Contact
	if err := c.do(ctx, http.MethodGet, withQuery("/contact", q), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SetContactStatus(ctx context.Context, id string, status domain.ContactStatus) (*domain.Contact, error) {
	var out domain.Contact
	body := map[string]string{"status": string(status)}
	if err := c.do(ctx, http.MethodPut, "/contact/"+url.PathEscape(id), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SubmitComment(ctx context.Context, req CommentRequest) (*domain.Comment, error) {
	var out domain.Comment
	if err := c.do(ctx, http.MethodPost, "/comments", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListComments returns approved comments for a service (public view)
func (c *Client) ListComments(ctx context.Context, serviceName string) ([]domain.Comment, error) {
	q := url.Values{}
	if serviceName != "" {
		q.Set("serviceName", serviceName)
	}
	var out []domain.Comment
	if err := c.do(ctx, http.MethodGet, withQuery("/comments", q), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAllComments is the admin moderation view; approved nil means both states
func (c *Client) ListAllComments(ctx context.Context, serviceName string, approved *bool) ([]domain.Comment, error) {
	q := url.Values{}
	if serviceName != "" {
		q.Set("serviceName", serviceName)
	}
	if approved != nil {
		q.Set("approved", strconv.FormatBool(*approved))
	}
	var out []domain.Comment
	if err := c.do(ctx, http.MethodGet, withQuery("/comments/all", q), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ApproveComment(ctx context.Context, id string, approved bool) (*domain.Comment, error) {
	var out domain.Comment
	body := map[string]bool{"approved": approved}
	if err := c.do(ctx, http.MethodPatch, "/comments/"+url.PathEscape(id)+"/approve", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UploadImage(ctx context.Context, filename string, r io.Reader) (*domain.StoredMedia, error) {
	var out domain.StoredMedia
	if err := c.upload(ctx, "/upload/image", "image", map[string]io.Reader{filename: r}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UploadImages(ctx context.Context, files map[string]io.Reader) ([]domain.StoredMedia, error) {
	var out UploadResult
	if err := c.upload(ctx, "/upload/images", "images", files, &out); err != nil {
		return nil, err
	}
	return out.Files, nil
}

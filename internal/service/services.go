package service

import (
	"github.com/dom/studio-api/internal/repository"
	"github.com/dom/studio-api/internal/token"
)

type Services struct {
	Auth        *AuthService
	Portfolio   *PortfolioService
	Video       *VideoService
	Blog        *BlogService
	Testimonial *TestimonialService
	Contact     *ContactService
	Comment     *CommentService
	Upload      *UploadService
}

func NewServices(repos *repository.Repositories, tokens *token.Service, store MediaStore) *Services {
	return &Services{
		Auth:        NewAuthService(repos.Admin, tokens),
		Portfolio:   NewPortfolioService(repos.Portfolio, store),
		Video:       NewVideoService(repos.Video, store),
		Blog:        NewBlogService(repos.Blog, store),
		Testimonial: NewTestimonialService(repos.Testimonial, store),
		Contact:     NewContactService(repos.Contact),
		Comment:     NewCommentService(repos.Comment),
		Upload:      NewUploadService(store),
	}
}

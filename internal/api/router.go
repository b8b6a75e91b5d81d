package api

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/dom/studio-api/internal/api/handlers"
	"github.com/dom/studio-api/internal/api/middleware"
	"github.com/dom/studio-api/internal/api/respond"
	"github.com/dom/studio-api/internal/config"
	"github.com/dom/studio-api/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(services *service.Services, cfg *config.Config, registry *prometheus.Registry) http.Handler {
	r := chi.NewRouter()

	metrics := middleware.NewMetrics("studio", registry)

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.LogRequest())
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestMetrics(metrics))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))

	// Uploaded media
	prefix := strings.TrimRight(cfg.UploadURLPrefix, "/")
	r.Handle(prefix+"/*", http.StripPrefix(prefix+"/", http.FileServer(noListing{http.Dir(cfg.UploadDir)})))

	// Initialize handlers
	maxBody := cfg.MaxUploadBytes()
	authHandler := handlers.NewAuthHandler(services.Auth)
	portfolioHandler := handlers.NewPortfolioHandler(services.Portfolio, maxBody)
	videoHandler := handlers.NewVideoHandler(services.Video, maxBody)
	blogHandler := handlers.NewBlogHandler(services.Blog, maxBody)
	testimonialHandler := handlers.NewTestimonialHandler(services.Testimonial, maxBody)
	contactHandler := handlers.NewContactHandler(services.Contact)
	commentHandler := handlers.NewCommentHandler(services.Comment)
	uploadHandler := handlers.NewUploadHandler(services.Upload, maxBody)

	requireAdmin := middleware.Auth(services.Auth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Get("/verify", authHandler.Verify)
				r.Get("/me", authHandler.Me)
			})
		})

		r.Route("/portfolio", func(r chi.Router) {
			r.Get("/", portfolioHandler.List)
			r.Get("/{id}", portfolioHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Post("/", portfolioHandler.Create)
				r.Put("/{id}", portfolioHandler.Update)
				r.Delete("/{id}", portfolioHandler.Delete)
			})
		})

		r.Route("/videos", func(r chi.Router) {
			r.Get("/", videoHandler.List)
			r.Get("/{id}", videoHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Post("/", videoHandler.Create)
				r.Put("/{id}", videoHandler.Update)
				r.Delete("/{id}", videoHandler.Delete)
			})
		})

		r.Route("/blogs", func(r chi.Router) {
			r.Get("/", blogHandler.List)
			r.Get("/slug/{slug}", blogHandler.GetBySlug)
			r.Get("/{id}", blogHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Get("/all", blogHandler.ListAll)
				r.Post("/", blogHandler.Create)
				r.Put("/{id}", blogHandler.Update)
				r.Delete("/{id}", blogHandler.Delete)
			})
		})

		r.Route("/testimonials", func(r chi.Router) {
			r.Get("/", testimonialHandler.List)
			r.Get("/{id}", testimonialHandler.Get)
			r.Post("/", testimonialHandler.Submit)

			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Put("/{id}", testimonialHandler.Update)
				r.Delete("/{id}", testimonialHandler.Delete)
			})
		})

		r.Route("/contact", func(r chi.Router) {
			r.Post("/", contactHandler.Submit)

			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Get("/", contactHandler.List)
				r.Get("/{id}", contactHandler.Get)
				r.Put("/{id}", contactHandler.Update)
				r.Delete("/{id}", contactHandler.Delete)
			})
		})

		r.Route("/comments", func(r chi.Router) {
			r.Get("/", commentHandler.List)
			r.Get("/{id}", commentHandler.Get)
			r.Post("/", commentHandler.Submit)

			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Get("/all", commentHandler.ListAll)
				r.Put("/{id}", commentHandler.Update)
				r.Patch("/{id}/approve", commentHandler.Approve)
				r.Delete("/{id}", commentHandler.Delete)
			})
		})

		r.Route("/upload", func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post("/image", uploadHandler.UploadImage)
			r.Post("/images", uploadHandler.UploadImages)
		})
	})

	return r
}

// NewRegistry returns a registry with the Go runtime and process collectors
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// noListing hides directory indexes under the upload prefix
type noListing struct {
	fs http.FileSystem
}

func (n noListing) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if stat.IsDir() {
		f.Close()
		return nil, fs.ErrNotExist
	}
	return f, nil
}

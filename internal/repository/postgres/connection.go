package postgres

import (
	"fmt"

	"github.com/dom/studio-api/internal/domain"
	"github.com/dom/studio-api/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models lists every table owned by the API, in migration order
var Models = []interface{}{
	&domain.Admin{},
	&domain.PortfolioItem{},
	&domain.Video{},
	&domain.BlogPost{},
	&domain.Testimonial{},
	&domain.Contact{},
	&domain.Comment{},
}

func NewConnection(databaseURL string, logLevel logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		Admin:       NewAdminRepository(db),
		Portfolio:   NewPortfolioRepository(db),
		Video:       NewVideoRepository(db),
		Blog:        NewBlogRepository(db),
		Testimonial: NewTestimonialRepository(db),
		Contact:     NewContactRepository(db),
		Comment:     NewCommentRepository(db),
	}
}

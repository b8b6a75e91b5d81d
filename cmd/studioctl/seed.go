package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/dom/studio-api/internal/client"
	"github.com/dom/studio-api/internal/domain"
)

var eventTypes = []string{"Wedding", "Pre-wedding shoot", "Engagement", "Reception"}

var venues = []string{"Lakeside Manor", "The Old Mill", "Rosewood Gardens", "Harbour Hall", "St. Mary's Chapel"}

// seed creates demo content through the public API, the same way the admin UI would
func (a *app) seed(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	portfolio := fs.Int("portfolio", 9, "Portfolio items to create")
	videos := fs.Int("videos", 3, "Videos to create")
	posts := fs.Int("posts", 3, "Blog posts to create")
	testimonials := fs.Int("testimonials", 5, "Testimonials to submit")
	comments := fs.Int("comments", 6, "Comments to submit (left unapproved)")
	contacts := fs.Int("contacts", 4, "Enquiries to submit")
	seed := fs.Int64("seed", 0, "Random seed (0 = random)")
	fs.Parse(args)

	gofakeit.Seed(*seed)

	fmt.Println("=== Seeding demo content ===")

	if _, err := a.api.Me(ctx); err != nil {
		return err
	}

	fmt.Printf("Portfolio items: ")
	for i := 0; i < *portfolio; i++ {
		category := domain.AllCategories[i%len(domain.AllCategories)]
		_, err := a.api.CreatePortfolio(ctx, client.PortfolioRequest{
			Title:       fmt.Sprintf("%s & %s", gofakeit.FirstName(), gofakeit.FirstName()),
			Description: gofakeit.Sentence(12),
			Category:    category,
			ImageURL:    fmt.Sprintf("https://picsum.photos/seed/%s/1600/1067", gofakeit.LetterN(8)),
			Location:    gofakeit.City(),
			Featured:    i < 3,
		})
		if err != nil {
			return fmt.Errorf("portfolio item %d: %w", i+1, err)
		}
		fmt.Print(".")
	}
	fmt.Println(" OK")

	fmt.Printf("Videos: ")
	for i := 0; i < *videos; i++ {
		_, err := a.api.CreateVideo(ctx, client.VideoRequest{
			Title:       fmt.Sprintf("%s at %s", gofakeit.RandomString(eventTypes), gofakeit.RandomString(venues)),
			Description: gofakeit.Sentence(10),
			VideoURL:    "https://www.youtube.com/watch?v=" + gofakeit.LetterN(11),
			Category:    domain.AllCategories[i%len(domain.AllCategories)],
			Featured:    i == 0,
		})
		if err != nil {
			return fmt.Errorf("video %d: %w", i+1, err)
		}
		fmt.Print(".")
	}
	fmt.Println(" OK")

	fmt.Printf("Blog posts: ")
	for i := 0; i < *posts; i++ {
		content := fmt.Sprintf("## %s\n\n%s\n\n%s", gofakeit.Sentence(5),
			gofakeit.Paragraph(2, 4, 12, "\n\n"), gofakeit.Paragraph(1, 3, 10, "\n\n"))
		_, err := a.api.CreateBlog(ctx, client.BlogRequest{
			Title:   gofakeit.Sentence(6),
			Content: content,
			Tags:    []string{gofakeit.RandomString([]string{"tips", "venues", "planning", "stories"})},
		})
		if err != nil {
			return fmt.Errorf("blog post %d: %w", i+1, err)
		}
		fmt.Print(".")
	}
	fmt.Println(" OK")

	fmt.Printf("Testimonials: ")
	for i := 0; i < *testimonials; i++ {
		_, err := a.api.SubmitTestimonial(ctx, client.TestimonialRequest{
			ClientName: gofakeit.Name(),
			Content:    gofakeit.Paragraph(1, 3, 14, " "),
			Rating:     gofakeit.Number(4, 5),
			EventType:  gofakeit.RandomString(eventTypes),
		})
		if err != nil {
			return fmt.Errorf("testimonial %d: %w", i+1, err)
		}
		fmt.Print(".")
	}
	fmt.Println(" OK")

	fmt.Printf("Comments: ")
	for i := 0; i < *comments; i++ {
		_, err := a.api.SubmitComment(ctx, client.CommentRequest{
			ServiceName: string(domain.AllCategories[i%len(domain.AllCategories)]),
			UserName:    gofakeit.Name(),
			UserEmail:   gofakeit.Email(),
			Comment:     gofakeit.Sentence(15),
			Rating:      gofakeit.Number(3, 5),
		})
		if err != nil {
			return fmt.Errorf("comment %d: %w", i+1, err)
		}
		fmt.Print(".")
	}
	fmt.Println(" OK")

	fmt.Printf("Enquiries: ")
	now := time.Now()
	for i := 0; i < *contacts; i++ {
		_, err := a.api.SubmitContact(ctx, client.ContactRequest{
			Name:      gofakeit.Name(),
			Email:     gofakeit.Email(),
			Phone:     gofakeit.Phone(),
			EventType: gofakeit.RandomString(eventTypes),
			EventDate: gofakeit.DateRange(now.AddDate(0, 2, 0), now.AddDate(1, 6, 0)).Format("2006-01-02"),
			Venue:     gofakeit.RandomString(venues),
			Message:   gofakeit.Paragraph(1, 2, 12, " "),
		})
		if err != nil {
			return fmt.Errorf("enquiry %d: %w", i+1, err)
		}
		fmt.Print(".")
	}
	fmt.Println(" OK")

	fmt.Println()
	fmt.Println("Done. Approve comments with `studioctl comments pending`.")
	return nil
}

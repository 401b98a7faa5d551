// Package devseed populates a development database with representative
// content so the dashboard and marketing pages have something to render.
// It is only invoked in dev mode and is safe to run repeatedly.
package devseed

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"

	"github.com/evenbetter/dtwin-cms/internal/data"
	"github.com/evenbetter/dtwin-cms/internal/domain/model"
	apperrors "github.com/evenbetter/dtwin-cms/internal/errors"
	"github.com/evenbetter/dtwin-cms/internal/service"
)

// Services bundles the dependencies needed for development seeding.
type Services struct {
	Content *service.ContentService
	Blogs   *service.BlogService
}

// NewServices constructs the required services for seeding using the provided DB.
// Seeding goes straight to the database; the content cache is left out.
func NewServices(db *sql.DB) Services {
	return Services{
		Content: service.NewContentService(service.ContentServiceOptions{
			Repo: data.NewContentRepo(db),
		}),
		Blogs: service.NewBlogService(service.BlogServiceOptions{
			Repo: data.NewBlogRepo(db),
		}),
	}
}

// Run executes the development seeding workflow. Rows that already exist are
// left untouched.
func Run(ctx context.Context, svcs Services, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "devseed")

	if err := seedSections(ctx, svcs.Content, logger); err != nil {
		return err
	}
	return seedBlogs(ctx, svcs.Blogs, logger)
}

// sectionSeeds holds starter payloads for sections worth pre-filling.
// Sections not listed here are created empty; every schema accepts {}.
var sectionSeeds = map[model.SectionName]string{
	model.SectionHeader: `{
		"logo": "/static/img/logo.svg",
		"menus": ["Product", "Pricing", "Blog"],
		"button": "Get started",
		"button_url": "/signup"
	}`,
	model.SectionHero: `{
		"heading": "Digital twins for every production line",
		"details": "Model, monitor, and iterate on physical assets from one dashboard.",
		"buttons": ["Book a demo"],
		"button_url": ["/demo"]
	}`,
	model.SectionNews: `{"heading": "Latest from the team"}`,
}

func seedSections(ctx context.Context, content *service.ContentService, logger *slog.Logger) error {
	for _, name := range model.KnownSections() {
		payload, ok := sectionSeeds[name]
		if !ok {
			payload = `{}`
		}
		_, err := content.CreateSection(ctx, &model.CreateSectionRequest{
			Section: string(name),
			Content: json.RawMessage(payload),
		})
		switch {
		case err == nil:
			logger.InfoContext(ctx, "seeded content section", "section", name)
		case apperrors.IsConflict(err):
			// already seeded
		default:
			return err
		}
	}
	return nil
}

var blogSeeds = []model.BlogWriteRequest{
	{
		Heading:  "Digital Twins in Practice",
		Content:  "What we learned shipping twin models to three factory floors.",
		MainTag:  "engineering",
		Tags:     []string{"case-study", "modeling"},
		Date:     "2026-01-12",
		Image:    "/static/img/blog/factory.jpg",
		ImageAlt: "Factory floor with sensor overlays",
	},
	{
		Heading: "Why Simulation Beats Guesswork",
		Content: "A short tour of the scenarios our customers run before touching hardware.",
		MainTag: "product",
		Tags:    []string{"simulation"},
		Date:    "2026-02-03",
	},
}

func seedBlogs(ctx context.Context, blogs *service.BlogService, logger *slog.Logger) error {
	existing, err := blogs.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for i := range blogSeeds {
		req := blogSeeds[i]
		post, err := blogs.Create(ctx, &req)
		if err != nil {
			return err
		}
		logger.InfoContext(ctx, "seeded blog post", "id", post.ID, "heading", post.Heading)
	}
	return nil
}

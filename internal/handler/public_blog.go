package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/soulful-cms/internal/model"
	"github.com/iliyamo/soulful-cms/internal/repository"
)

// PublicBlogHandler serves the published subset of posts to the website.
type PublicBlogHandler struct {
	Blogs *repository.BlogRepo
}

func NewPublicBlogHandler(b *repository.BlogRepo) *PublicBlogHandler {
	return &PublicBlogHandler{Blogs: b}
}

// List returns one page of published posts, search-ranked when a term is
// given. These responses sit behind the Redis response cache.
func (h *PublicBlogHandler) List(c echo.Context) error {
	search, page, limit := listParams(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, total, err := h.Blogs.List(ctx, repository.BlogQuery{
		Search: search,
		Status: model.StatusPublished,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		c.Logger().Errorf("public list blogs: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch blogs"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"data":       items,
		"pagination": paginationBody(total, page, limit),
	})
}

// GetBySlug returns a single published post plus up to three related posts:
// other published posts in the same category, newest publish date first.
func (h *PublicBlogHandler) GetBySlug(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Blogs.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Blog not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch blog"})
	}
	if b.Status != model.StatusPublished {
		// drafts are invisible on the public surface
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Blog not found"})
	}

	related, err := h.Blogs.Related(ctx, b.Category, b.ID)
	if err != nil {
		c.Logger().Errorf("related blogs: %v", err)
		related = []model.Blog{}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"blog":    b,
		"related": related,
	})
}

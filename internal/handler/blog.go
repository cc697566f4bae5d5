package handler

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/soulful-cms/internal/model"
	"github.com/iliyamo/soulful-cms/internal/queue"
	"github.com/iliyamo/soulful-cms/internal/repository"
	queue_publisher "github.com/iliyamo/soulful-cms/internal/service"
)

// BlogHandler implements the admin blog CRUD endpoints.
type BlogHandler struct {
	Blogs *repository.BlogRepo
	Users *repository.UserRepo
}

func NewBlogHandler(b *repository.BlogRepo, u *repository.UserRepo) *BlogHandler {
	return &BlogHandler{Blogs: b, Users: u}
}

type createBlogReq struct {
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Excerpt         string     `json:"excerpt"`
	Content         string     `json:"content"`
	Image           string     `json:"image"`
	PublishDate     *time.Time `json:"publishDate"`
	Status          string     `json:"status"`
	Category        string     `json:"category"`
	Tags            []string   `json:"tags"`
	Featured        bool       `json:"featured"`
	MetaTitle       string     `json:"metaTitle"`
	MetaDescription string     `json:"metaDescription"`
	Keywords        []string   `json:"keywords"`
	Attachments     []string   `json:"attachments"`
	AuthorID        string     `json:"authorId"`
}

// listParams parses ?search=&page=&limit= with the defaults shared by the
// admin and public listings.
func listParams(c echo.Context) (search string, page, limit int) {
	search = c.QueryParam("search")
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 {
		limit = 10
	}
	return search, page, limit
}

func paginationBody(total int64, page, limit int) echo.Map {
	return echo.Map{
		"total":      total,
		"page":       page,
		"limit":      limit,
		"totalPages": int(math.Ceil(float64(total) / float64(limit))),
	}
}

// Create stores a new post. Title and content are required; the slug is
// derived and de-duplicated by the repository. An unknown authorId is
// silently dropped rather than rejected.
func (h *BlogHandler) Create(c echo.Context) error {
	var req createBlogReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid body"})
	}
	if req.Title == "" || req.Content == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Title and content are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b := model.Blog{
		Title:           req.Title,
		Slug:            req.Slug,
		Excerpt:         req.Excerpt,
		Content:         req.Content,
		Image:           req.Image,
		PublishDate:     req.PublishDate,
		Status:          req.Status,
		Category:        req.Category,
		Tags:            req.Tags,
		Featured:        req.Featured,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		Keywords:        req.Keywords,
		Attachments:     req.Attachments,
	}
	if req.AuthorID != "" {
		if _, err := h.Users.GetByID(ctx, req.AuthorID); err == nil {
			b.AuthorID = &req.AuthorID
		}
	}

	created, err := h.Blogs.Create(ctx, b)
	if err != nil {
		c.Logger().Errorf("create blog: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create blog"})
	}

	if created.Status == model.StatusPublished {
		_ = queue_publisher.PublishBlogPublished(ctx, publishedEvent(created))
	}
	return c.JSON(http.StatusCreated, created)
}

// List returns one page of posts for the admin table, optionally filtered by
// a search term ranked by relevance.
func (h *BlogHandler) List(c echo.Context) error {
	search, page, limit := listParams(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, total, err := h.Blogs.List(ctx, repository.BlogQuery{
		Search: search,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		c.Logger().Errorf("list blogs: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch blogs"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"data":       items,
		"pagination": paginationBody(total, page, limit),
	})
}

// Get fetches a single post by id.
func (h *BlogHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Blogs.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Blog not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch blog"})
	}
	return c.JSON(http.StatusOK, b)
}

// Update applies a merge-patch to a post. Fields absent from the payload are
// left untouched.
func (h *BlogHandler) Update(c echo.Context) error {
	var patch model.BlogPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid body"})
	}
	id := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	before, err := h.Blogs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Blog not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update blog"})
	}

	updated, err := h.Blogs.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Blog not found"})
		}
		if errors.Is(err, repository.ErrSlugExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "Slug already in use"})
		}
		c.Logger().Errorf("update blog: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update blog"})
	}

	if before.Status != model.StatusPublished && updated.Status == model.StatusPublished {
		_ = queue_publisher.PublishBlogPublished(ctx, publishedEvent(updated))
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete removes a post permanently.
func (h *BlogHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Blogs.Delete(ctx, c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Blog not found"})
		}
		c.Logger().Errorf("delete blog: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete blog"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Blog deleted successfully"})
}

func publishedEvent(b model.Blog) queue.BlogPublishedEvent {
	publishedAt := time.Now().UTC()
	if b.PublishDate != nil {
		publishedAt = *b.PublishDate
	}
	return queue.BlogPublishedEvent{
		BlogID:      b.ID,
		Slug:        b.Slug,
		Title:       b.Title,
		Category:    b.Category,
		PublishedAt: publishedAt.Format(time.RFC3339),
	}
}

package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/soulful-cms/internal/repository"
)

// StatsHandler serves the admin dashboard counters.
type StatsHandler struct {
	Blogs *repository.BlogRepo
	Users *repository.UserRepo
}

func NewStatsHandler(b *repository.BlogRepo, u *repository.UserRepo) *StatsHandler {
	return &StatsHandler{Blogs: b, Users: u}
}

// Get returns total/published blog counts and the user count.
func (h *StatsHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	totalBlogs, err := h.Blogs.CountAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
	publishedBlogs, err := h.Blogs.CountPublished(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
	totalUsers, err := h.Users.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"totalBlogs":     totalBlogs,
		"publishedBlogs": publishedBlogs,
		"totalUsers":     totalUsers,
	})
}

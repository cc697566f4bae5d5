package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/soulful-cms/internal/repository"
)

func newBlogHandlerWithMock(t *testing.T) (*BlogHandler, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewBlogHandler(repository.NewBlogRepo(db), repository.NewUserRepo(db)), mock, db
}

func TestCreateBlog_RequiresTitleAndContent(t *testing.T) {
	h, mock, db := newBlogHandlerWithMock(t)
	defer db.Close()

	for _, body := range []string{
		`{"content":"body without a title"}`,
		`{"title":"Title without content"}`,
		`{}`,
	} {
		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/api/admin/blogs", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		if err := h.Create(e.NewContext(req, rec)); err != nil {
			t.Fatalf("Create error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rec.Code)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("validation failures must not reach the database: %v", err)
	}
}

func TestGetBlog_NotFound(t *testing.T) {
	h, mock, db := newBlogHandlerWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT b\.id,.*WHERE b\.id=\?`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/blogs/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := h.Get(c); err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["error"] != "Blog not found" {
		t.Fatalf("unexpected error message: %v", body["error"])
	}
}

func TestUpdateBlog_SlugConflict(t *testing.T) {
	h, mock, db := newBlogHandlerWithMock(t)
	defer db.Close()

	// pre-update fetch, existence check, then the colliding write
	mock.ExpectQuery(`(?s)SELECT b\.id,.*WHERE b\.id=\?`).WithArgs("b1").
		WillReturnRows(publicBlogRow("b1", "hello-world", "draft"))
	mock.ExpectQuery(`(?s)SELECT b\.id,.*WHERE b\.id=\?`).WithArgs("b1").
		WillReturnRows(publicBlogRow("b1", "hello-world", "draft"))
	mock.ExpectExec(`UPDATE blogs SET slug=\? WHERE id=\?`).
		WithArgs("taken-slug", "b1").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'taken-slug' for key 'blogs.slug'"))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/api/admin/blogs/b1", strings.NewReader(`{"slug":"taken-slug"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("b1")

	if err := h.Update(c); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for a colliding slug, got %d: %s", rec.Code, rec.Body.String())
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["error"] != "Slug already in use" {
		t.Fatalf("unexpected error message: %v", body["error"])
	}
}

func TestList_PaginationBody(t *testing.T) {
	h, mock, db := newBlogHandlerWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM blogs b`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))
	cols := []string{
		"id", "slug", "title", "content", "excerpt", "image",
		"status", "category", "tags", "keywords", "attachments",
		"meta_title", "meta_description", "featured", "publish_date",
		"author_id", "author", "created_at", "updated_at",
	}
	mock.ExpectQuery(`(?s)SELECT b\.id,.*LIMIT \? OFFSET \?`).
		WithArgs(5, 5).
		WillReturnRows(sqlmock.NewRows(cols))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/blogs?page=2&limit=5", nil)
	rec := httptest.NewRecorder()
	if err := h.List(e.NewContext(req, rec)); err != nil {
		t.Fatalf("List error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Data       []any `json:"data"`
		Pagination struct {
			Total      int64 `json:"total"`
			Page       int   `json:"page"`
			Limit      int   `json:"limit"`
			TotalPages int   `json:"totalPages"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body.Pagination.Total != 11 || body.Pagination.Page != 2 ||
		body.Pagination.Limit != 5 || body.Pagination.TotalPages != 3 {
		t.Fatalf("unexpected pagination: %+v", body.Pagination)
	}
	if body.Data == nil {
		t.Fatalf("data must be an empty array, not null")
	}
}

func TestListParams_Defaults(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/blogs?page=-3&limit=abc", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	search, page, limit := listParams(c)
	if search != "" || page != 1 || limit != 10 {
		t.Fatalf("unexpected defaults: search=%q page=%d limit=%d", search, page, limit)
	}
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/soulful-cms/internal/model"
)

func newBlogRepoWithMock(t *testing.T) (*BlogRepo, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewBlogRepo(db), mock, db
}

var blogColumns = []string{
	"id", "slug", "title", "content", "excerpt", "image",
	"status", "category", "tags", "keywords", "attachments",
	"meta_title", "meta_description", "featured", "publish_date",
	"author_id", "author", "created_at", "updated_at",
}

func blogRow(id, slug, title string) *sqlmock.Rows {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(blogColumns).AddRow(
		id, slug, title, "content", "excerpt", "",
		"draft", "wellness", []byte(`["calm"]`), []byte(`[]`), []byte(`[]`),
		"", "", false, now,
		nil, "Unknown", now, now,
	)
}

const existsSlugQ = `SELECT EXISTS\(SELECT 1 FROM blogs WHERE slug=\?\)`
const selectBlogQ = `(?s)SELECT b\.id,.*FROM blogs b`

func TestCreate_DerivesSlugAndResolvesCollision(t *testing.T) {
	repo, mock, db := newBlogRepoWithMock(t)
	defer db.Close()

	// "hello-world" is taken, "hello-world-1" is free
	mock.ExpectQuery(existsSlugQ).WithArgs("hello-world").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(1))
	mock.ExpectQuery(existsSlugQ).WithArgs("hello-world-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(0))

	mock.ExpectExec(`INSERT INTO blogs`).WithArgs(
		sqlmock.AnyArg(), "hello-world-1", "Hello World", "...", "", "",
		"draft", "", []byte(`[]`), []byte(`[]`), []byte(`[]`), "", "",
		"", "", false, sqlmock.AnyArg(), nil,
	).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(selectBlogQ).
		WillReturnRows(blogRow("b1", "hello-world-1", "Hello World"))

	created, err := repo.Create(context.Background(), model.Blog{
		Title:   "Hello World",
		Content: "...",
	})
	require.NoError(t, err)
	require.Equal(t, "hello-world-1", created.Slug)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_SlugSpaceExhausted(t *testing.T) {
	repo, mock, db := newBlogRepoWithMock(t)
	defer db.Close()

	for i := 0; i <= maxSlugProbes; i++ {
		mock.ExpectQuery(existsSlugQ).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(1))
	}

	_, err := repo.Create(context.Background(), model.Blog{Title: "Hello", Content: "x"})
	require.ErrorIs(t, err, ErrSlugSpace)
}

func TestUpdate_MergePatchTouchesOnlyGivenFields(t *testing.T) {
	repo, mock, db := newBlogRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectBlogQ).WithArgs("b1").
		WillReturnRows(blogRow("b1", "hello-world", "Old Title"))
	mock.ExpectExec(`UPDATE blogs SET title=\? WHERE id=\?`).
		WithArgs("X", "b1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(selectBlogQ).WithArgs("b1").
		WillReturnRows(blogRow("b1", "hello-world", "X"))

	title := "X"
	updated, err := repo.Update(context.Background(), "b1", model.BlogPatch{Title: &title})
	require.NoError(t, err)
	require.Equal(t, "X", updated.Title)
	require.Equal(t, "hello-world", updated.Slug)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_PatchedSlugCollision(t *testing.T) {
	repo, mock, db := newBlogRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectBlogQ).WithArgs("b1").
		WillReturnRows(blogRow("b1", "hello-world", "Hello World"))
	mock.ExpectExec(`UPDATE blogs SET slug=\? WHERE id=\?`).
		WithArgs("taken-slug", "b1").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'taken-slug' for key 'blogs.slug'"))

	slug := "taken-slug"
	_, err := repo.Update(context.Background(), "b1", model.BlogPatch{Slug: &slug})
	require.ErrorIs(t, err, ErrSlugExists)
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, db := newBlogRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectBlogQ).WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	title := "X"
	_, err := repo.Update(context.Background(), "missing", model.BlogPatch{Title: &title})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock, db := newBlogRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM blogs WHERE id=\?`).WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.ErrorIs(t, repo.Delete(context.Background(), "missing"), ErrNotFound)
}

func TestList_PageBeyondLastIsEmptyNotError(t *testing.T) {
	repo, mock, db := newBlogRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM blogs b`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
	mock.ExpectQuery(selectBlogQ).WithArgs(5, 490).
		WillReturnRows(sqlmock.NewRows(blogColumns))

	items, total, err := repo.List(context.Background(), BlogQuery{Page: 99, Limit: 5})
	require.NoError(t, err)
	require.Empty(t, items)
	require.Equal(t, int64(7), total)
}

func TestList_SearchRanksByRelevance(t *testing.T) {
	repo, mock, db := newBlogRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM blogs b WHERE .*MATCH\(`).
		WithArgs("anxiety", "%anxiety%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`(?s)SELECT b\.id,.*MATCH\(.*ORDER BY MATCH\(`).
		WithArgs("anxiety", "%anxiety%", "anxiety", 5, 0).
		WillReturnRows(blogRow("b1", "managing-anxiety", "Managing Anxiety"))

	items, total, err := repo.List(context.Background(), BlogQuery{
		Search: "anxiety",
		Page:   1,
		Limit:  5,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	require.Equal(t, "managing-anxiety", items[0].Slug)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBySlug_NotFound(t *testing.T) {
	repo, mock, db := newBlogRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectBlogQ).WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetBySlug(context.Background(), "nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRelated_FiltersPublishedSameCategory(t *testing.T) {
	repo, mock, db := newBlogRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT b\.id,.*WHERE b\.status=\? AND b\.category=\? AND b\.id<>\?`).
		WithArgs("published", "wellness", "b1").
		WillReturnRows(blogRow("b2", "other-post", "Other Post"))

	rel, err := repo.Related(context.Background(), "wellness", "b1")
	require.NoError(t, err)
	require.Len(t, rel, 1)
	require.Equal(t, "b2", rel[0].ID)
}

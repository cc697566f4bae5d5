package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/soulful-cms/internal/model"
	"github.com/iliyamo/soulful-cms/internal/utils"
)

type BlogRepo struct{ DB *sql.DB }

func NewBlogRepo(db *sql.DB) *BlogRepo { return &BlogRepo{DB: db} }

// maxSlugProbes bounds the collision loop in resolveSlug.
const maxSlugProbes = 100

const blogSelect = `SELECT b.id, b.slug, b.title, b.content, b.excerpt, b.image,
		b.status, b.category, b.tags, b.keywords, b.attachments,
		b.meta_title, b.meta_description, b.featured, b.publish_date,
		b.author_id, COALESCE(u.name, 'Unknown') AS author,
		b.created_at, b.updated_at
	FROM blogs b
	LEFT JOIN users u ON u.id = b.author_id`

// fulltext index columns; tags_text/keywords_text are flattened copies of the
// JSON sets maintained on every write.
const searchCols = "b.title, b.excerpt, b.content, b.category, b.tags_text, b.keywords_text"

type scanner interface{ Scan(dest ...any) error }

func scanBlog(row scanner) (model.Blog, error) {
	var (
		b           model.Blog
		tags        []byte
		keywords    []byte
		attachments []byte
		publishDate sql.NullTime
		authorID    sql.NullString
	)
	err := row.Scan(&b.ID, &b.Slug, &b.Title, &b.Content, &b.Excerpt, &b.Image,
		&b.Status, &b.Category, &tags, &keywords, &attachments,
		&b.MetaTitle, &b.MetaDescription, &b.Featured, &publishDate,
		&authorID, &b.Author, &b.CreatedAt, &b.UpdatedAt)
	if err == sql.ErrNoRows {
		return b, ErrNotFound
	}
	if err != nil {
		return b, err
	}
	if publishDate.Valid {
		t := publishDate.Time
		b.PublishDate = &t
	}
	if authorID.Valid {
		id := authorID.String
		b.AuthorID = &id
	}
	if err := json.Unmarshal(tags, &b.Tags); err != nil {
		return b, err
	}
	if err := json.Unmarshal(keywords, &b.Keywords); err != nil {
		return b, err
	}
	if err := json.Unmarshal(attachments, &b.Attachments); err != nil {
		return b, err
	}
	return b, nil
}

func jsonList(v []string) []byte {
	if v == nil {
		v = []string{}
	}
	b, _ := json.Marshal(v)
	return b
}

// Create inserts a new post and returns the stored record. A missing slug is
// derived from the title; a colliding slug gets a numeric suffix. The
// exists-check/insert pair is not transactional, so two concurrent creates
// with the same title can still race; the unique key on slug backstops that.
func (r *BlogRepo) Create(ctx context.Context, b model.Blog) (model.Blog, error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	base := strings.TrimSpace(b.Slug)
	if base == "" {
		base = utils.Slugify(b.Title)
	}
	slug, err := r.resolveSlug(ctx, base)
	if err != nil {
		return model.Blog{}, err
	}
	b.Slug = slug

	if b.Status == "" {
		b.Status = model.StatusDraft
	}
	if b.PublishDate == nil {
		now := time.Now().UTC()
		b.PublishDate = &now
	}

	var authorID any
	if b.AuthorID != nil && *b.AuthorID != "" {
		authorID = *b.AuthorID
	}

	_, err = r.DB.ExecContext(ctx, `INSERT INTO blogs
		(id, slug, title, content, excerpt, image, status, category,
		 tags, keywords, attachments, tags_text, keywords_text,
		 meta_title, meta_description, featured, publish_date, author_id)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		b.ID, b.Slug, b.Title, b.Content, b.Excerpt, b.Image, b.Status, b.Category,
		jsonList(b.Tags), jsonList(b.Keywords), jsonList(b.Attachments),
		strings.Join(b.Tags, " "), strings.Join(b.Keywords, " "),
		b.MetaTitle, b.MetaDescription, b.Featured, b.PublishDate, authorID)
	if err != nil {
		return model.Blog{}, err
	}
	return r.GetByID(ctx, b.ID)
}

// resolveSlug probes slug, slug-1, slug-2, ... until a free candidate is
// found, giving up after maxSlugProbes attempts.
func (r *BlogRepo) resolveSlug(ctx context.Context, base string) (string, error) {
	if base == "" {
		base = uuid.NewString()
	}
	for i := 0; i <= maxSlugProbes; i++ {
		candidate := base
		if i > 0 {
			candidate = fmt.Sprintf("%s-%d", base, i)
		}
		var exists bool
		err := r.DB.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM blogs WHERE slug=?)", candidate).Scan(&exists)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", ErrSlugSpace
}

// GetByID fetches a single post with its author name joined in.
func (r *BlogRepo) GetByID(ctx context.Context, id string) (model.Blog, error) {
	return scanBlog(r.DB.QueryRowContext(ctx, blogSelect+" WHERE b.id=? LIMIT 1", id))
}

// GetBySlug fetches a single post by its unique slug.
func (r *BlogRepo) GetBySlug(ctx context.Context, slug string) (model.Blog, error) {
	return scanBlog(r.DB.QueryRowContext(ctx, blogSelect+" WHERE b.slug=? LIMIT 1", slug))
}

// Related returns up to three other published posts in the same category,
// most recent publish date first.
func (r *BlogRepo) Related(ctx context.Context, category, excludeID string) ([]model.Blog, error) {
	rows, err := r.DB.QueryContext(ctx, blogSelect+`
		WHERE b.status=? AND b.category=? AND b.id<>?
		ORDER BY b.publish_date DESC
		LIMIT 3`, model.StatusPublished, category, excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Blog, 0, 3)
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Update applies a merge-patch: only fields present in the patch overwrite
// stored values, everything else is left untouched.
func (r *BlogRepo) Update(ctx context.Context, id string, p model.BlogPatch) (model.Blog, error) {
	sets := []string{}
	args := []any{}
	set := func(col string, v any) {
		sets = append(sets, col+"=?")
		args = append(args, v)
	}

	if p.Title != nil {
		set("title", *p.Title)
	}
	if p.Slug != nil {
		set("slug", *p.Slug)
	}
	if p.Content != nil {
		set("content", *p.Content)
	}
	if p.Excerpt != nil {
		set("excerpt", *p.Excerpt)
	}
	if p.Image != nil {
		set("image", *p.Image)
	}
	if p.Status != nil {
		set("status", *p.Status)
	}
	if p.Category != nil {
		set("category", *p.Category)
	}
	if p.Tags != nil {
		set("tags", jsonList(*p.Tags))
		set("tags_text", strings.Join(*p.Tags, " "))
	}
	if p.Keywords != nil {
		set("keywords", jsonList(*p.Keywords))
		set("keywords_text", strings.Join(*p.Keywords, " "))
	}
	if p.Attachments != nil {
		set("attachments", jsonList(*p.Attachments))
	}
	if p.MetaTitle != nil {
		set("meta_title", *p.MetaTitle)
	}
	if p.MetaDescription != nil {
		set("meta_description", *p.MetaDescription)
	}
	if p.Featured != nil {
		set("featured", *p.Featured)
	}
	if p.PublishDate != nil {
		set("publish_date", *p.PublishDate)
	}
	if p.AuthorID != nil {
		if *p.AuthorID == "" {
			set("author_id", nil)
		} else {
			set("author_id", *p.AuthorID)
		}
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, id) // nothing to change; still 404s on unknown id
	}

	// existence check first: an UPDATE matching zero rows is indistinguishable
	// from one that changed nothing
	if _, err := r.GetByID(ctx, id); err != nil {
		return model.Blog{}, err
	}

	args = append(args, id)
	_, err := r.DB.ExecContext(ctx,
		"UPDATE blogs SET "+strings.Join(sets, ", ")+" WHERE id=?", args...)
	if err != nil {
		if p.Slug != nil && isDuplicate(err) {
			return model.Blog{}, ErrSlugExists
		}
		return model.Blog{}, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a post permanently.
func (r *BlogRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM blogs WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// BlogQuery defines filters and pagination for listing posts. Page is
// 1-indexed; a page past the end yields an empty item list, never an error.
type BlogQuery struct {
	Search string
	Status string // empty means any status
	Page   int
	Limit  int
}

// List returns one page of posts plus the total matching count. Without a
// search term posts come back most-recently-created first; with one they are
// ranked by fulltext relevance, then recency. A substring LIKE fallback is
// OR-ed in so partial words still match.
func (r *BlogRepo) List(ctx context.Context, q BlogQuery) ([]model.Blog, int64, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}
	if q.Limit > 100 {
		q.Limit = 100
	}
	q.Search = strings.TrimSpace(q.Search)

	where := []string{}
	args := []any{}
	if q.Status != "" {
		where = append(where, "b.status = ?")
		args = append(args, q.Status)
	}
	match := "MATCH(" + searchCols + ") AGAINST (? IN NATURAL LANGUAGE MODE)"
	if q.Search != "" {
		where = append(where,
			"("+match+" OR LOWER(CONCAT_WS(' ', "+searchCols+")) LIKE ?)")
		args = append(args, q.Search, "%"+strings.ToLower(q.Search)+"%")
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	countSQL := "SELECT COUNT(*) FROM blogs b WHERE " + cond
	if err := r.DB.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	order := "ORDER BY b.created_at DESC"
	argsData := append([]any{}, args...)
	if q.Search != "" {
		order = "ORDER BY " + match + " DESC, b.created_at DESC"
		argsData = append(argsData, q.Search)
	}

	limit := q.Limit
	offset := (q.Page - 1) * q.Limit
	argsData = append(argsData, limit, offset)

	rows, err := r.DB.QueryContext(ctx,
		blogSelect+" WHERE "+cond+" "+order+" LIMIT ? OFFSET ?", argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Blog, 0, limit)
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// CountAll returns the total number of posts.
func (r *BlogRepo) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM blogs").Scan(&n)
	return n, err
}

// CountPublished returns the number of published posts.
func (r *BlogRepo) CountPublished(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM blogs WHERE status=?", model.StatusPublished).Scan(&n)
	return n, err
}

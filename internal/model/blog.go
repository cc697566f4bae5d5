package model

import "time"

// Blog post status values stored in blogs.status.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Blog mirrors the 'blogs' table. Tags, Keywords and Attachments are stored
// as JSON columns; Author is the joined author name ("Unknown" when the
// author reference is gone).
type Blog struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Content         string     `json:"content"`
	Excerpt         string     `json:"excerpt"`
	Image           string     `json:"image"`
	Status          string     `json:"status"`
	Category        string     `json:"category"`
	Tags            []string   `json:"tags"`
	Keywords        []string   `json:"keywords"`
	Attachments     []string   `json:"attachments"`
	MetaTitle       string     `json:"metaTitle"`
	MetaDescription string     `json:"metaDescription"`
	Featured        bool       `json:"featured"`
	PublishDate     *time.Time `json:"publishDate"`
	AuthorID        *string    `json:"authorId"`
	Author          string     `json:"author"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// BlogPatch is a merge-patch payload for updating a post. Nil means the
// field was absent from the request and must leave the stored value
// untouched; a pointer to the zero value (empty string, false) is a real
// update. This keeps `featured: false` distinguishable from "not provided".
type BlogPatch struct {
	Title           *string    `json:"title"`
	Slug            *string    `json:"slug"`
	Content         *string    `json:"content"`
	Excerpt         *string    `json:"excerpt"`
	Image           *string    `json:"image"`
	Status          *string    `json:"status"`
	Category        *string    `json:"category"`
	Tags            *[]string  `json:"tags"`
	Keywords        *[]string  `json:"keywords"`
	Attachments     *[]string  `json:"attachments"`
	MetaTitle       *string    `json:"metaTitle"`
	MetaDescription *string    `json:"metaDescription"`
	Featured        *bool      `json:"featured"`
	PublishDate     *time.Time `json:"publishDate"`
	AuthorID        *string    `json:"authorId"`
}

// Package queue defines message payloads exchanged over the message broker.
package queue

// Queue names used for content events. Both queues are durable.
const (
	BlogPublishedQueue  = "blog.published"
	ContactMessageQueue = "contact.message"
)

// BlogPublishedEvent is published when a post first reaches the published
// state, either at creation or through an update. It carries enough for
// downstream consumers to notify or reindex without querying the database.
type BlogPublishedEvent struct {
	BlogID      string `json:"blog_id"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	PublishedAt string `json:"published_at"`
}

// ContactMessageEvent is published for every contact form submission so an
// external collector (mail, CRM, spreadsheet) can pick it up.
type ContactMessageEvent struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Subject    string `json:"subject"`
	Message    string `json:"message"`
	ReceivedAt string `json:"received_at"`
}

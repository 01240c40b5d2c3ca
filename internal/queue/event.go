// Package queue defines message payloads exchanged over the message broker.
package queue

// PostCreatedEvent is published after a post is stored. It carries enough
// for downstream consumers to log or notify without querying the primary
// database.
type PostCreatedEvent struct {
	PostID     uint64 `json:"post_id"`
	AuthorID   uint64 `json:"author_id"`
	AuthorName string `json:"author_name"`
	Title      string `json:"title"`
	CreatedAt  string `json:"created_at"`
}

// ContactReceivedEvent is published after a contact-form message is stored,
// so support tooling can pick it up. The message body itself stays in the
// database.
type ContactReceivedEvent struct {
	ContactID  uint64 `json:"contact_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Subject    string `json:"subject"`
	ReceivedAt string `json:"received_at"`
}

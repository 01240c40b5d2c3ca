package model

import "time"

// Post is a feed entry created by a user. AuthorID records the creator at
// insert time and is never updated afterwards; it is the value ownership
// checks compare against. AuthorName and AuthorAvatar are denormalized from
// the users table at creation so the feed can render without joins.
type Post struct {
	ID           uint64    `json:"id"`
	AuthorID     uint64    `json:"user_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	AuthorName   string    `json:"name"`
	AuthorAvatar string    `json:"avatar"`
	Likes        []Like    `json:"likes"`
	Comments     []Comment `json:"comments"`
	CreatedAt    time.Time `json:"created_at"`
}

// Like marks that a user liked a post. A user can hold at most one like per
// post, enforced by a unique (post_id, user_id) index.
type Like struct {
	ID        uint64    `json:"id"`
	PostID    uint64    `json:"post_id"`
	UserID    uint64    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment is a reply attached to a post. Commenter name and avatar are
// denormalized the same way as on Post.
type Comment struct {
	ID           uint64    `json:"id"`
	PostID       uint64    `json:"post_id"`
	UserID       uint64    `json:"user_id"`
	Text         string    `json:"text"`
	AuthorName   string    `json:"name"`
	AuthorAvatar string    `json:"avatar"`
	CreatedAt    time.Time `json:"created_at"`
}

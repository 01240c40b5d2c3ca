package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/social-feed-api/internal/model"
)

// ErrPostNotFound is returned when a post cannot be found in the DB.
var ErrPostNotFound = errors.New("post not found")

// Like/unlike sentinels; both map to client errors, not server faults.
var (
	ErrAlreadyLiked = errors.New("post already liked")
	ErrNotLiked     = errors.New("post not yet liked")
)

// PostRepo encapsulates all database queries related to posts, their likes
// and their comments.
type PostRepo struct{ DB *sql.DB }

func NewPostRepo(db *sql.DB) *PostRepo { return &PostRepo{DB: db} }

// Create inserts a new post. On success the ID and CreatedAt fields are
// populated so callers receive a fully populated record.
func (r *PostRepo) Create(ctx context.Context, p *model.Post) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO posts (author_id, title, description, author_name, author_avatar) VALUES (?,?,?,?,?)",
		p.AuthorID, p.Title, p.Description, p.AuthorName, p.AuthorAvatar)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	if err := r.DB.QueryRowContext(ctx,
		"SELECT created_at FROM posts WHERE id=?", p.ID).Scan(&p.CreatedAt); err != nil {
		return err
	}
	p.Likes = []model.Like{}
	p.Comments = []model.Comment{}
	return nil
}

// ListAll returns every post, newest first, with likes and comments attached.
func (r *PostRepo) ListAll(ctx context.Context) ([]model.Post, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,author_id,title,description,author_name,author_avatar,created_at FROM posts ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Title, &p.Description, &p.AuthorName, &p.AuthorAvatar, &p.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range posts {
		if posts[i].Likes, err = r.likesOf(ctx, posts[i].ID); err != nil {
			return nil, err
		}
		if posts[i].Comments, err = r.commentsOf(ctx, posts[i].ID); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

// GetByID fetches a single post with likes and comments. Returns
// ErrPostNotFound when no row matches.
func (r *PostRepo) GetByID(ctx context.Context, id uint64) (model.Post, error) {
	var p model.Post
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,author_id,title,description,author_name,author_avatar,created_at FROM posts WHERE id=? LIMIT 1",
		id).Scan(&p.ID, &p.AuthorID, &p.Title, &p.Description, &p.AuthorName, &p.AuthorAvatar, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Post{}, ErrPostNotFound
	}
	if err != nil {
		return model.Post{}, err
	}
	if p.Likes, err = r.likesOf(ctx, p.ID); err != nil {
		return model.Post{}, err
	}
	if p.Comments, err = r.commentsOf(ctx, p.ID); err != nil {
		return model.Post{}, err
	}
	return p, nil
}

// DeleteByIDAndOwner removes a post and its dependent likes and comments if
// it belongs to requester. The post is located first: an absent post yields
// ErrPostNotFound, an existing post owned by someone else yields
// ErrForbidden, and only then is anything deleted.
func (r *PostRepo) DeleteByIDAndOwner(ctx context.Context, id, requester uint64) error {
	var authorID uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT author_id FROM posts WHERE id=? LIMIT 1", id).Scan(&authorID)
	if err == sql.ErrNoRows {
		return ErrPostNotFound
	}
	if err != nil {
		return err
	}
	if !IsOwner(authorID, requester) {
		return ErrForbidden
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM post_likes WHERE post_id=?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM post_comments WHERE post_id=?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM posts WHERE id=?", id); err != nil {
		return err
	}
	return tx.Commit()
}

// Like records that userID liked the post and returns the updated likes
// list. Liking an absent post yields ErrPostNotFound; liking twice yields
// ErrAlreadyLiked.
func (r *PostRepo) Like(ctx context.Context, postID, userID uint64) ([]model.Like, error) {
	if err := r.exists(ctx, postID); err != nil {
		return nil, err
	}
	var n int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM post_likes WHERE post_id=? AND user_id=?",
		postID, userID).Scan(&n); err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, ErrAlreadyLiked
	}
	if _, err := r.DB.ExecContext(ctx,
		"INSERT INTO post_likes (post_id, user_id) VALUES (?,?)", postID, userID); err != nil {
		return nil, err
	}
	return r.likesOf(ctx, postID)
}

// Unlike removes userID's like from the post and returns the updated likes
// list. Removing a like that was never placed yields ErrNotLiked.
func (r *PostRepo) Unlike(ctx context.Context, postID, userID uint64) ([]model.Like, error) {
	if err := r.exists(ctx, postID); err != nil {
		return nil, err
	}
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM post_likes WHERE post_id=? AND user_id=?", postID, userID)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNotLiked
	}
	return r.likesOf(ctx, postID)
}

// AddComment appends a comment to the post and returns the updated comments
// list, newest first.
func (r *PostRepo) AddComment(ctx context.Context, c *model.Comment) ([]model.Comment, error) {
	if err := r.exists(ctx, c.PostID); err != nil {
		return nil, err
	}
	if _, err := r.DB.ExecContext(ctx,
		"INSERT INTO post_comments (post_id, user_id, text, author_name, author_avatar) VALUES (?,?,?,?,?)",
		c.PostID, c.UserID, c.Text, c.AuthorName, c.AuthorAvatar); err != nil {
		return nil, err
	}
	return r.commentsOf(ctx, c.PostID)
}

func (r *PostRepo) exists(ctx context.Context, postID uint64) error {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM posts WHERE id=? LIMIT 1", postID).Scan(&one)
	if err == sql.ErrNoRows {
		return ErrPostNotFound
	}
	return err
}

func (r *PostRepo) likesOf(ctx context.Context, postID uint64) ([]model.Like, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,post_id,user_id,created_at FROM post_likes WHERE post_id=? ORDER BY created_at DESC, id DESC",
		postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	likes := []model.Like{}
	for rows.Next() {
		var l model.Like
		if err := rows.Scan(&l.ID, &l.PostID, &l.UserID, &l.CreatedAt); err != nil {
			return nil, err
		}
		likes = append(likes, l)
	}
	return likes, rows.Err()
}

func (r *PostRepo) commentsOf(ctx context.Context, postID uint64) ([]model.Comment, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,post_id,user_id,text,author_name,author_avatar,created_at FROM post_comments WHERE post_id=? ORDER BY created_at DESC, id DESC",
		postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.Text, &c.AuthorName, &c.AuthorAvatar, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

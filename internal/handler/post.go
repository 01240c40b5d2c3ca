// Post endpoints: the public feed plus authenticated create, delete, like,
// unlike and comment operations. Deletion is owner-only; every other
// mutation only requires a valid token.
package handler

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/social-feed-api/internal/model"
	"github.com/iliyamo/social-feed-api/internal/queue"
	"github.com/iliyamo/social-feed-api/internal/repository"
	queue_publisher "github.com/iliyamo/social-feed-api/internal/service"
)

// PostHandler bundles the repositories the post endpoints need. Users is
// consulted to denormalize author name/avatar onto new posts and comments.
type PostHandler struct {
	Users *repository.UserRepo
	Posts *repository.PostRepo
}

func NewPostHandler(u *repository.UserRepo, p *repository.PostRepo) *PostHandler {
	return &PostHandler{Users: u, Posts: p}
}

type createPostReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type commentReq struct {
	Text string `json:"text"`
}

// Create handles POST /api/posts.
func (h *PostHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "Token is not valid"})
	}
	var req createPostReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid body"})
	}
	var msgs []string
	if strings.TrimSpace(req.Title) == "" {
		msgs = append(msgs, "Title field is Required")
	}
	if strings.TrimSpace(req.Description) == "" {
		msgs = append(msgs, "Description field is required")
	}
	if len(msgs) > 0 {
		return validationError(c, msgs...)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		log.Printf("create post: load author failed: %v", err)
		return serverError(c)
	}
	post := model.Post{
		AuthorID:     userID,
		Title:        req.Title,
		Description:  req.Description,
		AuthorName:   u.Name,
		AuthorAvatar: u.Avatar,
	}
	if err := h.Posts.Create(ctx, &post); err != nil {
		log.Printf("create post: insert failed: %v", err)
		return serverError(c)
	}

	// Best effort; a broker outage must not fail the request.
	_ = queue_publisher.PublishPostCreated(ctx, queue.PostCreatedEvent{
		PostID:     post.ID,
		AuthorID:   post.AuthorID,
		AuthorName: post.AuthorName,
		Title:      post.Title,
		CreatedAt:  post.CreatedAt.UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, post)
}

// List handles GET /api/posts, newest first.
func (h *PostHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	posts, err := h.Posts.ListAll(ctx)
	if err != nil {
		log.Printf("list posts: query failed: %v", err)
		return serverError(c)
	}
	return c.JSON(http.StatusOK, posts)
}

// Get handles GET /api/posts/:id. A malformed id behaves like an absent
// post, matching how clients have always probed this endpoint.
func (h *PostHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"msg": "Post Not Found"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	post, err := h.Posts.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrPostNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"msg": "Post Not Found"})
		}
		log.Printf("get post: query failed: %v", err)
		return serverError(c)
	}
	return c.JSON(http.StatusOK, post)
}

// Delete handles DELETE /api/posts/:id. The repository locates the post,
// checks ownership, and only then removes it; a known requester that is not
// the owner is answered with 401 "User Not Authorized", the status this API
// has always used for that case.
func (h *PostHandler) Delete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "Token is not valid"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"msg": "Post Not Found"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	switch err := h.Posts.DeleteByIDAndOwner(ctx, id, userID); err {
	case nil:
		return c.JSON(http.StatusOK, echo.Map{"msg": "Post Removed"})
	case repository.ErrPostNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"msg": "Post Not Found"})
	case repository.ErrForbidden:
		return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "User Not Authorized"})
	default:
		log.Printf("delete post: %v", err)
		return serverError(c)
	}
}

// Like handles PUT /api/posts/like/:id and returns the updated likes list.
func (h *PostHandler) Like(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "Token is not valid"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"msg": "Post Not Found"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	likes, err := h.Posts.Like(ctx, id, userID)
	switch err {
	case nil:
		return c.JSON(http.StatusOK, likes)
	case repository.ErrPostNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"msg": "Post Not Found"})
	case repository.ErrAlreadyLiked:
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "Post Already liked"})
	default:
		log.Printf("like post: %v", err)
		return serverError(c)
	}
}

// Unlike handles PUT /api/posts/unlike/:id.
func (h *PostHandler) Unlike(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "Token is not valid"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"msg": "Post Not Found"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	likes, err := h.Posts.Unlike(ctx, id, userID)
	switch err {
	case nil:
		return c.JSON(http.StatusOK, likes)
	case repository.ErrPostNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"msg": "Post Not Found"})
	case repository.ErrNotLiked:
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "Post is not yet liked"})
	default:
		log.Printf("unlike post: %v", err)
		return serverError(c)
	}
}

// Comment handles POST /api/posts/comment/:id and returns the updated
// comments list.
func (h *PostHandler) Comment(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "Token is not valid"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"msg": "Post Not Found"})
	}
	var req commentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid body"})
	}
	if strings.TrimSpace(req.Text) == "" {
		return validationError(c, "Text field is Required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		log.Printf("comment: load author failed: %v", err)
		return serverError(c)
	}
	comment := model.Comment{
		PostID:       id,
		UserID:       userID,
		Text:         req.Text,
		AuthorName:   u.Name,
		AuthorAvatar: u.Avatar,
	}
	comments, err := h.Posts.AddComment(ctx, &comment)
	switch err {
	case nil:
		return c.JSON(http.StatusOK, comments)
	case repository.ErrPostNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"msg": "Post Not Found"})
	default:
		log.Printf("comment: %v", err)
		return serverError(c)
	}
}

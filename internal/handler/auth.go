package handler

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/social-feed-api/internal/config"
	"github.com/iliyamo/social-feed-api/internal/repository"
	"github.com/iliyamo/social-feed-api/internal/utils"
)

// AuthHandler bundles dependencies for registration and login.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResp struct {
	Token string `json:"token"`
}

// Register creates a user and returns an auth token immediately, so a fresh
// signup is already logged in.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid body"})
	}
	var msgs []string
	if strings.TrimSpace(req.Name) == "" {
		msgs = append(msgs, "Name is Required")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		msgs = append(msgs, "Please Include your valid Email")
	}
	if len(req.Password) < 6 {
		msgs = append(msgs, "Password Must be 6 characters long")
	}
	if len(msgs) > 0 {
		return validationError(c, msgs...)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, strings.TrimSpace(req.Name), req.Email, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrEmailExists {
			return validationError(c, "Email already exist")
		}
		log.Printf("register: create user failed: %v", err)
		return serverError(c)
	}

	tok, err := utils.NewAuthToken(h.Cfg.JWTSecret, uid, h.Cfg.TokenTTLSec)
	if err != nil {
		log.Printf("register: sign token failed: %v", err)
		return serverError(c)
	}
	return c.JSON(http.StatusOK, tokenResp{Token: tok.Token})
}

// Login verifies credentials and returns a fresh token. Unknown emails and
// wrong passwords produce the same response so the endpoint does not leak
// which addresses are registered.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid body"})
	}
	var msgs []string
	if _, err := mail.ParseAddress(req.Email); err != nil {
		msgs = append(msgs, "Please Include your valid Email")
	}
	if req.Password == "" {
		msgs = append(msgs, "Password is Required")
	}
	if len(msgs) > 0 {
		return validationError(c, msgs...)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return validationError(c, "Invalid Credentials")
		}
		log.Printf("login: query failed: %v", err)
		return serverError(c)
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return validationError(c, "Invalid Credentials")
	}

	tok, err := utils.NewAuthToken(h.Cfg.JWTSecret, u.ID, h.Cfg.TokenTTLSec)
	if err != nil {
		log.Printf("login: sign token failed: %v", err)
		return serverError(c)
	}
	return c.JSON(http.StatusOK, tokenResp{Token: tok.Token})
}

// Me returns the authenticated user's record. The repository projection
// leaves the password hash out of the row it loads.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "Token is not valid"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"msg": "User Not Found"})
		}
		log.Printf("me: query failed: %v", err)
		return serverError(c)
	}
	return c.JSON(http.StatusOK, u)
}

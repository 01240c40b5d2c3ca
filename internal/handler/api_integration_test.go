package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/social-feed-api/internal/config"
	"github.com/iliyamo/social-feed-api/internal/database"
	"github.com/iliyamo/social-feed-api/internal/middleware"
	"github.com/iliyamo/social-feed-api/internal/repository"
	"github.com/iliyamo/social-feed-api/internal/utils"
)

// TestAPIIntegration exercises register/login/post flows against a live
// MySQL instance. It needs the DB_* and JWT_SECRET env vars and is skipped
// unless RUN_API_INTEGRATION=true.
func TestAPIIntegration(t *testing.T) {
	if os.Getenv("RUN_API_INTEGRATION") != "true" {
		t.Skip("set RUN_API_INTEGRATION=true to run this integration test")
	}
	_ = godotenv.Load("../../.env")

	cfg := config.Config{
		Env:         "test",
		DBUser:      mustEnv(t, "DB_USER"),
		DBPass:      os.Getenv("DB_PASS"),
		DBHost:      mustEnv(t, "DB_HOST"),
		DBPort:      mustEnv(t, "DB_PORT"),
		DBName:      mustEnv(t, "DB_NAME"),
		JWTSecret:   mustEnv(t, "JWT_SECRET"),
		TokenTTLSec: 3600,
		BcryptCost:  10,
	}

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	posts := repository.NewPostRepo(db)

	e := echo.New()
	authH := NewAuthHandler(cfg, users)
	postH := NewPostHandler(users, posts)
	gate := middleware.TokenAuth(cfg.JWTSecret)
	e.POST("/api/users", authH.Register)
	e.POST("/api/auth", authH.Login)
	e.GET("/api/auth", authH.Me, gate)
	e.POST("/api/posts", postH.Create, gate)
	e.GET("/api/posts/:id", postH.Get)
	e.DELETE("/api/posts/:id", postH.Delete, gate)

	ts := httptest.NewServer(e)
	defer ts.Close()

	nonce := time.Now().UnixNano()
	emailU := fmt.Sprintf("it_u_%d@example.com", nonce)
	emailV := fmt.Sprintf("it_v_%d@example.com", nonce)

	// Register user U and read back a token.
	status, body := doJSON(t, ts.URL, http.MethodPost, "/api/users", "",
		map[string]string{"name": "A", "email": emailU, "password": "secret1"})
	if status != http.StatusOK {
		t.Fatalf("register U: status %d body %s", status, body)
	}
	tokenU := tokenFrom(t, body)

	// Re-registering the same email must fail with the known message.
	status, body = doJSON(t, ts.URL, http.MethodPost, "/api/users", "",
		map[string]string{"name": "A", "email": emailU, "password": "secret1"})
	if status != http.StatusBadRequest || !strings.Contains(body, "Email already exist") {
		t.Fatalf("duplicate register: status %d body %s", status, body)
	}

	// Login returns a fresh token for the same account.
	status, body = doJSON(t, ts.URL, http.MethodPost, "/api/auth", "",
		map[string]string{"email": emailU, "password": "secret1"})
	if status != http.StatusOK || tokenFrom(t, body) == "" {
		t.Fatalf("login U: status %d body %s", status, body)
	}

	status, body = doJSON(t, ts.URL, http.MethodPost, "/api/users", "",
		map[string]string{"name": "V", "email": emailV, "password": "secret2"})
	if status != http.StatusOK {
		t.Fatalf("register V: status %d body %s", status, body)
	}
	tokenV := tokenFrom(t, body)

	// U creates a post.
	status, body = doJSON(t, ts.URL, http.MethodPost, "/api/posts", tokenU,
		map[string]string{"title": "hello", "description": "first post"})
	if status != http.StatusCreated {
		t.Fatalf("create post: status %d body %s", status, body)
	}
	var created struct {
		ID uint64 `json:"id"`
	}
	if err := json.Unmarshal([]byte(body), &created); err != nil || created.ID == 0 {
		t.Fatalf("create post response: %s", body)
	}
	postPath := fmt.Sprintf("/api/posts/%d", created.ID)

	// Creating without a token is rejected before anything happens.
	status, body = doJSON(t, ts.URL, http.MethodPost, "/api/posts", "",
		map[string]string{"title": "x", "description": "y"})
	if status != http.StatusUnauthorized {
		t.Fatalf("unauthenticated create: status %d body %s", status, body)
	}

	// An expired token is just as unauthenticated, with no side effects.
	uidU, err := utils.VerifyAuthToken(cfg.JWTSecret, tokenU)
	if err != nil {
		t.Fatalf("decode U token: %v", err)
	}
	expired, err := utils.NewAuthToken(cfg.JWTSecret, uidU, -1)
	if err != nil {
		t.Fatal(err)
	}
	status, body = doJSON(t, ts.URL, http.MethodDelete, postPath, expired.Token, nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("expired-token delete: status %d body %s", status, body)
	}

	// V is authenticated but not the owner.
	status, body = doJSON(t, ts.URL, http.MethodDelete, postPath, tokenV, nil)
	if status != http.StatusUnauthorized || !strings.Contains(body, "User Not Authorized") {
		t.Fatalf("non-owner delete: status %d body %s", status, body)
	}

	// The post survived both rejected attempts.
	status, _ = doJSON(t, ts.URL, http.MethodGet, postPath, "", nil)
	if status != http.StatusOK {
		t.Fatalf("post vanished after rejected deletes: status %d", status)
	}

	// The owner may delete.
	status, body = doJSON(t, ts.URL, http.MethodDelete, postPath, tokenU, nil)
	if status != http.StatusOK || !strings.Contains(body, "Post Removed") {
		t.Fatalf("owner delete: status %d body %s", status, body)
	}
	status, _ = doJSON(t, ts.URL, http.MethodGet, postPath, "", nil)
	if status != http.StatusNotFound {
		t.Fatalf("deleted post still readable: status %d", status)
	}
}

func mustEnv(t *testing.T, key string) string {
	t.Helper()
	v := os.Getenv(key)
	if v == "" {
		t.Fatalf("%s is required", key)
	}
	return v
}

func doJSON(t *testing.T, baseURL, method, path, token string, payload any) (int, string) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(middleware.TokenHeader, token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	return resp.StatusCode, string(b)
}

func tokenFrom(t *testing.T, body string) string {
	t.Helper()
	var out struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		t.Fatalf("decode token response %q: %v", body, err)
	}
	if out.Token == "" {
		t.Fatalf("response missing token: %s", body)
	}
	return out.Token
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/social-feed-api/internal/utils"
)

const gateSecret = "gate-secret"

// gateTestCall runs one request through TokenAuth and reports whether the
// downstream handler ran, what identity it saw and the recorded response.
func gateTestCall(t *testing.T, secret, token string) (called bool, seenID uint64, rec *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	h := TokenAuth(secret)(func(c echo.Context) error {
		called = true
		if v, ok := c.Get("user_id").(uint64); ok {
			seenID = v
		}
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set(TokenHeader, token)
	}
	rec = httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return called, seenID, rec
}

func TestTokenAuth_MissingToken(t *testing.T) {
	called, _, rec := gateTestCall(t, gateSecret, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if called {
		t.Fatal("handler ran without a token; gate must reject first")
	}
	if !strings.Contains(rec.Body.String(), "No token") {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestTokenAuth_InvalidToken(t *testing.T) {
	called, _, rec := gateTestCall(t, gateSecret, "not-a-token")
	if rec.Code != http.StatusUnauthorized || called {
		t.Fatalf("status = %d, called = %v; want 401 and no handler run", rec.Code, called)
	}
}

func TestTokenAuth_WrongSecret(t *testing.T) {
	tok, err := utils.NewAuthToken("another-secret", 9, 3600)
	if err != nil {
		t.Fatal(err)
	}
	called, _, rec := gateTestCall(t, gateSecret, tok.Token)
	if rec.Code != http.StatusUnauthorized || called {
		t.Fatalf("status = %d, called = %v; want 401 and no handler run", rec.Code, called)
	}
}

func TestTokenAuth_ExpiredToken(t *testing.T) {
	tok, err := utils.NewAuthToken(gateSecret, 9, -1)
	if err != nil {
		t.Fatal(err)
	}
	called, _, rec := gateTestCall(t, gateSecret, tok.Token)
	if rec.Code != http.StatusUnauthorized || called {
		t.Fatalf("status = %d, called = %v; want 401 and no handler run", rec.Code, called)
	}
}

func TestTokenAuth_ValidToken(t *testing.T) {
	tok, err := utils.NewAuthToken(gateSecret, 123, 3600)
	if err != nil {
		t.Fatal(err)
	}
	called, seenID, rec := gateTestCall(t, gateSecret, tok.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !called {
		t.Fatal("handler did not run for a valid token")
	}
	if seenID != 123 {
		t.Fatalf("context user_id = %d, want 123", seenID)
	}
}

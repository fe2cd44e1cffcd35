package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ErlanBelekov/goals-api/internal/reqctx"
	"github.com/ErlanBelekov/goals-api/internal/token"
	"github.com/ErlanBelekov/goals-api/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testKey = "middleware-test-secret-32-chars!!"

func init() {
	gin.SetMode(gin.TestMode)
}

func newManager(t *testing.T) *token.Manager {
	t.Helper()
	m, err := token.NewManager([]byte(testKey))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m
}

// newEngine builds a minimal gin engine with the Auth middleware protecting GET /protected.
// The handler writes the userID from both contexts so we can assert they were set.
func newEngine(t *testing.T) *gin.Engine {
	r := gin.New()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	r.GET("/protected", middleware.Auth(newManager(t), logger), func(c *gin.Context) {
		c.String(http.StatusOK, "%s|%s", c.GetString(middleware.UserIDKey), reqctx.UserID(c.Request.Context()))
	})
	return r
}

func makeJWT(t *testing.T, method jwt.SigningMethod, key []byte, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign jwt: %v", err)
	}
	return s
}

func do(t *testing.T, authorization string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	newEngine(t).ServeHTTP(w, req)
	return w
}

func TestAuth_MissingHeader_Returns401(t *testing.T) {
	if w := do(t, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_NonBearerScheme_Returns401(t *testing.T) {
	if w := do(t, "Basic dXNlcjpwYXNz"); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_EmptyBearer_Returns401(t *testing.T) {
	if w := do(t, "Bearer "); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_InvalidToken_Returns401(t *testing.T) {
	if w := do(t, "Bearer not.a.jwt"); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_ExpiredToken_Returns401(t *testing.T) {
	tok := makeJWT(t, jwt.SigningMethodHS512, []byte(testKey), jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	if w := do(t, "Bearer "+tok); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_WrongSigningKey_Returns401(t *testing.T) {
	tok := makeJWT(t, jwt.SigningMethodHS512, []byte("different-key-that-is-32-chars!!"), jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	if w := do(t, "Bearer "+tok); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_WrongAlgorithm_Returns401(t *testing.T) {
	tok := makeJWT(t, jwt.SigningMethodHS256, []byte(testKey), jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	if w := do(t, "Bearer "+tok); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_ValidToken_PassesAndSetsUserID(t *testing.T) {
	const userID = "user-abc"
	tok, err := newManager(t).Issue(userID)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	w := do(t, "Bearer "+tok)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got, want := w.Body.String(), userID+"|"+userID; got != want {
		t.Errorf("body = %q, want %q", got, want)
	}
}

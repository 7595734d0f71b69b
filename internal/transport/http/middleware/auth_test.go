package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/eduai-labs/eduai-backend/internal/token"
	"github.com/eduai-labs/eduai-backend/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
)

const testKey = "middleware-test-secret-32-chars!!"

func init() {
	gin.SetMode(gin.TestMode)
}

// newEngine builds a minimal gin engine with the Auth middleware protecting
// GET /protected. The handler writes the userID from context so we can
// assert it was set.
func newEngine(issuer *token.Issuer) *gin.Engine {
	r := gin.New()
	r.GET("/protected", middleware.Auth(issuer), func(c *gin.Context) {
		c.String(http.StatusOK, "%s", c.GetString("userID"))
	})
	return r
}

func get(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_MissingHeader_Returns401(t *testing.T) {
	issuer := token.NewIssuer([]byte(testKey), time.Hour)
	if w := get(newEngine(issuer), ""); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_NonBearerScheme_Returns401(t *testing.T) {
	issuer := token.NewIssuer([]byte(testKey), time.Hour)
	if w := get(newEngine(issuer), "Basic dXNlcjpwYXNz"); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_InvalidToken_Returns401(t *testing.T) {
	issuer := token.NewIssuer([]byte(testKey), time.Hour)
	if w := get(newEngine(issuer), "Bearer not.a.jwt"); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_ExpiredToken_Returns401(t *testing.T) {
	expired, err := token.NewIssuer([]byte(testKey), -time.Hour).Issue("user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	issuer := token.NewIssuer([]byte(testKey), time.Hour)
	if w := get(newEngine(issuer), "Bearer "+expired); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_WrongSigningKey_Returns401(t *testing.T) {
	foreign, err := token.NewIssuer([]byte("different-key-that-is-32-chars!!"), time.Hour).Issue("user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	issuer := token.NewIssuer([]byte(testKey), time.Hour)
	if w := get(newEngine(issuer), "Bearer "+foreign); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_ValidToken_PassesAndSetsUserID(t *testing.T) {
	issuer := token.NewIssuer([]byte(testKey), time.Hour)
	signed, err := issuer.Issue("user-abc")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	w := get(newEngine(issuer), "Bearer "+signed)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if got := w.Body.String(); got != "user-abc" {
		t.Errorf("body = %q, want %q", got, "user-abc")
	}
}

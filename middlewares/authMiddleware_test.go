package middlewares

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Token failures must render a real message, never a nil-wrap artifact.
func TestUserFromTokenErrorMessages(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	wrongKey := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "66b1f0a2e4b0c3d4e5f60718",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	forged, err := wrongKey.SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatal(err)
	}

	for name, token := range map[string]string{
		"malformed": "not.a.token",
		"forged":    forged,
	} {
		_, err := userFromToken(token)
		if err == nil {
			t.Fatalf("%s token accepted", name)
		}
		if strings.Contains(err.Error(), "%!w") || strings.Contains(err.Error(), "<nil>") {
			t.Errorf("%s token error renders a nil wrap: %q", name, err.Error())
		}
	}
}

func TestUserFromTokenRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := userFromToken("anything"); err == nil {
		t.Fatal("expected an error with no secret configured")
	}
}

func TestAuthMiddlewareRejectsBadTokens(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	r := gin.New()
	r.GET("/protected", AuthMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for name, header := range map[string]string{
		"missing":   "",
		"malformed": "Bearer not.a.token",
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s token: status = %d, want 401", name, w.Code)
		}
	}
}

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appctx "agroplan/internal/core/context"
)

type stubValidator struct {
	user *appctx.UserContext
	err  error
}

func (s *stubValidator) ValidateToken(string) (*appctx.UserContext, error) {
	return s.user, s.err
}

func setupRouter(v JWTValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.Use(Auth(v))
	r.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"company_id": appctx.GetCompanyID(c.Request.Context()),
		})
	})
	return r
}

func TestAuth_ValidToken(t *testing.T) {
	r := setupRouter(&stubValidator{
		user: &appctx.UserContext{UserID: "u1", CompanyID: "c1"},
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"company_id":"c1"`)
}

func TestAuth_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		validator JWTValidator
		header    string
	}{
		{
			name:      "missing header",
			validator: &stubValidator{},
			header:    "",
		},
		{
			name:      "wrong scheme",
			validator: &stubValidator{},
			header:    "Basic abc",
		},
		{
			name:      "invalid token",
			validator: &stubValidator{err: errors.New("expired")},
			header:    "Bearer bad",
		},
		{
			name:      "no company scope",
			validator: &stubValidator{user: &appctx.UserContext{UserID: "u1"}},
			header:    "Bearer token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupRouter(tt.validator)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), `"code":"UNAUTHORIZED"`)
		})
	}
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.Use(Auth(&stubValidator{
		user: &appctx.UserContext{UserID: "u1", CompanyID: "c1", Roles: []string{"viewer"}},
	}))
	r.GET("/admin", RequireRole("manager"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"FORBIDDEN"`)
}

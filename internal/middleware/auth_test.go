// internal/middleware/auth_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/fanzlabs/commissions-backend/internal/models"
)

func TestRoleRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if role := c.GetHeader("X-Role"); role != "" {
			c.Set("user_type", role)
		}
	})
	r.POST("/deliver", RoleRequired(models.UserTypeCreator), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	cases := []struct {
		role string
		want int
	}{
		{"creator", http.StatusNoContent},
		{"admin", http.StatusNoContent},
		{"fan", http.StatusForbidden},
		{"", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/deliver", nil)
		if tc.role != "" {
			req.Header.Set("X-Role", tc.role)
		}
		r.ServeHTTP(w, req)
		assert.Equal(t, tc.want, w.Code, "role %q", tc.role)
	}
}

// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Handle values like "en-US,en;q=0.9". Only English ships today,
		// but the negotiated language goes through the context so adding
		// a locale later is a catalog change, not a handler change.
		lang := "en"
		if header := c.GetHeader("Accept-Language"); header != "" {
			first := strings.TrimSpace(strings.Split(strings.Split(header, ",")[0], ";")[0])
			if strings.HasPrefix(first, "en") {
				lang = "en"
			}
		}

		c.Set("lang", lang)
		c.Next()
	}
}

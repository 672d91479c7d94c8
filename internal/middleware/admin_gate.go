package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	appErrors "github.com/couchconnector/buildingrez-api/pkg/errors"
	"github.com/couchconnector/buildingrez-api/pkg/response"
)

// AdminGate guards the administrative route group. The deployment fronts
// this service with a gateway that authenticates operators and asserts the
// configured header; this middleware only honours that assertion.
func AdminGate(header string) gin.HandlerFunc {
	if header == "" {
		header = "X-Admin"
	}
	return func(c *gin.Context) {
		value := strings.ToLower(strings.TrimSpace(c.GetHeader(header)))
		if value != "true" && value != "1" {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "administrator access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

//go:build unit

package api_test

import (
	"freight-core/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// fakeAuth stands in for RequireAuth. A request without a bearer token
// passes through with no identity so the handler's own 401 path runs.
func fakeAuth(userID uuid.UUID, role *jwt.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			c.Set("user_id", userID)
			c.Set("user_role", *role)
		}
		c.Next()
	}
}

type testCaseRequest struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

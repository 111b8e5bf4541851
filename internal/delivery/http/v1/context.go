package v1

import (
	"go-application-tracker/internal/domain"

	"github.com/gin-gonic/gin"
)

// actorFrom rebuilds the acting principal from the context keys set by
// the auth middleware.
func actorFrom(c *gin.Context) *domain.User {
	return &domain.User{
		ID:    c.GetString(string(domain.KeyUserID)),
		Email: c.GetString(string(domain.KeyUserEmail)),
		Role:  c.GetString(string(domain.KeyUserRole)),
	}
}

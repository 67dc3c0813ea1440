package handler

import (
	"nexusorder/internal/service"

	"github.com/gin-gonic/gin"
)

// identityFromContext builds the acting identity from the JWT claims the auth
// middleware stored on the request context.
func identityFromContext(c *gin.Context) service.Identity {
	id, _ := c.Get("userID")
	name, _ := c.Get("userName")
	role, _ := c.Get("userRole")

	idStr, _ := id.(string)
	nameStr, _ := name.(string)
	roleStr, _ := role.(string)

	return service.Identity{ID: idStr, Name: nameStr, Role: roleStr}
}

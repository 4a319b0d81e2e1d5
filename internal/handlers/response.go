package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/skillcoach/backend/internal/apierr"
)

// respondError renders every failure as the uniform {"error": message}
// body, with the HTTP status taken from the error's kind.
func respondError(c *gin.Context, err error) {
	ae := apierr.Coerce(err)
	c.JSON(ae.Status(), gin.H{"error": ae.Error()})
}

// idParam parses the named path parameter as an entity id. A non-numeric
// value renders a validation failure and returns false.
func idParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		respondError(c, apierr.Validation("Invalid "+name+" parameter"))
		return 0, false
	}
	return uint(id), true
}

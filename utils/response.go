package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func JSONMessage(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"message": message})
}

// JSONInternalError hides the real failure from the caller; the handler is
// expected to have logged it already.
func JSONInternalError(c *gin.Context) {
	JSONMessage(c, http.StatusInternalServerError, "Internal server error")
}

package utils

import "github.com/gin-gonic/gin"

// JSONMessage answers a mutation with a message and the affected resource.
func JSONMessage(c *gin.Context, code int, message string, extra gin.H) {
	body := gin.H{"message": message}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(code, body)
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"message": message})
}

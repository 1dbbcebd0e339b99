package server

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// HTTPError is the body of every error response.
type HTTPError struct {
	Error string `json:"error"`
}

func newError(c *gin.Context, status int, format string, args ...any) {
	c.AbortWithStatusJSON(status, HTTPError{
		Error: fmt.Sprintf(format, args...),
	})
}

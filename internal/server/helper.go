package server

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Errors  interface{} `json:"errors,omitempty"`
}

func (er *ErrorResponse) Error() string {
	return fmt.Sprintf("%d - %s", er.Code, er.Message)
}

// Abort stops the handler chain, writes the status code and returns a JSON
// body with the HTTP status code and error message.
func Abort(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, &ErrorResponse{
		Code:    code,
		Message: message,
	})
}

package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the uniform envelope every service method returns. Controllers
// serialize it as-is: StatusCode doubles as the HTTP status.
type Response struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data,omitempty"`
}

func OK(message string, data any) *Response {
	return &Response{Success: true, Message: message, StatusCode: http.StatusOK, Data: data}
}

func Created(message string, data any) *Response {
	return &Response{Success: true, Message: message, StatusCode: http.StatusCreated, Data: data}
}

func BadRequest(message string) *Response {
	return &Response{Success: false, Message: message, StatusCode: http.StatusBadRequest}
}

func Unauthorized(message string) *Response {
	return &Response{Success: false, Message: message, StatusCode: http.StatusUnauthorized}
}

func Forbidden(message string) *Response {
	return &Response{Success: false, Message: message, StatusCode: http.StatusForbidden}
}

func NotFound(message string) *Response {
	return &Response{Success: false, Message: message, StatusCode: http.StatusNotFound}
}

func Conflict(message string) *Response {
	return &Response{Success: false, Message: message, StatusCode: http.StatusConflict}
}

func InternalError(message string) *Response {
	return &Response{Success: false, Message: message, StatusCode: http.StatusInternalServerError}
}

// JSON writes the envelope to the client.
func JSON(c *gin.Context, res *Response) {
	c.JSON(res.StatusCode, res)
}

// AbortJSON writes the envelope and stops the handler chain (middleware use).
func AbortJSON(c *gin.Context, res *Response) {
	c.AbortWithStatusJSON(res.StatusCode, res)
}

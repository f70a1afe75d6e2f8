package handler

import (
	"github.com/labstack/echo/v4"
)

// apiResponse is the response envelope shared by every endpoint. Failure
// shapes are rendered centrally by the error handler; handlers only emit the
// success side.
type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func respond(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, apiResponse{Success: true, Message: message, Data: data})
}

// paginationResponse is the page metadata attached to admin listings.
type paginationResponse struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

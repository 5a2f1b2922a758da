package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Message is the body for mutations that return a confirmation and optionally the record.
type Message struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Result is the body for single-record reads.
type Result struct {
	Result interface{} `json:"result"`
}

// ErrorBody is the body for every failed request.
type ErrorBody struct {
	ErrorMessage string            `json:"error_message"`
	Errors       map[string]string `json:"errors,omitempty"`
}

// OK sends a 200 JSON response with the given body.
func OK(c *gin.Context, body interface{}) {
	c.JSON(http.StatusOK, body)
}

// Created sends a 201 JSON response with a message and optional data.
func Created(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusCreated, Message{Message: msg, Data: data})
}

// Error sends an error body with the given status.
func Error(c *gin.Context, status int, msg string, fields map[string]string) {
	c.JSON(status, ErrorBody{ErrorMessage: msg, Errors: fields})
}

// Internal sends 500.
func Internal(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error", nil)
}

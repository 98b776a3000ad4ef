package handler

import "github.com/labstack/echo/v4"

// envelope is the uniform response wrapper used by every API endpoint:
// {status, data, message}. Failures are rendered in the same shape by the
// central error handler.
type envelope struct {
	Status  string `json:"status"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

func respond(c echo.Context, code int, data any, message string) error {
	return c.JSON(code, envelope{Status: "success", Data: data, Message: message})
}

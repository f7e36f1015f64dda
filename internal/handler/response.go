package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/moritama/fleamarket-backend/internal/service"
)

type MessageResponse struct {
	Message string `json:"message"`
}

type ItemResponse struct {
	ID            uint64 `json:"id"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	ImageFilename string `json:"image_filename"`
}

type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
}

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error errorPayload `json:"error"`
}

func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: errorPayload{
			Code:    code,
			Message: message,
		},
	}
}

// writeError maps the service error taxonomy onto status codes: validation
// failures are 400, missing records 404, everything else a logged 500.
func writeError(c echo.Context, err error) error {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", ve.Message))
	}
	if errors.Is(err, service.ErrNotFound) {
		return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "item not found"))
	}
	c.Logger().Errorf("request failed: %v", err)
	return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "internal server error"))
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/moritama/fleamarket-backend/internal/service"
)

type ImageHandler struct {
	svc service.ItemService
}

func NewImageHandler(svc service.ItemService) *ImageHandler {
	return &ImageHandler{svc: svc}
}

// Get serves the raw bytes of a stored image. Missing blobs fall back to the
// default image inside the service, so the only client-visible failure is a
// malformed filename.
func (h *ImageHandler) Get(c echo.Context) error {
	data, err := h.svc.Image(c.Param("filename"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Blob(http.StatusOK, "image/jpeg", data)
}

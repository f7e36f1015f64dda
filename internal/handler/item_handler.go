package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/moritama/fleamarket-backend/internal/repository"
	"github.com/moritama/fleamarket-backend/internal/service"
)

type ItemHandler struct {
	svc service.ItemService
}

func NewItemHandler(svc service.ItemService) *ItemHandler {
	return &ItemHandler{svc: svc}
}

func (h *ItemHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, MessageResponse{Message: "Hello, world!"})
}

func (h *ItemHandler) Create(c echo.Context) error {
	name := c.FormValue("name")
	category := c.FormValue("category")

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "image file is required"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return writeError(c, err)
	}
	defer file.Close()
	image, err := io.ReadAll(file)
	if err != nil {
		return writeError(c, err)
	}

	contentType := fileHeader.Header.Get("Content-Type")
	res, err := h.svc.Create(c.Request().Context(), name, category, image, contentType)
	if err != nil {
		return writeError(c, err)
	}

	c.Logger().Infof("item %s of %s category added", res.Name, res.Category)
	message := fmt.Sprintf("Item %s of %s category is received.", res.Name, res.Category)
	return c.JSON(http.StatusOK, MessageResponse{Message: message})
}

func (h *ItemHandler) List(c echo.Context) error {
	rows, err := h.svc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toItemListResponse(rows))
}

func (h *ItemHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	row, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toItemResponse(row))
}

func (h *ItemHandler) Search(c echo.Context) error {
	keyword := c.QueryParam("keyword")
	rows, err := h.svc.Search(c.Request().Context(), keyword)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toItemListResponse(rows))
}

func (h *ItemHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	name, err := h.svc.Delete(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	message := fmt.Sprintf("Deleted item %s of id: %d.", name, id)
	return c.JSON(http.StatusOK, MessageResponse{Message: message})
}

func toItemResponse(row *repository.ItemRow) ItemResponse {
	return ItemResponse{
		ID:            row.ID,
		Name:          row.Name,
		Category:      row.Category,
		ImageFilename: row.ImageFilename,
	}
}

func toItemListResponse(rows []repository.ItemRow) ItemListResponse {
	resp := ItemListResponse{Items: make([]ItemResponse, 0, len(rows))}
	for i := range rows {
		resp.Items = append(resp.Items, toItemResponse(&rows[i]))
	}
	return resp
}

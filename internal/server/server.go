package server

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/moritama/fleamarket-backend/internal/blob"
	"github.com/moritama/fleamarket-backend/internal/config"
	"github.com/moritama/fleamarket-backend/internal/handler"
	"github.com/moritama/fleamarket-backend/internal/repository"
	"github.com/moritama/fleamarket-backend/internal/service"
	"gorm.io/gorm"
)

type Server struct {
	e *echo.Echo
}

func New(db *gorm.DB, blobs *blob.Store, cfg *config.Config) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.INFO)
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.FrontURL},
		AllowMethods: []string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodDelete},
	}))

	itemRepo := repository.NewItemRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	itemSvc := service.NewItemService(itemRepo, categoryRepo, blobs)
	itemHandler := handler.NewItemHandler(itemSvc)
	imageHandler := handler.NewImageHandler(itemSvc)

	e.GET("/", itemHandler.Root)
	e.GET("/items", itemHandler.List)
	e.GET("/items/:id", itemHandler.Get)
	e.POST("/items", itemHandler.Create)
	e.DELETE("/items/:id", itemHandler.Delete)
	e.GET("/search", itemHandler.Search)
	e.GET("/image/:filename", imageHandler.Get)

	return &Server{e: e}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

// Shutdown drains in-flight requests before returning.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

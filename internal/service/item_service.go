package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/moritama/fleamarket-backend/internal/blob"
	"github.com/moritama/fleamarket-backend/internal/model"
	"github.com/moritama/fleamarket-backend/internal/repository"
)

var ErrNotFound = errors.New("not found")

// ValidationError marks failures the caller can correct: bad field lengths,
// wrong image type, malformed filenames.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalidf(format string, a ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, a...)}
}

const (
	maxItemNameLen     = 32
	maxCategoryNameLen = 12
	jpegContentType    = "image/jpeg"
)

// CreateResult echoes back what was registered; generated ids and filenames
// stay internal.
type CreateResult struct {
	Name     string
	Category string
}

type ItemService interface {
	Create(ctx context.Context, name, category string, image []byte, contentType string) (*CreateResult, error)
	List(ctx context.Context) ([]repository.ItemRow, error)
	Get(ctx context.Context, id uint64) (*repository.ItemRow, error)
	Search(ctx context.Context, keyword string) ([]repository.ItemRow, error)
	Delete(ctx context.Context, id uint64) (string, error)
	Image(filename string) ([]byte, error)
}

type itemService struct {
	items      repository.ItemRepository
	categories repository.CategoryRepository
	blobs      *blob.Store
}

func NewItemService(items repository.ItemRepository, categories repository.CategoryRepository, blobs *blob.Store) ItemService {
	return &itemService{items: items, categories: categories, blobs: blobs}
}

// Create validates everything before any side effect, then performs one blob
// write, at most one category insert, and exactly one item insert.
func (s *itemService) Create(ctx context.Context, name, category string, image []byte, contentType string) (*CreateResult, error) {
	name = strings.TrimSpace(name)
	category = strings.TrimSpace(category)
	if name == "" {
		return nil, invalidf("name is required")
	}
	if len(name) > maxItemNameLen {
		return nil, invalidf("name must be at most %d characters", maxItemNameLen)
	}
	if category == "" {
		return nil, invalidf("category is required")
	}
	if len(category) > maxCategoryNameLen {
		return nil, invalidf("category must be at most %d characters", maxCategoryNameLen)
	}
	if contentType != jpegContentType {
		return nil, invalidf("image must be %s", jpegContentType)
	}

	filename, err := s.blobs.Put(image)
	if err != nil {
		return nil, err
	}

	cat, err := s.categories.GetOrCreate(ctx, category)
	if err != nil {
		return nil, err
	}

	item := &model.Item{
		Name:          name,
		CategoryID:    cat.ID,
		ImageFilename: filename,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}

	return &CreateResult{Name: name, Category: category}, nil
}

func (s *itemService) List(ctx context.Context) ([]repository.ItemRow, error) {
	return s.items.ListJoined(ctx)
}

func (s *itemService) Get(ctx context.Context, id uint64) (*repository.ItemRow, error) {
	row, err := s.items.FindJoinedByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return row, nil
}

// Search matches items whose name contains keyword as a substring. An empty
// keyword matches every item.
func (s *itemService) Search(ctx context.Context, keyword string) ([]repository.ItemRow, error) {
	return s.items.SearchJoined(ctx, keyword)
}

// Delete looks the item up first so its name can be reported back. The
// associated blob is left in place; duplicate images may be shared between
// items.
func (s *itemService) Delete(ctx context.Context, id uint64) (string, error) {
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	if err := s.items.DeleteByID(ctx, id); err != nil {
		return "", err
	}
	return item.Name, nil
}

// Image returns the stored bytes for filename, substituting the default
// image when the blob is absent. Malformed filenames fail validation before
// existence is considered.
func (s *itemService) Image(filename string) ([]byte, error) {
	data, err := s.blobs.Get(filename)
	if err == nil {
		return data, nil
	}
	if errors.Is(err, blob.ErrInvalidFilename) {
		return nil, invalidf("image filename must end with .jpg")
	}
	if errors.Is(err, blob.ErrNotFound) {
		return s.blobs.Get(blob.DefaultFilename)
	}
	return nil, err
}

package repository

import (
	"context"
	"errors"

	"github.com/moritama/fleamarket-backend/internal/model"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// ItemRow is the joined read shape for item queries: the item's own columns
// plus the resolved category name.
type ItemRow struct {
	ID            uint64
	Name          string
	Category      string
	ImageFilename string
}

type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) error
	FindByID(ctx context.Context, id uint64) (*model.Item, error)
	ListJoined(ctx context.Context) ([]ItemRow, error)
	FindJoinedByID(ctx context.Context, id uint64) (*ItemRow, error)
	SearchJoined(ctx context.Context, keyword string) ([]ItemRow, error)
	DeleteByID(ctx context.Context, id uint64) error
}

type itemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *itemRepository) FindByID(ctx context.Context, id uint64) (*model.Item, error) {
	var item model.Item
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&model.Item{}).
		Select("items.id, items.name, category.name AS category, items.image_filename").
		Joins("INNER JOIN category ON category.id = items.category_id")
}

func (r *itemRepository) ListJoined(ctx context.Context) ([]ItemRow, error) {
	rows := []ItemRow{}
	if err := r.joined(ctx).
		Order("items.id ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *itemRepository) FindJoinedByID(ctx context.Context, id uint64) (*ItemRow, error) {
	var row ItemRow
	res := r.joined(ctx).
		Where("items.id = ?", id).
		Limit(1).
		Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &row, nil
}

func (r *itemRepository) SearchJoined(ctx context.Context, keyword string) ([]ItemRow, error) {
	rows := []ItemRow{}
	if err := r.joined(ctx).
		Where("items.name LIKE ?", "%"+keyword+"%").
		Order("items.id ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *itemRepository) DeleteByID(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&model.Item{}, id).Error
}

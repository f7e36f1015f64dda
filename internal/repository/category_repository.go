package repository

import (
	"context"

	"github.com/moritama/fleamarket-backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CategoryRepository interface {
	GetOrCreate(ctx context.Context, name string) (*model.Category, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// GetOrCreate resolves a category by name, inserting it first if absent.
// The insert is a single ON CONFLICT DO NOTHING, so two concurrent callers
// racing on a brand-new name both land on the one surviving row.
func (r *categoryRepository) GetOrCreate(ctx context.Context, name string) (*model.Category, error) {
	cat := model.Category{Name: name}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(&cat).Error; err != nil {
		return nil, err
	}

	var resolved model.Category
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&resolved).Error; err != nil {
		return nil, err
	}
	return &resolved, nil
}

package db

import (
	"context"
	"os"
	"path/filepath"

	"github.com/moritama/fleamarket-backend/internal/config"
	"github.com/moritama/fleamarket-backend/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	gcfg := &gorm.Config{
		PrepareStmt: true,
		Logger:      logger.Default.LogMode(logger.Warn),
	}
	db, err := gorm.Open(sqlite.Open(cfg.DBPath+"?_fk=1"), gcfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// sqlite allows a single writer; one shared connection is enough here.
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.Category{}, &model.Item{})
}

// Seed inserts the sample catalog on a fresh database. It is a no-op as
// soon as any category row exists.
func Seed(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&model.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seed := []struct {
		category string
		item     string
	}{
		{"Fashion", "Hat"},
		{"Toy", "Teddy Bear"},
		{"Instrument", "Guitar"},
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, s := range seed {
			cat := model.Category{Name: s.category}
			if err := tx.Create(&cat).Error; err != nil {
				return err
			}
			item := model.Item{
				Name:          s.item,
				CategoryID:    cat.ID,
				ImageFilename: "default.jpg",
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

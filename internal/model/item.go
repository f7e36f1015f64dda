package model

type Item struct {
	ID            uint64 `gorm:"primaryKey;autoIncrement"`
	Name          string `gorm:"size:32;not null"`
	CategoryID    uint64 `gorm:"column:category_id;not null;index:idx_items_category_id"`
	ImageFilename string `gorm:"column:image_filename;size:128;not null"`
}

func (Item) TableName() string {
	return "items"
}

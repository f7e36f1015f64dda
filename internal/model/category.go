package model

type Category struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"size:12;not null;uniqueIndex:uk_category_name"`
}

func (Category) TableName() string {
	return "category"
}

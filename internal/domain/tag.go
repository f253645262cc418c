package domain

import "context"

// Tag 全局共享，去规范化后唯一；无引用也不回收
type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:100;not null" json:"name"`
}

func (Tag) TableName() string { return "tags" }

type TagRepository interface {
	// GetOrCreate 输入先归一化（trim + 小写 + 去重），复用已有、补建缺失
	GetOrCreate(ctx context.Context, labels []string) ([]Tag, error)
}

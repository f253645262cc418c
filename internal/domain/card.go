package domain

import "context"

type Card struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Term        string `gorm:"type:text;not null" json:"term"`
	Definition  string `gorm:"type:text;not null" json:"definition"`
	Example     string `gorm:"type:text" json:"example,omitempty"`
	Translation string `gorm:"type:text" json:"translation,omitempty"`
	// 手动排序序号，组内升序展示；"order" 是保留字，列名用 order_index
	OrderIndex int  `gorm:"column:order_index;not null;default:0" json:"order"`
	SetID      uint `gorm:"not null;index" json:"set_id"`
}

func (Card) TableName() string { return "cards" }

type CardCreate struct {
	Term        string `json:"term" binding:"required"`
	Definition  string `json:"definition" binding:"required"`
	Example     string `json:"example"`
	Translation string `json:"translation"`
}

// CardPatch 只改文本字段，顺序走 Reorder
type CardPatch struct {
	Term        *string `json:"term"`
	Definition  *string `json:"definition"`
	Example     *string `json:"example"`
	Translation *string `json:"translation"`
}

// CardRepository 不做归属校验，调用方先经 CardSetRepository 验 owner
type CardRepository interface {
	ListBySet(ctx context.Context, setID uint, skip, limit int) ([]Card, error)
	FindByID(ctx context.Context, cardID uint) (*Card, error)
	// Create 追加到末尾：order = max(组内 order, 0) + 1
	Create(ctx context.Context, setID uint, data CardCreate) (*Card, error)
	Update(ctx context.Context, cardID uint, patch CardPatch) (*Card, error)
	Delete(ctx context.Context, cardID uint) error
	// Reorder 按给定序列赋 order = 下标；不属于该组的 id 静默忽略
	Reorder(ctx context.Context, setID uint, orderedIDs []uint) error
	DeleteAllInSet(ctx context.Context, setID uint) error
}

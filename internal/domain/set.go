package domain

import (
	"context"
	"time"
)

type CardSet struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null;index" json:"name"`
	Description *string   `gorm:"type:text" json:"description"`
	IsPublic    bool      `gorm:"not null;default:false" json:"is_public"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	OwnerID     uint      `gorm:"not null;index" json:"owner_id"`
	FolderID    uint      `gorm:"not null;index" json:"folder_id"`

	Tags  []Tag  `gorm:"many2many:card_set_tags" json:"tags"`
	Cards []Card `gorm:"foreignKey:SetID;constraint:OnDelete:CASCADE" json:"-"`

	// 读时计算，不落库
	CardCount int64 `gorm:"->;-:migration" json:"card_count"`
}

func (CardSet) TableName() string { return "card_sets" }

type CardSetCreate struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description *string `json:"description"`
	IsPublic    bool    `json:"is_public"`
	Tags        []string `json:"tags"`
}

// CardSetPatch 部分更新；Tags 非 nil 时整体替换关联（不合并）
type CardSetPatch struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	IsPublic    *bool     `json:"is_public"`
	Tags        *[]string `json:"tags"`
}

type CardSetRepository interface {
	// ListByFolder 父文件夹不可见时返回 ErrNotFound（不暴露存在性）
	ListByFolder(ctx context.Context, folderID, callerID uint, skip, limit int, search string, tags []string) ([]CardSet, error)
	GetByID(ctx context.Context, setID, callerID uint) (*CardSet, error)
	// CreateInFolder 卡组 owner 恒等于文件夹 owner
	CreateInFolder(ctx context.Context, folderID, ownerID uint, data CardSetCreate) (*CardSet, error)
	Update(ctx context.Context, setID, callerID uint, patch CardSetPatch) (*CardSet, error)
	Delete(ctx context.Context, setID, callerID uint) error
}

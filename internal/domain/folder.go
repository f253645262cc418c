package domain

import (
	"context"
	"time"
)

type Folder struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null;index" json:"name"`
	IsPublic  bool      `gorm:"not null;default:false" json:"is_public"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	OwnerID   uint      `gorm:"not null;index" json:"owner_id"`

	Sets []CardSet `gorm:"foreignKey:FolderID;constraint:OnDelete:CASCADE" json:"-"`

	// 读时计算，不落库
	SetCount int64 `gorm:"->;-:migration" json:"set_count"`
}

func (Folder) TableName() string { return "folders" }

// FolderPatch 部分更新：nil 字段不动
type FolderPatch struct {
	Name     *string `json:"name"`
	IsPublic *bool   `json:"is_public"`
}

// FolderRepository 可见性规则（owner 或 public）由实现内部保证。
// 不可见一律 ErrNotFound，可见非 owner 的写操作 ErrForbidden。
type FolderRepository interface {
	List(ctx context.Context, ownerID uint, skip, limit int, search string) ([]Folder, error)
	Create(ctx context.Context, ownerID uint, name string, isPublic bool) (*Folder, error)
	Update(ctx context.Context, folderID, callerID uint, patch FolderPatch) (*Folder, error)
	// Delete 文件夹内仍有卡组时返回 ErrConflict
	Delete(ctx context.Context, folderID, callerID uint) error
}

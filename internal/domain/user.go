package domain

import (
	"context"
	"time"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string    `gorm:"size:100;not null" json:"-"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`

	// 级联：删用户 → 删其文件夹/卡组（卡片随卡组级联）
	Folders []Folder  `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	Sets    []CardSet `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
}

func (User) TableName() string { return "users" }

type UserRepository interface {
	// Create 邮箱重复返回 ErrEmailTaken
	Create(ctx context.Context, email, password string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
}

package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"go-flashcards-api/internal/domain"
)

type FolderRepo struct{ db *gorm.DB }

func NewFolderRepo(db *gorm.DB) *FolderRepo { return &FolderRepo{db: db} }

func (r *FolderRepo) List(ctx context.Context, ownerID uint, skip, limit int, search string) ([]domain.Folder, error) {
	q := r.db.WithContext(ctx).Model(&domain.Folder{}).
		Select("folders.*, COUNT(card_sets.id) AS set_count").
		Joins("LEFT JOIN card_sets ON card_sets.folder_id = folders.id").
		Where("folders.owner_id = ? OR folders.is_public = ?", ownerID, true).
		Group("folders.id")

	if s := strings.TrimSpace(search); s != "" {
		q = q.Where("LOWER(folders.name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	var folders []domain.Folder
	err := q.Order("folders.created_at DESC").
		Offset(normSkip(skip)).Limit(normLimit(limit, 20, 100)).
		Find(&folders).Error
	return folders, err
}

func (r *FolderRepo) Create(ctx context.Context, ownerID uint, name string, isPublic bool) (*domain.Folder, error) {
	f := domain.Folder{Name: name, IsPublic: isPublic, OwnerID: ownerID}
	if err := r.db.WithContext(ctx).Create(&f).Error; err != nil {
		return nil, err
	}
	f.SetCount = 0
	return &f, nil
}

func (r *FolderRepo) Update(ctx context.Context, folderID, callerID uint, patch domain.FolderPatch) (*domain.Folder, error) {
	var out *domain.Folder
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		f, err := findFolder(tx, folderID)
		if err != nil {
			return err
		}
		if err := requireOwner(f == nil, f != nil && f.IsPublic, f != nil && f.OwnerID == callerID); err != nil {
			return err
		}

		updates := map[string]any{}
		if patch.Name != nil {
			updates["name"] = *patch.Name
		}
		if patch.IsPublic != nil {
			updates["is_public"] = *patch.IsPublic
		}
		if len(updates) > 0 {
			if err := tx.Model(f).Updates(updates).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&domain.CardSet{}).Where("folder_id = ?", folderID).Count(&f.SetCount).Error; err != nil {
			return err
		}
		out = f
		return nil
	})
	return out, err
}

func (r *FolderRepo) Delete(ctx context.Context, folderID, callerID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		f, err := findFolder(tx, folderID)
		if err != nil {
			return err
		}
		if err := requireOwner(f == nil, f != nil && f.IsPublic, f != nil && f.OwnerID == callerID); err != nil {
			return err
		}

		var sets int64
		if err := tx.Model(&domain.CardSet{}).Where("folder_id = ?", folderID).Count(&sets).Error; err != nil {
			return err
		}
		if sets > 0 {
			return fmt.Errorf("%w: folder contains card sets", domain.ErrConflict)
		}
		return tx.Delete(&domain.Folder{}, folderID).Error
	})
}

func findFolder(tx *gorm.DB, id uint) (*domain.Folder, error) {
	var f domain.Folder
	err := tx.First(&f, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// requireOwner 统一写路径访问阶梯：
// 不存在或私有且非本人 → ErrNotFound（不暴露存在性）；公开但非本人 → ErrForbidden
func requireOwner(absent, public, owner bool) error {
	switch {
	case absent:
		return domain.ErrNotFound
	case owner:
		return nil
	case public:
		return domain.ErrForbidden
	default:
		return domain.ErrNotFound
	}
}

func normSkip(skip int) int {
	if skip < 0 {
		return 0
	}
	return skip
}

func normLimit(limit, def, maxAllowed int) int {
	if limit <= 0 || limit > maxAllowed {
		return def
	}
	return limit
}

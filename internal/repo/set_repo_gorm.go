package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"go-flashcards-api/internal/domain"
)

type CardSetRepo struct{ db *gorm.DB }

func NewCardSetRepo(db *gorm.DB) *CardSetRepo { return &CardSetRepo{db: db} }

func (r *CardSetRepo) ListByFolder(ctx context.Context, folderID, callerID uint, skip, limit int, search string, tags []string) ([]domain.CardSet, error) {
	f, err := findFolder(r.db.WithContext(ctx), folderID)
	if err != nil {
		return nil, err
	}
	// 父文件夹不可见 → 404，不暴露存在性
	if f == nil || (!f.IsPublic && f.OwnerID != callerID) {
		return nil, domain.ErrNotFound
	}

	q := r.db.WithContext(ctx).Model(&domain.CardSet{}).
		Select("card_sets.*, COUNT(DISTINCT cards.id) AS card_count").
		Joins("LEFT JOIN cards ON cards.set_id = card_sets.id").
		Where("card_sets.folder_id = ?", folderID).
		Group("card_sets.id").
		Preload("Tags")

	if s := strings.TrimSpace(search); s != "" {
		q = q.Where("LOWER(card_sets.name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	if names := normalizeLabels(tags); len(names) > 0 {
		// 至少命中一个标签即可
		q = q.Joins("JOIN card_set_tags ON card_set_tags.card_set_id = card_sets.id").
			Joins("JOIN tags ON tags.id = card_set_tags.tag_id").
			Where("tags.name IN ?", names)
	}

	var sets []domain.CardSet
	err = q.Order("card_sets.created_at DESC").
		Offset(normSkip(skip)).Limit(normLimit(limit, 20, 100)).
		Find(&sets).Error
	return sets, err
}

func (r *CardSetRepo) GetByID(ctx context.Context, setID, callerID uint) (*domain.CardSet, error) {
	return getSetByID(r.db.WithContext(ctx), setID, callerID)
}

// getSetByID card_count 走标量子查询，避免和标签预载的 JOIN/GROUP BY 打架
func getSetByID(tx *gorm.DB, setID, callerID uint) (*domain.CardSet, error) {
	var s domain.CardSet
	err := tx.Model(&domain.CardSet{}).
		Select("card_sets.*, (SELECT COUNT(*) FROM cards WHERE cards.set_id = card_sets.id) AS card_count").
		Preload("Tags").
		Where("card_sets.id = ?", setID).
		Take(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !s.IsPublic && s.OwnerID != callerID {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (r *CardSetRepo) CreateInFolder(ctx context.Context, folderID, ownerID uint, data domain.CardSetCreate) (*domain.CardSet, error) {
	var out *domain.CardSet
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		f, err := findFolder(tx, folderID)
		if err != nil {
			return err
		}
		if err := requireOwner(f == nil, f != nil && f.IsPublic, f != nil && f.OwnerID == ownerID); err != nil {
			return err
		}

		tags, err := getOrCreateTags(tx, data.Tags)
		if err != nil {
			return err
		}

		// 卡组 owner 恒等于文件夹 owner，杜绝跨树分叉
		s := domain.CardSet{
			Name:        data.Name,
			Description: data.Description,
			IsPublic:    data.IsPublic,
			OwnerID:     f.OwnerID,
			FolderID:    f.ID,
			Tags:        tags,
		}
		if err := tx.Create(&s).Error; err != nil {
			return err
		}
		s.CardCount = 0
		if s.Tags == nil {
			s.Tags = []domain.Tag{}
		}
		out = &s
		return nil
	})
	return out, err
}

func (r *CardSetRepo) Update(ctx context.Context, setID, callerID uint, patch domain.CardSetPatch) (*domain.CardSet, error) {
	var out *domain.CardSet
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 读写共用同一条访问路径
		s, err := getSetByID(tx, setID, callerID)
		if err != nil {
			return err
		}
		if s.OwnerID != callerID {
			return domain.ErrForbidden // 公开卡组对非 owner 只读
		}

		if patch.Tags != nil {
			tags, err := getOrCreateTags(tx, *patch.Tags)
			if err != nil {
				return err
			}
			// 整体替换关联，不做合并
			if err := tx.Model(s).Association("Tags").Replace(&tags); err != nil {
				return err
			}
		}

		updates := map[string]any{}
		if patch.Name != nil {
			updates["name"] = *patch.Name
		}
		if patch.Description != nil {
			updates["description"] = *patch.Description
		}
		if patch.IsPublic != nil {
			updates["is_public"] = *patch.IsPublic
		}
		if len(updates) > 0 {
			if err := tx.Model(s).Updates(updates).Error; err != nil {
				return err
			}
		}

		// 提交前重读，带回新鲜的 card_count 和标签
		out, err = getSetByID(tx, setID, callerID)
		return err
	})
	return out, err
}

func (r *CardSetRepo) Delete(ctx context.Context, setID, callerID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var s domain.CardSet
		err := tx.First(&s, "id = ?", setID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}
		if err := requireOwner(false, s.IsPublic, s.OwnerID == callerID); err != nil {
			return err
		}

		if err := tx.Where("set_id = ?", setID).Delete(&domain.Card{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&s).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&domain.CardSet{}, setID).Error
	})
}

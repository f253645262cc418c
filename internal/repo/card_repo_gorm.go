package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"go-flashcards-api/internal/domain"
)

// CardRepo 不做归属校验，调用边界先经 CardSetRepo 验 owner
type CardRepo struct{ db *gorm.DB }

func NewCardRepo(db *gorm.DB) *CardRepo { return &CardRepo{db: db} }

func (r *CardRepo) ListBySet(ctx context.Context, setID uint, skip, limit int) ([]domain.Card, error) {
	var cards []domain.Card
	err := r.db.WithContext(ctx).
		Where("set_id = ?", setID).
		Order("order_index ASC").
		Offset(normSkip(skip)).Limit(normLimit(limit, 100, 500)).
		Find(&cards).Error
	return cards, err
}

func (r *CardRepo) FindByID(ctx context.Context, cardID uint) (*domain.Card, error) {
	var c domain.Card
	err := r.db.WithContext(ctx).First(&c, "id = ?", cardID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CardRepo) Create(ctx context.Context, setID uint, data domain.CardCreate) (*domain.Card, error) {
	var out *domain.Card
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 单调追加：不复用删除留下的空洞
		var maxOrder int
		if err := tx.Model(&domain.Card{}).
			Where("set_id = ?", setID).
			Select("COALESCE(MAX(order_index), 0)").
			Scan(&maxOrder).Error; err != nil {
			return err
		}

		c := domain.Card{
			Term:        data.Term,
			Definition:  data.Definition,
			Example:     data.Example,
			Translation: data.Translation,
			OrderIndex:  maxOrder + 1,
			SetID:       setID,
		}
		if err := tx.Create(&c).Error; err != nil {
			return err
		}
		out = &c
		return nil
	})
	return out, err
}

func (r *CardRepo) Update(ctx context.Context, cardID uint, patch domain.CardPatch) (*domain.Card, error) {
	c, err := r.FindByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}

	updates := map[string]any{}
	if patch.Term != nil {
		updates["term"] = *patch.Term
	}
	if patch.Definition != nil {
		updates["definition"] = *patch.Definition
	}
	if patch.Example != nil {
		updates["example"] = *patch.Example
	}
	if patch.Translation != nil {
		updates["translation"] = *patch.Translation
	}
	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).Model(c).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (r *CardRepo) Delete(ctx context.Context, cardID uint) error {
	res := r.db.WithContext(ctx).Delete(&domain.Card{}, cardID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Reorder order = 给定序列下标；不属于该组的 id 静默忽略。幂等。
func (r *CardRepo) Reorder(ctx context.Context, setID uint, orderedIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uint
		if err := tx.Model(&domain.Card{}).Where("set_id = ?", setID).Pluck("id", &ids).Error; err != nil {
			return err
		}
		inSet := make(map[uint]struct{}, len(ids))
		for _, id := range ids {
			inSet[id] = struct{}{}
		}

		for idx, id := range orderedIDs {
			if _, ok := inSet[id]; !ok {
				continue
			}
			if err := tx.Model(&domain.Card{}).Where("id = ?", id).
				Update("order_index", idx).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *CardRepo) DeleteAllInSet(ctx context.Context, setID uint) error {
	return r.db.WithContext(ctx).Where("set_id = ?", setID).Delete(&domain.Card{}).Error
}

package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"go-flashcards-api/internal/domain"
)

type TagRepo struct{ db *gorm.DB }

func NewTagRepo(db *gorm.DB) *TagRepo { return &TagRepo{db: db} }

func (r *TagRepo) GetOrCreate(ctx context.Context, labels []string) ([]domain.Tag, error) {
	var tags []domain.Tag
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var e error
		tags, e = getOrCreateTags(tx, labels)
		return e
	})
	return tags, err
}

// normalizeLabels trim + 小写归一，去空去重（保持首见顺序）
func normalizeLabels(labels []string) []string {
	seen := make(map[string]struct{}, len(labels))
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		n := strings.ToLower(strings.TrimSpace(l))
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// getOrCreateTags 复用已有标签、补建缺失。并发补建撞唯一索引时回查赢家。
func getOrCreateTags(tx *gorm.DB, labels []string) ([]domain.Tag, error) {
	names := normalizeLabels(labels)
	if len(names) == 0 {
		return []domain.Tag{}, nil
	}

	var existing []domain.Tag
	if err := tx.Where("name IN ?", names).Find(&existing).Error; err != nil {
		return nil, err
	}
	byName := make(map[string]domain.Tag, len(existing))
	for _, t := range existing {
		byName[t.Name] = t
	}

	for _, name := range names {
		if _, ok := byName[name]; ok {
			continue
		}
		t := domain.Tag{Name: name}
		if err := tx.Create(&t).Error; err != nil {
			if !isDupKey(err) {
				return nil, err
			}
			// 唯一冲突 → 别人先建了，回查
			if err := tx.Where("name = ?", name).First(&t).Error; err != nil {
				return nil, err
			}
		}
		byName[name] = t
	}

	out := make([]domain.Tag, 0, len(names))
	for _, name := range names {
		out = append(out, byName[name])
	}
	return out, nil
}

// isDupKey 不依赖 gorm.ErrDuplicatedKey，避免驱动差异
func isDupKey(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}

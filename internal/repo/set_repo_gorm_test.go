package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-flashcards-api/internal/domain"
)

func tagNames(s *domain.CardSet) []string {
	names := make([]string, 0, len(s.Tags))
	for _, tg := range s.Tags {
		names = append(names, tg.Name)
	}
	return names
}

func TestSetListByFolder_HiddenFolder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "owner@example.com")
	other := seedUser(t, db, "other@example.com")
	private := seedFolder(t, db, owner.ID, "Private", false)
	repo := NewCardSetRepo(db)

	_, err := repo.ListByFolder(ctx, private.ID, other.ID, 0, 20, "", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.ListByFolder(ctx, 9999, owner.ID, 0, 20, "", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSetListByFolder_CardCountAndTagFilter(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	u := seedUser(t, db, "u@example.com")
	f := seedFolder(t, db, u.ID, "Spanish", false)
	verbs := seedSet(t, db, f.ID, u.ID, "Verbs", "verbs", "a1")
	nouns := seedSet(t, db, f.ID, u.ID, "Nouns", "nouns", "a1")
	seedCard(t, db, verbs.ID, "correr")
	seedCard(t, db, verbs.ID, "comer")
	seedCard(t, db, nouns.ID, "casa")
	repo := NewCardSetRepo(db)

	sets, err := repo.ListByFolder(ctx, f.ID, u.ID, 0, 20, "", nil)
	require.NoError(t, err)
	require.Len(t, sets, 2)
	counts := map[string]int64{}
	for _, s := range sets {
		counts[s.Name] = s.CardCount
	}
	assert.Equal(t, int64(2), counts["Verbs"])
	assert.Equal(t, int64(1), counts["Nouns"])

	// 标签过滤，名称归一化后匹配
	sets, err = repo.ListByFolder(ctx, f.ID, u.ID, 0, 20, "", []string{" VERBS "})
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, "Verbs", sets[0].Name)

	// 共有标签 a1 命中两个
	sets, err = repo.ListByFolder(ctx, f.ID, u.ID, 0, 20, "", []string{"a1"})
	require.NoError(t, err)
	assert.Len(t, sets, 2)
}

func TestSetCreateInFolder_OwnerFollowsFolder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "owner@example.com")
	other := seedUser(t, db, "other@example.com")
	pub := seedFolder(t, db, owner.ID, "Public", true)
	repo := NewCardSetRepo(db)

	// 公开文件夹非 owner 不能建
	_, err := repo.CreateInFolder(ctx, pub.ID, other.ID, domain.CardSetCreate{Name: "Nope"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	s, err := repo.CreateInFolder(ctx, pub.ID, owner.ID, domain.CardSetCreate{
		Name: "Mine",
		Tags: []string{"Go", "go ", " GO"},
	})
	require.NoError(t, err)
	assert.Equal(t, owner.ID, s.OwnerID)
	assert.Zero(t, s.CardCount)
	assert.Equal(t, []string{"go"}, tagNames(s))
}

func TestSetGetByID_Visibility(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "owner@example.com")
	other := seedUser(t, db, "other@example.com")
	f := seedFolder(t, db, owner.ID, "F", false)
	private := seedSet(t, db, f.ID, owner.ID, "Private")
	repo := NewCardSetRepo(db)

	got, err := repo.GetByID(ctx, private.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Private", got.Name)

	_, err = repo.GetByID(ctx, private.ID, other.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// 公开卡组任何人可读
	pub, err := repo.Update(ctx, private.ID, owner.ID, domain.CardSetPatch{IsPublic: boolPtr(true)})
	require.NoError(t, err)
	got, err = repo.GetByID(ctx, pub.ID, other.ID)
	require.NoError(t, err)
	assert.True(t, got.IsPublic)
}

func TestSetUpdate_PartialAndTagReplace(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	u := seedUser(t, db, "u@example.com")
	f := seedFolder(t, db, u.ID, "F", false)
	s := seedSet(t, db, f.ID, u.ID, "Verbs", "verbs", "a1")
	seedCard(t, db, s.ID, "run")
	repo := NewCardSetRepo(db)

	// Tags 为 nil 时不动关联
	got, err := repo.Update(ctx, s.ID, u.ID, domain.CardSetPatch{Name: strPtr("Verbs v2")})
	require.NoError(t, err)
	assert.Equal(t, "Verbs v2", got.Name)
	assert.ElementsMatch(t, []string{"verbs", "a1"}, tagNames(got))
	assert.Equal(t, int64(1), got.CardCount)

	// Tags 非 nil 整体替换
	newTags := []string{"verbs", "b1"}
	got, err = repo.Update(ctx, s.ID, u.ID, domain.CardSetPatch{Tags: &newTags})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"verbs", "b1"}, tagNames(got))

	// 旧标签仍在全局表里（不回收）
	tags, err := NewTagRepo(db).GetOrCreate(ctx, []string{"a1"})
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.NotZero(t, tags[0].ID)

	// 公开非 owner 改 → Forbidden
	other := seedUser(t, db, "other@example.com")
	pubTags := []string{"x"}
	_, err = repo.Update(ctx, s.ID, other.ID, domain.CardSetPatch{Tags: &pubTags})
	assert.ErrorIs(t, err, domain.ErrNotFound) // 私有对外不可见

	_, err = repo.Update(ctx, s.ID, u.ID, domain.CardSetPatch{IsPublic: boolPtr(true)})
	require.NoError(t, err)
	_, err = repo.Update(ctx, s.ID, other.ID, domain.CardSetPatch{Tags: &pubTags})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSetDelete_CascadesCards(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	u := seedUser(t, db, "u@example.com")
	f := seedFolder(t, db, u.ID, "F", false)
	s := seedSet(t, db, f.ID, u.ID, "S", "tag1")
	seedCard(t, db, s.ID, "a")
	seedCard(t, db, s.ID, "b")
	setRepo := NewCardSetRepo(db)
	cardRepo := NewCardRepo(db)

	require.NoError(t, setRepo.Delete(ctx, s.ID, u.ID))

	_, err := setRepo.GetByID(ctx, s.ID, u.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	cards, err := cardRepo.ListBySet(ctx, s.ID, 0, 100)
	require.NoError(t, err)
	assert.Empty(t, cards)

	// 文件夹 set_count 回到 0
	folders, err := NewFolderRepo(db).List(ctx, u.ID, 0, 20, "")
	require.NoError(t, err)
	require.Len(t, folders, 1)
	assert.Zero(t, folders[0].SetCount)
}

// 端到端仓储场景：建夹 → 建组 → 加卡 → 删卡 → 复查
func TestSetLifecycleScenario(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	u := seedUser(t, db, "learner@example.com")
	f := seedFolder(t, db, u.ID, "English", false)
	setRepo := NewCardSetRepo(db)
	cardRepo := NewCardRepo(db)

	s, err := setRepo.CreateInFolder(ctx, f.ID, u.ID, domain.CardSetCreate{
		Name: "Irregular Verbs",
		Tags: []string{"verbs", "b1"},
	})
	require.NoError(t, err)

	run := seedCard(t, db, s.ID, "run")
	eat := seedCard(t, db, s.ID, "eat")
	assert.Equal(t, 1, run.OrderIndex)
	assert.Equal(t, 2, eat.OrderIndex)

	require.NoError(t, cardRepo.Delete(ctx, eat.ID))

	cards, err := cardRepo.ListBySet(ctx, s.ID, 0, 100)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "run", cards[0].Term)
	assert.Equal(t, 1, cards[0].OrderIndex)

	got, err := setRepo.GetByID(ctx, s.ID, u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.CardCount)
	assert.ElementsMatch(t, []string{"verbs", "b1"}, tagNames(got))
}

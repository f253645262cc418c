package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-flashcards-api/internal/domain"
	"go-flashcards-api/internal/transport/http/ez"
	mdw "go-flashcards-api/internal/transport/http/middleware"
)

// requireSetOwner 卡片写路径的统一闸门：组不可见 → ErrNotFound，可见非 owner → ErrForbidden
func requireSetOwner(ctx context.Context, sets domain.CardSetRepository, setID, callerID uint) (*domain.CardSet, error) {
	s, err := sets.GetByID(ctx, setID, callerID)
	if err != nil {
		return nil, err
	}
	if s.OwnerID != callerID {
		return nil, domain.ErrForbidden
	}
	return s, nil
}

func mountSetActions(e ez.EZ, sets domain.CardSetRepository, cards domain.CardRepository) {
	// GET /sets/:id
	ez.RegisterAction(e, ez.Action[struct{}, *domain.CardSet]{
		Method: http.MethodGet,
		Path:   "/sets/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.CardSet, error) {
			id, err := uintParam(c, "id")
			if err != nil {
				return nil, err
			}
			u := mdw.CurrentUser(c)
			return sets.GetByID(c.Request.Context(), id, u.ID)
		},
	})

	// PUT /sets/:id 部分更新；tags 字段出现时整体替换
	ez.RegisterAction(e, ez.Action[domain.CardSetPatch, *domain.CardSet]{
		Method: http.MethodPut,
		Path:   "/sets/:id",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *domain.CardSetPatch) (*domain.CardSet, error) {
			id, err := uintParam(c, "id")
			if err != nil {
				return nil, err
			}
			u := mdw.CurrentUser(c)
			return sets.Update(c.Request.Context(), id, u.ID, *in)
		},
	})

	// DELETE /sets/:id
	ez.RegisterAction(e, ez.Action[struct{}, struct{}]{
		Method: http.MethodDelete,
		Path:   "/sets/:id",
		Binder: ez.BindNone,
		Status: http.StatusNoContent,
		Handler: func(c *gin.Context, _ *struct{}) (struct{}, error) {
			id, err := uintParam(c, "id")
			if err != nil {
				return struct{}{}, err
			}
			u := mdw.CurrentUser(c)
			return struct{}{}, sets.Delete(c.Request.Context(), id, u.ID)
		},
	})

	// GET /sets/:id/cards 组内卡片，按 order 升序
	type cardListQ struct {
		Skip  int `form:"skip,default=0"`
		Limit int `form:"limit,default=100"`
	}
	ez.RegisterAction(e, ez.Action[cardListQ, []domain.Card]{
		Method: http.MethodGet,
		Path:   "/sets/:id/cards",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *cardListQ) ([]domain.Card, error) {
			id, err := uintParam(c, "id")
			if err != nil {
				return nil, err
			}
			u := mdw.CurrentUser(c)
			// 可见即可读
			if _, err := sets.GetByID(c.Request.Context(), id, u.ID); err != nil {
				return nil, err
			}
			return cards.ListBySet(c.Request.Context(), id, in.Skip, in.Limit)
		},
	})

	// POST /sets/:id/cards 追加到末尾
	ez.RegisterAction(e, ez.Action[domain.CardCreate, *domain.Card]{
		Method: http.MethodPost,
		Path:   "/sets/:id/cards",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *domain.CardCreate) (*domain.Card, error) {
			id, err := uintParam(c, "id")
			if err != nil {
				return nil, err
			}
			u := mdw.CurrentUser(c)
			if _, err := requireSetOwner(c.Request.Context(), sets, id, u.ID); err != nil {
				return nil, err
			}
			return cards.Create(c.Request.Context(), id, *in)
		},
	})

	// DELETE /sets/:id/cards 清空
	ez.RegisterAction(e, ez.Action[struct{}, struct{}]{
		Method: http.MethodDelete,
		Path:   "/sets/:id/cards",
		Binder: ez.BindNone,
		Status: http.StatusNoContent,
		Handler: func(c *gin.Context, _ *struct{}) (struct{}, error) {
			id, err := uintParam(c, "id")
			if err != nil {
				return struct{}{}, err
			}
			u := mdw.CurrentUser(c)
			if _, err := requireSetOwner(c.Request.Context(), sets, id, u.ID); err != nil {
				return struct{}{}, err
			}
			return struct{}{}, cards.DeleteAllInSet(c.Request.Context(), id)
		},
	})

	// POST /sets/:id/reorder order = 下标；不属于该组的 id 静默忽略
	type reorderIn struct {
		CardIDs []uint `json:"card_ids" binding:"required"`
	}
	ez.RegisterAction(e, ez.Action[reorderIn, struct{}]{
		Method: http.MethodPost,
		Path:   "/sets/:id/reorder",
		Binder: ez.BindJSON,
		Status: http.StatusNoContent,
		Handler: func(c *gin.Context, in *reorderIn) (struct{}, error) {
			id, err := uintParam(c, "id")
			if err != nil {
				return struct{}{}, err
			}
			u := mdw.CurrentUser(c)
			if _, err := requireSetOwner(c.Request.Context(), sets, id, u.ID); err != nil {
				return struct{}{}, err
			}
			return struct{}{}, cards.Reorder(c.Request.Context(), id, in.CardIDs)
		},
	})
}

package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-flashcards-api/internal/domain"
	"go-flashcards-api/internal/transport/http/ez"
	mdw "go-flashcards-api/internal/transport/http/middleware"
)

func mountCardActions(e ez.EZ, cards domain.CardRepository, sets domain.CardSetRepository) {
	// 卡片直改：先经所属卡组验 owner
	gate := func(c *gin.Context) (*domain.Card, error) {
		id, err := uintParam(c, "id")
		if err != nil {
			return nil, err
		}
		card, err := cards.FindByID(c.Request.Context(), id)
		if err != nil {
			return nil, err
		}
		if card == nil {
			return nil, domain.ErrNotFound
		}
		u := mdw.CurrentUser(c)
		if _, err := requireSetOwner(c.Request.Context(), sets, card.SetID, u.ID); err != nil {
			return nil, err
		}
		return card, nil
	}

	// PUT /cards/:id 文本字段自动保存；顺序走 /sets/:id/reorder
	ez.RegisterAction(e, ez.Action[domain.CardPatch, *domain.Card]{
		Method: http.MethodPut,
		Path:   "/cards/:id",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *domain.CardPatch) (*domain.Card, error) {
			card, err := gate(c)
			if err != nil {
				return nil, err
			}
			return cards.Update(c.Request.Context(), card.ID, *in)
		},
	})

	// DELETE /cards/:id
	ez.RegisterAction(e, ez.Action[struct{}, struct{}]{
		Method: http.MethodDelete,
		Path:   "/cards/:id",
		Binder: ez.BindNone,
		Status: http.StatusNoContent,
		Handler: func(c *gin.Context, _ *struct{}) (struct{}, error) {
			card, err := gate(c)
			if err != nil {
				return struct{}{}, err
			}
			return struct{}{}, cards.Delete(c.Request.Context(), card.ID)
		},
	})
}

package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-flashcards-api/internal/domain"
	"go-flashcards-api/internal/transport/http/ez"
	mdw "go-flashcards-api/internal/transport/http/middleware"
)

type pageQ struct {
	Skip   int    `form:"skip,default=0"`
	Limit  int    `form:"limit,default=20"`
	Search string `form:"search"`
}

func mountFolderActions(e ez.EZ, folders domain.FolderRepository, sets domain.CardSetRepository) {
	// GET /folders 自己的 + 公开的，带 set_count
	ez.RegisterAction(e, ez.Action[pageQ, []domain.Folder]{
		Method: http.MethodGet,
		Path:   "/folders",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *pageQ) ([]domain.Folder, error) {
			u := mdw.CurrentUser(c)
			return folders.List(c.Request.Context(), u.ID, in.Skip, in.Limit, in.Search)
		},
	})

	// POST /folders
	type folderIn struct {
		Name     string `json:"name" binding:"required,max=255"`
		IsPublic bool   `json:"is_public"`
	}
	ez.RegisterAction(e, ez.Action[folderIn, *domain.Folder]{
		Method: http.MethodPost,
		Path:   "/folders",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *folderIn) (*domain.Folder, error) {
			u := mdw.CurrentUser(c)
			return folders.Create(c.Request.Context(), u.ID, in.Name, in.IsPublic)
		},
	})

	// PUT /folders/:id 部分更新
	ez.RegisterAction(e, ez.Action[domain.FolderPatch, *domain.Folder]{
		Method: http.MethodPut,
		Path:   "/folders/:id",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *domain.FolderPatch) (*domain.Folder, error) {
			id, err := uintParam(c, "id")
			if err != nil {
				return nil, err
			}
			u := mdw.CurrentUser(c)
			return folders.Update(c.Request.Context(), id, u.ID, *in)
		},
	})

	// DELETE /folders/:id 非空 → 409
	ez.RegisterAction(e, ez.Action[struct{}, struct{}]{
		Method: http.MethodDelete,
		Path:   "/folders/:id",
		Binder: ez.BindNone,
		Status: http.StatusNoContent,
		Handler: func(c *gin.Context, _ *struct{}) (struct{}, error) {
			id, err := uintParam(c, "id")
			if err != nil {
				return struct{}{}, err
			}
			u := mdw.CurrentUser(c)
			return struct{}{}, folders.Delete(c.Request.Context(), id, u.ID)
		},
	})

	// GET /folders/:id/sets 文件夹内卡组（名称/标签过滤）
	type setListQ struct {
		Skip   int      `form:"skip,default=0"`
		Limit  int      `form:"limit,default=20"`
		Search string   `form:"search"`
		Tags   []string `form:"tags"`
	}
	ez.RegisterAction(e, ez.Action[setListQ, []domain.CardSet]{
		Method: http.MethodGet,
		Path:   "/folders/:id/sets",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *setListQ) ([]domain.CardSet, error) {
			id, err := uintParam(c, "id")
			if err != nil {
				return nil, err
			}
			u := mdw.CurrentUser(c)
			return sets.ListByFolder(c.Request.Context(), id, u.ID, in.Skip, in.Limit, in.Search, in.Tags)
		},
	})

	// POST /folders/:id/sets
	ez.RegisterAction(e, ez.Action[domain.CardSetCreate, *domain.CardSet]{
		Method: http.MethodPost,
		Path:   "/folders/:id/sets",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *domain.CardSetCreate) (*domain.CardSet, error) {
			id, err := uintParam(c, "id")
			if err != nil {
				return nil, err
			}
			u := mdw.CurrentUser(c)
			return sets.CreateInFolder(c.Request.Context(), id, u.ID, *in)
		},
	})
}

package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-flashcards-api/internal/domain"
	"go-flashcards-api/internal/transport/http/ez"
)

func mountUserActions(e ez.EZ, users domain.UserRepository) {
	type createIn struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8,max=72"`
	}
	type userOut struct {
		ID        uint      `json:"id"`
		Email     string    `json:"email"`
		IsActive  bool      `json:"is_active"`
		CreatedAt time.Time `json:"created_at"`
	}

	// POST /users 注册；邮箱已占用 → 400
	ez.RegisterAction(e, ez.Action[createIn, userOut]{
		Method: http.MethodPost,
		Path:   "/users",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *createIn) (userOut, error) {
			u, err := users.Create(c.Request.Context(), in.Email, in.Password)
			if err != nil {
				return userOut{}, err
			}
			return userOut{ID: u.ID, Email: u.Email, IsActive: u.IsActive, CreatedAt: u.CreatedAt}, nil
		},
	})
}

package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-flashcards-api/internal/core/auth"
	"go-flashcards-api/internal/domain"
	"go-flashcards-api/internal/transport/http/ez"
	"go-flashcards-api/pkg/utils"
)

const (
	refreshCookieName = "refresh_token"
	// cookie 只随刷新端点回传，别的请求不带
	refreshCookiePath = "/api/v1/auth/refresh"
)

type tokenOut struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func mountAuthActions(e ez.EZ, users domain.UserRepository, jwter *auth.JWTer, revoker auth.RevocationStore, cookieSecure bool) {
	setRefreshCookie := func(c *gin.Context, token string) {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(refreshCookieName, token, int(jwter.RefreshTTL.Seconds()), refreshCookiePath, "", cookieSecure, true)
	}

	issuePair := func(c *gin.Context, subject string) (tokenOut, error) {
		access, err := jwter.IssueAccess(subject)
		if err != nil {
			return tokenOut{}, ez.Internal("issue token failed", err)
		}
		refresh, _, err := jwter.IssueRefresh(subject)
		if err != nil {
			return tokenOut{}, ez.Internal("issue token failed", err)
		}
		setRefreshCookie(c, refresh)
		return tokenOut{AccessToken: access, TokenType: "bearer"}, nil
	}

	// POST /auth/login：OAuth2 风格 form（username 字段放 email）
	type loginIn struct {
		Username string `form:"username" binding:"required"`
		Password string `form:"password" binding:"required"`
	}
	ez.RegisterAction(e, ez.Action[loginIn, tokenOut]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: ez.BindForm,
		Handler: func(c *gin.Context, in *loginIn) (tokenOut, error) {
			u, err := users.FindByEmail(c.Request.Context(), in.Username)
			if err != nil {
				return tokenOut{}, ez.Internal("db error", err)
			}
			if u == nil || !u.IsActive || !utils.CheckPassword(in.Password, u.PasswordHash) {
				return tokenOut{}, ez.Unauthorized("incorrect email or password")
			}
			return issuePair(c, u.Email)
		},
	})

	// POST /auth/refresh：只认 cookie。轮换后旧 jti 进吊销表。
	ez.RegisterAction(e, ez.Action[struct{}, tokenOut]{
		Method: http.MethodPost,
		Path:   "/auth/refresh",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (tokenOut, error) {
			ctx := c.Request.Context()

			raw, err := c.Cookie(refreshCookieName)
			if err != nil || raw == "" {
				return tokenOut{}, ez.Unauthorized("missing refresh token")
			}
			claims, err := jwter.Parse(raw, auth.TypeRefresh)
			if err != nil {
				return tokenOut{}, ez.Unauthorized("invalid refresh token")
			}
			if revoked, err := revoker.IsRevoked(ctx, claims.ID); err != nil {
				return tokenOut{}, ez.Internal("revocation check failed", err)
			} else if revoked {
				return tokenOut{}, ez.Unauthorized("invalid refresh token")
			}

			u, err := users.FindByEmail(ctx, claims.Subject)
			if err != nil {
				return tokenOut{}, ez.Internal("db error", err)
			}
			if u == nil || !u.IsActive {
				return tokenOut{}, ez.Unauthorized("invalid refresh token")
			}

			out, err := issuePair(c, u.Email)
			if err != nil {
				return tokenOut{}, err
			}
			// 新对已发出才吊销旧 jti，失败不至于把用户锁在外面
			_ = revoker.Revoke(ctx, claims.ID, time.Until(claims.ExpiresAt.Time))
			return out, nil
		},
	})
}

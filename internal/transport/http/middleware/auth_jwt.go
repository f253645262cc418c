package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-flashcards-api/internal/core/auth"
	"go-flashcards-api/internal/domain"
	resp "go-flashcards-api/internal/transport/http/response"
)

const (
	KeyUser   = "user"
	KeyUserID = "userId"
)

// AuthJWT 解析 Bearer access token，解析出 subject(email) 后回查用户。
// 令牌无效/过期、用户不存在或已停用，一律 401。
func AuthJWT(j *auth.JWTer, users domain.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, "missing token"))
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "), auth.TypeAccess)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, "invalid token"))
			return
		}
		u, err := users.FindByEmail(c.Request.Context(), claims.Subject)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, "db error"))
			return
		}
		if u == nil || !u.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, "invalid token"))
			return
		}
		c.Set(KeyUser, u)
		c.Set(KeyUserID, u.ID)
		c.Next()
	}
}

// CurrentUser 取 AuthJWT 放进来的用户；只在鉴权分组内调用
func CurrentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(KeyUser)
	if !ok {
		return nil
	}
	u, _ := v.(*domain.User)
	return u
}

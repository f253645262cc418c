package router

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-flashcards-api/internal/core/auth"
	"go-flashcards-api/internal/repo"
	"go-flashcards-api/internal/transport/http/ez"
	mdw "go-flashcards-api/internal/transport/http/middleware"
)

type Options struct {
	CORSOrigins  []string // 前端来源；cookie 模式下不能用通配符
	CookieSecure bool
}

func NewAPIEngine(l *zap.Logger, db *gorm.DB, jwter *auth.JWTer, revoker auth.RevocationStore, opt Options) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	if len(opt.CORSOrigins) > 0 {
		cc := cors.DefaultConfig()
		cc.AllowOrigins = opt.CORSOrigins
		cc.AllowCredentials = true // refresh_token cookie 要带凭证
		cc.AllowHeaders = append(cc.AllowHeaders, "Authorization")
		r.Use(cors.New(cc))
	}

	// 健康检查 + 指标
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	users := repo.NewUserRepo(db)
	folders := repo.NewFolderRepo(db)
	sets := repo.NewCardSetRepo(db)
	cards := repo.NewCardRepo(db)

	api := r.Group("/api/v1")

	// 公共：注册 / 登录 / 刷新
	ezPublic := ez.New(api)
	mountUserActions(ezPublic, users)
	mountAuthActions(ezPublic, users, jwter, revoker, opt.CookieSecure)

	// 鉴权分组：其余全部走 Bearer access token
	authed := api.Group("")
	authed.Use(mdw.AuthJWT(jwter, users))
	ezAuth := ez.New(authed)
	mountFolderActions(ezAuth, folders, sets)
	mountSetActions(ezAuth, sets, cards)
	mountCardActions(ezAuth, cards, sets)

	return r
}

// uintParam 路径参数 → uint
func uintParam(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, ez.BadRequest("invalid " + name)
	}
	return uint(v), nil
}

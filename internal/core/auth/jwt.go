package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

type Claims struct {
	Type string `json:"typ"` // "access" / "refresh"
	jwt.RegisteredClaims
}

type JWTer struct {
	Secret     []byte
	Issuer     string
	AccessTTL  time.Duration // 分钟级
	RefreshTTL time.Duration // 天级，只经 cookie 下发
}

// IssueAccess subject 放用户 email
func (j *JWTer) IssueAccess(subject string) (string, error) {
	return j.issue(subject, TypeAccess, j.AccessTTL, "")
}

// IssueRefresh 带 jti，轮换时旧 jti 进吊销表
func (j *JWTer) IssueRefresh(subject string) (token, jti string, err error) {
	jti = uuid.NewString()
	token, err = j.issue(subject, TypeRefresh, j.RefreshTTL, jti)
	return token, jti, err
}

func (j *JWTer) issue(subject, typ string, ttl time.Duration, jti string) (string, error) {
	now := time.Now()
	claims := Claims{
		Type: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.Issuer,
			Subject:   subject,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

// Parse 校验签名/过期/签发者，且 typ 必须匹配（access 不能当 refresh 用，反之亦然）
func (j *JWTer) Parse(tokenStr, wantType string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected alg")
		}
		return j.Secret, nil
	}, jwt.WithIssuer(j.Issuer), jwt.WithLeeway(60*time.Second))

	if err != nil {
		return nil, err
	}
	c, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return nil, errors.New("invalid token")
	}
	if c.Type != wantType {
		return nil, fmt.Errorf("unexpected token type %q", c.Type)
	}
	return c, nil
}

package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// authedReq 带 Bearer 的请求构造
func authedReq(method, target, body, access string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("Authorization", "Bearer "+access)
	return req
}

func TestHTTP_FolderLifecycle(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice@example.com", "password-123")
	_, access := env.login(t, "alice@example.com", "password-123")

	// 建文件夹 → 201
	w, e := env.do(t, authedReq(http.MethodPost, "/api/v1/folders", `{"name":"Spanish"}`, access))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var folder struct {
		ID       uint   `json:"id"`
		Name     string `json:"name"`
		SetCount int64  `json:"set_count"`
	}
	require.NoError(t, json.Unmarshal(e.Data, &folder))
	assert.Equal(t, "Spanish", folder.Name)
	assert.Zero(t, folder.SetCount)

	// 建卡组 → 201，owner 跟随文件夹
	w, e = env.do(t, authedReq(http.MethodPost, "/api/v1/folders/1/sets",
		`{"name":"Verbs","tags":["Verbs","A1"]}`, access))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var set struct {
		ID        uint  `json:"id"`
		CardCount int64 `json:"card_count"`
		Tags      []struct {
			Name string `json:"name"`
		} `json:"tags"`
	}
	require.NoError(t, json.Unmarshal(e.Data, &set))
	require.Len(t, set.Tags, 2)
	assert.Equal(t, "verbs", set.Tags[0].Name)

	// 加两张卡 → 201，order 递增
	w, e = env.do(t, authedReq(http.MethodPost, "/api/v1/sets/1/cards",
		`{"term":"correr","definition":"to run"}`, access))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var card struct {
		ID    uint `json:"id"`
		Order int  `json:"order"`
	}
	require.NoError(t, json.Unmarshal(e.Data, &card))
	assert.Equal(t, 1, card.Order)

	w, _ = env.do(t, authedReq(http.MethodPost, "/api/v1/sets/1/cards",
		`{"term":"comer","definition":"to eat"}`, access))
	require.Equal(t, http.StatusCreated, w.Code)

	// 重排 → 204
	w, _ = env.do(t, authedReq(http.MethodPost, "/api/v1/sets/1/reorder", `{"card_ids":[2,1]}`, access))
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	w, e = env.do(t, authedReq(http.MethodGet, "/api/v1/sets/1/cards", "", access))
	require.Equal(t, http.StatusOK, w.Code)
	var cards []struct {
		Term  string `json:"term"`
		Order int    `json:"order"`
	}
	require.NoError(t, json.Unmarshal(e.Data, &cards))
	require.Len(t, cards, 2)
	assert.Equal(t, "comer", cards[0].Term)
	assert.Equal(t, 0, cards[0].Order)
	assert.Equal(t, "correr", cards[1].Term)

	// 非空文件夹删除 → 409
	w, _ = env.do(t, authedReq(http.MethodDelete, "/api/v1/folders/1", "", access))
	assert.Equal(t, http.StatusConflict, w.Code)

	// 卡组删除 → 204，随后文件夹可删
	w, _ = env.do(t, authedReq(http.MethodDelete, "/api/v1/sets/1", "", access))
	require.Equal(t, http.StatusNoContent, w.Code)
	w, _ = env.do(t, authedReq(http.MethodDelete, "/api/v1/folders/1", "", access))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestHTTP_AccessLadder(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "owner@example.com", "password-123")
	env.register(t, "other@example.com", "password-123")
	_, ownerTok := env.login(t, "owner@example.com", "password-123")
	_, otherTok := env.login(t, "other@example.com", "password-123")

	// owner：私有 folder 1 + 公开 folder 2，各一个卡组
	w, _ := env.do(t, authedReq(http.MethodPost, "/api/v1/folders", `{"name":"Private"}`, ownerTok))
	require.Equal(t, http.StatusCreated, w.Code)
	w, _ = env.do(t, authedReq(http.MethodPost, "/api/v1/folders", `{"name":"Public","is_public":true}`, ownerTok))
	require.Equal(t, http.StatusCreated, w.Code)
	w, _ = env.do(t, authedReq(http.MethodPost, "/api/v1/folders/1/sets", `{"name":"Hidden Set"}`, ownerTok))
	require.Equal(t, http.StatusCreated, w.Code)
	w, _ = env.do(t, authedReq(http.MethodPost, "/api/v1/folders/2/sets", `{"name":"Open Set","is_public":true}`, ownerTok))
	require.Equal(t, http.StatusCreated, w.Code)

	// 他人看私有卡组 → 404（不暴露存在性）
	w, _ = env.do(t, authedReq(http.MethodGet, "/api/v1/sets/1", "", otherTok))
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 他人读公开卡组 → 200
	w, _ = env.do(t, authedReq(http.MethodGet, "/api/v1/sets/2", "", otherTok))
	assert.Equal(t, http.StatusOK, w.Code)

	// 他人改公开卡组 → 403
	w, _ = env.do(t, authedReq(http.MethodPut, "/api/v1/sets/2", `{"name":"Hijacked"}`, otherTok))
	assert.Equal(t, http.StatusForbidden, w.Code)

	// 他人往公开卡组加卡 → 403
	w, _ = env.do(t, authedReq(http.MethodPost, "/api/v1/sets/2/cards",
		`{"term":"x","definition":"y"}`, otherTok))
	assert.Equal(t, http.StatusForbidden, w.Code)

	// 不存在的资源 → 404
	w, _ = env.do(t, authedReq(http.MethodGet, "/api/v1/sets/99", "", ownerTok))
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = env.do(t, authedReq(http.MethodPut, "/api/v1/cards/99", `{"term":"x"}`, ownerTok))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHTTP_ValidationErrors(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice@example.com", "password-123")
	_, access := env.login(t, "alice@example.com", "password-123")

	// name 必填
	w, _ := env.do(t, authedReq(http.MethodPost, "/api/v1/folders", `{}`, access))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 非数字 id
	w, _ = env.do(t, authedReq(http.MethodGet, "/api/v1/sets/abc", "", access))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 密码太短的注册
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users", strings.NewReader(`{"email":"bob@example.com","password":"short"}`))
	req.Header.Set("Content-Type", "application/json")
	w, _ = env.do(t, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

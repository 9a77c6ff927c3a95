package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/bookshare/internal/model"
)

func TestLogsAdminOnly(t *testing.T) {
	s := newTestServer(t)
	_, userToken := s.newUser(t, "plain@example.com", false)
	_, adminToken := s.newUser(t, "root@example.com", true)

	w, _ := s.do(t, http.MethodGet, "/api/logs", userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(t, http.MethodGet, "/api/logs", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBookActionsAreAudited(t *testing.T) {
	s := newTestServer(t)
	_, ownerToken := s.newUser(t, "owner@example.com", false)
	admin, adminToken := s.newUser(t, "root@example.com", true)

	book := s.createBook(t, ownerToken, "被记录的书")
	w, _ := s.do(t, http.MethodPost, fmt.Sprintf("/api/books/%d/approve", book.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env := s.do(t, http.MethodGet, "/api/logs", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var entries []model.LogEntry
	require.NoError(t, json.Unmarshal(env.Data, &entries))
	require.Len(t, entries, 2)

	// 时间倒序：审核在前，创建在后
	assert.Equal(t, "approve", entries[0].Action)
	assert.Equal(t, admin.ID, entries[0].UserID)
	assert.Equal(t, "create", entries[1].Action)
	require.NotNil(t, entries[1].TargetID)
	assert.Equal(t, book.ID, *entries[1].TargetID)
}

func TestCreateAndClearLogs(t *testing.T) {
	s := newTestServer(t)
	_, userToken := s.newUser(t, "plain@example.com", false)
	_, adminToken := s.newUser(t, "root@example.com", true)

	// 登录用户可以写日志
	w, _ := s.do(t, http.MethodPost, "/api/logs", userToken, gin.H{
		"type": "book", "action": "viewed", "extra": "from test",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// 未知类型 400
	w, _ = s.do(t, http.MethodPost, "/api/logs", userToken, gin.H{
		"type": "movie", "action": "viewed",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 普通用户不能清空
	w, _ = s.do(t, http.MethodDelete, "/api/logs", userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(t, http.MethodDelete, "/api/logs", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env := s.do(t, http.MethodGet, "/api/logs", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var entries []model.LogEntry
	require.NoError(t, json.Unmarshal(env.Data, &entries))
	assert.Empty(t, entries)
}

func TestAdminStats(t *testing.T) {
	s := newTestServer(t)
	_, ownerToken := s.newUser(t, "owner@example.com", false)
	_, adminToken := s.newUser(t, "root@example.com", true)

	s.createBook(t, ownerToken, "统计之书")

	w, env := s.do(t, http.MethodGet, "/api/admin/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats map[string]int64
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.EqualValues(t, 2, stats["users"])
	assert.EqualValues(t, 1, stats["books"])
	assert.EqualValues(t, 1, stats["pending_books"])

	// 普通用户 403
	w, _ = s.do(t, http.MethodGet, "/api/admin/stats", ownerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminUserModeration(t *testing.T) {
	s := newTestServer(t)
	target, targetToken := s.newUser(t, "target@example.com", false)
	admin, adminToken := s.newUser(t, "root@example.com", true)

	// 普通用户不能封禁别人
	w, _ := s.do(t, http.MethodPut, fmt.Sprintf("/api/users/%d", admin.ID), targetToken, gin.H{
		"banned": true,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// 管理员封禁目标用户
	w, env := s.do(t, http.MethodPut, fmt.Sprintf("/api/users/%d", target.ID), adminToken, gin.H{
		"banned": true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated model.User
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.True(t, updated.Banned)

	// 封禁动作写入审计日志
	w, env = s.do(t, http.MethodGet, "/api/logs", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var entries []model.LogEntry
	require.NoError(t, json.Unmarshal(env.Data, &entries))
	require.NotEmpty(t, entries)
	assert.Equal(t, "ban", entries[0].Action)
	assert.Equal(t, model.LogTypeUser, entries[0].Type)
}

func TestDeleteUserSelfOrAdmin(t *testing.T) {
	s := newTestServer(t)
	target, _ := s.newUser(t, "victim@example.com", false)
	_, otherToken := s.newUser(t, "other@example.com", false)
	_, adminToken := s.newUser(t, "root@example.com", true)

	w, _ := s.do(t, http.MethodDelete, fmt.Sprintf("/api/users/%d", target.ID), otherToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(t, http.MethodDelete, fmt.Sprintf("/api/users/%d", target.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	gone, err := s.repos.User.FindByID(target.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

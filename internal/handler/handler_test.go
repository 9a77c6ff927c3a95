package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/user/bookshare/internal/config"
	"github.com/user/bookshare/internal/handler"
	"github.com/user/bookshare/internal/middleware"
	"github.com/user/bookshare/internal/model"
	"github.com/user/bookshare/internal/repository"
	"github.com/user/bookshare/internal/router"
	"github.com/user/bookshare/internal/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testServer struct {
	engine *gin.Engine
	repos  *repository.Repositories
	cfg    *config.Config
}

// envelope 统一响应结构
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Success bool            `json:"success"`
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	gin.SetMode(gin.TestMode)
	utils.InitCache()
	handler.RegisterValidations()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))

	repos := repository.NewRepositories(db)
	cfg := &config.Config{
		Env:       "test",
		AppSecret: "test-secret",
		JWTExpiry: time.Hour,
		SiteName:  "BookShare",
	}

	engine := gin.New()
	router.RegisterRoutes(engine, handler.NewHandler(repos, cfg))

	return &testServer{engine: engine, repos: repos, cfg: cfg}
}

// newUser 直接建库内用户并返回其 Token
func (s *testServer) newUser(t *testing.T, email string, admin bool) (*model.User, string) {
	t.Helper()

	user, err := s.repos.User.Create(email, strings.Split(email, "@")[0], "password123")
	require.NoError(t, err)
	if admin {
		require.NoError(t, s.repos.User.SetAdmin(user.ID, true))
		user.IsAdmin = true
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, user.Role(), s.cfg.AppSecret, s.cfg.JWTExpiry)
	require.NoError(t, err)

	return user, token
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, *envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}

	return w, &env
}

// createBook 通过 API 创建书籍
func (s *testServer) createBook(t *testing.T, token, title string) *model.Book {
	t.Helper()

	w, env := s.do(t, http.MethodPost, "/api/books", token, gin.H{
		"title":  title,
		"author": "测试作者",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var book model.Book
	require.NoError(t, json.Unmarshal(env.Data, &book))
	return &book
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w, _ := s.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

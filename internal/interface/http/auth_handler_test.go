package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summitworks/eventreg/internal/application"
	"github.com/summitworks/eventreg/internal/domain/entity"
	repo "github.com/summitworks/eventreg/internal/domain/repository"
	"github.com/summitworks/eventreg/internal/interface/middleware"
	"github.com/summitworks/eventreg/internal/session"
	"github.com/summitworks/eventreg/pkg/helpers"
	"github.com/summitworks/eventreg/pkg/validation"
)

const testCookieName = "session_id"

type memUserRepo struct {
	byID    map[string]*entity.User
	byEmail map[string]*entity.User
	seq     int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: map[string]*entity.User{}, byEmail: map[string]*entity.User{}}
}

func (m *memUserRepo) Create(_ context.Context, u *entity.User) error {
	if _, ok := m.byEmail[u.Email]; ok {
		return repo.ErrEmailTaken
	}
	m.seq++
	u.ID = "u-" + strconv.Itoa(m.seq)
	cp := *u
	m.byID[u.ID] = &cp
	m.byEmail[u.Email] = &cp
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) Update(_ context.Context, u *entity.User) error {
	cur, ok := m.byID[u.ID]
	if !ok {
		return repo.ErrNotFound
	}
	*cur = *u
	return nil
}

func (m *memUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	cur, ok := m.byID[id]
	if !ok {
		return repo.ErrNotFound
	}
	cur.PasswordHash = hash
	return nil
}

func (m *memUserRepo) Delete(_ context.Context, id string) error {
	u, ok := m.byID[id]
	if !ok {
		return repo.ErrNotFound
	}
	delete(m.byEmail, u.Email)
	delete(m.byID, id)
	return nil
}

func newAPIRig(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	store := session.NewRedisStore(rdb, time.Hour)
	cookies := helpers.NewCookie(testCookieName, "", false)

	authSvc := application.NewAuthService(newMemUserRepo(), nil, "", logger)
	authH := NewAuthHandler(authSvc, logger)
	profileH := NewProfileHandler(authSvc, logger)

	r := gin.New()
	r.Use(middleware.Session(store, cookies, logger))
	api := r.Group("/api")
	api.POST("/auth/register", authH.Register)
	api.POST("/auth/login", authH.Login)
	api.POST("/auth/logout", authH.Logout)
	api.GET("/profile", middleware.RequireAuth(), profileH.Get)
	return r
}

func doJSON(r *gin.Engine, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	res := httptest.NewRecorder()
	r.ServeHTTP(res, req)
	return res
}

func cookieNamed(res *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range res.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func TestRegisterLoginLogoutFlow(t *testing.T) {
	r := newAPIRig(t)

	// Register establishes a session.
	res := doJSON(r, http.MethodPost, "/api/auth/register",
		`{"email":"ada@example.com","password":"longenough","name":"Ada"}`)
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())
	assert.Contains(t, res.Body.String(), `"user"`)
	assert.NotContains(t, res.Body.String(), "longenough")
	ck := cookieNamed(res, testCookieName)
	require.NotNil(t, ck, "register must set the session cookie")

	// The session resolves on a protected route.
	res = doJSON(r, http.MethodGet, "/api/profile", "", ck)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "ada@example.com")

	// Logout clears the cookie and kills the record.
	res = doJSON(r, http.MethodPost, "/api/auth/logout", "", ck)
	require.Equal(t, http.StatusOK, res.Code)
	cleared := cookieNamed(res, testCookieName)
	require.NotNil(t, cleared)
	assert.Less(t, cleared.MaxAge, 0)

	// The old token is dead.
	res = doJSON(r, http.MethodGet, "/api/profile", "", ck)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.JSONEq(t, `{"error":"Invalid credentials"}`, res.Body.String())
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	r := newAPIRig(t)

	res := doJSON(r, http.MethodPost, "/api/auth/register",
		`{"email":"ada@example.com","password":"longenough"}`)
	require.Equal(t, http.StatusOK, res.Code)

	res = doJSON(r, http.MethodPost, "/api/auth/register",
		`{"email":"ada@example.com","password":"different-pass"}`)
	assert.Equal(t, http.StatusConflict, res.Code)
	assert.JSONEq(t, `{"error":"User already exists"}`, res.Body.String())
}

func TestRegisterValidation(t *testing.T) {
	r := newAPIRig(t)

	res := doJSON(r, http.MethodPost, "/api/auth/register",
		`{"email":"not-an-email","password":"short"}`)
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, res.Body.String(), "email")
	// No session for a failed registration.
	assert.Nil(t, cookieNamed(res, testCookieName))
}

func TestLoginFailuresShareOneBody(t *testing.T) {
	r := newAPIRig(t)

	res := doJSON(r, http.MethodPost, "/api/auth/register",
		`{"email":"ada@example.com","password":"longenough"}`)
	require.Equal(t, http.StatusOK, res.Code)

	wrongPass := doJSON(r, http.MethodPost, "/api/auth/login",
		`{"email":"ada@example.com","password":"wrong-password"}`)
	unknown := doJSON(r, http.MethodPost, "/api/auth/login",
		`{"email":"nobody@example.com","password":"whatever"}`)

	assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, wrongPass.Body.String(), unknown.Body.String())
	assert.JSONEq(t, `{"error":"Invalid credentials"}`, wrongPass.Body.String())
}

func TestLogoutWithoutSessionIsOK(t *testing.T) {
	r := newAPIRig(t)

	res := doJSON(r, http.MethodPost, "/api/auth/logout", "")
	assert.Equal(t, http.StatusOK, res.Code)
}

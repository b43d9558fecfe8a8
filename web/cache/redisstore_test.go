package cache

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *Redis {
	t.Helper()
	r, err := NewRedis(context.Background(), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func newEngine(store sessions.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(sessions.Sessions("test", store))
	engine.GET("/set", func(c *gin.Context) {
		s := sessions.Default(c)
		s.Set("name", c.Query("name"))
		s.Set("known", true)
		_ = s.Save()
		c.Status(http.StatusOK)
	})
	engine.GET("/get", func(c *gin.Context) {
		s := sessions.Default(c)
		name, _ := s.Get("name").(string)
		known, _ := s.Get("known").(bool)
		c.JSON(http.StatusOK, gin.H{"name": name, "known": known})
	})
	engine.GET("/clear", func(c *gin.Context) {
		s := sessions.Default(c)
		s.Clear()
		s.Options(sessions.Options{Path: "/", MaxAge: -1})
		_ = s.Save()
		c.Status(http.StatusOK)
	})
	return engine
}

func request(engine *gin.Engine, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestEmbeddedRedis(t *testing.T) {
	r := newTestRedis(t)
	assert.True(t, r.IsEmbedded())
	assert.NoError(t, r.Client().Ping(context.Background()).Err())
}

func TestNewRedisUnreachable(t *testing.T) {
	_, err := NewRedis(context.Background(), "127.0.0.1:1")
	assert.Error(t, err)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	r := newTestRedis(t)
	engine := newEngine(NewRedisStore(r.Client(), []byte("secret")))

	w := request(engine, "/set?name=Calculo+I", nil)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	keys := r.miniRedis.Keys()
	require.Len(t, keys, 1)
	assert.True(t, strings.HasPrefix(keys[0], keyPrefix))

	w = request(engine, "/get", cookies)
	assert.JSONEq(t, `{"name":"Calculo I","known":true}`, w.Body.String())
}

func TestRedisStoreForgedCookie(t *testing.T) {
	r := newTestRedis(t)
	engine := newEngine(NewRedisStore(r.Client(), []byte("secret")))

	forged := &http.Cookie{Name: "test", Value: "not-a-signed-id"}
	w := request(engine, "/get", []*http.Cookie{forged})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"name":"","known":false}`, w.Body.String())
}

func TestRedisStoreClear(t *testing.T) {
	r := newTestRedis(t)
	engine := newEngine(NewRedisStore(r.Client(), []byte("secret")))

	w := request(engine, "/set?name=Fisica", nil)
	cookies := w.Result().Cookies()
	require.Len(t, r.miniRedis.Keys(), 1)

	request(engine, "/clear", cookies)
	assert.Empty(t, r.miniRedis.Keys())

	w = request(engine, "/get", cookies)
	assert.JSONEq(t, `{"name":"","known":false}`, w.Body.String())
}

package controller

import (
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/cadastro/disciplinas/web/locale"

	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	translator, err := locale.NewTranslator(os.DirFS(".."))
	require.NoError(t, err)

	tpl := template.New("").Funcs(template.FuncMap{
		"i18n": func(l *i18n.Localizer, key string, params ...string) string {
			return locale.I18n(l, key, params...)
		},
	})
	tpl = template.Must(tpl.ParseGlob("../html/common/*.html"))
	tpl = template.Must(tpl.ParseFiles("../html/404.html", "../html/500.html"))

	engine := gin.New()
	errorPages := NewErrorController(engine)
	engine.Use(gin.CustomRecovery(errorPages.Recover))
	engine.Use(translator.Middleware())
	engine.SetHTMLTemplate(tpl)

	engine.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	engine.GET("/fail", func(c *gin.Context) {
		serverError(c, errors.New("storage unavailable"))
	})
	return engine
}

func TestNotFound(t *testing.T) {
	engine := newEngine(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Página não encontrada")
}

func TestPanicRendersInternalError(t *testing.T) {
	engine := newEngine(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Erro interno do servidor")
}

func TestServerError(t *testing.T) {
	engine := newEngine(t)

	req := httptest.NewRequest(http.MethodGet, "/fail", nil)
	req.Header.Set("Accept-Language", "en-US")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")
}

func TestGetContext(t *testing.T) {
	h := getContext(gin.H{"title": "pages.index.title", "cur_ver": "override"})
	assert.Equal(t, "pages.index.title", h["title"])
	assert.Equal(t, "override", h["cur_ver"])
	assert.Equal(t, "disciplinas", h["app_name"])
}

func TestI18nWeb(t *testing.T) {
	engine := newEngine(t)
	var pt, en string
	engine.GET("/greet", func(c *gin.Context) {
		if c.Query("lang") == "en" {
			en = I18nWeb(c, "pages.notFound.title")
		} else {
			pt = I18nWeb(c, "pages.notFound.title")
		}
		c.Status(http.StatusNoContent)
	})

	engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/greet", nil))
	req := httptest.NewRequest(http.MethodGet, "/greet?lang=en", nil)
	req.Header.Set("Accept-Language", "en-US")
	engine.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "Página não encontrada", pt)
	assert.NotEqual(t, pt, en)
	assert.NotEqual(t, "pages.notFound.title", en)
}

package locale

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func newTranslator(t *testing.T) *Translator {
	t.Helper()
	tr, err := NewTranslator(os.DirFS(".."))
	require.NoError(t, err)
	return tr
}

func TestNewTranslatorLoadsLanguages(t *testing.T) {
	tr := newTranslator(t)
	assert.ElementsMatch(t, []language.Tag{language.BrazilianPortuguese, language.AmericanEnglish}, tr.Languages())
}

func TestI18n(t *testing.T) {
	tr := newTranslator(t)

	pt := tr.Localizer()
	assert.Equal(t, "Cadastrar", I18n(pt, "form.submit"))
	assert.Equal(t, "Olá, Calculo I!", I18n(pt, "pages.disciplines.heading", "Name==Calculo I"))

	en := tr.Localizer("en-US")
	assert.Equal(t, "Register", I18n(en, "form.submit"))
	assert.Equal(t, "Not a valid choice.", I18n(en, "form.errors.invalidChoice"))

	assert.Equal(t, "no.such.key", I18n(pt, "no.such.key"))
	assert.Equal(t, "form.submit", I18n(nil, "form.submit"))
}

func TestMiddlewarePicksLanguage(t *testing.T) {
	tr := newTranslator(t)
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(tr.Middleware())
	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, I18n(FromContext(c), "form.submit"))
	})

	tests := []struct {
		name   string
		cookie string
		accept string
		want   string
	}{
		{"default", "", "", "Cadastrar"},
		{"accept language", "", "en-US,en;q=0.9", "Register"},
		{"cookie wins", "pt-BR", "en-US", "Cadastrar"},
		{"unknown falls back", "", "de-DE", "Cadastrar"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "lang", Value: tt.cookie})
			}
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Body.String())
		})
	}
}

func TestCreateTemplateData(t *testing.T) {
	data := createTemplateData([]string{"Name==Calculo I", "broken", "Time==a==b"})
	assert.Equal(t, map[string]any{"Name": "Calculo I", "Time": "a==b"}, data)
}

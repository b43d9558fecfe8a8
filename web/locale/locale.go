// Package locale loads the translation files and picks a language per request.
package locale

import (
	"io/fs"
	"strings"

	"github.com/cadastro/disciplinas/logger"

	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

// DefaultLanguage is used when neither the lang cookie nor Accept-Language
// matches a translation.
var DefaultLanguage = language.BrazilianPortuguese

const contextKey = "localizer"

// Translator holds the parsed translation bundle.
type Translator struct {
	bundle *i18n.Bundle
}

// NewTranslator parses every TOML file under the "translation" directory of fsys.
func NewTranslator(fsys fs.FS) (*Translator, error) {
	bundle := i18n.NewBundle(DefaultLanguage)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	err := fs.WalkDir(fsys, "translation", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		_, err = bundle.ParseMessageFileBytes(data, path)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &Translator{bundle: bundle}, nil
}

// Languages lists the loaded translations.
func (t *Translator) Languages() []language.Tag {
	return t.bundle.LanguageTags()
}

// Localizer returns a localizer for the given preferences, most preferred first.
func (t *Translator) Localizer(langs ...string) *i18n.Localizer {
	return i18n.NewLocalizer(t.bundle, langs...)
}

// Middleware stores a request localizer chosen from the "lang" cookie,
// then Accept-Language.
func (t *Translator) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var langs []string
		if cookie, err := c.Request.Cookie("lang"); err == nil && cookie.Value != "" {
			langs = append(langs, cookie.Value)
		}
		if accept := c.GetHeader("Accept-Language"); accept != "" {
			langs = append(langs, accept)
		}
		c.Set(contextKey, t.Localizer(langs...))
		c.Next()
	}
}

// FromContext returns the request localizer set by Middleware.
func FromContext(c *gin.Context) *i18n.Localizer {
	if v, ok := c.Get(contextKey); ok {
		if l, ok := v.(*i18n.Localizer); ok {
			return l
		}
	}
	return nil
}

// createTemplateData turns "key==value" params into template data.
func createTemplateData(params []string, seperator ...string) map[string]any {
	sep := "=="
	if len(seperator) > 0 {
		sep = seperator[0]
	}

	templateData := make(map[string]any)
	for _, param := range params {
		parts := strings.SplitN(param, sep, 2)
		if len(parts) != 2 {
			continue
		}
		templateData[parts[0]] = parts[1]
	}
	return templateData
}

// I18n localizes key with l. Params are "name==value" pairs. The key itself
// is returned when l is nil or the message is missing.
func I18n(l *i18n.Localizer, key string, params ...string) string {
	if l == nil {
		return key
	}
	msg, err := l.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: createTemplateData(params),
	})
	if err != nil {
		logger.Warningf("Failed to localize message %s: %v", key, err)
		return key
	}
	return msg
}

// Package controller provides the HTTP handlers of the registration site.
package controller

import (
	"github.com/cadastro/disciplinas/web/locale"

	"github.com/gin-gonic/gin"
)

// BaseController provides helpers shared by all controllers.
type BaseController struct{}

// I18nWeb localizes key with the request localizer.
func I18nWeb(c *gin.Context, key string, params ...string) string {
	return locale.I18n(locale.FromContext(c), key, params...)
}

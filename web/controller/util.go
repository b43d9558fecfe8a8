package controller

import (
	"net/http"
	"time"

	"github.com/cadastro/disciplinas/config"
	"github.com/cadastro/disciplinas/logger"
	"github.com/cadastro/disciplinas/web/locale"

	"github.com/gin-gonic/gin"
)

// html renders the template name with status, adding the context every
// page needs. title is a translation key.
func html(c *gin.Context, status int, name string, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["title"] = title
	data["localizer"] = locale.FromContext(c)
	data["request_uri"] = c.Request.URL.Path
	c.HTML(status, name, getContext(data))
}

// getContext adds the version and other global data to h.
func getContext(h gin.H) gin.H {
	a := gin.H{
		"app_name": config.GetName(),
		"cur_ver":  config.GetVersion(),
	}
	for key, value := range h {
		a[key] = value
	}
	return a
}

// serverError logs err and renders the internal error page.
func serverError(c *gin.Context, err error) {
	logger.Errorf("%s %s failed [%s]: %v", c.Request.Method, c.Request.URL.Path, c.GetString("request_id"), err)
	html(c, http.StatusInternalServerError, "500.html", "pages.internalError.title", nil)
	c.Abort()
}

func now() time.Time {
	return time.Now().UTC()
}

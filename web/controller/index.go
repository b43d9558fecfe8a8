package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// IndexController serves the landing and occurrences pages.
type IndexController struct {
	BaseController
}

func NewIndexController(g *gin.RouterGroup) *IndexController {
	a := &IndexController{}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
	g.GET("/ocorrencias", a.occurrences)
}

func (a *IndexController) index(c *gin.Context) {
	html(c, http.StatusOK, "index.html", "pages.index.title", gin.H{"current_time": now()})
}

func (a *IndexController) occurrences(c *gin.Context) {
	html(c, http.StatusOK, "ocorrencias.html", "pages.occurrences.title", gin.H{"current_time": now()})
}

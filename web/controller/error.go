package controller

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorController renders the not found and internal error pages.
type ErrorController struct {
	BaseController
}

func NewErrorController(engine *gin.Engine) *ErrorController {
	a := &ErrorController{}
	engine.NoRoute(a.notFound)
	return a
}

func (a *ErrorController) notFound(c *gin.Context) {
	html(c, http.StatusNotFound, "404.html", "pages.notFound.title", nil)
}

// Recover is a gin.RecoveryFunc rendering the internal error page.
func (a *ErrorController) Recover(c *gin.Context, recovered any) {
	serverError(c, fmt.Errorf("panic: %v", recovered))
}

package controller

import (
	"net/http"

	"github.com/cadastro/disciplinas/web/entity"
	"github.com/cadastro/disciplinas/web/service"
	"github.com/cadastro/disciplinas/web/session"

	"github.com/gin-gonic/gin"
)

// DisciplineController serves the registration form and the listing.
type DisciplineController struct {
	BaseController

	disciplineService *service.DisciplineService
}

func NewDisciplineController(g *gin.RouterGroup, disciplineService *service.DisciplineService) *DisciplineController {
	a := &DisciplineController{disciplineService: disciplineService}
	a.initRouter(g)
	return a
}

func (a *DisciplineController) initRouter(g *gin.RouterGroup) {
	g.GET("/disciplinas", a.disciplines)
	g.POST("/disciplinas", a.disciplines)
}

func (a *DisciplineController) disciplines(c *gin.Context) {
	form := &entity.NameForm{}
	if c.Request.Method == http.MethodPost && a.submit(c, form) {
		return
	}
	a.render(c, form)
}

// submit handles a posted form. It returns true once the response is
// written, false when the form must be rendered again with its errors.
func (a *DisciplineController) submit(c *gin.Context, form *entity.NameForm) bool {
	form.Validate(c.ShouldBind(form))
	form.CheckCSRF(session.PeekCSRFToken(c))
	if !form.Valid() {
		return false
	}

	known, err := a.disciplineService.Register(form.Name, form.Semester)
	if err != nil {
		serverError(c, err)
		return true
	}

	err = session.SetRegistration(c, session.Registration{
		Name:     form.Name,
		Semester: form.Semester,
		Known:    known,
	})
	if err != nil {
		serverError(c, err)
		return true
	}
	c.Redirect(http.StatusFound, "/disciplinas")
	return true
}

func (a *DisciplineController) render(c *gin.Context, form *entity.NameForm) {
	users, err := a.disciplineService.GetAllUsers()
	if err != nil {
		serverError(c, err)
		return
	}
	token, err := session.CSRFToken(c)
	if err != nil {
		serverError(c, err)
		return
	}
	form.CSRFToken = token

	reg := session.GetRegistration(c)
	html(c, http.StatusOK, "disciplinas.html", "pages.disciplines.title", gin.H{
		"form":     form,
		"name":     reg.Name,
		"known":    reg.Known,
		"user_all": users,
	})
}

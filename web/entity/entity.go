// Package entity defines the forms and view data of the web layer.
package entity

import (
	"errors"
	"slices"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Semesters are the only accepted values of the semester field.
var Semesters = []string{
	"1º semestre",
	"2º semestre",
	"3º semestre",
	"4º semestre",
	"5º semestre",
	"6º semestre",
}

// Message keys of the form errors, resolved through the translation files.
const (
	ErrRequired      = "form.errors.required"
	ErrInvalidChoice = "form.errors.invalidChoice"
	ErrCSRF          = "form.errors.csrf"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("notblank", notBlank)
		_ = v.RegisterValidation("semester", isSemester)
	}
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func isSemester(fl validator.FieldLevel) bool {
	return IsSemester(fl.Field().String())
}

func IsSemester(s string) bool {
	return slices.Contains(Semesters, s)
}

// NameForm is the discipline registration form.
type NameForm struct {
	Name      string `form:"name" binding:"notblank"`
	Semester  string `form:"semester" binding:"required,semester"`
	CSRFToken string `form:"csrf_token"`

	// Errors maps a field name ("name", "semester", "csrf_token") to the
	// message key of its first failure.
	Errors map[string]string `form:"-"`
}

// Validate records the binding error on the form. It returns true when the
// form is valid.
func (f *NameForm) Validate(bindErr error) bool {
	f.Errors = map[string]string{}
	if bindErr == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if !errors.As(bindErr, &verrs) {
		f.Errors["form"] = ErrRequired
		return false
	}
	for _, fe := range verrs {
		switch fe.Field() {
		case "Name":
			f.Errors["name"] = ErrRequired
		case "Semester":
			if fe.Tag() == "required" {
				f.Errors["semester"] = ErrRequired
			} else {
				f.Errors["semester"] = ErrInvalidChoice
			}
		}
	}
	return false
}

// CheckCSRF compares the submitted token with the one held by the session.
func (f *NameForm) CheckCSRF(expected string) bool {
	if f.Errors == nil {
		f.Errors = map[string]string{}
	}
	if expected == "" || f.CSRFToken != expected {
		f.Errors["csrf_token"] = ErrCSRF
		return false
	}
	return true
}

func (f *NameForm) Valid() bool {
	return len(f.Errors) == 0
}

// Error returns the message key recorded for field, or "".
func (f *NameForm) Error(field string) string {
	return f.Errors[field]
}

// SemesterChoice is one radio button of the semester field.
type SemesterChoice struct {
	Value   string
	Checked bool
}

// Choices lists the semester radio buttons with the submitted one checked.
func (f *NameForm) Choices() []SemesterChoice {
	choices := make([]SemesterChoice, 0, len(Semesters))
	for _, s := range Semesters {
		choices = append(choices, SemesterChoice{Value: s, Checked: s == f.Semester})
	}
	return choices
}

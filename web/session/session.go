// Package session holds the per-visitor registration state.
package session

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Name is the session cookie name.
const Name = "disciplinas"

const (
	keyName      = "name"
	keySemester  = "semester"
	keyKnown     = "known"
	keyCSRFToken = "csrf_token"
)

// Registration is the outcome of the last accepted form submission.
type Registration struct {
	Name     string
	Semester string
	Known    bool
}

// SetRegistration stores the last submission and saves the session.
func SetRegistration(c *gin.Context, r Registration) error {
	s := sessions.Default(c)
	s.Set(keyName, r.Name)
	s.Set(keySemester, r.Semester)
	s.Set(keyKnown, r.Known)
	return s.Save()
}

// GetRegistration returns the stored submission. Missing keys read as
// their zero value and known defaults to false.
func GetRegistration(c *gin.Context) Registration {
	s := sessions.Default(c)
	r := Registration{}
	if v, ok := s.Get(keyName).(string); ok {
		r.Name = v
	}
	if v, ok := s.Get(keySemester).(string); ok {
		r.Semester = v
	}
	if v, ok := s.Get(keyKnown).(bool); ok {
		r.Known = v
	}
	return r
}

// CSRFToken returns the form token of the session, issuing and saving a
// new one when none exists yet.
func CSRFToken(c *gin.Context) (string, error) {
	s := sessions.Default(c)
	if token, ok := s.Get(keyCSRFToken).(string); ok && token != "" {
		return token, nil
	}
	token := uuid.NewString()
	s.Set(keyCSRFToken, token)
	return token, s.Save()
}

// PeekCSRFToken returns the stored form token without issuing one.
func PeekCSRFToken(c *gin.Context) string {
	token, _ := sessions.Default(c).Get(keyCSRFToken).(string)
	return token
}

func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{
		Path:   "/",
		MaxAge: -1,
	})
	return s.Save()
}

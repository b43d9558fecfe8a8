// Package service implements the registration flow on top of the database.
package service

import (
	"fmt"

	"github.com/cadastro/disciplinas/caching"
	"github.com/cadastro/disciplinas/database"
	"github.com/cadastro/disciplinas/database/model"
	"github.com/cadastro/disciplinas/logger"

	"gorm.io/gorm"
)

// DisciplineService registers disciplines and their semesters.
type DisciplineService struct {
	db    *gorm.DB
	roles *caching.Cache
}

func NewDisciplineService(db *gorm.DB) *DisciplineService {
	return &DisciplineService{db: db, roles: caching.NewCache()}
}

// GetUserByUsername returns the discipline named username, or nil when it
// was never registered.
func (s *DisciplineService) GetUserByUsername(username string) (*model.User, error) {
	user := &model.User{}
	err := s.db.Model(model.User{}).
		Where("username = ?", username).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("get user %q: %w", username, err)
	}
	return user, nil
}

// GetOrCreateRole returns the semester called name, creating it on first use.
func (s *DisciplineService) GetOrCreateRole(name string) (*model.Role, error) {
	if id, ok := s.roles.GetRoleId(name); ok {
		return &model.Role{Id: id, Name: name}, nil
	}

	role := &model.Role{}
	err := s.db.Model(model.Role{}).
		Where("name = ?", name).
		First(role).
		Error
	if err == nil {
		s.roles.SetRoleId(role.Name, role.Id)
		return role, nil
	}
	if !database.IsNotFound(err) {
		return nil, fmt.Errorf("get role %q: %w", name, err)
	}

	role = &model.Role{Name: name}
	if err := s.db.Create(role).Error; err != nil {
		return nil, fmt.Errorf("create role %q: %w", name, err)
	}
	s.roles.SetRoleId(role.Name, role.Id)
	logger.Infof("created semester %s", role)
	return role, nil
}

// Register stores the discipline name under semester unless name is
// already registered. known reports whether name existed before the call;
// an existing registration keeps its original semester.
//
// The lookup and the inserts are separate statements. Two concurrent first
// submissions of the same name race and the loser fails on the unique index.
func (s *DisciplineService) Register(name string, semester string) (known bool, err error) {
	user, err := s.GetUserByUsername(name)
	if err != nil {
		return false, err
	}
	if user != nil {
		logger.Debugf("discipline %s already registered", user)
		return true, nil
	}

	role, err := s.GetOrCreateRole(semester)
	if err != nil {
		return false, err
	}

	user = &model.User{Username: name, RoleId: role.Id}
	if err := s.db.Create(user).Error; err != nil {
		return false, fmt.Errorf("create user %q: %w", name, err)
	}
	logger.Infof("registered discipline %s in %s", user, role)
	return false, nil
}

// GetAllUsers lists every registered discipline with its semester, oldest first.
func (s *DisciplineService) GetAllUsers() ([]*model.User, error) {
	var users []*model.User
	err := s.db.Model(model.User{}).
		Preload("Role").
		Order("id").
		Find(&users).
		Error
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// CountRoles returns the number of persisted semesters.
func (s *DisciplineService) CountRoles() (int64, error) {
	var count int64
	err := s.db.Model(model.Role{}).Count(&count).Error
	return count, err
}

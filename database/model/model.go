// Package model declares the persisted entities.
package model

import "fmt"

// Role is a semester label, e.g. "1º semestre".
type Role struct {
	Id    int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name  string `json:"name" gorm:"size:64;unique"`
	Users []User `json:"-" gorm:"foreignKey:RoleId;references:Id"`
}

func (Role) TableName() string {
	return "roles"
}

func (r Role) String() string {
	return fmt.Sprintf("<Role %q>", r.Name)
}

// User is a registered discipline. The name is kept for the table layout.
type User struct {
	Id       int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Username string `json:"username" gorm:"size:64;uniqueIndex"`
	RoleId   int    `json:"roleId" gorm:"index"`
	Role     *Role  `json:"role,omitempty" gorm:"foreignKey:RoleId;references:Id"`
}

func (User) TableName() string {
	return "users"
}

func (u User) String() string {
	return fmt.Sprintf("<User %q>", u.Username)
}

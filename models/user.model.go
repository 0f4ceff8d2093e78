package models

import (
	"gorm.io/gorm"
)

const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
	RoleAgent     = "agent"
)

type User struct {
	gorm.Model
	Name      string     `gorm:"default:''" json:"name"`
	Email     string     `gorm:"unique;not null" json:"email"`
	Role      string     `gorm:"default:'agent'" json:"role"` // admin, moderator, agent
	Password  string     `gorm:"not null" json:"-"`
	BankCodes []BankCode `gorm:"foreignKey:UserID" json:"bank_codes"`
	IsDeleted bool       `gorm:"default:false" json:"-"`
}

// BankCode is one (bank, agent code) pair used to attribute an application
// to the agent for commission tracking. Position preserves the order the
// agent entered them in.
type BankCode struct {
	gorm.Model
	UserID   uint   `gorm:"index" json:"-"`
	Bank     string `gorm:"default:''" json:"bank"`
	Code     string `gorm:"default:''" json:"code"`
	Position int    `gorm:"default:0" json:"-"`
}

package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// KycDetail is a row from the secondary intake table. Field names mirror
// the table's snake_case columns; the dashboard reconciler lifts them into
// the unified camelCase record shape.
type KycDetail struct {
	gorm.Model
	RowID        string `gorm:"column:row_id;uniqueIndex" json:"id"`
	FirstName    string `gorm:"default:''" json:"first_name"`
	LastName     string `gorm:"default:''" json:"last_name"`
	MiddleName   string `gorm:"default:''" json:"middle_name"`
	Suffix       string `gorm:"default:''" json:"suffix"`
	DateOfBirth  string `gorm:"default:''" json:"date_of_birth"`
	PlaceOfBirth string `gorm:"default:''" json:"place_of_birth"`
	Gender       string `gorm:"default:''" json:"gender"`
	EmailAddress string `gorm:"default:''" json:"email_address"`
	Agent        string `gorm:"default:''" json:"agent"`
	// Status stays empty until an admin triages the row from the dashboard.
	Status string `gorm:"default:''" json:"status"`
}

func (k *KycDetail) BeforeCreate(tx *gorm.DB) error {
	if k.RowID == "" {
		k.RowID = uuid.NewString()
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PersonalDetails is the applicant identity block shared by the public
// application form and the dashboard.
type PersonalDetails struct {
	FirstName    string `gorm:"default:''" json:"firstName"`
	LastName     string `gorm:"default:''" json:"lastName"`
	MiddleName   string `gorm:"default:''" json:"middleName"`
	Suffix       string `gorm:"default:''" json:"suffix"`
	DateOfBirth  string `gorm:"default:''" json:"dateOfBirth"`
	PlaceOfBirth string `gorm:"default:''" json:"placeOfBirth"`
	Gender       string `gorm:"default:''" json:"gender"`
	EmailAddress string `gorm:"default:''" json:"emailAddress"`
	MobileNumber string `gorm:"default:''" json:"mobileNumber"`
}

// ApplicationForm is one submitted credit-card application. The nested
// detail groups are stored as raw JSON: the dashboard never interprets
// them, only the view layer does.
type ApplicationForm struct {
	ID              string          `gorm:"primaryKey" json:"id"`
	PersonalDetails PersonalDetails `gorm:"embedded;embeddedPrefix:personal_" json:"personalDetails"`
	Status          string          `gorm:"default:'pending'" json:"status"`
	SubmittedBy     string          `gorm:"default:'direct'" json:"submittedBy"`
	SubmittedAt     *time.Time      `json:"submittedAt"`
	MotherDetails   datatypes.JSON  `json:"motherDetails"`
	SpouseDetails   datatypes.JSON  `json:"spouseDetails"`
	WorkDetails     datatypes.JSON  `json:"workDetails"`
	CardDetails     datatypes.JSON  `json:"creditCardDetails"`
	BankPreferences datatypes.JSON  `json:"bankPreferences"`
	Address         datatypes.JSON  `json:"permanentAddress"`
	CreatedAt       time.Time       `json:"-"`
	UpdatedAt       time.Time       `json:"-"`
}

func (a *ApplicationForm) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.SubmittedAt == nil {
		now := time.Now()
		a.SubmittedAt = &now
	}
	return nil
}

package store

import (
	"errors"
	"strings"

	"cardagency/models"

	"gorm.io/gorm"
)

// KycIDPrefix disambiguates secondary-table rows after the merge.
const KycIDPrefix = "kyc-"

var ErrNotFound = gorm.ErrRecordNotFound

// Store is the thin adapter over the hosted tables. Everything the
// dashboard reads or writes goes through here.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// FetchApplications returns all primary application rows, newest first.
func (s *Store) FetchApplications() ([]models.ApplicationForm, error) {
	var rows []models.ApplicationForm
	if err := s.db.Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FetchKycDetails returns all secondary intake rows, newest first.
func (s *Store) FetchKycDetails() ([]models.KycDetail, error) {
	var rows []models.KycDetail
	if err := s.db.Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListUsers returns all non-deleted profile rows with their bank codes,
// newest first.
func (s *Store) ListUsers() ([]models.User, error) {
	var users []models.User
	err := s.db.
		Where("is_deleted = ?", false).
		Preload("BankCodes", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		Order("created_at desc").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// GetUserByEmail returns the profile row for an email, bank codes included.
func (s *Store) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.
		Where("email = ? AND is_deleted = ?", email, false).
		Preload("BankCodes", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) CreateUser(user *models.User) error {
	return s.db.Create(user).Error
}

// UpdateUser replaces name, role and bank codes for the profile keyed by
// email. Email and password are immutable through this path.
func (s *Store) UpdateUser(email, name, role string, bankCodes []models.BankCode) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ? AND is_deleted = ?", email, false).First(&user).Error; err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&user).Updates(map[string]interface{}{
			"name": name,
			"role": role,
		}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.BankCode{}).Error; err != nil {
			return err
		}
		for i := range bankCodes {
			bankCodes[i].UserID = user.ID
			bankCodes[i].Position = i
		}
		if len(bankCodes) > 0 {
			if err := tx.Create(&bankCodes).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	user.BankCodes = bankCodes
	return &user, nil
}

// DeleteUser removes the profile row and its bank codes.
func (s *Store) DeleteUser(email string) error {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.BankCode{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&user).Error
	})
}

func (s *Store) CreateApplication(app *models.ApplicationForm) error {
	return s.db.Create(app).Error
}

func (s *Store) CreateKycDetail(row *models.KycDetail) error {
	return s.db.Create(row).Error
}

// UpdateApplicationStatus issues a targeted single-column update for the
// row matching the unified record id. Ids carrying the kyc prefix route to
// the secondary table, everything else to application_form.
func (s *Store) UpdateApplicationStatus(id, status string) error {
	if rowID, ok := strings.CutPrefix(id, KycIDPrefix); ok {
		res := s.db.Model(&models.KycDetail{}).
			Where("row_id = ?", rowID).
			Update("status", status)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	}

	res := s.db.Model(&models.ApplicationForm{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetApplication fetches one primary row by id.
func (s *Store) GetApplication(id string) (*models.ApplicationForm, error) {
	var app models.ApplicationForm
	if err := s.db.Where("id = ?", id).First(&app).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// IsNotFound reports whether err is the store's missing-row error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

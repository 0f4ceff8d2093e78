package dashboard

import (
	"sort"

	"cardagency/models"
	"cardagency/store"
)

// Reconcile merges the two intake tables into one unified collection.
// Primary rows pass through with their native ids; secondary rows are
// normalized into the unified shape and get the kyc id prefix so an id
// collision between the tables cannot happen. Order is concatenation:
// primary rows first, each side in store order. Pure function.
func Reconcile(primary []models.ApplicationForm, secondary []models.KycDetail) []ApplicationRecord {
	records := make([]ApplicationRecord, 0, len(primary)+len(secondary))

	for _, row := range primary {
		records = append(records, ApplicationRecord{
			ID:              row.ID,
			PersonalDetails: row.PersonalDetails,
			Status:          row.Status,
			SubmittedBy:     row.SubmittedBy,
			SubmittedAt:     row.SubmittedAt,
			MotherDetails:   row.MotherDetails,
			SpouseDetails:   row.SpouseDetails,
			WorkDetails:     row.WorkDetails,
			CardDetails:     row.CardDetails,
			BankPreferences: row.BankPreferences,
			Address:         row.Address,
		})
	}

	for _, row := range secondary {
		records = append(records, normalizeKyc(row))
	}

	return records
}

// normalizeKyc lifts a snake_case secondary row into the unified record
// shape. Secondary rows have no submission timestamp.
func normalizeKyc(row models.KycDetail) ApplicationRecord {
	return ApplicationRecord{
		ID: store.KycIDPrefix + row.RowID,
		PersonalDetails: models.PersonalDetails{
			FirstName:    row.FirstName,
			LastName:     row.LastName,
			MiddleName:   row.MiddleName,
			Suffix:       row.Suffix,
			DateOfBirth:  row.DateOfBirth,
			PlaceOfBirth: row.PlaceOfBirth,
			Gender:       row.Gender,
			EmailAddress: row.EmailAddress,
		},
		Status:      row.Status,
		SubmittedBy: row.Agent,
		SubmittedAt: nil,
	}
}

// SortBySubmittedAt orders records newest first. Records without a
// timestamp sort after all dated ones, keeping their relative order.
// Returns a new slice, input untouched.
func SortBySubmittedAt(records []ApplicationRecord) []ApplicationRecord {
	out := make([]ApplicationRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].SubmittedAt, out[j].SubmittedAt
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.After(*b)
	})
	return out
}

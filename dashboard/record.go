package dashboard

import (
	"time"

	"cardagency/models"

	"gorm.io/datatypes"
)

// Statuses an application can carry once triaged. An empty status means
// the record has not been triaged yet, which only happens for rows that
// came in through the secondary intake table.
const (
	StatusPending   = "pending"
	StatusSubmitted = "submitted"
	StatusTurnIn    = "turn-in"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
)

// DirectSentinel marks a public self-service submission with no agent.
const DirectSentinel = "direct"

// ValidStatus reports whether s is one of the assignable statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusSubmitted, StatusTurnIn, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// ApplicationRecord is the unified shape both tables merge into. The
// nested detail groups are carried opaquely for the view layer.
type ApplicationRecord struct {
	ID              string                 `json:"id"`
	PersonalDetails models.PersonalDetails `json:"personalDetails"`
	Status          string                 `json:"status,omitempty"`
	SubmittedBy     string                 `json:"submittedBy,omitempty"`
	SubmittedAt     *time.Time             `json:"submittedAt,omitempty"`
	MotherDetails   datatypes.JSON         `json:"motherDetails,omitempty"`
	SpouseDetails   datatypes.JSON         `json:"spouseDetails,omitempty"`
	WorkDetails     datatypes.JSON         `json:"workDetails,omitempty"`
	CardDetails     datatypes.JSON         `json:"creditCardDetails,omitempty"`
	BankPreferences datatypes.JSON         `json:"bankPreferences,omitempty"`
	Address         datatypes.JSON         `json:"permanentAddress,omitempty"`
}

// IsDirect reports whether the record is a public submission with no
// attributed agent.
func (r ApplicationRecord) IsDirect() bool {
	return r.SubmittedBy == "" || r.SubmittedBy == DirectSentinel
}

package dashboard

import (
	"strings"

	"cardagency/models"
)

// Filter derives the view of records matching both the free-text agent
// search and the status filter. Empty filter values match everything.
//
// The name filter never hides a direct submission: a public application
// has no agent to search by, so it always passes. Agent-attributed
// records match when the resolved agent's name, or any of that agent's
// bank codes, contains the search string (case-insensitive substring).
// An unresolvable submittedBy degrades to "no bank codes" rather than
// erroring; the name itself is still matched against the raw value.
func Filter(records []ApplicationRecord, users []models.User, nameFilter, statusFilter string) []ApplicationRecord {
	name := strings.ToLower(strings.TrimSpace(nameFilter))
	status := strings.ToLower(strings.TrimSpace(statusFilter))

	out := make([]ApplicationRecord, 0, len(records))
	for _, rec := range records {
		if !matchesName(rec, users, name) {
			continue
		}
		if !matchesStatus(rec, status) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func matchesName(rec ApplicationRecord, users []models.User, name string) bool {
	if name == "" {
		return true
	}
	// Public submissions are never hidden by an agent search.
	if rec.IsDirect() {
		return true
	}

	agent := resolveAgent(users, rec.SubmittedBy)
	if agent == nil {
		return strings.Contains(strings.ToLower(rec.SubmittedBy), name)
	}
	if strings.Contains(strings.ToLower(agent.Name), name) {
		return true
	}
	for _, bc := range agent.BankCodes {
		if strings.Contains(strings.ToLower(bc.Code), name) {
			return true
		}
	}
	return false
}

func matchesStatus(rec ApplicationRecord, status string) bool {
	if status == "" {
		return true
	}
	return strings.ToLower(rec.Status) == status
}

// resolveAgent finds the profile a submittedBy value refers to, by name
// or by email.
func resolveAgent(users []models.User, submittedBy string) *models.User {
	needle := strings.ToLower(submittedBy)
	for i := range users {
		if strings.ToLower(users[i].Name) == needle || strings.ToLower(users[i].Email) == needle {
			return &users[i]
		}
	}
	return nil
}

// Paginate returns the first page*pageSize records. These are "load more"
// semantics: page 2 re-includes page 1's rows, so each page is a prefix
// of the next.
func Paginate(records []ApplicationRecord, page, pageSize int) []ApplicationRecord {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		return []ApplicationRecord{}
	}
	limit := page * pageSize
	if limit > len(records) {
		limit = len(records)
	}
	return records[:limit]
}

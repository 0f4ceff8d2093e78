package dashboard

import (
	"sync"

	"cardagency/models"
	"cardagency/store"

	"go.uber.org/zap"
)

// App is the process-wide state container, set once at startup.
var App *State

// Use installs the process-wide state container.
func Use(s *State) {
	App = s
}

// State owns the dashboard's unified in-memory collection and the user
// list the filter resolves agents against. All changes go through pure
// transition functions that build a new slice; the container just swaps
// the snapshot under its lock. Handlers run concurrently in this server,
// so the lock replaces the event-loop ownership the original relied on.
type State struct {
	mu      sync.RWMutex
	records []ApplicationRecord
	users   []models.User

	store  *store.Store
	logger *zap.Logger
}

func NewState(st *store.Store, logger *zap.Logger) *State {
	return &State{
		records: []ApplicationRecord{},
		users:   []models.User{},
		store:   st,
		logger:  logger,
	}
}

// Refresh re-fetches both intake tables and the user list, reconciles and
// swaps the snapshot. A failed fetch on one side contributes an empty
// sequence instead of aborting: an error on one table must never hide the
// other table's data.
func (s *State) Refresh() {
	primary, err := s.store.FetchApplications()
	if err != nil {
		s.logger.Warn("fetching applications failed, continuing without them", zap.Error(err))
		primary = nil
	}
	secondary, err := s.store.FetchKycDetails()
	if err != nil {
		s.logger.Warn("fetching kyc details failed, continuing without them", zap.Error(err))
		secondary = nil
	}
	users, err := s.store.ListUsers()
	if err != nil {
		s.logger.Warn("fetching users failed, keeping previous user list", zap.Error(err))
		users = nil
	}

	merged := Reconcile(primary, secondary)

	s.mu.Lock()
	s.records = merged
	if users != nil {
		s.users = users
	}
	s.mu.Unlock()

	s.logger.Info("dashboard state refreshed",
		zap.Int("applications", len(primary)),
		zap.Int("kyc", len(secondary)),
		zap.Int("total", len(merged)))
}

// Snapshot returns the current unified collection and user list. Both are
// copies; callers may filter and slice freely.
func (s *State) Snapshot() ([]ApplicationRecord, []models.User) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]ApplicationRecord, len(s.records))
	copy(records, s.records)
	users := make([]models.User, len(s.users))
	copy(users, s.users)
	return records, users
}

// Find returns the record with the given unified id, if present.
func (s *State) Find(id string) (ApplicationRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.records {
		if rec.ID == id {
			return rec, true
		}
	}
	return ApplicationRecord{}, false
}

// SetStatus reflects a store-confirmed status write into the snapshot.
// Call this only after the store update succeeded: the write-then-reflect
// order means a failed store call leaves memory untouched.
func (s *State) SetStatus(id, status string) {
	s.mu.Lock()
	s.records = setStatus(s.records, id, status)
	s.mu.Unlock()
}

// PutUser reflects a created or updated profile row.
func (s *State) PutUser(user models.User) {
	s.mu.Lock()
	s.users = putUser(s.users, user)
	s.mu.Unlock()
}

// DropUser reflects a deleted profile row.
func (s *State) DropUser(email string) {
	s.mu.Lock()
	s.users = dropUser(s.users, email)
	s.mu.Unlock()
}

// setStatus returns a new collection with the matching record's status
// replaced. Unknown ids leave the collection unchanged.
func setStatus(records []ApplicationRecord, id, status string) []ApplicationRecord {
	out := make([]ApplicationRecord, len(records))
	copy(out, records)
	for i := range out {
		if out[i].ID == id {
			out[i].Status = status
			break
		}
	}
	return out
}

func putUser(users []models.User, user models.User) []models.User {
	out := make([]models.User, 0, len(users)+1)
	replaced := false
	for _, u := range users {
		if u.Email == user.Email {
			out = append(out, user)
			replaced = true
			continue
		}
		out = append(out, u)
	}
	if !replaced {
		out = append(out, user)
	}
	return out
}

func dropUser(users []models.User, email string) []models.User {
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if u.Email == email {
			continue
		}
		out = append(out, u)
	}
	return out
}

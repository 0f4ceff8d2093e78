package utils

import (
	"log"

	"cardagency/config"
	"cardagency/database"
	"cardagency/identity"
	"cardagency/models"

	"github.com/robfig/cron/v3"
)

// InitializeOrphanSweeper schedules the orphaned-identity sweep. User
// provisioning is two steps (provider account, then profile row) with no
// transaction across them; when the second step fails the provider keeps
// an account no profile refers to. The sweep closes that window by
// deleting such accounts on a schedule instead of compensating inline.
func InitializeOrphanSweeper() {
	log.Println("[ORPHAN-SWEEPER] Initializing orphaned identity sweeper...")

	c := cron.New()

	_, err := c.AddFunc(config.AppConfig.SweepSchedule, func() {
		log.Println("[ORPHAN-SWEEPER] Running orphaned identity sweep...")
		SweepOrphanedIdentities()
	})
	if err != nil {
		log.Printf("[ORPHAN-SWEEPER] Invalid sweep schedule %q: %v", config.AppConfig.SweepSchedule, err)
		return
	}

	c.Start()
	log.Printf("[ORPHAN-SWEEPER] Sweeper started with schedule %q", config.AppConfig.SweepSchedule)
}

// SweepOrphanedIdentities deletes identity-provider accounts that have no
// matching profile row.
func SweepOrphanedIdentities() {
	accounts, err := identity.ListAccounts()
	if err != nil {
		log.Printf("[ORPHAN-SWEEPER] Error listing identity accounts: %v", err)
		return
	}

	var emails []string
	if err := database.Database.Db.Model(&models.User{}).Pluck("email", &emails).Error; err != nil {
		log.Printf("[ORPHAN-SWEEPER] Error listing profile emails: %v", err)
		return
	}

	known := make(map[string]bool, len(emails))
	for _, e := range emails {
		known[e] = true
	}

	removed := 0
	for _, acc := range accounts {
		if known[acc.Email] {
			continue
		}
		if err := identity.DeleteAccountByEmail(acc.Email); err != nil {
			log.Printf("[ORPHAN-SWEEPER] Error deleting orphaned account %s: %v", acc.Email, err)
			continue
		}
		removed++
	}

	log.Printf("[ORPHAN-SWEEPER] Sweep complete: %d accounts checked, %d orphans removed", len(accounts), removed)
}

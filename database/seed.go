package database

import (
	"context"
	"log"

	"train_station/config"
	"train_station/helper"
	"train_station/repository"
)

var defaultTrainTypes = []string{"Express", "Intercity", "Regional", "Night"}

// SeedData creates the default train types and, when ADMIN_EMAIL and
// ADMIN_PASSWORD are set, the administrator account. Failures are logged.
func SeedData(ctx context.Context, store *repository.Store, settings config.Settings) {
	for _, name := range defaultTrainTypes {
		if _, err := store.FindOrCreateTrainType(ctx, name); err != nil {
			log.Println("failed to seed train type:", name, "error:", err)
		}
	}

	if settings.AdminEmail == "" || settings.AdminPassword == "" {
		return
	}
	hash, err := helper.HashPassword(settings.AdminPassword)
	if err != nil {
		log.Println("failed to hash admin password:", err)
		return
	}
	if _, created, err := store.EnsureSuperuser(ctx, settings.AdminEmail, hash); err != nil {
		log.Println("failed to seed admin:", settings.AdminEmail, "error:", err)
	} else if created {
		log.Println("admin account created:", settings.AdminEmail)
	}
}

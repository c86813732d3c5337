package repository

import (
	"context"
	"log"

	"github.com/fittrack/fittrack/internal/model"
)

// SeedDemoUsers creates two well-known demo accounts when they do not
// exist yet. Only invoked behind the SEED_USERS dev flag; production
// instances never call this.
func SeedDemoUsers(ctx context.Context, users *UserRepo, bcryptCost int) error {
	demo := []struct {
		username, password, name, email string
	}{
		{"admin", "admin123", "Administrator", "admin@example.com"},
		{"user", "user123", "Demo User", "user@example.com"},
	}
	for _, d := range demo {
		exists, err := users.ExistsByUsername(ctx, d.username)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		id, err := users.Create(ctx, model.User{
			Username: d.username,
			Name:     d.name,
			Email:    d.email,
		}, d.password, bcryptCost)
		if err != nil {
			return err
		}
		log.Printf("seeded demo user %q (id=%d)", d.username, id)
	}
	return nil
}

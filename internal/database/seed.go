package database

import (
	"context"
	"database/sql"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/iliyamo/soulful-cms/internal/utils"
)

// SeedAdmin creates the bootstrap ADMIN account when no user with the given
// email exists yet. Running it on every start keeps deployments idempotent.
func SeedAdmin(ctx context.Context, db *sql.DB, email, name, password string, cost int) error {
	email = strings.ToLower(strings.TrimSpace(email))

	var exists bool
	err := db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE email=?)", email).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		log.Printf("admin %s already exists, seed skipped", email)
		return nil
	}

	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		"INSERT INTO users (id, email, name, password_hash, role) VALUES (?,?,?,?,?)",
		uuid.NewString(), email, name, hash, "ADMIN")
	if err != nil {
		return err
	}
	log.Printf("admin user seeded: %s", email)
	return nil
}

package config

import (
	"context"
	"log"
	"strings"

	"garderie-api/internal/adapters/persistence/models"
	"garderie-api/internal/adapters/persistence/repositories"
	"garderie-api/internal/core/domain"
	"garderie-api/internal/pkg/password"
)

// Seeder handles database seeding
type Seeder struct {
	users repositories.UserRepository
	seed  SeedConfig
}

// NewSeeder creates a new seeder instance
func NewSeeder(users repositories.UserRepository, seed SeedConfig) *Seeder {
	return &Seeder{users: users, seed: seed}
}

// Run executes all seeders
func (s *Seeder) Run(ctx context.Context) error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(ctx); err != nil {
		return err
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser creates the first administrator when none exists.
// Nothing is created without SEED_ADMIN_PASSWORD.
func (s *Seeder) seedAdminUser(ctx context.Context) error {
	count, err := s.users.CountByRole(ctx, string(domain.RoleAdmin))
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if s.seed.AdminPassword == "" {
		log.Println("⚠️ Skipping admin seed: SEED_ADMIN_PASSWORD is not set")
		return nil
	}
	if !password.ValidatePassword(s.seed.AdminPassword) {
		return domain.Invalid("SEED_ADMIN_PASSWORD must be at least 6 characters")
	}

	hashedPassword, err := password.Hash(s.seed.AdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:     s.seed.AdminName,
		Email:    strings.ToLower(strings.TrimSpace(s.seed.AdminEmail)),
		Password: hashedPassword,
		Role:     string(domain.RoleAdmin),
		IsActive: true,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Email)
	return nil
}

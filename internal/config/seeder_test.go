package config

import (
	"context"
	"testing"

	"garderie-api/internal/adapters/persistence/memory"
	"garderie-api/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedAdminUser(t *testing.T) {
	password.UseMinCost()
	ctx := context.Background()
	repos := memory.NewSet()

	seed := SeedConfig{AdminName: "Admin", AdminEmail: "Admin@Garderie.com"}
	require.NoError(t, NewSeeder(repos.Users, seed).Run(ctx))
	n, err := repos.Users.CountByRole(ctx, "admin")
	require.NoError(t, err)
	assert.Zero(t, n)

	seed.AdminPassword = "123"
	assert.Error(t, NewSeeder(repos.Users, seed).Run(ctx))

	seed.AdminPassword = "motdepasse"
	require.NoError(t, NewSeeder(repos.Users, seed).Run(ctx))
	require.NoError(t, NewSeeder(repos.Users, seed).Run(ctx))

	n, err = repos.Users.CountByRole(ctx, "admin")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	admin, err := repos.Users.GetByEmail(ctx, "admin@garderie.com")
	require.NoError(t, err)
	assert.True(t, password.Verify("motdepasse", admin.Password))
	assert.True(t, admin.IsActive)
}

func TestBuildDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "garderie", SSLMode: "disable"}

	assert.Equal(t, "u:p@tcp(db:5432)/garderie?charset=utf8mb4&parseTime=True&loc=UTC", buildDSN(d))
	assert.Equal(t, "host=db user=u password=p dbname=garderie port=5432 sslmode=disable TimeZone=UTC", buildPostgresDSN(d))

	_, err := dialect(DatabaseConfig{Driver: "memory"})
	assert.Error(t, err)
}

package services

import (
	"testing"
	"time"

	"garderie-api/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCronPurgeSessions(t *testing.T) {
	f := newFixture(t)
	revokedAt := testNow.Add(-time.Hour)

	tokens := map[string]*models.RefreshToken{
		"live":    {UserID: f.admin.ID, TokenHash: "live", ExpiresAt: testNow.Add(24 * time.Hour)},
		"expired": {UserID: f.admin.ID, TokenHash: "expired", ExpiresAt: testNow.Add(-time.Minute)},
		"revoked": {UserID: f.admin.ID, TokenHash: "revoked", ExpiresAt: testNow.Add(24 * time.Hour), RevokedAt: &revokedAt},
	}
	for _, tok := range tokens {
		require.NoError(t, f.repos.RefreshTokens.Create(f.ctx, tok))
	}

	svc := NewCronService(f.repos.RefreshTokens, f.payments(), f.clock)
	require.NoError(t, svc.PurgeSessions(f.ctx))

	_, err := f.repos.RefreshTokens.GetByTokenHash(f.ctx, "live")
	assert.NoError(t, err)
	for _, hash := range []string{"expired", "revoked"} {
		_, err := f.repos.RefreshTokens.GetByTokenHash(f.ctx, hash)
		assert.Error(t, err, hash)
	}
}

func TestCronStartRegistersJobs(t *testing.T) {
	f := newFixture(t)

	svc := NewCronService(f.repos.RefreshTokens, f.payments(), f.clock)
	require.NoError(t, svc.Start())
	assert.Len(t, svc.cron.Entries(), 2)
	svc.Stop()

	f.cfg.Billing.LateSweepEnabled = false
	svc = NewCronService(f.repos.RefreshTokens, f.payments(), f.clock)
	require.NoError(t, svc.Start())
	assert.Len(t, svc.cron.Entries(), 1)
	svc.Stop()
}

package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"garderie-api/internal/adapters/persistence/models"
	"garderie-api/internal/adapters/persistence/repositories"
	"garderie-api/internal/core/domain"

	"gorm.io/gorm"
)

type userRepository struct {
	s *Store
}

func (r *userRepository) emailTaken(email string, except uint) bool {
	for id, u := range r.s.users {
		if id != except && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

func (r *userRepository) Create(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.emailTaken(user.Email, 0) {
		return fmt.Errorf("%w: users.email", domain.ErrDuplicateEntry)
	}
	user.ID = r.s.id("users")
	stamp(&user.CreatedAt, &user.UpdatedAt)
	r.s.users[user.ID] = *user
	return nil
}

func (r *userRepository) GetByID(_ context.Context, id uint) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if u := r.s.userRef(id); u != nil {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *userRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			found := u
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *userRepository) Update(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	if r.emailTaken(user.Email, user.ID) {
		return fmt.Errorf("%w: users.email", domain.ErrDuplicateEntry)
	}
	stamp(&user.CreatedAt, &user.UpdatedAt)
	r.s.users[user.ID] = *user
	return nil
}

func (r *userRepository) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.users, id)
	return nil
}

func (r *userRepository) List(_ context.Context, filter repositories.UserFilter, offset, limit int) ([]*models.User, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	var out []*models.User
	for _, u := range r.s.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.IsActive != nil && u.IsActive != *filter.IsActive {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(u.Name), search) &&
			!strings.Contains(strings.ToLower(u.Email), search) {
			continue
		}
		found := u
		out = append(out, &found)
	}
	sort.Slice(out, func(i, j int) bool {
		return newerFirst(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID)
	})
	return page(out, offset, limit), int64(len(out)), nil
}

func (r *userRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.emailTaken(email, 0), nil
}

func (r *userRepository) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return int64(len(r.s.users)), nil
}

func (r *userRepository) CountByRole(_ context.Context, role string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	for _, u := range r.s.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

type refreshTokenRepository struct {
	s *Store
}

func (r *refreshTokenRepository) Create(_ context.Context, token *models.RefreshToken) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	token.ID = r.s.id("refresh_tokens")
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}
	r.s.refreshTokens[token.ID] = *token
	return nil
}

func (r *refreshTokenRepository) GetByTokenHash(_ context.Context, tokenHash string) (*models.RefreshToken, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, t := range r.s.refreshTokens {
		if t.TokenHash == tokenHash && t.RevokedAt == nil {
			found := t
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *refreshTokenRepository) revokeWhere(match func(models.RefreshToken) bool) {
	now := time.Now()
	for id, t := range r.s.refreshTokens {
		if t.RevokedAt == nil && match(t) {
			t.RevokedAt = &now
			r.s.refreshTokens[id] = t
		}
	}
}

func (r *refreshTokenRepository) RevokeByTokenHash(_ context.Context, tokenHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.revokeWhere(func(t models.RefreshToken) bool { return t.TokenHash == tokenHash })
	return nil
}

func (r *refreshTokenRepository) RevokeAllByUserID(_ context.Context, userID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.revokeWhere(func(t models.RefreshToken) bool { return t.UserID == userID })
	return nil
}

func (r *refreshTokenRepository) DeleteStale(_ context.Context, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for id, t := range r.s.refreshTokens {
		if t.ExpiresAt.Before(now) || t.RevokedAt != nil {
			delete(r.s.refreshTokens, id)
			n++
		}
	}
	return n, nil
}

// newerFirst orders by creation time descending, then id descending
func newerFirst(a, b time.Time, aID, bID uint) bool {
	if !a.Equal(b) {
		return a.After(b)
	}
	return aID > bID
}

func page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}

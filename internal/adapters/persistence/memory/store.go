// Package memory implements the repository interfaces on in-process maps.
// It backs DB_DRIVER=memory and the service and HTTP tests.
package memory

import (
	"sync"
	"time"

	"garderie-api/internal/adapters/persistence/models"
	"garderie-api/internal/adapters/persistence/repositories"
)

// Store holds every table behind one lock
type Store struct {
	mu sync.RWMutex

	nextID map[string]uint

	users         map[uint]models.User
	refreshTokens map[uint]models.RefreshToken
	children      map[uint]models.Child
	payments      map[uint]models.Payment
	menus         map[uint]models.Menu
	attendances   map[uint]models.Attendance
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		nextID:        make(map[string]uint),
		users:         make(map[uint]models.User),
		refreshTokens: make(map[uint]models.RefreshToken),
		children:      make(map[uint]models.Child),
		payments:      make(map[uint]models.Payment),
		menus:         make(map[uint]models.Menu),
		attendances:   make(map[uint]models.Attendance),
	}
}

// NewSet returns a repository set backed by a fresh store
func NewSet() *repositories.Set {
	return NewStore().Set()
}

// Set returns the repositories sharing this store
func (s *Store) Set() *repositories.Set {
	return &repositories.Set{
		Users:         &userRepository{s},
		RefreshTokens: &refreshTokenRepository{s},
		Children:      &childRepository{s},
		Payments:      &paymentRepository{s},
		Menus:         &menuRepository{s},
		Attendance:    &attendanceRepository{s},
	}
}

// id returns the next identifier of table. Callers hold the write lock.
func (s *Store) id(table string) uint {
	s.nextID[table]++
	return s.nextID[table]
}

func stamp(created, updated *time.Time) {
	now := time.Now()
	if created.IsZero() {
		*created = now
	}
	*updated = now
}

// userRef returns a detached copy of a user, or nil. Callers hold a lock.
func (s *Store) userRef(id uint) *models.User {
	u, ok := s.users[id]
	if !ok {
		return nil
	}
	return &u
}

// childRef returns a detached copy of a child, or nil. Callers hold a lock.
func (s *Store) childRef(id uint) *models.Child {
	c, ok := s.children[id]
	if !ok {
		return nil
	}
	return &c
}

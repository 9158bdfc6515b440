package repositories

import (
	"errors"
	"fmt"
	"testing"

	"garderie-api/internal/core/domain"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMapWriteError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		dup  bool
	}{
		{name: "gorm translated", err: gorm.ErrDuplicatedKey, dup: true},
		{name: "mysql 1062", err: &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}, dup: true},
		{name: "mysql other", err: &mysql.MySQLError{Number: 1452}, dup: false},
		{name: "postgres wrapped", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), dup: true},
		{name: "other", err: errors.New("boom"), dup: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapWriteError(tt.err)
			assert.Equal(t, tt.dup, errors.Is(got, domain.ErrDuplicateEntry))
		})
	}
	assert.NoError(t, mapWriteError(nil))
}

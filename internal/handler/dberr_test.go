package handler

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	duplicateEmail := &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "users_email_key",
	}

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"translated_gorm_error", gorm.ErrDuplicatedKey, true},
		{"raw_pg_error", duplicateEmail, true},
		{"wrapped_pg_error", fmt.Errorf("create user: %w", duplicateEmail), true},
		{"other_pg_error", &pgconn.PgError{Code: "23503"}, false},
		{"plain_error", errors.New("connection refused"), false},
		{"record_not_found", gorm.ErrRecordNotFound, false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUniqueViolation(tt.err))
		})
	}
}

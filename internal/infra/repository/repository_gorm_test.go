package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/event-marketplace/internal/domain/store"
)

func TestMapErr(t *testing.T) {
	other := errors.New("connection reset")

	cases := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"record not found", gorm.ErrRecordNotFound, store.ErrNotFound},
		{"wrapped not found", fmt.Errorf("first: %w", gorm.ErrRecordNotFound), store.ErrNotFound},
		{"translated duplicate", gorm.ErrDuplicatedKey, store.ErrDuplicate},
		{"pg unique violation", &pgconn.PgError{Code: "23505"}, store.ErrDuplicate},
		{"pg other", &pgconn.PgError{Code: "23503"}, nil},
		{"passthrough", other, other},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := mapErr(tc.in)
			switch {
			case tc.in == nil:
				assert.NoError(t, got)
			case tc.want == nil:
				assert.Same(t, tc.in, got)
			default:
				assert.ErrorIs(t, got, tc.want)
			}
		})
	}
}

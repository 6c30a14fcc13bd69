package database

import (
	"context"
	"database/sql/driver"
	"fmt"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/production-costing/pkg/apperr"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"pgx unique", &pgconn.PgError{Code: "23505", ConstraintName: "stock_items_product_name_key"}, apperr.ErrAlreadyExists},
		{"pq unique", &pq.Error{Code: "23505", Constraint: "clients_name_key"}, apperr.ErrAlreadyExists},
		{"wrapped unique", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), apperr.ErrAlreadyExists},
		{"serialization", &pgconn.PgError{Code: "40001"}, apperr.ErrStoreUnavailable},
		{"connection class", &pgconn.PgError{Code: "08006"}, apperr.ErrStoreUnavailable},
		{"bad conn", fmt.Errorf("exec: %w", driver.ErrBadConn), apperr.ErrStoreUnavailable},
		{"fk", &pgconn.PgError{Code: "23503"}, apperr.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(Classify(tt.err), tt.kind))
		})
	}
}

func TestClassifyLeavesOtherErrorsAlone(t *testing.T) {
	assert.Nil(t, Classify(nil))

	domainErr := apperr.New(apperr.ErrInsufficientStock, "flour")
	assert.Same(t, domainErr, Classify(domainErr))

	check := &pgconn.PgError{Code: "23514"}
	assert.Equal(t, error(check), Classify(check))
	assert.False(t, apperr.IsRetryable(Classify(check)))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
}

func TestConfigDSN(t *testing.T) {
	cfg := Config{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "costing", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=costing sslmode=disable", cfg.DSN())
}

func TestMigrationsAreEmbeddedInOrder(t *testing.T) {
	files, err := MigrationFiles()
	require.NoError(t, err)
	require.Len(t, files, 4)
	assert.Equal(t, "00001_stock_items.sql", files[0])

	for _, name := range files {
		body, err := migrations.ReadFile("migrations/" + name)
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(body), "-- +goose Up"), name)
		assert.True(t, strings.Contains(string(body), "-- +goose Down"), name)
	}
}

func TestInTransactionWithoutTx(t *testing.T) {
	assert.False(t, InTransaction(context.Background()))
}

package vendors

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/require"

	"github.com/vds-erp/vds-erp/internal/shared"
)

func strPtr(s string) *string { return &s }

func TestVendorRepositoryListIncludesExpenseCount(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now().UTC()
	rows := pgxmock.NewRows([]string{
		"id", "name", "contact_person", "phone", "email", "address", "gst_number", "notes",
		"created_by", "created_at", "updated_at", "expense_count",
	}).AddRow("v-1", "Acme", strPtr("Ravi"), (*string)(nil), (*string)(nil), (*string)(nil), (*string)(nil), (*string)(nil), "u-1", now, now, 4)

	mock.ExpectQuery(regexp.QuoteMeta("FROM vendors v ORDER BY v.name ASC")).WillReturnRows(rows)

	repo := NewRepository(mock)
	vendors, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, vendors, 1)
	require.Equal(t, "Acme", vendors[0].Name)
	require.NotNil(t, vendors[0].Count)
	require.Equal(t, 4, vendors[0].Count.Expenses)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVendorRepositoryCreateMapsUniqueViolation(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO vendors")).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	repo := NewRepository(mock)
	_, err = repo.Create(context.Background(), Vendor{ID: "v-1", Name: "Acme", CreatedBy: "u-1"})
	require.ErrorIs(t, err, shared.ErrDuplicate)
	require.Equal(t, "A vendor with this name already exists", err.Error())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVendorRepositoryDeleteMapsRestrictViolation(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM vendors WHERE id = $1")).
		WithArgs("v-1").
		WillReturnError(&pgconn.PgError{Code: "23503"})

	repo := NewRepository(mock)
	err = repo.Delete(context.Background(), "v-1")
	require.ErrorIs(t, err, shared.ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVendorRepositoryDeleteMissingRowIsNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM vendors WHERE id = $1")).
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repo := NewRepository(mock)
	err = repo.Delete(context.Background(), "missing")
	require.ErrorIs(t, err, shared.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

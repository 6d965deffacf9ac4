package dashboard

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func expectSummaryQueries(mock pgxmock.PgxPoolIface, totalExpenses float64, expenseCount, vendorCount, assetCount int, assetValue float64) {
	mock.MatchExpectationsInOrder(false)
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\), COUNT\(\*\) FROM expenses`).
		WillReturnRows(pgxmock.NewRows([]string{"sum", "count"}).AddRow(totalExpenses, expenseCount))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM vendors`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(vendorCount))
	mock.ExpectQuery(`SELECT COUNT\(\*\), COALESCE\(SUM\(current_value\), 0\) FROM fixed_assets`).
		WillReturnRows(pgxmock.NewRows([]string{"count", "sum"}).AddRow(assetCount, assetValue))
}

func TestSummaryAggregatesAndFormatsIndianCurrency(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	expectSummaryQueries(mock, 1234567.5, 42, 7, 3, 250000)

	svc := NewService(mock, nil)
	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1234567.5, summary.TotalExpenses)
	require.Equal(t, 42, summary.ExpenseCount)
	require.Equal(t, 7, summary.VendorCount)
	require.Equal(t, 3, summary.AssetCount)
	require.Equal(t, 250000.0, summary.AssetCurrentValue)
	require.Equal(t, "₹12,34,567.50", summary.TotalExpensesDisplay)
	require.Equal(t, "₹2,50,000.00", summary.AssetCurrentValueDisp)
	require.False(t, summary.GeneratedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSummaryServesSecondReadFromCache(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	expectSummaryQueries(mock, 100, 1, 2, 0, 0)

	svc := NewService(mock, client)
	first, err := svc.Summary(context.Background())
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet(), "first read must hit the database")

	// No further query expectations: a second read must come from Redis.
	second, err := svc.Summary(context.Background())
	require.NoError(t, err)
	require.Equal(t, first.TotalExpenses, second.TotalExpenses)
	require.Equal(t, first.VendorCount, second.VendorCount)
	require.Equal(t, first.TotalExpensesDisplay, second.TotalExpensesDisplay)
}

func TestInvalidateForcesRecompute(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	expectSummaryQueries(mock, 100, 1, 2, 0, 0)
	svc := NewService(mock, client)
	_, err = svc.Summary(context.Background())
	require.NoError(t, err)

	svc.Invalidate(context.Background())
	require.False(t, mr.Exists("dashboard:summary"))

	expectSummaryQueries(mock, 250, 2, 2, 0, 0)
	recomputed, err := svc.Summary(context.Background())
	require.NoError(t, err)
	require.Equal(t, 250.0, recomputed.TotalExpenses)
	require.NoError(t, mock.ExpectationsWereMet())
}

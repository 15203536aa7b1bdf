package infrastructure

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*SellerRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSellerRepository(db), mock
}

// TestAddSellerForeignKey_AlreadyExists : une contrainte déjà posée
// (duplicate_object) est avalée, pas une erreur
func TestAddSellerForeignKey_AlreadyExists(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("ALTER TABLE order_lines").
		WillReturnError(&pq.Error{Code: "42710", Message: "constraint already exists"})

	require.NoError(t, repo.AddSellerForeignKey())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddSellerForeignKey_OtherErrorsPropagate(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("ALTER TABLE order_lines").
		WillReturnError(errors.New("connection reset"))

	require.Error(t, repo.AddSellerForeignKey())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSellerColumn_AddsWhenMissing(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT column_name").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}))
	mock.ExpectExec("ALTER TABLE order_lines ADD COLUMN seller_id").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureSellerColumn())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSellerColumn_NoopWhenPresent(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT column_name").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("seller_id"))

	require.NoError(t, repo.EnsureSellerColumn())
	require.NoError(t, mock.ExpectationsWereMet())
}

// TestCreateAssignmentIndexes : les trois index secondaires sont créés,
// tous en IF NOT EXISTS
func TestCreateAssignmentIndexes(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_order_lines_seller_id").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_sellers_region").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_sellers_rating").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.CreateAssignmentIndexes())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchLineRegions_OrderedByLine(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT ol.id, c.region").
		WillReturnRows(sqlmock.NewRows([]string{"id", "region"}).
			AddRow(int64(1), "West").
			AddRow(int64(2), nil))

	lines, err := repo.FetchLineRegions()
	require.NoError(t, err)
	require.Len(t, lines, 2)
	require.Equal(t, int64(1), lines[0].LineID)
	require.NotNil(t, lines[0].Region)
	require.Equal(t, "West", *lines[0].Region)
	require.Nil(t, lines[1].Region)
	require.NoError(t, mock.ExpectationsWereMet())
}

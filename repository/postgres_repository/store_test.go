package postgres_repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/mohammad-safakhou/fitcoach/models"
	"github.com/stretchr/testify/require"
)

func TestStoreSetUpserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	st := &Store{DB: db}
	query := regexp.QuoteMeta(`
INSERT INTO kv_entries (key, value, updated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (key) DO UPDATE SET
  value = EXCLUDED.value,
  updated_at = NOW();
`)
	mock.ExpectExec(query).
		WithArgs("ai-fitness-dark-mode", []byte("false")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, st.Set(context.Background(), "ai-fitness-dark-mode", []byte("false")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	st := &Store{DB: db}
	query := regexp.QuoteMeta(`SELECT value FROM kv_entries WHERE key = $1`)
	mock.ExpectQuery(query).
		WithArgs("ai-fitness-form-data").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`{"name":"Jane Doe"}`)))
	mock.ExpectQuery(query).
		WithArgs("ai-fitness-generated-plan").
		WillReturnError(sql.ErrNoRows)

	v, err := st.Get(context.Background(), "ai-fitness-form-data")
	require.NoError(t, err)
	require.Equal(t, `{"name":"Jane Doe"}`, string(v))

	_, err = st.Get(context.Background(), "ai-fitness-generated-plan")
	require.ErrorIs(t, err, models.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	st := &Store{DB: db}
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM kv_entries WHERE key = $1`)).
		WithArgs("ai-fitness-generated-plan").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, st.Delete(context.Background(), "ai-fitness-generated-plan"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateRequiresDSN(t *testing.T) {
	require.Error(t, Migrate("", "", "up", 0))
}

func TestEmbeddedMigrationsPresent(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

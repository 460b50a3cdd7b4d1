package sqlstore_test

import (
	"context"
	"errors"
	"testing"

	"catalog-manager/core/database"
	"catalog-manager/feature/catalog/models"
	"catalog-manager/feature/catalog/store"
	"catalog-manager/feature/catalog/store/sqlstore"
	"catalog-manager/feature/catalog/store/storetest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSQLite(t *testing.T) *sqlstore.Store {
	t.Helper()
	db, dialect, err := database.OpenSQL(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	s := sqlstore.New(db, dialect)
	require.NoError(t, s.Bootstrap(context.Background()))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store { return openSQLite(t) })
}

func TestBootstrap_Idempotent(t *testing.T) {
	s := openSQLite(t)
	assert.NoError(t, s.Bootstrap(context.Background()))
}

func TestBootstrap_UnknownDialect(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)

	err = sqlstore.New(db, "postgres").Bootstrap(context.Background())
	assert.ErrorIs(t, err, models.ErrStorage)
}

func TestAuthors_QueryFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	s := sqlstore.New(db, database.DriverMySQL)

	mock.ExpectQuery("SELECT id, name FROM authors ORDER BY id").WillReturnError(errors.New("too many connections"))

	_, err = s.Authors().ReadAll(context.Background())
	assert.ErrorIs(t, err, models.ErrStorage)
	assert.ErrorContains(t, err, "too many connections")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthors_InsertUsesLastInsertID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	s := sqlstore.New(db, database.DriverMySQL)

	mock.ExpectExec("INSERT INTO authors \\(name\\) VALUES \\(\\?\\)").
		WithArgs("Herbert").
		WillReturnResult(sqlmock.NewResult(41, 1))

	a, err := s.Authors().Add(context.Background(), models.Author{Name: "Herbert"})
	require.NoError(t, err)
	assert.Equal(t, models.Author{ID: 41, Name: "Herbert"}, a)
}

func TestBooks_EditRollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	s := sqlstore.New(db, database.DriverMySQL)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM books WHERE id = \\?").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM authors WHERE id = \\?").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM genres WHERE id = \\?").
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec("UPDATE books SET").WillReturnError(errors.New("lock wait timeout"))
	mock.ExpectRollback()

	err = s.Books().Edit(context.Background(), models.Book{
		ID:     3,
		Title:  "Dune",
		Author: models.Author{ID: 1, Name: "Herbert"},
		Genre:  models.Genre{ID: 2, Name: "SciFi"},
	})
	assert.ErrorIs(t, err, models.ErrStorage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBooks_SearchCyrillicCapitalized(t *testing.T) {
	s := openSQLite(t)
	ctx := context.Background()

	a, err := s.Authors().Add(ctx, models.Author{Name: "Толстой"})
	require.NoError(t, err)
	g, err := s.Genres().Add(ctx, models.Genre{Name: "Роман"})
	require.NoError(t, err)
	_, err = s.Books().Add(ctx, models.Book{Title: "Война и мир", Author: a, Genre: g})
	require.NoError(t, err)

	for _, fragment := range []string{"война", "ВОЙНА", "Война", "мир"} {
		found, err := s.Books().SearchByTitle(ctx, fragment)
		require.NoError(t, err)
		require.Len(t, found, 1, fragment)
		assert.Equal(t, "Толстой", found[0].Author.Name)
	}
}

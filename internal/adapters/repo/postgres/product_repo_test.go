package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mercadito/internal/domain"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestDecrementStock_Conditional(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepo(db)
	id := uuid.New()

	mock.ExpectExec(`UPDATE "products" SET "stock"=stock - \$1 WHERE id = \$2 AND stock >= \$3`).
		WithArgs(3, id, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DecrementStock(context.Background(), id, 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecrementStock_ConflictWhenNoRowQualifies(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepo(db)

	// the guard lives in the WHERE clause: zero rows means the stock check lost
	mock.ExpectExec(`UPDATE "products" SET "stock"=stock - \$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DecrementStock(context.Background(), uuid.New(), 5)
	assert.ErrorIs(t, err, domain.ErrStockConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeactivate_MissingRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepo(db)

	mock.ExpectExec(`UPDATE "products" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Deactivate(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFindByID_FiltersInactive(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepo(db)
	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 AND is_active = \$2`).
		WithArgs(id, true, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByID(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_AppliesFilters(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepo(db)

	catID := uuid.New()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM "products" WHERE is_active = \$1 AND LOWER\(name\) LIKE LOWER\(\$2\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "category_id"}).
			AddRow(uuid.New(), "Mate Cup", catID))
	mock.ExpectQuery(`SELECT \* FROM "categories"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(catID, "Hogar"))

	list, total, err := repo.List(context.Background(), domain.ProductFilter{Search: "mate", Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, "Mate Cup", list[0].Name)
	require.NotNil(t, list[0].Category)
	assert.Equal(t, "Hogar", list[0].Category.Name)
}

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productColumns = []string{"id", "name", "price", "category"}

func TestRepositoryList_OrdersByCategoryThenName(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, price, category FROM products ORDER BY category, name`)).
		WillReturnRows(sqlmock.NewRows(productColumns).
			AddRow(int64(6), "White Bread", "1.50", "Bakery").
			AddRow(int64(1), "Fresh Milk 1L", "1.25", "Dairy"))

	products, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, int64(6), products[0].ID)
	assert.Equal(t, "Bakery", products[0].Category)
	assert.True(t, decimal.RequireFromString("1.25").Equal(products[1].Price))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryList_EmptyIsNotNil(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM products ORDER BY category, name`)).
		WillReturnRows(sqlmock.NewRows(productColumns))

	products, err := NewRepository(db).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestRepositoryListByCategory(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, price, category FROM products WHERE category = $1 ORDER BY name`)).
		WithArgs("Dairy").
		WillReturnRows(sqlmock.NewRows(productColumns).
			AddRow(int64(5), "Butter 250g", "2.60", "Dairy"))

	products, err := NewRepository(db).ListByCategory(context.Background(), "Dairy")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Butter 250g", products[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositorySearch(t *testing.T) {
	searchSQL := regexp.QuoteMeta(`SELECT id, name, price, category FROM products WHERE name ILIKE $1 OR category ILIKE $1 ORDER BY name`)

	t.Run("wraps query in wildcards", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(searchSQL).
			WithArgs("%milk%").
			WillReturnRows(sqlmock.NewRows(productColumns).
				AddRow(int64(2), "Chocolate Milk 500ml", "1.10", "Dairy").
				AddRow(int64(1), "Fresh Milk 1L", "1.25", "Dairy"))

		products, err := NewRepository(db).Search(context.Background(), " milk ")
		require.NoError(t, err)
		assert.Len(t, products, 2)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("escapes like metacharacters", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(searchSQL).
			WithArgs(`%50\%\_off%`).
			WillReturnRows(sqlmock.NewRows(productColumns))

		products, err := NewRepository(db).Search(context.Background(), "50%_off")
		require.NoError(t, err)
		assert.Empty(t, products)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("blank query returns whole catalog", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta(`FROM products ORDER BY category, name`)).
			WillReturnRows(sqlmock.NewRows(productColumns).
				AddRow(int64(1), "Fresh Milk 1L", "1.25", "Dairy"))

		products, err := NewRepository(db).Search(context.Background(), "   ")
		require.NoError(t, err)
		assert.Len(t, products, 1)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepositoryCategories(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT DISTINCT category FROM products ORDER BY category`)).
		WillReturnRows(sqlmock.NewRows([]string{"category"}).
			AddRow("Bakery").
			AddRow("Dairy"))

	categories, err := NewRepository(db).Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Bakery", "Dairy"}, categories)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryGet(t *testing.T) {
	getSQL := regexp.QuoteMeta(`SELECT id, name, price, category FROM products WHERE id = $1`)

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(getSQL).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows(productColumns).
				AddRow(int64(3), "Cheddar Cheese 200g", "3.40", "Dairy"))

		p, err := NewRepository(db).Get(context.Background(), 3)
		require.NoError(t, err)
		assert.Equal(t, "Cheddar Cheese 200g", p.Name)
		assert.Equal(t, "3.4", p.Price.String())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(getSQL).
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)

		_, err = NewRepository(db).Get(context.Background(), 99)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("query error is wrapped", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		boom := errors.New("connection reset")
		mock.ExpectQuery(getSQL).
			WithArgs(int64(1)).
			WillReturnError(boom)

		_, err = NewRepository(db).Get(context.Background(), 1)
		require.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}

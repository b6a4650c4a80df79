package repository_test

import (
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sayuryunur/storefront/internal/models"
	repository "github.com/sayuryunur/storefront/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productRowColumns = []string{"id", "name", "description", "price", "stock", "category", "image_url", "created_at", "updated_at"}

func TestNewProductRepo(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewProductRepo(db)
	assert.NotNil(t, repo, "NewProductRepo should return a non-nil repository")
}

func TestProductRepository(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewProductRepo(db)
	ctx := t.Context()
	now := time.Now()

	t.Run("ListAll", func(t *testing.T) {
		expectedSQL := regexp.QuoteMeta(`SELECT id, name, description, price, stock, category, image_url, created_at, updated_at FROM products ORDER BY created_at DESC`)

		t.Run("Success", func(t *testing.T) {
			// Arrange
			rows := sqlmock.NewRows(productRowColumns).
				AddRow("p-1", "Bayam", "Segar", int64(5000), 2, "Sayur", "", now, now).
				AddRow("p-2", "Tomat", "", int64(8000), 0, "Sayur", "", now, now)

			mock.ExpectQuery(expectedSQL).WillReturnRows(rows)

			// Act
			products, err := repo.ListAll(ctx)

			// Assert
			require.NoError(t, err)
			require.Len(t, products, 2)
			assert.Equal(t, "Bayam", products[0].Name)
			assert.Equal(t, int64(5000), products[0].Price)
			assert.Equal(t, 2, products[0].Stock)
			assert.Equal(t, 0, products[1].Stock)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Success - Empty catalog", func(t *testing.T) {
			// Arrange
			mock.ExpectQuery(expectedSQL).WillReturnRows(sqlmock.NewRows(productRowColumns))

			// Act
			products, err := repo.ListAll(ctx)

			// Assert
			require.NoError(t, err)
			assert.NotNil(t, products)
			assert.Empty(t, products)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Failure - Query error", func(t *testing.T) {
			// Arrange
			dbErr := errors.New("connection reset")
			mock.ExpectQuery(expectedSQL).WillReturnError(dbErr)

			// Act
			products, err := repo.ListAll(ctx)

			// Assert
			require.Error(t, err)
			assert.ErrorIs(t, err, dbErr)
			assert.Nil(t, products)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("GetByID", func(t *testing.T) {
		expectedSQL := regexp.QuoteMeta(`SELECT id, name, description, price, stock, category, image_url, created_at, updated_at FROM products WHERE id = $1`)

		t.Run("Success", func(t *testing.T) {
			// Arrange
			mock.ExpectQuery(expectedSQL).WithArgs("p-1").
				WillReturnRows(sqlmock.NewRows(productRowColumns).AddRow("p-1", "Bayam", "Segar", int64(5000), 2, "Sayur", "https://img/bayam.jpg", now, now))

			// Act
			product, err := repo.GetByID(ctx, "p-1")

			// Assert
			require.NoError(t, err)
			assert.Equal(t, "p-1", product.ID)
			assert.Equal(t, "https://img/bayam.jpg", product.ImageURL)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Failure - Not found", func(t *testing.T) {
			// Arrange
			mock.ExpectQuery(expectedSQL).WithArgs("missing").WillReturnError(sql.ErrNoRows)

			// Act
			product, err := repo.GetByID(ctx, "missing")

			// Assert
			assert.ErrorIs(t, err, repository.ErrProductNotFound)
			assert.Nil(t, product)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("Insert", func(t *testing.T) {
		expectedSQL := regexp.QuoteMeta(`INSERT INTO products (id, name, description, price, stock, category, image_url)`)

		t.Run("Success - Generates id", func(t *testing.T) {
			// Arrange
			product := &models.Product{Name: "Wortel", Price: 6000, Stock: 10, Category: "Sayur"}

			mock.ExpectQuery(expectedSQL).
				WithArgs(sqlmock.AnyArg(), "Wortel", "", int64(6000), 10, "Sayur", "").
				WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

			// Act
			err := repo.Insert(ctx, product)

			// Assert
			require.NoError(t, err)
			assert.NotEmpty(t, product.ID)
			assert.WithinDuration(t, now, product.CreatedAt, time.Second)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Failure", func(t *testing.T) {
			// Arrange
			product := &models.Product{ID: "p-9", Name: "Wortel", Price: 6000, Category: "Sayur"}
			dbErr := errors.New("duplicate key")

			mock.ExpectQuery(expectedSQL).
				WithArgs("p-9", "Wortel", "", int64(6000), 0, "Sayur", "").
				WillReturnError(dbErr)

			// Act
			err := repo.Insert(ctx, product)

			// Assert
			assert.ErrorIs(t, err, dbErr)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("Update", func(t *testing.T) {
		expectedSQL := regexp.QuoteMeta(`UPDATE products SET name = $1, description = $2, price = $3, stock = $4, category = $5, image_url = $6, updated_at = NOW()`)

		t.Run("Success", func(t *testing.T) {
			// Arrange
			product := &models.Product{ID: "p-1", Name: "Bayam Hijau", Price: 5500, Stock: 4, Category: "Sayur"}

			mock.ExpectQuery(expectedSQL).
				WithArgs("Bayam Hijau", "", int64(5500), 4, "Sayur", "", "p-1").
				WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))

			// Act
			err := repo.Update(ctx, product)

			// Assert
			require.NoError(t, err)
			assert.WithinDuration(t, now, product.UpdatedAt, time.Second)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Failure - Not found", func(t *testing.T) {
			// Arrange
			product := &models.Product{ID: "gone", Name: "X", Price: 1, Category: "Y"}

			mock.ExpectQuery(expectedSQL).
				WithArgs("X", "", int64(1), 0, "Y", "", "gone").
				WillReturnError(sql.ErrNoRows)

			// Act
			err := repo.Update(ctx, product)

			// Assert
			assert.ErrorIs(t, err, repository.ErrProductNotFound)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("Delete", func(t *testing.T) {
		expectedSQL := regexp.QuoteMeta(`DELETE FROM products WHERE id = $1`)

		t.Run("Success", func(t *testing.T) {
			// Arrange
			mock.ExpectExec(expectedSQL).WithArgs("p-1").WillReturnResult(sqlmock.NewResult(0, 1))

			// Act
			err := repo.Delete(ctx, "p-1")

			// Assert
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Failure - Not found", func(t *testing.T) {
			// Arrange
			mock.ExpectExec(expectedSQL).WithArgs("gone").WillReturnResult(sqlmock.NewResult(0, 0))

			// Act
			err := repo.Delete(ctx, "gone")

			// Assert
			assert.ErrorIs(t, err, repository.ErrProductNotFound)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("UpdateStock", func(t *testing.T) {
		expectedSQL := regexp.QuoteMeta(`UPDATE products SET stock = GREATEST(stock + $1, 0), updated_at = NOW()`)

		t.Run("Success - Clamped by database", func(t *testing.T) {
			// Arrange
			mock.ExpectQuery(expectedSQL).WithArgs(-3, "p-1").
				WillReturnRows(sqlmock.NewRows([]string{"stock"}).AddRow(0))

			// Act
			stock, err := repo.UpdateStock(ctx, "p-1", -3)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, 0, stock)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Failure - Not found", func(t *testing.T) {
			// Arrange
			mock.ExpectQuery(expectedSQL).WithArgs(1, "gone").WillReturnError(sql.ErrNoRows)

			// Act
			_, err := repo.UpdateStock(ctx, "gone", 1)

			// Assert
			assert.ErrorIs(t, err, repository.ErrProductNotFound)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})
}

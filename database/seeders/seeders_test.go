package seeders_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bcama/linqlab/app/models"
	"github.com/bcama/linqlab/database/seeders"
	"github.com/bcama/linqlab/internal/testdb"
)

func rows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestRunAll_SeedsOnce(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()

	var out bytes.Buffer
	require.NoError(t, seeders.RunAll(ctx, db, &out))
	assert.Contains(t, out.String(), "sample_data")

	assert.Equal(t, int64(2), rows(t, db, &models.Client{}))
	assert.Equal(t, int64(2), rows(t, db, &models.Product{}))
	assert.Equal(t, int64(3), rows(t, db, &models.Order{}))

	require.NoError(t, seeders.RunAll(ctx, db, &out))
	assert.Equal(t, int64(2), rows(t, db, &models.Client{}))
	assert.Equal(t, int64(3), rows(t, db, &models.Order{}))
}

func TestSeedSample_BookHasNoDescription(t *testing.T) {
	db := testdb.Seeded(t)

	var book models.Product
	require.NoError(t, db.Where("name = ?", "Book").First(&book).Error)
	assert.Nil(t, book.Description)
	assert.True(t, book.Price.Equal(decimal.NewFromInt(12)), book.Price.String())
}

// Package testdb builds migrated in-memory databases for tests.
package testdb

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	_ "github.com/bcama/linqlab/database/migrations"
	"github.com/bcama/linqlab/database/seeders"
	"github.com/bcama/linqlab/pkg/database"
	"github.com/bcama/linqlab/pkg/migration"
)

var nameCleaner = strings.NewReplacer("/", "_", " ", "_", "#", "_", "?", "_", "&", "_", "=", "_")

// New returns an empty, fully migrated database private to t.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.OpenMemory(nameCleaner.Replace(t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	require.NoError(t, migration.New(db).WithOutput(io.Discard).Run())
	return db
}

// Seeded is New plus the sample data set: clients Ana (1) and Luis (2),
// products Pen (1, 1.50) and Book (2, 12.00, no description), and orders
// Ana/Pen, Ana/Book and Luis/Book dated 2024-01-01, 2024-02-01, 2024-03-01.
func Seeded(t testing.TB) *gorm.DB {
	t.Helper()

	db := New(t)
	require.NoError(t, seeders.SeedSample(context.Background(), db))
	return db
}

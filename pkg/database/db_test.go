package database

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bcama/linqlab/pkg/metrics"
)

func TestBuildDialector_Unsupported(t *testing.T) {
	_, err := buildDialector("oracle", "whatever")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")

	for _, driver := range []string{"sqlite", "postgres", "mysql", "sqlserver"} {
		d, err := buildDialector(driver, "dsn")
		require.NoError(t, err, driver)
		assert.NotNil(t, d, driver)
	}
}

func TestPing_NotConnected(t *testing.T) {
	assert.ErrorIs(t, Ping(nil), ErrNotConnected)
}

func TestOpenMemory_IsolatedAndInstrumented(t *testing.T) {
	a, err := OpenMemory("db_test_a")
	require.NoError(t, err)
	b, err := OpenMemory("db_test_b")
	require.NoError(t, err)
	t.Cleanup(func() {
		for _, db := range []*gorm.DB{a, b} {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
	})

	type note struct {
		ID   uint
		Text string
	}
	require.NoError(t, a.AutoMigrate(&note{}))
	require.NoError(t, a.Create(&note{Text: "hi"}).Error)
	require.NoError(t, Ping(a))

	assert.False(t, b.Migrator().HasTable(&note{}))

	var n int64
	require.NoError(t, a.Model(&note{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)

	assert.Positive(t, testutil.CollectAndCount(metrics.DBQueryDuration))
}

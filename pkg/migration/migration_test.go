package migration

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bcama/linqlab/pkg/database"
)

type widget struct {
	ID   uint
	Name string
}

type createWidgets struct{}

func (createWidgets) Up(db *gorm.DB) error   { return db.Migrator().CreateTable(&widget{}) }
func (createWidgets) Down(db *gorm.DB) error { return db.Migrator().DropTable(&widget{}) }

func withRegistry(t *testing.T, regs ...registered) {
	t.Helper()
	registryMu.Lock()
	saved := registry
	registry = regs
	registryMu.Unlock()
	t.Cleanup(func() {
		registryMu.Lock()
		registry = saved
		registryMu.Unlock()
	})
}

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenMemory(t.Name())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestRunner_RunAndRollback(t *testing.T) {
	withRegistry(t, registered{name: "20250101000000_create_widgets", m: createWidgets{}})
	db := openDB(t)
	var out bytes.Buffer
	r := New(db).WithOutput(&out)

	pending, err := r.Pending()
	require.NoError(t, err)
	assert.Equal(t, []string{"20250101000000_create_widgets"}, pending)

	require.NoError(t, r.Run())
	assert.True(t, db.Migrator().HasTable(&widget{}))
	assert.Contains(t, out.String(), "Migrated: 20250101000000_create_widgets")

	pending, err = r.Pending()
	require.NoError(t, err)
	assert.Empty(t, pending)

	out.Reset()
	require.NoError(t, r.Run())
	assert.Contains(t, out.String(), "Nothing to migrate.")

	require.NoError(t, r.Rollback())
	assert.False(t, db.Migrator().HasTable(&widget{}))

	out.Reset()
	require.NoError(t, r.Rollback())
	assert.Contains(t, out.String(), "Nothing to roll back.")
}

func TestRunner_Status(t *testing.T) {
	withRegistry(t,
		registered{name: "20250101000001_b", m: createWidgets{}},
		registered{name: "20250101000000_a", m: createWidgets{}},
	)
	db := openDB(t)
	var out bytes.Buffer
	r := New(db).WithOutput(&out)

	require.NoError(t, r.Status())
	s := out.String()
	assert.Less(t, bytes.Index([]byte(s), []byte("_a")), bytes.Index([]byte(s), []byte("_b")))
	assert.Contains(t, s, "Pending")
}

func TestRunner_NoMigrations(t *testing.T) {
	withRegistry(t)

	assert.ErrorIs(t, New(openDB(t)).Run(), ErrNoMigrations)
}

package orm

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bcama/linqlab/pkg/database"
)

type widget struct {
	ID    uint `gorm:"primaryKey"`
	Name  string
	Color string
}

func openWidgets(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.OpenMemory("orm_" + t.Name())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	require.NoError(t, db.AutoMigrate(&widget{}))
	require.NoError(t, db.Create([]widget{
		{Name: "a", Color: "red"},
		{Name: "b", Color: "blue"},
		{Name: "c", Color: "red"},
	}).Error)
	return db
}

type mapCache struct {
	data map[string][]byte
	sets int
}

func (m *mapCache) Get(_ context.Context, key string, dest interface{}) bool {
	raw, ok := m.data[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

func (m *mapCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	m.sets++
	return nil
}

func TestQuery_RefinementsDoNotLeak(t *testing.T) {
	db := openWidgets(t)
	base := New(context.Background(), db).Model(&widget{})

	red, err := base.Where("color = ?", "red").Count()
	require.NoError(t, err)
	assert.Equal(t, int64(2), red)

	all, err := base.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(3), all)

	var names []string
	require.NoError(t, base.Where("color = ?", "red").Order("name DESC").Pluck("name", &names))
	assert.Equal(t, []string{"c", "a"}, names)
}

func TestQuery_FirstAndTake(t *testing.T) {
	db := openWidgets(t)
	q := New(context.Background(), db)

	var w widget
	require.NoError(t, q.Where("color = ?", "blue").First(&w))
	assert.Equal(t, "b", w.Name)

	err := q.Where("color = ?", "green").Take(&widget{})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestQuery_CacheReadsThrough(t *testing.T) {
	db := openWidgets(t)
	c := &mapCache{data: map[string][]byte{}}

	type colorCount struct {
		Color string
		N     int64
	}
	query := func() []colorCount {
		var out []colorCount
		err := New(context.Background(), db).
			Model(&widget{}).
			Select("color, COUNT(*) AS n").
			Group("color").
			Order("color").
			Cache(c, "widgets:by_color", time.Minute, &out)
		require.NoError(t, err)
		return out
	}

	first := query()
	require.Len(t, first, 2)
	assert.Equal(t, 1, c.sets)

	// Served from the cache, so the new row is not seen.
	require.NoError(t, db.Create(&widget{Name: "d", Color: "green"}).Error)
	assert.Equal(t, first, query())
	assert.Equal(t, 1, c.sets)
}

func TestQuery_CacheDisabledWithoutTTL(t *testing.T) {
	db := openWidgets(t)
	c := &mapCache{data: map[string][]byte{}}

	var out []widget
	require.NoError(t, New(context.Background(), db).Model(&widget{}).Cache(c, "widgets", 0, &out))
	assert.Len(t, out, 3)
	assert.Zero(t, c.sets)
}

func TestQuery_CacheNilCacherQueries(t *testing.T) {
	db := openWidgets(t)

	var out []widget
	require.NoError(t, New(context.Background(), db).Model(&widget{}).Cache(nil, "widgets", time.Minute, &out))
	assert.Len(t, out, 3)
}

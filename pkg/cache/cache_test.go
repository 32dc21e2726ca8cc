package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bcama/linqlab/config"
)

func TestNilStore_CachesNothing(t *testing.T) {
	var s *Store
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", []int{1, 2}, time.Minute))

	var out []int
	assert.False(t, s.Get(ctx, "k", &out))
	assert.Nil(t, out)

	assert.NoError(t, s.Forget(ctx, "k"))
	assert.NoError(t, s.Close())
}

func TestConnect_Unreachable(t *testing.T) {
	config.Set("REDIS_ADDR", "127.0.0.1:1")
	t.Cleanup(func() { config.Set("REDIS_ADDR", "localhost:6379") })

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	s, err := Connect(ctx)
	assert.Error(t, err)
	assert.Nil(t, s)
}

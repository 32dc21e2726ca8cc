package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bcama/linqlab/app/models"
)

func TestOrder_BeforeSaveNormalisesToUTC(t *testing.T) {
	local := time.Date(2024, 3, 1, 20, 0, 0, 0, time.FixedZone("EST", -5*60*60))
	o := &models.Order{OrderDate: local}

	require.NoError(t, o.BeforeSave(nil))
	assert.Equal(t, time.UTC, o.OrderDate.Location())
	assert.Equal(t, time.Date(2024, 3, 2, 1, 0, 0, 0, time.UTC), o.OrderDate)
}

package models_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bcama/linqlab/app/models"
)

func TestProduct_PriceEncodesAsNumber(t *testing.T) {
	p := models.Product{ID: 1, Name: "Pen", Price: decimal.RequireFromString("1.50")}

	raw, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"productId":1,"name":"Pen","price":1.5,"description":null}`, string(raw))
}

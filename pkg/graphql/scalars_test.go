package graphql

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimal_Serialize(t *testing.T) {
	d := decimal.RequireFromString("13.50")
	assert.Equal(t, json.Number("13.5"), Decimal.Serialize(d))
	assert.Equal(t, json.Number("13.5"), Decimal.Serialize(&d))
	assert.Nil(t, Decimal.Serialize((*decimal.Decimal)(nil)))
	assert.Nil(t, Decimal.Serialize("13.5"))
}

func TestDecimal_Parse(t *testing.T) {
	for _, in := range []interface{}{"1.5", 1.5, json.Number("1.5")} {
		got, ok := Decimal.ParseValue(in).(decimal.Decimal)
		require.True(t, ok, "%v", in)
		assert.True(t, got.Equal(decimal.RequireFromString("1.5")), "%v", in)
	}
	assert.Nil(t, Decimal.ParseValue("abc"))
	assert.Nil(t, Decimal.ParseValue(true))

	got, ok := Decimal.ParseLiteral(&ast.IntValue{Value: "12"}).(decimal.Decimal)
	require.True(t, ok)
	assert.True(t, got.Equal(decimal.NewFromInt(12)))
	assert.Nil(t, Decimal.ParseLiteral(&ast.BooleanValue{Value: true}))
}

func TestArgs(t *testing.T) {
	args := map[string]interface{}{
		"id":   3,
		"neg":  -1,
		"name": "Ana",
		"min":  decimal.NewFromInt(2),
	}

	id, ok := ArgUint(args, "id")
	assert.True(t, ok)
	assert.Equal(t, uint(3), id)

	_, ok = ArgUint(args, "neg")
	assert.False(t, ok)

	name, ok := ArgString(args, "name")
	assert.True(t, ok)
	assert.Equal(t, "Ana", name)

	minPrice, ok := ArgDecimal(args, "min")
	assert.True(t, ok)
	assert.True(t, minPrice.Equal(decimal.NewFromInt(2)))

	_, ok = ArgDecimal(args, "name")
	assert.False(t, ok)
}

func echoSchema(t *testing.T) graphql.Schema {
	t.Helper()
	schema, err := NewSchema(graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"double": &graphql.Field{
				Type: Decimal,
				Args: graphql.FieldConfigArgument{
					"n": &graphql.ArgumentConfig{Type: graphql.NewNonNull(Decimal)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					n, _ := ArgDecimal(p.Args, "n")
					return n.Mul(decimal.NewFromInt(2)), nil
				},
			},
		},
	}))
	require.NoError(t, err)
	return schema
}

func TestHandler(t *testing.T) {
	h := Handler(echoSchema(t))

	cases := []struct {
		name string
		body string
		code int
		want string
	}{
		{"literal", `{"query":"{ double(n: 1.25) }"}`, http.StatusOK, `{"data":{"double":2.5}}`},
		{"variables", `{"query":"query($n: Decimal!) { double(n: $n) }","variables":{"n":"4.1"}}`, http.StatusOK, `{"data":{"double":8.2}}`},
		{"empty query", `{"query":""}`, http.StatusBadRequest, `{"status":400,"message":"invalid GraphQL request body","errors":{"query":"is required"}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewBufferString(tc.body)))
			assert.Equal(t, tc.code, rec.Code)
			assert.JSONEq(t, tc.want, rec.Body.String())
		})
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewBufferString(`not json`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

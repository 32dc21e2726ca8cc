package graphql

import (
	"encoding/json"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/shopspring/decimal"
)

// Decimal is an exact decimal number. It is written as a JSON number and
// read from an Int, Float or String literal.
var Decimal = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "Decimal",
	Description: "An exact decimal number such as a price.",
	Serialize: func(value interface{}) interface{} {
		switch v := value.(type) {
		case decimal.Decimal:
			return json.Number(v.String())
		case *decimal.Decimal:
			if v == nil {
				return nil
			}
			return json.Number(v.String())
		default:
			return nil
		}
	},
	ParseValue: func(value interface{}) interface{} {
		switch v := value.(type) {
		case string:
			return parseDecimal(v)
		case float64:
			return decimal.NewFromFloat(v)
		case int:
			return decimal.NewFromInt(int64(v))
		case int64:
			return decimal.NewFromInt(v)
		case json.Number:
			return parseDecimal(v.String())
		default:
			return nil
		}
	},
	ParseLiteral: func(valueAST ast.Value) interface{} {
		switch v := valueAST.(type) {
		case *ast.IntValue:
			return parseDecimal(v.Value)
		case *ast.FloatValue:
			return parseDecimal(v.Value)
		case *ast.StringValue:
			return parseDecimal(v.Value)
		default:
			return nil
		}
	},
})

// parseDecimal returns nil for malformed input so graphql-go reports an
// invalid argument.
func parseDecimal(s string) interface{} {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return d
}

// ArgUint reads a non-negative Int argument.
func ArgUint(args map[string]interface{}, name string) (uint, bool) {
	n, ok := args[name].(int)
	if !ok || n < 0 {
		return 0, false
	}
	return uint(n), true
}

// ArgString reads a String argument.
func ArgString(args map[string]interface{}, name string) (string, bool) {
	s, ok := args[name].(string)
	return s, ok
}

// ArgDecimal reads a Decimal argument.
func ArgDecimal(args map[string]interface{}, name string) (decimal.Decimal, bool) {
	d, ok := args[name].(decimal.Decimal)
	return d, ok
}

// Package graphql exposes the reporting queries as a GraphQL schema.
//
//	query {
//	  topClient { clientId name orderCount }
//	  salesByClient { clientName totalSpent }
//	}
package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/bcama/linqlab/app/controllers"
	"github.com/bcama/linqlab/app/services"
	apigql "github.com/bcama/linqlab/pkg/graphql"
)

var clientType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Client",
	Fields: graphql.Fields{
		"clientId": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"name":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"email":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"productId":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"price":       &graphql.Field{Type: graphql.NewNonNull(apigql.Decimal)},
		"description": &graphql.Field{Type: graphql.String},
	},
})

var topClientType = graphql.NewObject(graphql.ObjectConfig{
	Name: "TopClient",
	Fields: graphql.Fields{
		"clientId":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"name":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"orderCount": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
	},
})

var orderLineType = graphql.NewObject(graphql.ObjectConfig{
	Name: "OrderLine",
	Fields: graphql.Fields{
		"orderId":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"product":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"price":     &graphql.Field{Type: graphql.NewNonNull(apigql.Decimal)},
		"client":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"orderDate": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
	},
})

var orderDetailType = graphql.NewObject(graphql.ObjectConfig{
	Name: "OrderDetail",
	Fields: graphql.Fields{
		"orderId":     &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"client":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"clientEmail": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"product":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"price":       &graphql.Field{Type: graphql.NewNonNull(apigql.Decimal)},
		"orderDate":   &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
	},
})

var clientSpendType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ClientSpend",
	Fields: graphql.Fields{
		"clientName": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"totalSpent": &graphql.Field{Type: graphql.NewNonNull(apigql.Decimal)},
	},
})

// orNull turns a NotFoundError into a null result.
func orNull(v interface{}, err error) (interface{}, error) {
	if services.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Schema builds the root query over q.
func Schema(q controllers.Queries) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"clientsByName": &graphql.Field{
				Type:        graphql.NewList(graphql.NewNonNull(clientType)),
				Description: "Clients whose name contains the given text.",
				Args: graphql.FieldConfigArgument{
					"name": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					name, _ := apigql.ArgString(p.Args, "name")
					return orNull(q.ClientsByName(p.Context, name))
				},
			},
			"productsAbovePrice": &graphql.Field{
				Type:        graphql.NewList(graphql.NewNonNull(productType)),
				Description: "Products priced strictly above min.",
				Args: graphql.FieldConfigArgument{
					"min": &graphql.ArgumentConfig{Type: graphql.NewNonNull(apigql.Decimal)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					minPrice, _ := apigql.ArgDecimal(p.Args, "min")
					return orNull(q.ProductsAbovePrice(p.Context, minPrice))
				},
			},
			"mostExpensiveProduct": &graphql.Field{
				Type: productType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return orNull(q.MostExpensiveProduct(p.Context))
				},
			},
			"averagePrice": &graphql.Field{
				Type: graphql.NewNonNull(apigql.Decimal),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					avg, err := q.AveragePrice(p.Context)
					if err != nil {
						return nil, err
					}
					return avg.AveragePrice, nil
				},
			},
			"topClient": &graphql.Field{
				Type: topClientType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return orNull(q.TopClient(p.Context))
				},
			},
			"orderDetails": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(orderLineType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return q.OrderDetails(p.Context)
				},
			},
			"productsByClient": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(graphql.String)),
				Args: graphql.FieldConfigArgument{
					"clientId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, ok := apigql.ArgUint(p.Args, "clientId")
					if !ok {
						return nil, nil
					}
					return orNull(q.ProductsByClient(p.Context, id))
				},
			},
			"orderDetail": &graphql.Field{
				Type: orderDetailType,
				Args: graphql.FieldConfigArgument{
					"orderId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, ok := apigql.ArgUint(p.Args, "orderId")
					if !ok {
						return nil, nil
					}
					return orNull(q.OrderDetail(p.Context, id))
				},
			},
			"salesByClient": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(clientSpendType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return q.SalesByClient(p.Context)
				},
			},
		},
	})

	return apigql.NewSchema(query)
}

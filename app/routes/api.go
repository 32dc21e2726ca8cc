package routes

import (
	"github.com/bcama/linqlab/app/controllers"
	"github.com/bcama/linqlab/pkg/ctx"
	"github.com/bcama/linqlab/pkg/router"
)

// RegisterAPI mounts the read-only query endpoints under /api.
func RegisterAPI(r *router.Router, queries controllers.Queries) {
	qc := controllers.NewQueryController(queries)

	api := r.Group("/api")

	api.Get("/clientes/nombre/{nombre}", "clients.by_name", ctx.Wrap(qc.ClientsByName))
	api.Get("/clientes/producto/{productId}", "clients.by_product", ctx.Wrap(qc.ClientsByProduct))
	api.Get("/clientes/total-productos", "clients.order_totals", ctx.Wrap(qc.ClientsOrderTotals))
	api.Get("/clientes-pedidos", "clients.with_products", ctx.Wrap(qc.ClientsWithProducts))
	api.Get("/cliente-mas-pedidos", "clients.top", ctx.Wrap(qc.TopClient))
	api.Get("/ventas-por-cliente", "clients.sales", ctx.Wrap(qc.SalesByClient))

	api.Get("/productos/precio/{minPrecio}", "products.above_price", ctx.Wrap(qc.ProductsAbovePrice))
	api.Get("/productos/precio-promedio", "products.average_price", ctx.Wrap(qc.AveragePrice))
	api.Get("/productos/sin-descripcion", "products.without_description", ctx.Wrap(qc.ProductsWithoutDescription))
	api.Get("/productos/cliente/{clientId}", "products.by_client", ctx.Wrap(qc.ProductsByClient))
	api.Get("/producto-mas-caro", "products.most_expensive", ctx.Wrap(qc.MostExpensiveProduct))

	api.Get("/orden/productos/{orderId}", "orders.products", ctx.Wrap(qc.OrderProducts))
	api.Get("/orden/cantidad-total/{orderId}", "orders.count", ctx.Wrap(qc.OrderCount))
	api.Get("/pedidos/desde/{fecha}", "orders.after", ctx.Wrap(qc.OrdersAfter))
	api.Get("/pedidos/detalles", "orders.details", ctx.Wrap(qc.OrderDetails))
	api.Get("/pedido-detalle/{orderId}", "orders.detail", ctx.Wrap(qc.OrderDetail))
}

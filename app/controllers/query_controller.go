package controllers

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bcama/linqlab/app/dto"
	"github.com/bcama/linqlab/app/models"
	"github.com/bcama/linqlab/app/services"
	"github.com/bcama/linqlab/pkg/ctx"
)

// Queries is the read surface the controller serves. *services.QueryService
// implements it.
type Queries interface {
	ClientsByName(ctx context.Context, name string) ([]models.Client, error)
	ProductsAbovePrice(ctx context.Context, minPrice decimal.Decimal) ([]models.Product, error)
	OrderProducts(ctx context.Context, orderID uint) ([]dto.OrderProduct, error)
	OrderCount(ctx context.Context, orderID uint) (dto.OrderCount, error)
	MostExpensiveProduct(ctx context.Context) (models.Product, error)
	OrdersAfter(ctx context.Context, t time.Time) ([]models.Order, error)
	AveragePrice(ctx context.Context) (dto.AveragePrice, error)
	ProductsWithoutDescription(ctx context.Context) ([]models.Product, error)
	TopClient(ctx context.Context) (dto.TopClient, error)
	OrderDetails(ctx context.Context) ([]dto.OrderLine, error)
	ProductsByClient(ctx context.Context, clientID uint) ([]string, error)
	ClientsByProduct(ctx context.Context, productID uint) ([]string, error)
	ClientsWithProducts(ctx context.Context) ([]dto.ClientProducts, error)
	OrderDetail(ctx context.Context, orderID uint) (dto.OrderDetail, error)
	ClientsOrderTotals(ctx context.Context) ([]dto.ClientOrderTotal, error)
	SalesByClient(ctx context.Context) ([]dto.ClientSpend, error)
}

type QueryController struct {
	queries Queries
}

func NewQueryController(queries Queries) *QueryController {
	return &QueryController{queries: queries}
}

// respond maps a service result onto the envelope: NotFoundError is a 404
// with its message, anything else is a logged 500.
func respond(c *ctx.Context, data any, err error) {
	switch {
	case err == nil:
		c.Success(data)
	case services.IsNotFound(err):
		c.NotFound(err.Error())
	default:
		c.InternalError(err)
	}
}

func (qc *QueryController) ClientsByName(c *ctx.Context) {
	out, err := qc.queries.ClientsByName(c.Context(), c.Param("nombre"))
	respond(c, out, err)
}

func (qc *QueryController) ProductsAbovePrice(c *ctx.Context) {
	minPrice, ok := c.ParamDecimal("minPrecio")
	if !ok {
		return
	}
	out, err := qc.queries.ProductsAbovePrice(c.Context(), minPrice)
	respond(c, out, err)
}

func (qc *QueryController) OrderProducts(c *ctx.Context) {
	id, ok := c.ParamUint("orderId")
	if !ok {
		return
	}
	out, err := qc.queries.OrderProducts(c.Context(), id)
	respond(c, out, err)
}

func (qc *QueryController) OrderCount(c *ctx.Context) {
	id, ok := c.ParamUint("orderId")
	if !ok {
		return
	}
	out, err := qc.queries.OrderCount(c.Context(), id)
	respond(c, out, err)
}

func (qc *QueryController) MostExpensiveProduct(c *ctx.Context) {
	out, err := qc.queries.MostExpensiveProduct(c.Context())
	respond(c, out, err)
}

func (qc *QueryController) OrdersAfter(c *ctx.Context) {
	since, ok := c.ParamTime("fecha")
	if !ok {
		return
	}
	out, err := qc.queries.OrdersAfter(c.Context(), since)
	respond(c, out, err)
}

func (qc *QueryController) AveragePrice(c *ctx.Context) {
	out, err := qc.queries.AveragePrice(c.Context())
	respond(c, out, err)
}

func (qc *QueryController) ProductsWithoutDescription(c *ctx.Context) {
	out, err := qc.queries.ProductsWithoutDescription(c.Context())
	respond(c, out, err)
}

func (qc *QueryController) TopClient(c *ctx.Context) {
	out, err := qc.queries.TopClient(c.Context())
	respond(c, out, err)
}

func (qc *QueryController) OrderDetails(c *ctx.Context) {
	out, err := qc.queries.OrderDetails(c.Context())
	respond(c, out, err)
}

func (qc *QueryController) ProductsByClient(c *ctx.Context) {
	id, ok := c.ParamUint("clientId")
	if !ok {
		return
	}
	out, err := qc.queries.ProductsByClient(c.Context(), id)
	respond(c, out, err)
}

func (qc *QueryController) ClientsByProduct(c *ctx.Context) {
	id, ok := c.ParamUint("productId")
	if !ok {
		return
	}
	out, err := qc.queries.ClientsByProduct(c.Context(), id)
	respond(c, out, err)
}

func (qc *QueryController) ClientsWithProducts(c *ctx.Context) {
	out, err := qc.queries.ClientsWithProducts(c.Context())
	respond(c, out, err)
}

func (qc *QueryController) OrderDetail(c *ctx.Context) {
	id, ok := c.ParamUint("orderId")
	if !ok {
		return
	}
	out, err := qc.queries.OrderDetail(c.Context(), id)
	respond(c, out, err)
}

func (qc *QueryController) ClientsOrderTotals(c *ctx.Context) {
	out, err := qc.queries.ClientsOrderTotals(c.Context())
	respond(c, out, err)
}

func (qc *QueryController) SalesByClient(c *ctx.Context) {
	out, err := qc.queries.SalesByClient(c.Context())
	respond(c, out, err)
}

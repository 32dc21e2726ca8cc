package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bcama/linqlab/app/dto"
	"github.com/bcama/linqlab/app/models"
	"github.com/bcama/linqlab/app/store"
	"github.com/bcama/linqlab/pkg/orm"
)

const (
	joinProducts = "JOIN products ON products.id = orders.product_id"
	joinClients  = "JOIN clients ON clients.id = orders.client_id"
)

// QueryService answers the read-only reporting queries over clients,
// products and orders. Every call builds its own store.Context, so it is
// safe for concurrent use.
type QueryService struct {
	db       *gorm.DB
	cache    orm.Cacher
	cacheTTL time.Duration
}

// NewQueryService returns a service reading from db. A non-nil cache with
// cacheTTL > 0 enables read-through caching of the whole-table reports.
func NewQueryService(db *gorm.DB, cache orm.Cacher, cacheTTL time.Duration) *QueryService {
	return &QueryService{db: db, cache: cache, cacheTTL: cacheTTL}
}

func (s *QueryService) store(ctx context.Context) *store.Context {
	return store.New(ctx, s.db)
}

// ClientsByName returns clients whose name contains name. Case sensitivity
// follows the store's collation.
func (s *QueryService) ClientsByName(ctx context.Context, name string) ([]models.Client, error) {
	var clients []models.Client
	err := s.store(ctx).Clients().
		Where(store.LikeClause("name"), store.LikeContains(name)).
		Order("id").
		Get(&clients)
	if err != nil {
		return nil, fmt.Errorf("services: clients by name: %w", err)
	}
	if len(clients) == 0 {
		return nil, notFound(fmt.Sprintf("no clients found with a name containing %q", name))
	}
	return clients, nil
}

// ProductsAbovePrice returns products priced strictly above minPrice.
func (s *QueryService) ProductsAbovePrice(ctx context.Context, minPrice decimal.Decimal) ([]models.Product, error) {
	var products []models.Product
	err := s.store(ctx).Products().
		Where("price > ?", minPrice).
		Order("id").
		Get(&products)
	if err != nil {
		return nil, fmt.Errorf("services: products above price: %w", err)
	}
	if len(products) == 0 {
		return nil, notFound(fmt.Sprintf("no products found priced above %s", minPrice.String()))
	}
	return products, nil
}

// OrderProducts returns the product lines of one order.
func (s *QueryService) OrderProducts(ctx context.Context, orderID uint) ([]dto.OrderProduct, error) {
	var rows []dto.OrderProduct
	err := s.store(ctx).Orders().
		Select("orders.id AS order_id, products.name AS product, products.price AS price, orders.order_date AS order_date").
		Joins(joinProducts).
		Where("orders.id = ?", orderID).
		Scan(&rows)
	if err != nil {
		return nil, fmt.Errorf("services: order products: %w", err)
	}
	if len(rows) == 0 {
		return nil, notFound(fmt.Sprintf("no products found for order %d", orderID))
	}
	return rows, nil
}

// OrderCount counts orders with the given id. A missing order is a count
// of zero, not an error.
func (s *QueryService) OrderCount(ctx context.Context, orderID uint) (dto.OrderCount, error) {
	n, err := s.store(ctx).Orders().Where("id = ?", orderID).Count()
	if err != nil {
		return dto.OrderCount{}, fmt.Errorf("services: order count: %w", err)
	}
	return dto.OrderCount{OrderID: orderID, TotalCount: n}, nil
}

// MostExpensiveProduct returns the highest-priced product; ties go to the
// lowest id.
func (s *QueryService) MostExpensiveProduct(ctx context.Context) (models.Product, error) {
	var p models.Product
	err := s.store(ctx).Products().
		Order("price DESC").
		Order("id ASC").
		Take(&p)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Product{}, notFound("there are no products")
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("services: most expensive product: %w", err)
	}
	return p, nil
}

// OrdersAfter returns orders placed strictly after t.
func (s *QueryService) OrdersAfter(ctx context.Context, t time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := s.store(ctx).Orders().
		Where("order_date > ?", t.UTC()).
		Order("order_date").
		Order("id").
		Get(&orders)
	if err != nil {
		return nil, fmt.Errorf("services: orders after: %w", err)
	}
	if len(orders) == 0 {
		return nil, notFound("there are no orders after that date")
	}
	return orders, nil
}

// AveragePrice is the mean product price rounded to cents. With no
// products the average is zero.
func (s *QueryService) AveragePrice(ctx context.Context) (dto.AveragePrice, error) {
	var avg decimal.NullDecimal
	if err := s.store(ctx).Products().Select("AVG(price)").Row().Scan(&avg); err != nil {
		return dto.AveragePrice{}, fmt.Errorf("services: average price: %w", err)
	}
	if !avg.Valid {
		return dto.AveragePrice{AveragePrice: decimal.Zero}, nil
	}
	return dto.AveragePrice{AveragePrice: avg.Decimal.Round(2)}, nil
}

// ProductsWithoutDescription returns products whose description is NULL
// or empty.
func (s *QueryService) ProductsWithoutDescription(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.store(ctx).Products().
		Where("description IS NULL OR description = ?", "").
		Order("id").
		Get(&products)
	if err != nil {
		return nil, fmt.Errorf("services: products without description: %w", err)
	}
	if len(products) == 0 {
		return nil, notFound("there are no products without a description")
	}
	return products, nil
}

type clientOrderCount struct {
	ClientID   uint
	OrderCount int64
}

// TopClient returns the client with the most orders; ties go to the lowest
// client id.
func (s *QueryService) TopClient(ctx context.Context) (dto.TopClient, error) {
	st := s.store(ctx)

	var top []clientOrderCount
	err := st.Orders().
		Select("client_id, COUNT(*) AS order_count").
		Group("client_id").
		Order("order_count DESC").
		Order("client_id ASC").
		Limit(1).
		Scan(&top)
	if err != nil {
		return dto.TopClient{}, fmt.Errorf("services: top client: %w", err)
	}
	if len(top) == 0 {
		return dto.TopClient{}, notFound("no orders found")
	}

	var c models.Client
	err = st.Clients().Where("id = ?", top[0].ClientID).Take(&c)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.TopClient{}, notFound(fmt.Sprintf("client %d not found", top[0].ClientID))
	}
	if err != nil {
		return dto.TopClient{}, fmt.Errorf("services: top client lookup: %w", err)
	}

	return dto.TopClient{ClientID: c.ID, Name: c.Name, OrderCount: top[0].OrderCount}, nil
}

// OrderDetails lists every order with its product and client.
func (s *QueryService) OrderDetails(ctx context.Context) ([]dto.OrderLine, error) {
	rows := []dto.OrderLine{}
	err := s.store(ctx).Orders().
		Select("orders.id AS order_id, products.name AS product, products.price AS price, clients.name AS client, orders.order_date AS order_date").
		Joins(joinProducts).
		Joins(joinClients).
		Order("orders.id").
		Cache(s.cache, "orders:details", s.cacheTTL, &rows)
	if err != nil {
		return nil, fmt.Errorf("services: order details: %w", err)
	}
	if rows == nil {
		rows = []dto.OrderLine{}
	}
	return rows, nil
}

// ProductsByClient returns the distinct names of products a client bought.
func (s *QueryService) ProductsByClient(ctx context.Context, clientID uint) ([]string, error) {
	var names []string
	err := s.store(ctx).Orders().
		Joins(joinProducts).
		Where("orders.client_id = ?", clientID).
		Distinct().
		Order("products.name").
		Pluck("products.name", &names)
	if err != nil {
		return nil, fmt.Errorf("services: products by client: %w", err)
	}
	if len(names) == 0 {
		return nil, notFound(fmt.Sprintf("no products found for client %d", clientID))
	}
	return names, nil
}

// ClientsByProduct returns the distinct names of clients who bought a
// product.
func (s *QueryService) ClientsByProduct(ctx context.Context, productID uint) ([]string, error) {
	var names []string
	err := s.store(ctx).Orders().
		Joins(joinClients).
		Where("orders.product_id = ?", productID).
		Distinct().
		Order("clients.name").
		Pluck("clients.name", &names)
	if err != nil {
		return nil, fmt.Errorf("services: clients by product: %w", err)
	}
	if len(names) == 0 {
		return nil, notFound(fmt.Sprintf("no clients found who bought product %d", productID))
	}
	return names, nil
}

func (s *QueryService) allClients(st *store.Context) ([]models.Client, error) {
	var clients []models.Client
	if err := st.Clients().Order("id").Get(&clients); err != nil {
		return nil, err
	}
	return clients, nil
}

// ClientsWithProducts lists every client with the names of the products on
// their orders. It issues one query per client.
func (s *QueryService) ClientsWithProducts(ctx context.Context) ([]dto.ClientProducts, error) {
	st := s.store(ctx)

	clients, err := s.allClients(st)
	if err != nil {
		return nil, fmt.Errorf("services: clients with products: %w", err)
	}

	out := make([]dto.ClientProducts, 0, len(clients))
	for _, c := range clients {
		var names []string
		err := st.Orders().
			Joins(joinProducts).
			Where("orders.client_id = ?", c.ID).
			Order("orders.id").
			Pluck("products.name", &names)
		if err != nil {
			return nil, fmt.Errorf("services: products of client %d: %w", c.ID, err)
		}
		if names == nil {
			names = []string{}
		}
		out = append(out, dto.ClientProducts{ClientName: c.Name, ProductNames: names})
	}
	return out, nil
}

// OrderDetail returns one order with its client and product loaded.
func (s *QueryService) OrderDetail(ctx context.Context, orderID uint) (dto.OrderDetail, error) {
	var o models.Order
	err := s.store(ctx).Orders().
		Preload("Client").
		Preload("Product").
		Where("orders.id = ?", orderID).
		Take(&o)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.OrderDetail{}, notFound(fmt.Sprintf("order %d not found", orderID))
	}
	if err != nil {
		return dto.OrderDetail{}, fmt.Errorf("services: order detail: %w", err)
	}

	d := dto.OrderDetail{OrderID: o.ID, OrderDate: o.OrderDate}
	if o.Client != nil {
		d.Client = o.Client.Name
		d.ClientEmail = o.Client.Email
	}
	if o.Product != nil {
		d.Product = o.Product.Name
		d.Price = o.Product.Price
	}
	return d, nil
}

// ClientsOrderTotals lists every client with their number of orders. It
// issues one COUNT per client.
func (s *QueryService) ClientsOrderTotals(ctx context.Context) ([]dto.ClientOrderTotal, error) {
	st := s.store(ctx)

	clients, err := s.allClients(st)
	if err != nil {
		return nil, fmt.Errorf("services: client order totals: %w", err)
	}

	out := make([]dto.ClientOrderTotal, 0, len(clients))
	for _, c := range clients {
		n, err := st.Orders().Where("client_id = ?", c.ID).Count()
		if err != nil {
			return nil, fmt.Errorf("services: order count of client %d: %w", c.ID, err)
		}
		out = append(out, dto.ClientOrderTotal{ClientName: c.Name, TotalCount: n})
	}
	return out, nil
}

// SalesByClient sums the price of every order per client name, highest
// total first. Clients without orders are omitted.
func (s *QueryService) SalesByClient(ctx context.Context) ([]dto.ClientSpend, error) {
	rows := []dto.ClientSpend{}
	err := s.store(ctx).Orders().
		Select("clients.name AS client_name, SUM(products.price) AS total_spent").
		Joins(joinClients).
		Joins(joinProducts).
		Group("clients.name").
		Order("total_spent DESC").
		Order("clients.name ASC").
		Cache(s.cache, "sales:by_client", s.cacheTTL, &rows)
	if err != nil {
		return nil, fmt.Errorf("services: sales by client: %w", err)
	}
	if rows == nil {
		rows = []dto.ClientSpend{}
	}
	for i := range rows {
		rows[i].TotalSpent = rows[i].TotalSpent.Round(2)
	}
	return rows, nil
}

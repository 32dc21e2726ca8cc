package seeders

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bcama/linqlab/app/models"
	"github.com/bcama/linqlab/app/repositories"
)

func init() {
	Register("sample_data", SeedSample)
}

func strPtr(s string) *string { return &s }

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

// SeedSample inserts two clients, two products and three orders in one
// transaction. It does nothing when the clients table already has rows.
func SeedSample(ctx context.Context, db *gorm.DB) error {
	existing, err := repositories.NewClientRepository(db).All(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		clients := repositories.NewClientRepository(tx)
		products := repositories.NewProductRepository(tx)
		orders := repositories.NewOrderRepository(tx)

		ana := &models.Client{Name: "Ana", Email: "ana@example.com"}
		luis := &models.Client{Name: "Luis", Email: "luis@example.com"}
		for _, c := range []*models.Client{ana, luis} {
			if err := clients.Create(ctx, c); err != nil {
				return fmt.Errorf("client %s: %w", c.Name, err)
			}
		}

		pen := &models.Product{Name: "Pen", Price: decimal.RequireFromString("1.50"), Description: strPtr("Blue ink ballpoint")}
		book := &models.Product{Name: "Book", Price: decimal.RequireFromString("12.00")}
		for _, p := range []*models.Product{pen, book} {
			if err := products.Create(ctx, p); err != nil {
				return fmt.Errorf("product %s: %w", p.Name, err)
			}
		}

		for _, o := range []*models.Order{
			{ClientID: ana.ID, ProductID: pen.ID, OrderDate: day("2024-01-01")},
			{ClientID: ana.ID, ProductID: book.ID, OrderDate: day("2024-02-01")},
			{ClientID: luis.ID, ProductID: book.ID, OrderDate: day("2024-03-01")},
		} {
			if err := orders.Create(ctx, o); err != nil {
				return fmt.Errorf("order for client %d: %w", o.ClientID, err)
			}
		}
		return nil
	})
}

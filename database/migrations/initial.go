package migrations

import (
	"github.com/bcama/linqlab/app/models"
	"github.com/bcama/linqlab/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20250101000000_create_clients_table", &CreateClientsTable{})
	migration.Register("20250101000001_create_products_table", &CreateProductsTable{})
	migration.Register("20250101000002_create_orders_table", &CreateOrdersTable{})
}

// -------- 0001: clients --------

type CreateClientsTable struct{}

func (m *CreateClientsTable) Up(db *gorm.DB) error {
	return db.Migrator().CreateTable(&models.Client{})
}

func (m *CreateClientsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.Client{})
}

// -------- 0002: products --------

type CreateProductsTable struct{}

func (m *CreateProductsTable) Up(db *gorm.DB) error {
	return db.Migrator().CreateTable(&models.Product{})
}

func (m *CreateProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.Product{})
}

// -------- 0003: orders (FKs to clients and products) --------

type CreateOrdersTable struct{}

func (m *CreateOrdersTable) Up(db *gorm.DB) error {
	return db.Migrator().CreateTable(&models.Order{})
}

func (m *CreateOrdersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.Order{})
}

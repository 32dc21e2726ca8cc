package models

import "github.com/shopspring/decimal"

// Product is a sellable item. Price is stored as decimal(10,2); a nil or
// empty Description means the product has none.
type Product struct {
	ID          uint            `gorm:"column:id;primaryKey"        json:"productId"`
	Name        string          `gorm:"size:100;not null"           json:"name"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Description *string         `gorm:"size:255"                    json:"description"`
	Orders      []Order         `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (Product) TableName() string { return "products" }

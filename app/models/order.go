package models

import (
	"time"

	"gorm.io/gorm"
)

// Order links one client to one product at a point in time. Deleting a
// client or product that still has orders is refused by the store.
type Order struct {
	ID        uint      `gorm:"column:id;primaryKey"  json:"orderId"`
	ClientID  uint      `gorm:"not null;index"        json:"clientId"`
	ProductID uint      `gorm:"not null;index"        json:"productId"`
	OrderDate time.Time `gorm:"not null"             json:"orderDate"`

	Client  *Client  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Product *Product `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (Order) TableName() string { return "orders" }

// BeforeSave stores OrderDate in UTC. SQLite compares date-times as text, so
// mixed offsets would break range filters.
func (o *Order) BeforeSave(*gorm.DB) error {
	o.OrderDate = o.OrderDate.UTC()
	return nil
}

package models

// Client is a purchaser.
type Client struct {
	ID     uint    `gorm:"column:id;primaryKey" json:"clientId"`
	Name   string  `gorm:"size:100;not null"    json:"name"`
	Email  string  `gorm:"size:100;not null"    json:"email"`
	Orders []Order `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (Client) TableName() string { return "clients" }

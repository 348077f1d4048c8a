package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionStatus string

const (
	StatusNormal         TransactionStatus = "normal"
	StatusSoldToCustomer TransactionStatus = "sold_to_customer"
)

// Transaction is one immutable link of a product's custody chain. Rows
// are append-only: never updated, never deleted. BuyerID is NULL exactly
// when Status is sold_to_customer. TransactionDate is the caller-supplied
// business date; CreatedAt (server clock) orders the chain.
type Transaction struct {
	BaseModel
	ProductID       string            `gorm:"type:varchar(50);not null;index" json:"product_id"`
	SellerID        string            `gorm:"type:varchar(50);not null;index" json:"seller_id"`
	BuyerID         *string           `gorm:"type:varchar(50);index" json:"buyer_id"`
	Price           decimal.Decimal   `gorm:"type:decimal(20,4);not null" json:"price"`
	Quantity        decimal.Decimal   `gorm:"type:decimal(20,4);not null" json:"quantity"`
	TransactionDate time.Time         `gorm:"type:date" json:"transaction_date"`
	Status          TransactionStatus `gorm:"type:varchar(20);not null;default:'normal'" json:"status"`

	// Relations for display resolution
	Seller  *User    `gorm:"foreignKey:SellerID;references:UserID" json:"seller,omitempty"`
	Buyer   *User    `gorm:"foreignKey:BuyerID;references:UserID" json:"buyer,omitempty"`
	Product *Product `gorm:"foreignKey:ProductID;references:ProductID" json:"product,omitempty"`
}

// Terminal reports whether this link left the tracked chain (sold to an
// anonymous end customer).
func (t *Transaction) Terminal() bool {
	return t.Status == StatusSoldToCustomer
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock is one holder's current inventory of one product. Quantity is
// always > 0: a row whose quantity reaches exactly zero is deleted, not
// zeroed. The same (user, product) pair may get a fresh row later if the
// holder re-acquires after full depletion.
type Stock struct {
	BaseModel
	UserID        string          `gorm:"type:varchar(50);not null;index" json:"user_id"`
	ProductID     string          `gorm:"type:varchar(50);not null;index" json:"product_id"`
	CropName      string          `gorm:"type:varchar(255);not null" json:"crop_name"`
	Quantity      decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantity"`
	PurchasePrice decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"purchase_price"`
	PurchaseDate  time.Time       `gorm:"type:date" json:"purchase_date"`

	Product *Product `gorm:"foreignKey:ProductID;references:ProductID" json:"product,omitempty"`
}

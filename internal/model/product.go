package model

// Product is the registration record for one batch of produce. It is
// created exactly once by a farmer. InitialFarmerID never changes;
// CurrentOwnerID follows each transfer to an identified buyer and is
// deliberately left alone when stock is sold to an anonymous customer,
// so it always names the last identified holder.
type Product struct {
	BaseModel
	ProductID       string  `gorm:"type:varchar(50);uniqueIndex;not null" json:"product_id" validate:"required"`
	CropName        string  `gorm:"type:varchar(255);not null" json:"crop_name" validate:"required"`
	InitialFarmerID string  `gorm:"type:varchar(50);not null;index" json:"initial_farmer_id"`
	CurrentOwnerID  string  `gorm:"type:varchar(50);not null;index" json:"current_owner_id"`
	Area            float64 `gorm:"default:0" json:"area"`
	Unit            string  `gorm:"type:varchar(20)" json:"unit"`

	// Relations
	InitialFarmer *User `gorm:"foreignKey:InitialFarmerID;references:UserID" json:"initial_farmer,omitempty"`
	CurrentOwner  *User `gorm:"foreignKey:CurrentOwnerID;references:UserID" json:"current_owner,omitempty"`
}

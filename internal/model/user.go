package model

import (
	"golang.org/x/crypto/bcrypt"
)

// UserType identifies a participant's position in the supply chain.
type UserType string

const (
	TypeFarmer      UserType = "farmer"
	TypeDistributor UserType = "distributor"
	TypeRetailer    UserType = "retailer"
	TypeCustomer    UserType = "customer"
)

// User represents a registered participant. UserID is the business
// identifier chosen at registration (e.g. "FARM003") and is what every
// ledger row references; the UUID primary key stays internal.
type User struct {
	BaseModel
	UserID   string   `gorm:"type:varchar(50);uniqueIndex;not null" json:"user_id" validate:"required"`
	Name     string   `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Email    string   `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Password string   `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	UserType UserType `gorm:"type:varchar(20);not null" json:"user_type" validate:"required,oneof=farmer distributor retailer customer"`
	Phone    string   `gorm:"type:varchar(20)" json:"phone"`
	Address  string   `gorm:"type:text" json:"address"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// IsFarmer reports whether the user holds the producer role.
func (u *User) IsFarmer() bool {
	return u.UserType == TypeFarmer
}

// Identity is the authenticated caller threaded explicitly into every
// ledger operation (no ambient session state).
type Identity struct {
	UserID   string   `json:"user_id"`
	Name     string   `json:"name"`
	UserType UserType `json:"user_type"`
}

// Identity returns the request-scoped identity value for this user.
func (u *User) Identity() Identity {
	return Identity{UserID: u.UserID, Name: u.Name, UserType: u.UserType}
}

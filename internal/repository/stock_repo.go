package repository

import (
	"errors"
	"time"

	"agrichain/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type StockRepository interface {
	Create(tx *gorm.DB, stock *model.Stock) error
	FindHolding(tx *gorm.DB, userID, productID string) (*model.Stock, error)
	FindByUser(userID string) ([]model.Stock, error)
	SetQuantity(tx *gorm.DB, stockID uuid.UUID, previous, next decimal.Decimal) (bool, error)
	DeleteHolding(tx *gorm.DB, stockID uuid.UUID, previous decimal.Decimal) (bool, error)
	AddToHolding(tx *gorm.DB, userID, productID, cropName string, quantity, price decimal.Decimal, date time.Time) error
	TotalHeld(productID string) (decimal.Decimal, error)
}

type stockRepo struct {
	db *gorm.DB
}

func NewStockRepo(db *gorm.DB) StockRepository {
	return &stockRepo{db}
}

// ActiveHoldingIndex keeps at most one live stock row per
// (user, product): soft-deleted rows fall out of the partial index, so
// re-acquisition after depletion still opens a fresh row.
const ActiveHoldingIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_stocks_active_holding ON stocks (user_id, product_id) WHERE deleted_at IS NULL`

func (r *stockRepo) Create(tx *gorm.DB, stock *model.Stock) error {
	return tx.Create(stock).Error
}

// FindHolding returns the holder's active stock row for one product.
// gorm.ErrRecordNotFound means the holder has nothing to sell.
func (r *stockRepo) FindHolding(tx *gorm.DB, userID, productID string) (*model.Stock, error) {
	var stock model.Stock
	err := tx.Where("user_id = ? AND product_id = ?", userID, productID).First(&stock).Error
	if err != nil {
		return nil, err
	}
	return &stock, nil
}

func (r *stockRepo) FindByUser(userID string) ([]model.Stock, error) {
	var stocks []model.Stock
	err := r.db.Preload("Product").
		Where("user_id = ?", userID).
		Order("purchase_date DESC").
		Find(&stocks).Error
	return stocks, err
}

// SetQuantity replaces a stock row's quantity only while the previous
// value still matches: a compare-and-swap. The arithmetic itself happens
// in Go with exact decimals, so no database numeric type (Postgres
// NUMERIC, sqlite REAL) ever computes a balance. Concurrent sells
// against the same row serialize here: the loser swaps nothing and
// reports false.
func (r *stockRepo) SetQuantity(tx *gorm.DB, stockID uuid.UUID, previous, next decimal.Decimal) (bool, error) {
	res := tx.Model(&model.Stock{}).
		Where("id = ? AND quantity = ?", stockID, previous).
		Update("quantity", next)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// DeleteHolding removes the row on exact depletion, guarded by the same
// compare-and-swap. A zero-quantity row must never survive a commit.
func (r *stockRepo) DeleteHolding(tx *gorm.DB, stockID uuid.UUID, previous decimal.Decimal) (bool, error) {
	res := tx.Where("id = ? AND quantity = ?", stockID, previous).Delete(&model.Stock{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// AddToHolding grows the buyer's existing active holding, or opens a
// fresh row priced at this acquisition when none exists. The unique
// partial index on active (user_id, product_id) turns a concurrent
// double-insert into a constraint error, which rolls the transfer back.
func (r *stockRepo) AddToHolding(tx *gorm.DB, userID, productID, cropName string, quantity, price decimal.Decimal, date time.Time) error {
	var existing model.Stock
	err := tx.Where("user_id = ? AND product_id = ?", userID, productID).First(&existing).Error
	if err == nil {
		ok, err := r.SetQuantity(tx, existing.ID, existing.Quantity, existing.Quantity.Add(quantity))
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("buyer holding changed concurrently")
		}
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return tx.Create(&model.Stock{
		UserID:        userID,
		ProductID:     productID,
		CropName:      cropName,
		Quantity:      quantity,
		PurchasePrice: price,
		PurchaseDate:  date,
	}).Error
}

// TotalHeld sums every holder's active quantity for a product. The sum
// runs in Go so a REAL-backed column cannot smear fractional amounts.
func (r *stockRepo) TotalHeld(productID string) (decimal.Decimal, error) {
	var quantities []decimal.Decimal
	err := r.db.Model(&model.Stock{}).
		Where("product_id = ?", productID).
		Pluck("quantity", &quantities).Error
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, q := range quantities {
		total = total.Add(q)
	}
	return total, nil
}

package repository

import (
	"agrichain/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	Create(tx *gorm.DB, transaction *model.Transaction) error
	FindByProduct(productID string) ([]model.Transaction, error)
	FindByUser(userID string) ([]model.Transaction, error)
	UserActivity(userID string) (sales int64, purchases int64, err error)
	SoldToCustomerTotal(productID string) (decimal.Decimal, error)
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

func (r *transactionRepo) Create(tx *gorm.DB, transaction *model.Transaction) error {
	return tx.Create(transaction).Error
}

// FindByProduct returns the product's full custody chain in server-clock
// order, oldest first. Rows are never deleted, so the chain survives
// holders who have since disposed of all stock.
func (r *transactionRepo) FindByProduct(productID string) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.Preload("Seller").Preload("Buyer").
		Where("product_id = ?", productID).
		Order("created_at ASC").
		Find(&transactions).Error
	return transactions, err
}

// FindByUser returns one identity's history on either side of the table,
// newest first.
func (r *transactionRepo) FindByUser(userID string) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.Preload("Seller").Preload("Buyer").Preload("Product").
		Where("seller_id = ? OR buyer_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) UserActivity(userID string) (int64, int64, error) {
	var sales, purchases int64
	if err := r.db.Model(&model.Transaction{}).Where("seller_id = ?", userID).Count(&sales).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.Model(&model.Transaction{}).Where("buyer_id = ?", userID).Count(&purchases).Error; err != nil {
		return 0, 0, err
	}
	return sales, purchases, nil
}

// SoldToCustomerTotal sums quantity that has left the tracked chain via
// terminal sales. Summed in Go for exact decimal arithmetic.
func (r *transactionRepo) SoldToCustomerTotal(productID string) (decimal.Decimal, error) {
	var quantities []decimal.Decimal
	err := r.db.Model(&model.Transaction{}).
		Where("product_id = ? AND status = ?", productID, model.StatusSoldToCustomer).
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

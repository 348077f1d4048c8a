package repository

import (
	"agrichain/internal/model"

	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(tx *gorm.DB, product *model.Product) error
	FindByProductID(productID string) (*model.Product, error)
	FindWithHolders(productID string) (*model.Product, error)
	ExistsInTx(tx *gorm.DB, productID string) (bool, error)
	UpdateOwner(tx *gorm.DB, productID, newOwnerID string) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

// Create writes through the caller's transaction so product and initial
// stock commit together.
func (r *productRepo) Create(tx *gorm.DB, product *model.Product) error {
	return tx.Create(product).Error
}

func (r *productRepo) FindByProductID(productID string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "product_id = ?", productID).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindWithHolders resolves the original farmer and current owner for
// provenance display.
func (r *productRepo) FindWithHolders(productID string) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("InitialFarmer").Preload("CurrentOwner").
		First(&product, "product_id = ?", productID).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) ExistsInTx(tx *gorm.DB, productID string) (bool, error) {
	var count int64
	if err := tx.Model(&model.Product{}).Where("product_id = ?", productID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *productRepo) UpdateOwner(tx *gorm.DB, productID, newOwnerID string) error {
	return tx.Model(&model.Product{}).
		Where("product_id = ?", productID).
		Update("current_owner_id", newOwnerID).Error
}

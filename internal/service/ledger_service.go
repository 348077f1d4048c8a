package service

import (
	"encoding/json"
	"fmt"
	"time"

	"agrichain/internal/model"
	"agrichain/internal/repository"
	"agrichain/internal/ws"
	"agrichain/pkg/validator"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LedgerService is the ownership engine: it validates and executes the
// two mutating custody operations. Every multi-row write runs inside one
// database transaction and either fully commits or fully rolls back.
type LedgerService interface {
	CreateProduct(identity model.Identity, req *CreateProductRequest) (*model.Product, error)
	TransferProduct(identity model.Identity, req *TransferRequest) (*model.Transaction, error)
}

type CreateProductRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	CropName  string          `json:"crop_name" validate:"required"`
	Area      float64         `json:"area"`
	Quantity  decimal.Decimal `json:"quantity" validate:"dgt0"`
	Unit      string          `json:"unit"`
}

type TransferRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Buyer     model.Buyer     `json:"-" validate:"-"`
	Price     decimal.Decimal `json:"price" validate:"dgte0"`
	Quantity  decimal.Decimal `json:"quantity" validate:"dgt0"`
	Date      time.Time       `json:"date"`
}

type ledgerService struct {
	productRepo repository.ProductRepository
	stockRepo   repository.StockRepository
	txRepo      repository.TransactionRepository
	userRepo    repository.UserRepository
	db          *gorm.DB
	wsHub       *ws.Hub
}

func NewLedgerService(pRepo repository.ProductRepository, sRepo repository.StockRepository, tRepo repository.TransactionRepository, uRepo repository.UserRepository, db *gorm.DB, hub *ws.Hub) LedgerService {
	return &ledgerService{
		productRepo: pRepo,
		stockRepo:   sRepo,
		txRepo:      tRepo,
		userRepo:    uRepo,
		db:          db,
		wsHub:       hub,
	}
}

// CreateProduct registers a new product batch and opens the farmer's
// initial stock row. Product and stock commit together.
func (s *ledgerService) CreateProduct(identity model.Identity, req *CreateProductRequest) (*model.Product, error) {
	if identity.UserType != model.TypeFarmer {
		return nil, ErrForbidden
	}

	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		if first.Tag == "dgt0" {
			return nil, ErrInvalidQuantity
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, first.FailedField)
	}

	product := &model.Product{
		ProductID:       req.ProductID,
		CropName:        req.CropName,
		InitialFarmerID: identity.UserID,
		CurrentOwnerID:  identity.UserID,
		Area:            req.Area,
		Unit:            req.Unit,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		exists, err := s.productRepo.ExistsInTx(tx, req.ProductID)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrStorage, err)
		}
		if exists {
			return ErrDuplicateProduct
		}

		if err := s.productRepo.Create(tx, product); err != nil {
			return fmt.Errorf("%w: %v", ErrStorage, err)
		}

		stock := &model.Stock{
			UserID:       identity.UserID,
			ProductID:    req.ProductID,
			CropName:     req.CropName,
			Quantity:     req.Quantity,
			PurchaseDate: time.Now(),
		}
		if err := s.stockRepo.Create(tx, stock); err != nil {
			return fmt.Errorf("%w: %v", ErrStorage, err)
		}
		return nil
	})
	if err != nil {
		zap.L().Warn("create product rejected",
			zap.String("product_id", req.ProductID),
			zap.String("farmer_id", identity.UserID),
			zap.Error(err))
		return nil, err
	}

	zap.L().Info("product registered",
		zap.String("product_id", product.ProductID),
		zap.String("crop", product.CropName),
		zap.String("farmer_id", identity.UserID),
		zap.String("quantity", req.Quantity.String()))

	s.broadcast(map[string]interface{}{
		"type":       "custody_update",
		"action":     "product_created",
		"product_id": product.ProductID,
		"crop_name":  product.CropName,
		"farmer":     identity.Name,
		"quantity":   req.Quantity.String(),
		"unit":       product.Unit,
	})

	return product, nil
}

// TransferProduct records one sale: it appends the immutable transaction
// row, decrements the seller's stock (deleting the row on exact
// depletion), and, for an identified buyer, moves ownership and grows the
// buyer's holding. All steps are one atomic unit; a failure at any point
// leaves the ledger exactly as it was.
func (s *ledgerService) TransferProduct(identity model.Identity, req *TransferRequest) (*model.Transaction, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		switch first.Tag {
		case "dgt0":
			return nil, ErrInvalidQuantity
		case "dgte0":
			return nil, ErrInvalidPrice
		default:
			return nil, fmt.Errorf("%w: %s", ErrInvalidInput, first.FailedField)
		}
	}

	var transaction *model.Transaction

	err := s.db.Transaction(func(tx *gorm.DB) error {
		holding, err := s.stockRepo.FindHolding(tx, identity.UserID, req.ProductID)
		if err == gorm.ErrRecordNotFound {
			return ErrProductNotInStock
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrStorage, err)
		}

		if holding.Quantity.LessThan(req.Quantity) {
			return ErrInsufficientStock
		}

		record := &model.Transaction{
			ProductID:       req.ProductID,
			SellerID:        identity.UserID,
			Price:           req.Price,
			Quantity:        req.Quantity,
			TransactionDate: req.Date,
			Status:          model.StatusNormal,
		}

		if buyerID, ok := req.Buyer.Identified(); ok {
			known, err := s.userRepo.Exists(tx, buyerID)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrStorage, err)
			}
			if !known {
				return ErrUnknownBuyer
			}
			record.BuyerID = &buyerID
		} else {
			record.Status = model.StatusSoldToCustomer
		}

		// The new balance is computed here with exact decimals and
		// written back as a compare-and-swap on the value read above: a
		// concurrent sell racing past that snapshot loses the swap
		// instead of overdrawing the holder, and exact depletion always
		// lands on a true zero.
		remaining := holding.Quantity.Sub(req.Quantity)
		var swapped bool
		if remaining.IsZero() {
			swapped, err = s.stockRepo.DeleteHolding(tx, holding.ID, holding.Quantity)
		} else {
			swapped, err = s.stockRepo.SetQuantity(tx, holding.ID, holding.Quantity, remaining)
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrStorage, err)
		}
		if !swapped {
			return ErrInsufficientStock
		}

		if err := s.txRepo.Create(tx, record); err != nil {
			return fmt.Errorf("%w: %v", ErrStorage, err)
		}

		if buyerID, ok := req.Buyer.Identified(); ok {
			if err := s.productRepo.UpdateOwner(tx, req.ProductID, buyerID); err != nil {
				return fmt.Errorf("%w: %v", ErrStorage, err)
			}
			if err := s.stockRepo.AddToHolding(tx, buyerID, req.ProductID, holding.CropName, req.Quantity, req.Price, req.Date); err != nil {
				return fmt.Errorf("%w: %v", ErrStorage, err)
			}
		}
		// A sale to the anonymous customer ends the tracked chain for
		// that quantity: current_owner_id stays at the last identified
		// holder on purpose.

		transaction = record
		return nil
	})
	if err != nil {
		zap.L().Warn("transfer rejected",
			zap.String("product_id", req.ProductID),
			zap.String("seller_id", identity.UserID),
			zap.Error(err))
		return nil, err
	}

	buyerLabel := "customer"
	if buyerID, ok := req.Buyer.Identified(); ok {
		buyerLabel = buyerID
	}
	zap.L().Info("product transferred",
		zap.String("product_id", req.ProductID),
		zap.String("seller_id", identity.UserID),
		zap.String("buyer", buyerLabel),
		zap.String("quantity", req.Quantity.String()))

	s.broadcast(map[string]interface{}{
		"type":       "custody_update",
		"action":     "product_transferred",
		"product_id": req.ProductID,
		"seller":     identity.Name,
		"buyer":      buyerLabel,
		"quantity":   req.Quantity.String(),
		"status":     transaction.Status,
	})

	return transaction, nil
}

func (s *ledgerService) broadcast(payload map[string]interface{}) {
	if s.wsHub == nil {
		return
	}
	go func() {
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()
}

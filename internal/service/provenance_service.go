package service

import (
	"fmt"
	"time"

	"agrichain/internal/model"
	"agrichain/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AnonymousBuyerDisplay is how terminal sales name their counterparty.
const AnonymousBuyerDisplay = "anonymous customer"

// ProvenanceService is the read side of the ledger: it reconstructs
// custody chains from the immutable transaction history and serves
// per-holder views. No method mutates anything.
type ProvenanceService interface {
	Track(productID string) (*ProvenanceView, error)
	ListStock(userID string) ([]model.Stock, error)
	ListTransactions(userID string) ([]TransactionView, error)
	Summary(userID string) (*UserSummary, error)
}

// PartyView is a resolved display identity on one side of a transaction.
type PartyView struct {
	UserID   string         `json:"user_id"`
	Name     string         `json:"name"`
	UserType model.UserType `json:"user_type"`
}

type TransactionView struct {
	TransactionID   uuid.UUID               `json:"transaction_id"`
	ProductID       string                  `json:"product_id"`
	CropName        string                  `json:"crop_name,omitempty"`
	Seller          PartyView               `json:"seller"`
	Buyer           *PartyView              `json:"buyer,omitempty"`
	BuyerDisplay    string                  `json:"buyer_display"`
	Price           decimal.Decimal         `json:"price"`
	Quantity        decimal.Decimal         `json:"quantity"`
	TransactionDate time.Time               `json:"transaction_date"`
	TransactionTime time.Time               `json:"transaction_time"`
	Status          model.TransactionStatus `json:"status"`
}

type ProductView struct {
	ProductID    string    `json:"product_id"`
	CropName     string    `json:"crop_name"`
	Area         float64   `json:"area"`
	Unit         string    `json:"unit"`
	CreatedAt    time.Time `json:"created_at"`
	Farmer       PartyView `json:"farmer"`
	CurrentOwner PartyView `json:"current_owner"`
}

// ProvenanceView is the publicly trackable custody chain of one product,
// oldest transaction first.
type ProvenanceView struct {
	Product      ProductView       `json:"product"`
	Transactions []TransactionView `json:"transactions"`
}

// UserSummary aggregates one identity's ledger activity.
type UserSummary struct {
	Holdings  int   `json:"holdings"`
	Sales     int64 `json:"sales"`
	Purchases int64 `json:"purchases"`
}

type provenanceService struct {
	productRepo repository.ProductRepository
	stockRepo   repository.StockRepository
	txRepo      repository.TransactionRepository
}

func NewProvenanceService(pRepo repository.ProductRepository, sRepo repository.StockRepository, tRepo repository.TransactionRepository) ProvenanceService {
	return &provenanceService{
		productRepo: pRepo,
		stockRepo:   sRepo,
		txRepo:      tRepo,
	}
}

// Track rebuilds the chronological custody chain for one product. It
// needs no authentication and works even when intermediate holders have
// long since disposed of their stock, because transactions are never
// deleted.
func (s *provenanceService) Track(productID string) (*ProvenanceView, error) {
	product, err := s.productRepo.FindWithHolders(productID)
	if err == gorm.ErrRecordNotFound {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	transactions, err := s.txRepo.FindByProduct(productID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	view := &ProvenanceView{
		Product: ProductView{
			ProductID:    product.ProductID,
			CropName:     product.CropName,
			Area:         product.Area,
			Unit:         product.Unit,
			CreatedAt:    product.CreatedAt,
			Farmer:       partyView(product.InitialFarmer, product.InitialFarmerID),
			CurrentOwner: partyView(product.CurrentOwner, product.CurrentOwnerID),
		},
		Transactions: make([]TransactionView, 0, len(transactions)),
	}
	for i := range transactions {
		view.Transactions = append(view.Transactions, transactionView(&transactions[i]))
	}

	zap.L().Debug("tracked product",
		zap.String("product_id", productID),
		zap.Int("chain_length", len(view.Transactions)))
	return view, nil
}

func (s *provenanceService) ListStock(userID string) ([]model.Stock, error) {
	stocks, err := s.stockRepo.FindByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return stocks, nil
}

// ListTransactions returns the identity's history on either side of a
// sale, newest first.
func (s *provenanceService) ListTransactions(userID string) ([]TransactionView, error) {
	transactions, err := s.txRepo.FindByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	views := make([]TransactionView, 0, len(transactions))
	for i := range transactions {
		views = append(views, transactionView(&transactions[i]))
	}
	return views, nil
}

func (s *provenanceService) Summary(userID string) (*UserSummary, error) {
	stocks, err := s.stockRepo.FindByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	sales, purchases, err := s.txRepo.UserActivity(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return &UserSummary{
		Holdings:  len(stocks),
		Sales:     sales,
		Purchases: purchases,
	}, nil
}

func partyView(user *model.User, fallbackID string) PartyView {
	if user == nil {
		return PartyView{UserID: fallbackID, Name: fallbackID}
	}
	return PartyView{UserID: user.UserID, Name: user.Name, UserType: user.UserType}
}

func transactionView(t *model.Transaction) TransactionView {
	view := TransactionView{
		TransactionID:   t.ID,
		ProductID:       t.ProductID,
		Seller:          partyView(t.Seller, t.SellerID),
		BuyerDisplay:    AnonymousBuyerDisplay,
		Price:           t.Price,
		Quantity:        t.Quantity,
		TransactionDate: t.TransactionDate,
		TransactionTime: t.CreatedAt,
		Status:          t.Status,
	}
	if t.Product != nil {
		view.CropName = t.Product.CropName
	}
	if !t.Terminal() && t.BuyerID != nil {
		buyer := partyView(t.Buyer, *t.BuyerID)
		view.Buyer = &buyer
		view.BuyerDisplay = buyer.Name
	}
	return view
}

package service

import (
	"testing"
	"time"

	"agrichain/internal/model"
	"agrichain/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv wires the full service stack over an in-memory sqlite ledger.
type testEnv struct {
	db         *gorm.DB
	users      repository.UserRepository
	products   repository.ProductRepository
	stocks     repository.StockRepository
	txs        repository.TransactionRepository
	ledger     LedgerService
	provenance ProvenanceService
	auth       AuthService
}

func setupTestEnv(t *testing.T) (*testEnv, func()) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// One connection keeps every session on the same in-memory DB.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&model.User{}, &model.Product{}, &model.Stock{}, &model.Transaction{}); err != nil {
		t.Fatalf("Failed to migrate schema: %v", err)
	}
	if err := db.Exec(repository.ActiveHoldingIndex).Error; err != nil {
		t.Fatalf("Failed to create stock index: %v", err)
	}

	userRepo := repository.NewUserRepo(db)
	productRepo := repository.NewProductRepo(db)
	stockRepo := repository.NewStockRepo(db)
	txRepo := repository.NewTransactionRepo(db)

	env := &testEnv{
		db:         db,
		users:      userRepo,
		products:   productRepo,
		stocks:     stockRepo,
		txs:        txRepo,
		ledger:     NewLedgerService(productRepo, stockRepo, txRepo, userRepo, db, nil),
		provenance: NewProvenanceService(productRepo, stockRepo, txRepo),
		auth:       NewAuthService(userRepo),
	}

	cleanup := func() {
		sqlDB.Close()
	}
	return env, cleanup
}

func (e *testEnv) seedUser(t *testing.T, userID, name string, userType model.UserType) model.Identity {
	t.Helper()
	user := &model.User{
		UserID:   userID,
		Name:     name,
		Email:    userID + "@example.com",
		UserType: userType,
	}
	if err := user.SetPassword("password123"); err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	if err := e.users.Create(user); err != nil {
		t.Fatalf("Failed to seed user %s: %v", userID, err)
	}
	return user.Identity()
}

func (e *testEnv) createProduct(t *testing.T, farmer model.Identity, productID string, quantity int64) {
	t.Helper()
	_, err := e.ledger.CreateProduct(farmer, &CreateProductRequest{
		ProductID: productID,
		CropName:  "Wheat",
		Area:      5.5,
		Quantity:  decimal.NewFromInt(quantity),
		Unit:      "kg",
	})
	if err != nil {
		t.Fatalf("Failed to create product %s: %v", productID, err)
	}
}

func (e *testEnv) transfer(t *testing.T, seller model.Identity, productID string, buyer model.Buyer, price, quantity int64) *model.Transaction {
	t.Helper()
	tx, err := e.ledger.TransferProduct(seller, &TransferRequest{
		ProductID: productID,
		Buyer:     buyer,
		Price:     decimal.NewFromInt(price),
		Quantity:  decimal.NewFromInt(quantity),
		Date:      time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Transfer of %s failed: %v", productID, err)
	}
	return tx
}

// holding fetches the active stock row, or nil when depleted.
func (e *testEnv) holding(t *testing.T, userID, productID string) *model.Stock {
	t.Helper()
	stock, err := e.stocks.FindHolding(e.db, userID, productID)
	if err == gorm.ErrRecordNotFound {
		return nil
	}
	if err != nil {
		t.Fatalf("Failed to read holding: %v", err)
	}
	return stock
}

func (e *testEnv) product(t *testing.T, productID string) *model.Product {
	t.Helper()
	product, err := e.products.FindByProductID(productID)
	if err != nil {
		t.Fatalf("Failed to read product %s: %v", productID, err)
	}
	return product
}

// assertConserved checks the conservation law: stock held everywhere
// plus quantity sold to anonymous customers equals the created total.
func (e *testEnv) assertConserved(t *testing.T, productID string, created decimal.Decimal) {
	t.Helper()
	held, err := e.stocks.TotalHeld(productID)
	if err != nil {
		t.Fatalf("Failed to sum stock: %v", err)
	}
	sold, err := e.txs.SoldToCustomerTotal(productID)
	if err != nil {
		t.Fatalf("Failed to sum terminal sales: %v", err)
	}
	if total := held.Add(sold); !total.Equal(created) {
		t.Errorf("Conservation violated for %s: held=%s sold_to_customer=%s created=%s",
			productID, held.String(), sold.String(), created.String())
	}
}

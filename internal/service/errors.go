package service

import "errors"

// Business-rule and storage errors surfaced by the ledger operations.
// Handlers map these onto HTTP statuses; anything wrapped in ErrStorage
// is reported to callers as a generic failure only.
var (
	ErrForbidden         = errors.New("only farmers can add new products")
	ErrDuplicateProduct  = errors.New("product ID already exists")
	ErrDuplicateUser     = errors.New("user ID or email already exists")
	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
	ErrInvalidPrice      = errors.New("price cannot be negative")
	ErrInvalidInput      = errors.New("missing or invalid field")
	ErrProductNotInStock = errors.New("product not in stock")
	ErrInsufficientStock = errors.New("insufficient quantity in stock")
	ErrUnknownBuyer      = errors.New("buyer ID not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidLogin      = errors.New("invalid user ID or password")
	ErrStorage           = errors.New("storage failure")
)

package domain

import "errors"

// Outcome kinds shared by all usecases. Callers match them with errors.Is;
// usecases wrap them with detail via fmt.Errorf("%w: ...").
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrAlreadyOwned       = errors.New("game already owned")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrDenied             = errors.New("access denied")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrConflict           = errors.New("already exists")
	ErrPurchaseInProgress = errors.New("purchase already in progress")
)

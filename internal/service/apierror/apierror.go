package apierror

import (
	"errors"
	"gamestore/domain"
	"net/http"
)

type kind struct {
	err    error
	status int
}

var kinds = []kind{
	{domain.ErrInvalidInput, http.StatusBadRequest},
	{domain.ErrUnauthorized, http.StatusUnauthorized},
	{domain.ErrInsufficientFunds, http.StatusPaymentRequired},
	{domain.ErrDenied, http.StatusForbidden},
	{domain.ErrNotFound, http.StatusNotFound},
	{domain.ErrAlreadyOwned, http.StatusConflict},
	{domain.ErrConflict, http.StatusConflict},
	{domain.ErrPurchaseInProgress, http.StatusConflict},
}

// Status maps an outcome to its HTTP status; unknown errors are 500.
func Status(err error) int {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.status
		}
	}
	return http.StatusInternalServerError
}

// Message returns the user-visible text for err: the outcome's own text,
// without the detail usecases wrap around it. Infrastructure errors are not exposed.
func Message(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.err.Error()
		}
	}
	return "internal error"
}

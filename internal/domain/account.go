package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrOwnerNotFound indicates that the owner for the account is not found.
	ErrOwnerNotFound = errors.New("owner not found")
)

// Account holds a user balance.
//
// Balance equals the baseline plus the sum of all transactions linked to the account.
type Account struct {
	ID        int32           `json:"id"`
	UserID    int32           `json:"user_id"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}

// CreateAccountParams is the input data to create an account.
// Balance is the baseline the ledger starts from.
type CreateAccountParams struct {
	UserID  int32           `json:"user_id"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

// UpdateAccountParams holds the administrative update of an account.
// A non-nil Balance overwrites the stored balance bypassing the ledger.
type UpdateAccountParams struct {
	ID      int32            `json:"id"`
	Name    *string          `json:"name"`
	Balance *decimal.Decimal `json:"balance"`
}

// ListAccountsParams filters accounts listing. Zero UserID lists all accounts.
type ListAccountsParams struct {
	UserID int32 `json:"user_id"`
	Limit  int32 `json:"limit"`
	Offset int64 `json:"offset"`
}

package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrTransactionNotFound indicates that the transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrInvalidAmount indicates that the amount is not a well-formed number.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrConstraintViolation indicates a storage integrity failure.
	ErrConstraintViolation = errors.New("constraint violation")
	// ErrAccountImmutable indicates an attempt to move a transaction to another account.
	ErrAccountImmutable = errors.New("account of a transaction cannot be changed")
)

// Transaction is a signed balance change of an account.
// Positive Amount is a credit, negative is a debit.
type Transaction struct {
	ID          int64           `json:"id"`
	AccountID   int32           `json:"account_id"`
	CategoryID  int32           `json:"category_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CreateTransactionParams is the input data to post a transaction.
type CreateTransactionParams struct {
	AccountID   int32           `json:"account_id"`
	CategoryID  int32           `json:"category_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// UpdateTransactionParams is a partial update: nil fields are left untouched.
// AccountID is immutable and therefore absent.
type UpdateTransactionParams struct {
	ID          int64            `json:"id"`
	Amount      *decimal.Decimal `json:"amount"`
	CategoryID  *int32           `json:"category_id"`
	Description *string          `json:"description"`
}

// ListTransactionsParams filters transactions listing. Zero AccountID lists all.
type ListTransactionsParams struct {
	AccountID int32 `json:"account_id"`
	Limit     int32 `json:"limit"`
	Offset    int64 `json:"offset"`
}

// TransactionTxResult is the committed outcome of a ledger operation.
type TransactionTxResult struct {
	Transaction Transaction `json:"transaction"`
	Account     Account     `json:"account"`
}

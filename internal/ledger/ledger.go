// Package ledger computes the balance effect of transaction mutations.
//
// Every create, update and delete of a transaction is expressed as a Mutation whose
// Delta is the exact signed change of the owning account balance. Storage code applies
// the delta with a single atomic increment in the same database transaction that
// writes the transaction row.
package ledger

import (
	"github.com/go-petr/pet-finance/internal/domain"
	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits stored for amounts and balances.
const Scale = 4

// maxAmount is the first value that no longer fits NUMERIC(20, 4).
var maxAmount = decimal.New(1, 20-Scale)

// maxLiteralLen and the exponent window bound the input before any rescaling,
// which costs time and memory proportional to the exponent.
const (
	maxLiteralLen = 40
	minExponent   = -(Scale + 20)
	maxExponent   = 20
)

// Kind tags a mutation.
type Kind int

// Mutation kinds.
const (
	Create Kind = iota + 1
	Update
	Delete
)

func (k Kind) String() string {
	switch k {
	case Create:
		return "create"
	case Update:
		return "update"
	case Delete:
		return "delete"
	}

	return "unknown"
}

// Mutation describes one change of a transaction row.
//
// Old is the stored amount (update, delete), New the requested one (create, update).
type Mutation struct {
	Kind Kind
	Old  decimal.Decimal
	New  decimal.Decimal
}

// Created returns the mutation posting amount.
func Created(amount decimal.Decimal) Mutation {
	return Mutation{Kind: Create, New: amount}
}

// Updated returns the mutation replacing old with next.
func Updated(old, next decimal.Decimal) Mutation {
	return Mutation{Kind: Update, Old: old, New: next}
}

// Deleted returns the mutation removing a transaction of amount.
func Deleted(amount decimal.Decimal) Mutation {
	return Mutation{Kind: Delete, Old: amount}
}

// Delta returns the signed balance change implied by the mutation.
func (m Mutation) Delta() decimal.Decimal {
	switch m.Kind {
	case Create:
		return m.New
	case Update:
		return m.New.Sub(m.Old)
	case Delete:
		return m.Old.Neg()
	}

	return decimal.Zero
}

// IsNoop reports whether applying the mutation leaves the balance unchanged.
func (m Mutation) IsNoop() bool {
	return m.Delta().IsZero()
}

// ParseAmount parses a signed money amount.
//
// Amounts with more than Scale fractional digits or outside the stored range are
// rejected instead of being rounded by the database.
func ParseAmount(s string) (decimal.Decimal, error) {
	if len(s) > maxLiteralLen {
		return decimal.Decimal{}, domain.ErrInvalidAmount
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, domain.ErrInvalidAmount
	}

	if err := validateAmount(d); err != nil {
		return decimal.Decimal{}, err
	}

	return d, nil
}

// validateAmount checks precision and range of an already parsed amount.
func validateAmount(d decimal.Decimal) error {
	if exp := d.Exponent(); exp < minExponent || exp > maxExponent {
		return domain.ErrInvalidAmount
	}

	if !d.Equal(d.Truncate(Scale)) {
		return domain.ErrInvalidAmount
	}

	if d.Abs().GreaterThanOrEqual(maxAmount) {
		return domain.ErrInvalidAmount
	}

	return nil
}

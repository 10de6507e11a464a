package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountTypeChecking   AccountType = "CHECKING"
	AccountTypeSavings    AccountType = "SAVINGS"
	AccountTypeInvestment AccountType = "INVESTMENT"
)

// Account is a single ledger entry. Number is globally unique and immutable
// once assigned; Balance never goes below zero once an operation commits.
type Account struct {
	ID            string
	Number        int64
	Type          AccountType
	OwnerDocument string
	Balance       decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

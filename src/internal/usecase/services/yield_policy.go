package services

import (
	"github.com/api-sage/bank-backoffice/src/internal/domain"
	"github.com/shopspring/decimal"
)

// InvestmentPolicy computes investment balances for one customer category.
type InvestmentPolicy interface {
	// Contribute returns the balance after crediting a contribution. The
	// contribution itself earns no yield at contribution time.
	Contribute(balance, amount decimal.Decimal) decimal.Decimal

	// Accrue returns the balance after one monthly yield application.
	Accrue(balance decimal.Decimal) decimal.Decimal
}

// fixedRatePolicy backs both categories; they share the same shape and
// differ only in the configured monthly multiplier.
type fixedRatePolicy struct {
	monthlyFactor decimal.Decimal
}

func (p fixedRatePolicy) Contribute(balance, amount decimal.Decimal) decimal.Decimal {
	return balance.Add(amount)
}

func (p fixedRatePolicy) Accrue(balance decimal.Decimal) decimal.Decimal {
	return balance.Mul(p.monthlyFactor)
}

// PolicyTable resolves the investment policy for a customer category.
type PolicyTable map[domain.CustomerCategory]InvestmentPolicy

func NewPolicyTable(monthlyYields map[domain.CustomerCategory]decimal.Decimal) PolicyTable {
	table := make(PolicyTable, len(monthlyYields))
	for category, factor := range monthlyYields {
		table[category] = fixedRatePolicy{monthlyFactor: factor}
	}
	return table
}

func (t PolicyTable) ForCategory(category domain.CustomerCategory) (InvestmentPolicy, error) {
	policy, ok := t[category]
	if !ok {
		return nil, domain.ErrUnsupportedCategory
	}
	return policy, nil
}

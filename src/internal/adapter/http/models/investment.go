package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type InvestmentRequest struct {
	Document string          `json:"document"`
	Amount   decimal.Decimal `json:"amount"`
}

func (r InvestmentRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.Document) == "" {
		errs = append(errs, "document is required")
	}
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "amount must be greater than zero")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

package models

import (
	"errors"
	"strings"
	"time"

	"github.com/api-sage/bank-backoffice/src/internal/domain"
	"github.com/shopspring/decimal"
)

type AccountResponse struct {
	AccountNumber int64           `json:"accountNumber"`
	AccountType   string          `json:"accountType"`
	OwnerDocument string          `json:"ownerDocument"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     string          `json:"createdAt"`
	UpdatedAt     string          `json:"updatedAt"`
}

func NewAccountResponse(account domain.Account) AccountResponse {
	return AccountResponse{
		AccountNumber: account.Number,
		AccountType:   string(account.Type),
		OwnerDocument: account.OwnerDocument,
		Balance:       account.Balance,
		CreatedAt:     account.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     account.UpdatedAt.Format(time.RFC3339),
	}
}

type BalanceResponse struct {
	AccountNumber int64           `json:"accountNumber"`
	Balance       decimal.Decimal `json:"balance"`
}

type OpenSavingsAccountRequest struct {
	Document string `json:"document"`
}

func (r OpenSavingsAccountRequest) Validate() error {
	if strings.TrimSpace(r.Document) == "" {
		return errors.New("document is required")
	}
	return nil
}

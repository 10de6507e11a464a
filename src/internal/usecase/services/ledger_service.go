package services

import (
	"context"
	"strings"

	"github.com/api-sage/bank-backoffice/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/bank-backoffice/src/internal/domain"
	"github.com/api-sage/bank-backoffice/src/internal/logger"
	"github.com/shopspring/decimal"
)

// LedgerService owns account creation rules. Savings accounts are opened
// here; investment accounts are opened lazily by InvestmentService on first
// contribution; checking accounts are opened by CustomerService when a
// customer registers.
type LedgerService struct {
	accountRepo repo_interfaces.AccountRepository
	customers   domain.CustomerDirectory
	numbers     *AccountNumberGenerator
}

func NewLedgerService(
	accountRepo repo_interfaces.AccountRepository,
	customers domain.CustomerDirectory,
	numbers *AccountNumberGenerator,
) *LedgerService {
	return &LedgerService{
		accountRepo: accountRepo,
		customers:   customers,
		numbers:     numbers,
	}
}

// OpenSavingsAccount opens a zero-balance savings account for the customer
// identified by document. Organizations may not hold savings accounts.
func (s *LedgerService) OpenSavingsAccount(ctx context.Context, document string) (domain.Account, error) {
	document = strings.TrimSpace(document)
	logger.Info("ledger service open savings account request", logger.Fields{
		"document": document,
	})

	customer, err := s.customers.GetByDocument(ctx, document)
	if err != nil {
		logger.Error("ledger service open savings account customer lookup failed", err, logger.Fields{
			"document": document,
		})
		return domain.Account{}, err
	}

	if customer.Category == domain.CustomerCategoryOrganization {
		logger.Info("ledger service open savings account rejected for organization", logger.Fields{
			"document": document,
		})
		return domain.Account{}, domain.ErrPolicyViolation
	}

	account := domain.Account{
		Type:          domain.AccountTypeSavings,
		OwnerDocument: customer.Document,
		Balance:       decimal.Zero,
	}

	created, err := createWithFreshNumber(ctx, s.accountRepo, s.numbers, account)
	if err != nil {
		logger.Error("ledger service open savings account creation failed", err, logger.Fields{
			"document": document,
		})
		return domain.Account{}, err
	}

	logger.Info("ledger service open savings account success", logger.Fields{
		"document":      document,
		"accountNumber": created.Number,
	})

	return created, nil
}

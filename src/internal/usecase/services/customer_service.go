package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/api-sage/bank-backoffice/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/bank-backoffice/src/internal/domain"
	"github.com/api-sage/bank-backoffice/src/internal/logger"
	"github.com/shopspring/decimal"
)

// CustomerService registers customers in the directory. Registration also
// bootstraps the customer's first checking account.
type CustomerService struct {
	customers   domain.CustomerDirectory
	accountRepo repo_interfaces.AccountRepository
	numbers     *AccountNumberGenerator
}

func NewCustomerService(
	customers domain.CustomerDirectory,
	accountRepo repo_interfaces.AccountRepository,
	numbers *AccountNumberGenerator,
) *CustomerService {
	return &CustomerService{
		customers:   customers,
		accountRepo: accountRepo,
		numbers:     numbers,
	}
}

func (s *CustomerService) RegisterIndividual(ctx context.Context, document, name string, birthDate time.Time) (domain.Customer, domain.Account, error) {
	customer := domain.Customer{
		Document:  strings.TrimSpace(document),
		Name:      strings.TrimSpace(name),
		BirthDate: &birthDate,
		Category:  domain.CustomerCategoryIndividual,
		Status:    domain.CustomerStatusActive,
	}
	return s.register(ctx, customer)
}

func (s *CustomerService) RegisterOrganization(ctx context.Context, document, name string) (domain.Customer, domain.Account, error) {
	customer := domain.Customer{
		Document: strings.TrimSpace(document),
		Name:     strings.TrimSpace(name),
		Category: domain.CustomerCategoryOrganization,
		Status:   domain.CustomerStatusActive,
	}
	return s.register(ctx, customer)
}

func (s *CustomerService) register(ctx context.Context, customer domain.Customer) (domain.Customer, domain.Account, error) {
	logger.Info("customer service register request", logger.Fields{
		"document": customer.Document,
		"category": customer.Category,
	})

	created, err := s.customers.Create(ctx, customer)
	if err != nil {
		if isUniqueViolation(err) {
			err = fmt.Errorf("customer with document %q already registered: %w", customer.Document, domain.ErrPolicyViolation)
		}
		logger.Error("customer service register failed", err, logger.Fields{
			"document": customer.Document,
		})
		return domain.Customer{}, domain.Account{}, err
	}

	checking, err := createWithFreshNumber(ctx, s.accountRepo, s.numbers, domain.Account{
		Type:          domain.AccountTypeChecking,
		OwnerDocument: created.Document,
		Balance:       decimal.Zero,
	})
	if err != nil {
		logger.Error("customer service register checking account creation failed", err, logger.Fields{
			"document": created.Document,
		})
		return domain.Customer{}, domain.Account{}, err
	}

	logger.Info("customer service register success", logger.Fields{
		"document":      created.Document,
		"category":      created.Category,
		"accountNumber": checking.Number,
	})

	return created, checking, nil
}

// ListCustomers returns every customer, or only those of the given category
// when one is supplied.
func (s *CustomerService) ListCustomers(ctx context.Context, category domain.CustomerCategory) ([]domain.Customer, error) {
	if category == "" {
		return s.customers.GetAll(ctx)
	}
	return s.customers.GetAllByCategory(ctx, category)
}

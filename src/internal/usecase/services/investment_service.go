package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/api-sage/bank-backoffice/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/bank-backoffice/src/internal/domain"
	"github.com/api-sage/bank-backoffice/src/internal/logger"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const casAttempts = 3
const accrueWorkers = 8

// InvestmentService orchestrates contributions into investment accounts and
// the periodic yield run. Each customer holds at most one investment
// account, created lazily on the first contribution.
type InvestmentService struct {
	accountRepo repo_interfaces.AccountRepository
	customers   domain.CustomerDirectory
	numbers     *AccountNumberGenerator
	policies    PolicyTable
}

func NewInvestmentService(
	accountRepo repo_interfaces.AccountRepository,
	customers domain.CustomerDirectory,
	numbers *AccountNumberGenerator,
	policies PolicyTable,
) *InvestmentService {
	return &InvestmentService{
		accountRepo: accountRepo,
		customers:   customers,
		numbers:     numbers,
		policies:    policies,
	}
}

// Invest credits amount into the customer's investment account, creating the
// account first when the customer has none.
func (s *InvestmentService) Invest(ctx context.Context, document string, amount decimal.Decimal) (domain.Account, error) {
	document = strings.TrimSpace(document)
	logger.Info("investment service invest request", logger.Fields{
		"document": document,
		"amount":   amount,
	})

	if amount.LessThanOrEqual(decimal.Zero) {
		return domain.Account{}, domain.ErrInvalidAmount
	}

	customer, err := s.customers.GetByDocument(ctx, document)
	if err != nil {
		logger.Error("investment service invest customer lookup failed", err, logger.Fields{
			"document": document,
		})
		return domain.Account{}, err
	}

	policy, err := s.policies.ForCategory(customer.Category)
	if err != nil {
		return domain.Account{}, err
	}

	account, err := s.singleInvestmentAccount(ctx, customer)
	if err != nil {
		return domain.Account{}, err
	}

	account, err = s.commitBalance(ctx, account, func(balance decimal.Decimal) decimal.Decimal {
		return policy.Contribute(balance, amount)
	})
	if err != nil {
		logger.Error("investment service invest commit failed", err, logger.Fields{
			"document":      document,
			"accountNumber": account.Number,
		})
		return domain.Account{}, err
	}

	logger.Info("investment service invest success", logger.Fields{
		"document":      document,
		"accountNumber": account.Number,
		"balance":       account.Balance,
	})

	return account, nil
}

type AccrualFailure struct {
	AccountNumber int64  `json:"accountNumber"`
	Reason        string `json:"reason"`
}

type AccrualReport struct {
	Succeeded []int64          `json:"succeeded"`
	Failed    []AccrualFailure `json:"failed"`
}

// AccrueAll applies one monthly yield to every investment account. Accounts
// are processed independently; a failure on one is recorded in the report
// and never aborts the rest of the batch.
func (s *InvestmentService) AccrueAll(ctx context.Context) (AccrualReport, error) {
	accounts, err := s.accountRepo.GetAllByType(ctx, domain.AccountTypeInvestment)
	if err != nil {
		logger.Error("investment service accrue all listing failed", err, nil)
		return AccrualReport{}, err
	}

	var mu sync.Mutex
	report := AccrualReport{
		Succeeded: make([]int64, 0, len(accounts)),
		Failed:    make([]AccrualFailure, 0),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(accrueWorkers)

	for _, account := range accounts {
		g.Go(func() error {
			if err := s.accrueOne(gctx, account); err != nil {
				logger.Error("investment service accrual failed for account", err, logger.Fields{
					"accountNumber": account.Number,
				})
				mu.Lock()
				report.Failed = append(report.Failed, AccrualFailure{
					AccountNumber: account.Number,
					Reason:        err.Error(),
				})
				mu.Unlock()
				return nil
			}

			mu.Lock()
			report.Succeeded = append(report.Succeeded, account.Number)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(report.Succeeded, func(i, j int) bool { return report.Succeeded[i] < report.Succeeded[j] })
	sort.Slice(report.Failed, func(i, j int) bool { return report.Failed[i].AccountNumber < report.Failed[j].AccountNumber })

	logger.Info("investment service accrue all finished", logger.Fields{
		"succeeded": len(report.Succeeded),
		"failed":    len(report.Failed),
	})

	return report, nil
}

func (s *InvestmentService) accrueOne(ctx context.Context, account domain.Account) error {
	customer, err := s.customers.GetByDocument(ctx, account.OwnerDocument)
	if err != nil {
		return err
	}

	policy, err := s.policies.ForCategory(customer.Category)
	if err != nil {
		return err
	}

	_, err = s.commitBalance(ctx, account, policy.Accrue)
	return err
}

// commitBalance computes the next balance from the current one and persists
// it with an optimistic compare-and-set, re-reading and recomputing when a
// concurrent writer got there first.
func (s *InvestmentService) commitBalance(
	ctx context.Context,
	account domain.Account,
	next func(balance decimal.Decimal) decimal.Decimal,
) (domain.Account, error) {
	var err error
	for attempt := 0; attempt < casAttempts; attempt++ {
		updated := next(account.Balance)
		err = s.accountRepo.CompareAndSetBalance(ctx, account.Number, account.Balance, updated)
		if err == nil {
			return s.accountRepo.GetByNumber(ctx, account.Number)
		}
		if !errors.Is(err, domain.ErrConcurrentUpdate) {
			return domain.Account{}, err
		}

		account, err = s.accountRepo.GetByNumber(ctx, account.Number)
		if err != nil {
			return domain.Account{}, err
		}
	}

	return domain.Account{}, domain.ErrConcurrentUpdate
}

// singleInvestmentAccount resolves the customer's investment account,
// creating it when absent. More than one stored investment account for the
// same customer is a data-integrity fault, not a normal error path.
func (s *InvestmentService) singleInvestmentAccount(ctx context.Context, customer domain.Customer) (domain.Account, error) {
	accounts, err := s.accountRepo.GetByOwnerAndType(ctx, customer.Document, domain.AccountTypeInvestment)
	if err != nil {
		return domain.Account{}, err
	}

	if len(accounts) > 1 {
		logger.Error("investment service found duplicate investment accounts", domain.ErrDataIntegrity, logger.Fields{
			"document": customer.Document,
			"count":    len(accounts),
		})
		return domain.Account{}, domain.ErrDataIntegrity
	}
	if len(accounts) == 1 {
		return accounts[0], nil
	}

	created, err := createWithFreshNumber(ctx, s.accountRepo, s.numbers, domain.Account{
		Type:          domain.AccountTypeInvestment,
		OwnerDocument: customer.Document,
		Balance:       decimal.Zero,
	})
	if err == nil {
		return created, nil
	}

	// A concurrent Invest for the same customer may have created the
	// account between our lookup and insert; the partial unique index on
	// (owner_document) for investment accounts rejects the duplicate.
	if isUniqueViolation(err) {
		accounts, lookupErr := s.accountRepo.GetByOwnerAndType(ctx, customer.Document, domain.AccountTypeInvestment)
		if lookupErr == nil && len(accounts) == 1 {
			return accounts[0], nil
		}
	}

	return domain.Account{}, err
}

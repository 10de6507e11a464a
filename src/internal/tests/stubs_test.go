package services_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/api-sage/bank-backoffice/src/internal/domain"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type accountRepoStub struct {
	createFn            func(ctx context.Context, account domain.Account) (domain.Account, error)
	getByNumberFn       func(ctx context.Context, number int64) (domain.Account, error)
	existsByNumberFn    func(ctx context.Context, number int64) (bool, error)
	getByOwnerAndTypeFn func(ctx context.Context, ownerDocument string, accountType domain.AccountType) ([]domain.Account, error)
	getAllByTypeFn      func(ctx context.Context, accountType domain.AccountType) ([]domain.Account, error)
	creditFn            func(ctx context.Context, number int64, amount decimal.Decimal) error
	debitFn             func(ctx context.Context, number int64, amount decimal.Decimal) error
	transferFn          func(ctx context.Context, source, dest int64, amount decimal.Decimal) error
	compareAndSetFn     func(ctx context.Context, number int64, expected, next decimal.Decimal) error
}

func (s accountRepoStub) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	if s.createFn != nil {
		return s.createFn(ctx, account)
	}
	return account, nil
}

func (s accountRepoStub) GetByNumber(ctx context.Context, number int64) (domain.Account, error) {
	if s.getByNumberFn != nil {
		return s.getByNumberFn(ctx, number)
	}
	return domain.Account{}, domain.ErrRecordNotFound
}

func (s accountRepoStub) ExistsByNumber(ctx context.Context, number int64) (bool, error) {
	if s.existsByNumberFn != nil {
		return s.existsByNumberFn(ctx, number)
	}
	return false, nil
}

func (s accountRepoStub) GetByOwnerAndType(ctx context.Context, ownerDocument string, accountType domain.AccountType) ([]domain.Account, error) {
	if s.getByOwnerAndTypeFn != nil {
		return s.getByOwnerAndTypeFn(ctx, ownerDocument, accountType)
	}
	return nil, nil
}

func (s accountRepoStub) GetAllByType(ctx context.Context, accountType domain.AccountType) ([]domain.Account, error) {
	if s.getAllByTypeFn != nil {
		return s.getAllByTypeFn(ctx, accountType)
	}
	return nil, nil
}

func (s accountRepoStub) Credit(ctx context.Context, number int64, amount decimal.Decimal) error {
	if s.creditFn != nil {
		return s.creditFn(ctx, number, amount)
	}
	return nil
}

func (s accountRepoStub) Debit(ctx context.Context, number int64, amount decimal.Decimal) error {
	if s.debitFn != nil {
		return s.debitFn(ctx, number, amount)
	}
	return nil
}

func (s accountRepoStub) Transfer(ctx context.Context, source, dest int64, amount decimal.Decimal) error {
	if s.transferFn != nil {
		return s.transferFn(ctx, source, dest, amount)
	}
	return nil
}

func (s accountRepoStub) CompareAndSetBalance(ctx context.Context, number int64, expected, next decimal.Decimal) error {
	if s.compareAndSetFn != nil {
		return s.compareAndSetFn(ctx, number, expected, next)
	}
	return nil
}

type customerDirectoryStub struct {
	getByDocumentFn    func(ctx context.Context, document string) (domain.Customer, error)
	getAllFn           func(ctx context.Context) ([]domain.Customer, error)
	getAllByCategoryFn func(ctx context.Context, category domain.CustomerCategory) ([]domain.Customer, error)
	createFn           func(ctx context.Context, customer domain.Customer) (domain.Customer, error)
}

func (s customerDirectoryStub) GetByDocument(ctx context.Context, document string) (domain.Customer, error) {
	if s.getByDocumentFn != nil {
		return s.getByDocumentFn(ctx, document)
	}
	return domain.Customer{}, domain.ErrRecordNotFound
}

func (s customerDirectoryStub) GetAll(ctx context.Context) ([]domain.Customer, error) {
	if s.getAllFn != nil {
		return s.getAllFn(ctx)
	}
	return nil, nil
}

func (s customerDirectoryStub) GetAllByCategory(ctx context.Context, category domain.CustomerCategory) ([]domain.Customer, error) {
	if s.getAllByCategoryFn != nil {
		return s.getAllByCategoryFn(ctx, category)
	}
	return nil, nil
}

func (s customerDirectoryStub) Create(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	if s.createFn != nil {
		return s.createFn(ctx, customer)
	}
	return customer, nil
}

func directoryOf(customers ...domain.Customer) customerDirectoryStub {
	byDocument := make(map[string]domain.Customer, len(customers))
	for _, customer := range customers {
		byDocument[customer.Document] = customer
	}

	return customerDirectoryStub{
		getByDocumentFn: func(_ context.Context, document string) (domain.Customer, error) {
			customer, ok := byDocument[document]
			if !ok {
				return domain.Customer{}, domain.ErrRecordNotFound
			}
			return customer, nil
		},
	}
}

func individual(document string) domain.Customer {
	return domain.Customer{
		Document: document,
		Name:     "Test Individual",
		Category: domain.CustomerCategoryIndividual,
		Status:   domain.CustomerStatusActive,
	}
}

func organization(document string) domain.Customer {
	return domain.Customer{
		Document: document,
		Name:     "Test Organization",
		Category: domain.CustomerCategoryOrganization,
		Status:   domain.CustomerStatusActive,
	}
}

// memAccountRepo mirrors the behavior of the postgres repository, including
// the unique violations raised by the account-number key and the
// single-investment-per-owner index, so services under test see the same
// error surface they would in production.
type memAccountRepo struct {
	mu       sync.Mutex
	accounts map[int64]domain.Account
	nextID   int
}

func newMemAccountRepo() *memAccountRepo {
	return &memAccountRepo{accounts: make(map[int64]domain.Account)}
}

func uniqueViolation(constraint string) error {
	return &pq.Error{Code: "23505", Constraint: constraint}
}

func (r *memAccountRepo) Create(_ context.Context, account domain.Account) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.accounts[account.Number]; taken {
		return domain.Account{}, uniqueViolation("accounts_account_number_key")
	}
	if account.Type == domain.AccountTypeInvestment {
		for _, existing := range r.accounts {
			if existing.Type == domain.AccountTypeInvestment && existing.OwnerDocument == account.OwnerDocument {
				return domain.Account{}, uniqueViolation("accounts_single_investment_per_owner_key")
			}
		}
	}

	r.nextID++
	account.ID = fmt.Sprintf("acc-%d", r.nextID)
	account.CreatedAt = time.Now().UTC()
	account.UpdatedAt = account.CreatedAt
	r.accounts[account.Number] = account

	return account, nil
}

func (r *memAccountRepo) GetByNumber(_ context.Context, number int64) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[number]
	if !ok {
		return domain.Account{}, domain.ErrRecordNotFound
	}
	return account, nil
}

func (r *memAccountRepo) ExistsByNumber(_ context.Context, number int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.accounts[number]
	return ok, nil
}

func (r *memAccountRepo) GetByOwnerAndType(_ context.Context, ownerDocument string, accountType domain.AccountType) ([]domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matches := make([]domain.Account, 0)
	for _, account := range r.accounts {
		if account.OwnerDocument == ownerDocument && account.Type == accountType {
			matches = append(matches, account)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Number < matches[j].Number })

	return matches, nil
}

func (r *memAccountRepo) GetAllByType(_ context.Context, accountType domain.AccountType) ([]domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matches := make([]domain.Account, 0)
	for _, account := range r.accounts {
		if account.Type == accountType {
			matches = append(matches, account)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Number < matches[j].Number })

	return matches, nil
}

func (r *memAccountRepo) Credit(_ context.Context, number int64, amount decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[number]
	if !ok {
		return domain.ErrRecordNotFound
	}

	account.Balance = account.Balance.Add(amount)
	account.UpdatedAt = time.Now().UTC()
	r.accounts[number] = account

	return nil
}

func (r *memAccountRepo) Debit(_ context.Context, number int64, amount decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.debitLocked(number, amount)
}

func (r *memAccountRepo) debitLocked(number int64, amount decimal.Decimal) error {
	account, ok := r.accounts[number]
	if !ok {
		return domain.ErrRecordNotFound
	}
	if account.Balance.LessThan(amount) {
		return domain.ErrInsufficientFunds
	}

	account.Balance = account.Balance.Sub(amount)
	account.UpdatedAt = time.Now().UTC()
	r.accounts[number] = account

	return nil
}

func (r *memAccountRepo) Transfer(_ context.Context, source, dest int64, amount decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[dest]; !ok {
		return domain.ErrRecordNotFound
	}
	if err := r.debitLocked(source, amount); err != nil {
		return err
	}

	account := r.accounts[dest]
	account.Balance = account.Balance.Add(amount)
	account.UpdatedAt = time.Now().UTC()
	r.accounts[dest] = account

	return nil
}

func (r *memAccountRepo) CompareAndSetBalance(_ context.Context, number int64, expected, next decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[number]
	if !ok {
		return domain.ErrRecordNotFound
	}
	if !account.Balance.Equal(expected) {
		return domain.ErrConcurrentUpdate
	}

	account.Balance = next
	account.UpdatedAt = time.Now().UTC()
	r.accounts[number] = account

	return nil
}

func (r *memAccountRepo) balanceOf(number int64) decimal.Decimal {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.accounts[number].Balance
}

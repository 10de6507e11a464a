package repo_interfaces

import (
	"context"

	"github.com/api-sage/bank-backoffice/src/internal/domain"
	"github.com/shopspring/decimal"
)

type AccountRepository interface {
	// Create persists a new account. The accounts table carries a
	// uniqueness constraint on the account number; callers must treat a
	// unique violation as "number already taken" and retry with a fresh
	// number rather than fail outright.
	Create(ctx context.Context, account domain.Account) (domain.Account, error)

	GetByNumber(ctx context.Context, number int64) (domain.Account, error)
	ExistsByNumber(ctx context.Context, number int64) (bool, error)
	GetByOwnerAndType(ctx context.Context, ownerDocument string, accountType domain.AccountType) ([]domain.Account, error)
	GetAllByType(ctx context.Context, accountType domain.AccountType) ([]domain.Account, error)

	// Credit adds amount to the account balance as a single atomic update.
	Credit(ctx context.Context, number int64, amount decimal.Decimal) error

	// Debit subtracts amount from the account balance. The update is
	// conditional on balance >= amount; domain.ErrInsufficientFunds is
	// returned when the condition does not hold.
	Debit(ctx context.Context, number int64, amount decimal.Decimal) error

	// Transfer debits source and credits dest inside one database
	// transaction. Statements execute in ascending account-number order so
	// concurrent opposite-direction transfers cannot deadlock.
	Transfer(ctx context.Context, source, dest int64, amount decimal.Decimal) error

	// CompareAndSetBalance replaces the balance only if it still equals
	// expected, returning domain.ErrConcurrentUpdate otherwise. Used by the
	// investment path, where the new balance is computed by a yield policy
	// outside the database.
	CompareAndSetBalance(ctx context.Context, number int64, expected, next decimal.Decimal) error
}

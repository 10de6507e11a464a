package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/api-sage/bank-backoffice/src/internal/domain"
	"github.com/api-sage/bank-backoffice/src/internal/logger"
	"github.com/shopspring/decimal"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `id, account_number, account_type, owner_document, balance, created_at, updated_at`

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	const query = `
INSERT INTO accounts (
	account_number,
	account_type,
	owner_document,
	balance
) VALUES ($1, $2, $3, $4)
RETURNING id, created_at, updated_at`

	var id string
	var createdAt time.Time
	var updatedAt time.Time

	if err := r.db.QueryRowContext(
		ctx,
		query,
		account.Number,
		account.Type,
		account.OwnerDocument,
		account.Balance,
	).Scan(&id, &createdAt, &updatedAt); err != nil {
		return domain.Account{}, fmt.Errorf("create account: %w", err)
	}

	account.ID = id
	account.CreatedAt = createdAt
	account.UpdatedAt = updatedAt

	return account, nil
}

func (r *AccountRepository) GetByNumber(ctx context.Context, number int64) (domain.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, number))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrRecordNotFound
		}
		return domain.Account{}, fmt.Errorf("get account by number: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) ExistsByNumber(ctx context.Context, number int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM accounts WHERE account_number = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, number).Scan(&exists); err != nil {
		return false, fmt.Errorf("check account number exists: %w", err)
	}

	return exists, nil
}

func (r *AccountRepository) GetByOwnerAndType(ctx context.Context, ownerDocument string, accountType domain.AccountType) ([]domain.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE owner_document = $1 AND account_type = $2 ORDER BY account_number`

	rows, err := r.db.QueryContext(ctx, query, ownerDocument, accountType)
	if err != nil {
		return nil, fmt.Errorf("get accounts by owner and type: %w", err)
	}
	defer rows.Close()

	return collectAccounts(rows)
}

func (r *AccountRepository) GetAllByType(ctx context.Context, accountType domain.AccountType) ([]domain.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE account_type = $1 ORDER BY account_number`

	rows, err := r.db.QueryContext(ctx, query, accountType)
	if err != nil {
		return nil, fmt.Errorf("get accounts by type: %w", err)
	}
	defer rows.Close()

	return collectAccounts(rows)
}

func (r *AccountRepository) Credit(ctx context.Context, number int64, amount decimal.Decimal) error {
	const query = `
UPDATE accounts
SET balance = balance + $2::numeric,
    updated_at = NOW()
WHERE account_number = $1`

	result, err := r.db.ExecContext(ctx, query, number, amount)
	if err != nil {
		return fmt.Errorf("credit account: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("credit account rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (r *AccountRepository) Debit(ctx context.Context, number int64, amount decimal.Decimal) error {
	const query = `
UPDATE accounts
SET balance = balance - $2::numeric,
    updated_at = NOW()
WHERE account_number = $1
  AND balance >= $2::numeric`

	result, err := r.db.ExecContext(ctx, query, number, amount)
	if err != nil {
		return fmt.Errorf("debit account: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("debit account rows affected: %w", err)
	}
	if affected == 0 {
		return r.classifyRejectedDebit(ctx, r.db, number)
	}

	return nil
}

func (r *AccountRepository) Transfer(ctx context.Context, source, dest int64, amount decimal.Decimal) error {
	logger.Info("account repository transfer", logger.Fields{
		"sourceAccountNumber": source,
		"destAccountNumber":   dest,
		"amount":              amount,
	})

	if source == dest {
		return fmt.Errorf("transfer source and destination accounts must differ")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transfer transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Row locks are taken in ascending account-number order so two
	// opposite-direction transfers cannot deadlock.
	first, second := source, dest
	if dest < source {
		first, second = dest, first
	}

	for _, number := range []int64{first, second} {
		if number == source {
			if err = debitInTx(ctx, tx, number, amount); err != nil {
				if errors.Is(err, errDebitRejected) {
					err = r.classifyRejectedDebit(ctx, tx, number)
				}
				return err
			}
			continue
		}
		if err = creditInTx(ctx, tx, number, amount); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transfer transaction: %w", err)
	}

	return nil
}

func (r *AccountRepository) CompareAndSetBalance(ctx context.Context, number int64, expected, next decimal.Decimal) error {
	const query = `
UPDATE accounts
SET balance = $3::numeric,
    updated_at = NOW()
WHERE account_number = $1
  AND balance = $2::numeric`

	result, err := r.db.ExecContext(ctx, query, number, expected, next)
	if err != nil {
		return fmt.Errorf("compare-and-set balance: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("compare-and-set balance rows affected: %w", err)
	}
	if affected == 0 {
		exists, existsErr := r.ExistsByNumber(ctx, number)
		if existsErr != nil {
			return existsErr
		}
		if !exists {
			return domain.ErrRecordNotFound
		}
		return domain.ErrConcurrentUpdate
	}

	return nil
}

var errDebitRejected = errors.New("debit rejected")

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func debitInTx(ctx context.Context, tx *sql.Tx, number int64, amount decimal.Decimal) error {
	const query = `
UPDATE accounts
SET balance = balance - $2::numeric,
    updated_at = NOW()
WHERE account_number = $1
  AND balance >= $2::numeric`

	result, err := tx.ExecContext(ctx, query, number, amount)
	if err != nil {
		return fmt.Errorf("transfer debit account: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("transfer debit rows affected: %w", err)
	}
	if affected == 0 {
		return errDebitRejected
	}

	return nil
}

func creditInTx(ctx context.Context, tx *sql.Tx, number int64, amount decimal.Decimal) error {
	const query = `
UPDATE accounts
SET balance = balance + $2::numeric,
    updated_at = NOW()
WHERE account_number = $1`

	result, err := tx.ExecContext(ctx, query, number, amount)
	if err != nil {
		return fmt.Errorf("transfer credit account: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("transfer credit rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

// classifyRejectedDebit decides whether a zero-row debit means the account
// does not exist or the balance was too low.
func (r *AccountRepository) classifyRejectedDebit(ctx context.Context, q queryRower, number int64) error {
	const query = `SELECT EXISTS (SELECT 1 FROM accounts WHERE account_number = $1)`

	var exists bool
	if err := q.QueryRowContext(ctx, query, number).Scan(&exists); err != nil {
		return fmt.Errorf("classify rejected debit: %w", err)
	}
	if !exists {
		return domain.ErrRecordNotFound
	}

	return domain.ErrInsufficientFunds
}

func scanAccount(row *sql.Row) (domain.Account, error) {
	var account domain.Account
	if err := row.Scan(
		&account.ID,
		&account.Number,
		&account.Type,
		&account.OwnerDocument,
		&account.Balance,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return domain.Account{}, err
	}

	return account, nil
}

func collectAccounts(rows *sql.Rows) ([]domain.Account, error) {
	accounts := make([]domain.Account, 0)
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(
			&account.ID,
			&account.Number,
			&account.Type,
			&account.OwnerDocument,
			&account.Balance,
			&account.CreatedAt,
			&account.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan account row: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate account rows: %w", err)
	}

	return accounts, nil
}

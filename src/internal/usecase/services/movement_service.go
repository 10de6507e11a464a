package services

import (
	"context"

	"github.com/api-sage/bank-backoffice/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/bank-backoffice/src/internal/domain"
	"github.com/api-sage/bank-backoffice/src/internal/logger"
	"github.com/shopspring/decimal"
)

// MoneyMovementService applies deposits, withdrawals and transfers. Balance
// arithmetic happens inside the repository's conditional updates, so
// concurrent operations on the same account serialize at the database and a
// committed balance can never be negative.
type MoneyMovementService struct {
	accountRepo repo_interfaces.AccountRepository
}

func NewMoneyMovementService(accountRepo repo_interfaces.AccountRepository) *MoneyMovementService {
	return &MoneyMovementService{accountRepo: accountRepo}
}

func (s *MoneyMovementService) Deposit(ctx context.Context, accountNumber int64, amount decimal.Decimal) (domain.Account, error) {
	logger.Info("movement service deposit request", logger.Fields{
		"accountNumber": accountNumber,
		"amount":        amount,
	})

	if amount.LessThanOrEqual(decimal.Zero) {
		return domain.Account{}, domain.ErrInvalidAmount
	}

	if err := s.accountRepo.Credit(ctx, accountNumber, amount); err != nil {
		logger.Error("movement service deposit failed", err, logger.Fields{
			"accountNumber": accountNumber,
			"amount":        amount,
		})
		return domain.Account{}, err
	}

	account, err := s.accountRepo.GetByNumber(ctx, accountNumber)
	if err != nil {
		logger.Error("movement service get account after deposit failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return domain.Account{}, err
	}

	logger.Info("movement service deposit success", logger.Fields{
		"accountNumber": account.Number,
		"balance":       account.Balance,
	})

	return account, nil
}

func (s *MoneyMovementService) Withdraw(ctx context.Context, accountNumber int64, amount decimal.Decimal) (domain.Account, error) {
	logger.Info("movement service withdraw request", logger.Fields{
		"accountNumber": accountNumber,
		"amount":        amount,
	})

	if amount.LessThanOrEqual(decimal.Zero) {
		return domain.Account{}, domain.ErrInvalidAmount
	}

	if err := s.accountRepo.Debit(ctx, accountNumber, amount); err != nil {
		logger.Error("movement service withdraw failed", err, logger.Fields{
			"accountNumber": accountNumber,
			"amount":        amount,
		})
		return domain.Account{}, err
	}

	account, err := s.accountRepo.GetByNumber(ctx, accountNumber)
	if err != nil {
		logger.Error("movement service get account after withdraw failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return domain.Account{}, err
	}

	logger.Info("movement service withdraw success", logger.Fields{
		"accountNumber": account.Number,
		"balance":       account.Balance,
	})

	return account, nil
}

// Transfer moves amount from source to dest as one atomic unit: either both
// the debit and the credit commit or neither does.
func (s *MoneyMovementService) Transfer(ctx context.Context, source, dest int64, amount decimal.Decimal) (domain.Account, domain.Account, error) {
	logger.Info("movement service transfer request", logger.Fields{
		"sourceAccountNumber": source,
		"destAccountNumber":   dest,
		"amount":              amount,
	})

	if amount.LessThanOrEqual(decimal.Zero) {
		return domain.Account{}, domain.Account{}, domain.ErrInvalidAmount
	}

	if err := s.accountRepo.Transfer(ctx, source, dest, amount); err != nil {
		logger.Error("movement service transfer failed", err, logger.Fields{
			"sourceAccountNumber": source,
			"destAccountNumber":   dest,
			"amount":              amount,
		})
		return domain.Account{}, domain.Account{}, err
	}

	sourceAccount, err := s.accountRepo.GetByNumber(ctx, source)
	if err != nil {
		return domain.Account{}, domain.Account{}, err
	}
	destAccount, err := s.accountRepo.GetByNumber(ctx, dest)
	if err != nil {
		return domain.Account{}, domain.Account{}, err
	}

	logger.Info("movement service transfer success", logger.Fields{
		"sourceAccountNumber": sourceAccount.Number,
		"destAccountNumber":   destAccount.Number,
	})

	return sourceAccount, destAccount, nil
}

func (s *MoneyMovementService) GetBalance(ctx context.Context, accountNumber int64) (domain.Account, error) {
	account, err := s.accountRepo.GetByNumber(ctx, accountNumber)
	if err != nil {
		logger.Error("movement service balance lookup failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return domain.Account{}, err
	}

	return account, nil
}

package services

import (
	"context"
	"errors"
	"math/rand/v2"

	"github.com/api-sage/bank-backoffice/src/internal/domain"
	"github.com/api-sage/bank-backoffice/src/internal/logger"
	"github.com/lib/pq"
)

// NumberOracle answers whether a candidate account number is already taken.
type NumberOracle interface {
	ExistsByNumber(ctx context.Context, number int64) (bool, error)
}

// AccountNumberGenerator draws random 64-bit account numbers and redraws
// while the candidate is already present in storage. The check here is a
// best-effort pre-filter; the accounts table's uniqueness constraint is the
// final arbiter, so creation paths retry on unique violations (see
// createWithFreshNumber). The redraw loop is unbounded, which is fine while
// the ID space stays effectively empty relative to 2^63.
type AccountNumberGenerator struct {
	accounts NumberOracle
	random   func() int64
}

func NewAccountNumberGenerator(accounts NumberOracle, random func() int64) *AccountNumberGenerator {
	if random == nil {
		random = rand.Int64
	}
	return &AccountNumberGenerator{
		accounts: accounts,
		random:   random,
	}
}

func (g *AccountNumberGenerator) Generate(ctx context.Context) (int64, error) {
	for {
		candidate := g.random()
		if candidate <= 0 {
			continue
		}

		exists, err := g.accounts.ExistsByNumber(ctx, candidate)
		if err != nil {
			return 0, err
		}
		if !exists {
			return candidate, nil
		}

		logger.Warn("account number generator collision, redrawing", logger.Fields{
			"candidate": candidate,
		})
	}
}

const createAttempts = 5

// createWithFreshNumber persists account under a newly generated number,
// drawing again whenever the insert loses the race to a concurrent creation
// that reserved the same number first.
func createWithFreshNumber(
	ctx context.Context,
	repo accountCreator,
	generator *AccountNumberGenerator,
	account domain.Account,
) (domain.Account, error) {
	var created domain.Account
	var err error

	for attempt := 0; attempt < createAttempts; attempt++ {
		var number int64
		number, err = generator.Generate(ctx)
		if err != nil {
			return domain.Account{}, err
		}

		account.Number = number
		created, err = repo.Create(ctx, account)
		if err == nil {
			return created, nil
		}
		if !isUniqueViolation(err) {
			return domain.Account{}, err
		}

		logger.Warn("account creation lost number reservation race, retrying", logger.Fields{
			"number":  number,
			"attempt": attempt + 1,
		})
	}

	return domain.Account{}, err
}

type accountCreator interface {
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == "23505"
	}
	return false
}

package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/api-sage/bank-backoffice/src/internal/domain"
	"github.com/api-sage/bank-backoffice/src/internal/usecase/services"
)

func newLedgerService(repo *memAccountRepo, customers domain.CustomerDirectory) *services.LedgerService {
	return services.NewLedgerService(repo, customers, services.NewAccountNumberGenerator(repo, nil))
}

func TestLedgerServiceOpenSavingsAccountForIndividual(t *testing.T) {
	repo := newMemAccountRepo()
	svc := newLedgerService(repo, directoryOf(individual("123.456.789-00")))

	account, err := svc.OpenSavingsAccount(context.Background(), "123.456.789-00")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if account.Type != domain.AccountTypeSavings {
		t.Fatalf("expected savings account, got %s", account.Type)
	}
	if !account.Balance.IsZero() {
		t.Fatalf("expected zero opening balance, got %s", account.Balance)
	}
	if account.Number <= 0 {
		t.Fatalf("expected a positive account number, got %d", account.Number)
	}
	if account.OwnerDocument != "123.456.789-00" {
		t.Fatalf("expected owner document to be set, got %q", account.OwnerDocument)
	}

	// A customer may hold several savings accounts; each gets its own number.
	second, err := svc.OpenSavingsAccount(context.Background(), "123.456.789-00")
	if err != nil {
		t.Fatalf("expected nil error on second savings account, got %v", err)
	}
	if second.Number == account.Number {
		t.Fatalf("expected a fresh account number, got %d twice", account.Number)
	}
}

func TestLedgerServiceOpenSavingsAccountRejectsOrganization(t *testing.T) {
	repo := newMemAccountRepo()
	svc := newLedgerService(repo, directoryOf(organization("12.345.678/0009-00")))

	_, err := svc.OpenSavingsAccount(context.Background(), "12.345.678/0009-00")
	if !errors.Is(err, domain.ErrPolicyViolation) {
		t.Fatalf("expected ErrPolicyViolation, got %v", err)
	}

	accounts, err := repo.GetAllByType(context.Background(), domain.AccountTypeSavings)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(accounts) != 0 {
		t.Fatalf("expected no savings account to be created, found %d", len(accounts))
	}
}

func TestLedgerServiceOpenSavingsAccountUnknownCustomer(t *testing.T) {
	repo := newMemAccountRepo()
	svc := newLedgerService(repo, directoryOf())

	_, err := svc.OpenSavingsAccount(context.Background(), "000.000.000-00")
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

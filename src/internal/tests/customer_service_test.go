package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/api-sage/bank-backoffice/src/internal/domain"
	"github.com/api-sage/bank-backoffice/src/internal/usecase/services"
	"github.com/lib/pq"
)

func newCustomerService(customers domain.CustomerDirectory, repo *memAccountRepo) *services.CustomerService {
	return services.NewCustomerService(customers, repo, services.NewAccountNumberGenerator(repo, nil))
}

func TestCustomerServiceRegisterIndividualOpensCheckingAccount(t *testing.T) {
	repo := newMemAccountRepo()
	var stored domain.Customer
	directory := customerDirectoryStub{
		createFn: func(_ context.Context, customer domain.Customer) (domain.Customer, error) {
			stored = customer
			return customer, nil
		},
	}
	svc := newCustomerService(directory, repo)

	birthDate := time.Date(1990, time.March, 15, 0, 0, 0, 0, time.UTC)
	customer, account, err := svc.RegisterIndividual(context.Background(), " 123.456.789-00 ", "Ana Souza", birthDate)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if customer.Document != "123.456.789-00" {
		t.Fatalf("expected trimmed document, got %q", customer.Document)
	}
	if customer.Category != domain.CustomerCategoryIndividual {
		t.Fatalf("expected individual category, got %s", customer.Category)
	}
	if stored.BirthDate == nil || !stored.BirthDate.Equal(birthDate) {
		t.Fatalf("expected birth date to be stored, got %v", stored.BirthDate)
	}

	if account.Type != domain.AccountTypeChecking {
		t.Fatalf("expected a checking account, got %s", account.Type)
	}
	if !account.Balance.IsZero() {
		t.Fatalf("expected zero opening balance, got %s", account.Balance)
	}
	if account.Number <= 0 {
		t.Fatalf("expected a positive account number, got %d", account.Number)
	}
	if account.OwnerDocument != "123.456.789-00" {
		t.Fatalf("expected account owned by the new customer, got %q", account.OwnerDocument)
	}
}

func TestCustomerServiceRegisterOrganization(t *testing.T) {
	repo := newMemAccountRepo()
	directory := customerDirectoryStub{
		createFn: func(_ context.Context, customer domain.Customer) (domain.Customer, error) {
			return customer, nil
		},
	}
	svc := newCustomerService(directory, repo)

	customer, account, err := svc.RegisterOrganization(context.Background(), "12.345.678/0009-00", "Acme Ltda")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if customer.Category != domain.CustomerCategoryOrganization {
		t.Fatalf("expected organization category, got %s", customer.Category)
	}
	if customer.BirthDate != nil {
		t.Fatalf("expected no birth date for an organization, got %v", customer.BirthDate)
	}
	if account.Type != domain.AccountTypeChecking {
		t.Fatalf("expected a checking account, got %s", account.Type)
	}
}

func TestCustomerServiceRegisterDuplicateDocument(t *testing.T) {
	directory := customerDirectoryStub{
		createFn: func(context.Context, domain.Customer) (domain.Customer, error) {
			return domain.Customer{}, &pq.Error{Code: "23505", Constraint: "customers_document_key"}
		},
	}
	svc := newCustomerService(directory, newMemAccountRepo())

	_, _, err := svc.RegisterOrganization(context.Background(), "12.345.678/0009-00", "Acme Ltda")
	if !errors.Is(err, domain.ErrPolicyViolation) {
		t.Fatalf("expected ErrPolicyViolation for duplicate document, got %v", err)
	}
}

func TestCustomerServiceListCustomers(t *testing.T) {
	all := []domain.Customer{individual("1"), organization("2")}
	organizations := []domain.Customer{organization("2")}

	directory := customerDirectoryStub{
		getAllFn: func(context.Context) ([]domain.Customer, error) {
			return all, nil
		},
		getAllByCategoryFn: func(_ context.Context, category domain.CustomerCategory) ([]domain.Customer, error) {
			if category != domain.CustomerCategoryOrganization {
				t.Fatalf("expected organization filter, got %s", category)
			}
			return organizations, nil
		},
	}
	svc := newCustomerService(directory, newMemAccountRepo())

	got, err := svc.ListCustomers(context.Background(), "")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected every customer, got %d", len(got))
	}

	got, err = svc.ListCustomers(context.Background(), domain.CustomerCategoryOrganization)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(got) != 1 || got[0].Category != domain.CustomerCategoryOrganization {
		t.Fatalf("expected only organizations, got %v", got)
	}
}

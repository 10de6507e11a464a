package models

import (
	"errors"
	"strings"
	"time"

	"github.com/api-sage/bank-backoffice/src/internal/domain"
)

type RegisterIndividualRequest struct {
	Document  string `json:"document"`
	Name      string `json:"name"`
	BirthDate string `json:"birthDate"`
}

func (r RegisterIndividualRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.Document) == "" {
		errs = append(errs, "document is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name is required")
	}
	if _, err := r.ParsedBirthDate(); err != nil {
		errs = append(errs, "birthDate must be in YYYY-MM-DD format")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func (r RegisterIndividualRequest) ParsedBirthDate() (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(r.BirthDate))
}

type RegisterOrganizationRequest struct {
	Document string `json:"document"`
	Name     string `json:"name"`
}

func (r RegisterOrganizationRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.Document) == "" {
		errs = append(errs, "document is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type CustomerResponse struct {
	Document  string `json:"document"`
	Name      string `json:"name"`
	BirthDate string `json:"birthDate,omitempty"`
	Category  string `json:"category"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

func NewCustomerResponse(customer domain.Customer) CustomerResponse {
	response := CustomerResponse{
		Document:  customer.Document,
		Name:      customer.Name,
		Category:  string(customer.Category),
		Status:    string(customer.Status),
		CreatedAt: customer.CreatedAt.Format(time.RFC3339),
	}
	if customer.BirthDate != nil {
		response.BirthDate = customer.BirthDate.Format("2006-01-02")
	}
	return response
}

type RegisterCustomerResponse struct {
	Customer        CustomerResponse `json:"customer"`
	CheckingAccount AccountResponse  `json:"checkingAccount"`
}

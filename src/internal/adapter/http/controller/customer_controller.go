package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/api-sage/bank-backoffice/src/internal/adapter/http/models"
	"github.com/api-sage/bank-backoffice/src/internal/commons"
	"github.com/api-sage/bank-backoffice/src/internal/domain"
)

type CustomerService interface {
	RegisterIndividual(ctx context.Context, document, name string, birthDate time.Time) (domain.Customer, domain.Account, error)
	RegisterOrganization(ctx context.Context, document, name string) (domain.Customer, domain.Account, error)
	ListCustomers(ctx context.Context, category domain.CustomerCategory) ([]domain.Customer, error)
}

type CustomerController struct {
	service CustomerService
}

func NewCustomerController(service CustomerService) *CustomerController {
	return &CustomerController{service: service}
}

func (c *CustomerController) RegisterRoutes(mux *http.ServeMux, _ func(http.Handler) http.Handler) {
	mux.Handle("/customers/individual", http.HandlerFunc(c.registerIndividual))
	mux.Handle("/customers/organization", http.HandlerFunc(c.registerOrganization))
	mux.Handle("/customers", http.HandlerFunc(c.listCustomers))
}

func (c *CustomerController) registerIndividual(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.RegisterCustomerResponse]("method not allowed"))
		return
	}

	var req models.RegisterIndividualRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.RegisterCustomerResponse]("invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.RegisterCustomerResponse]("validation failed", err.Error()))
		return
	}

	birthDate, _ := req.ParsedBirthDate()
	customer, checking, err := c.service.RegisterIndividual(r.Context(), req.Document, req.Name, birthDate)
	if err != nil {
		logError(r, err, nil)
		writeJSON(w, statusForError(err), errorEnvelope[models.RegisterCustomerResponse](err))
		return
	}

	response := commons.SuccessResponse("customer registered successfully", models.RegisterCustomerResponse{
		Customer:        models.NewCustomerResponse(customer),
		CheckingAccount: models.NewAccountResponse(checking),
	})
	logResponse(r, http.StatusCreated, response, start)
	writeJSON(w, http.StatusCreated, response)
}

func (c *CustomerController) registerOrganization(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.RegisterCustomerResponse]("method not allowed"))
		return
	}

	var req models.RegisterOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.RegisterCustomerResponse]("invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.RegisterCustomerResponse]("validation failed", err.Error()))
		return
	}

	customer, checking, err := c.service.RegisterOrganization(r.Context(), req.Document, req.Name)
	if err != nil {
		logError(r, err, nil)
		writeJSON(w, statusForError(err), errorEnvelope[models.RegisterCustomerResponse](err))
		return
	}

	response := commons.SuccessResponse("customer registered successfully", models.RegisterCustomerResponse{
		Customer:        models.NewCustomerResponse(customer),
		CheckingAccount: models.NewAccountResponse(checking),
	})
	logResponse(r, http.StatusCreated, response, start)
	writeJSON(w, http.StatusCreated, response)
}

func (c *CustomerController) listCustomers(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[[]models.CustomerResponse]("method not allowed"))
		return
	}
	logRequest(r, nil)

	var category domain.CustomerCategory
	switch raw := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("category"))); raw {
	case "":
	case string(domain.CustomerCategoryIndividual), string(domain.CustomerCategoryOrganization):
		category = domain.CustomerCategory(raw)
	default:
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[[]models.CustomerResponse]("validation failed", "category must be INDIVIDUAL or ORGANIZATION"))
		return
	}

	customers, err := c.service.ListCustomers(r.Context(), category)
	if err != nil {
		logError(r, err, nil)
		writeJSON(w, statusForError(err), errorEnvelope[[]models.CustomerResponse](err))
		return
	}

	listed := make([]models.CustomerResponse, 0, len(customers))
	for _, customer := range customers {
		listed = append(listed, models.NewCustomerResponse(customer))
	}

	response := commons.SuccessResponse("customers fetched successfully", listed)
	logResponse(r, http.StatusOK, response, start)
	writeJSON(w, http.StatusOK, response)
}

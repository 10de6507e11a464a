package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/api-sage/bank-backoffice/src/internal/adapter/http/models"
	"github.com/api-sage/bank-backoffice/src/internal/commons"
	"github.com/api-sage/bank-backoffice/src/internal/domain"
	"github.com/api-sage/bank-backoffice/src/internal/usecase/services"
	"github.com/shopspring/decimal"
)

type LedgerService interface {
	OpenSavingsAccount(ctx context.Context, document string) (domain.Account, error)
}

type MoneyMovementService interface {
	Deposit(ctx context.Context, accountNumber int64, amount decimal.Decimal) (domain.Account, error)
	Withdraw(ctx context.Context, accountNumber int64, amount decimal.Decimal) (domain.Account, error)
	Transfer(ctx context.Context, source, dest int64, amount decimal.Decimal) (domain.Account, domain.Account, error)
	GetBalance(ctx context.Context, accountNumber int64) (domain.Account, error)
}

type InvestmentService interface {
	Invest(ctx context.Context, document string, amount decimal.Decimal) (domain.Account, error)
	AccrueAll(ctx context.Context) (services.AccrualReport, error)
}

type OperationsController struct {
	ledger      LedgerService
	movements   MoneyMovementService
	investments InvestmentService
}

func NewOperationsController(
	ledger LedgerService,
	movements MoneyMovementService,
	investments InvestmentService,
) *OperationsController {
	return &OperationsController{
		ledger:      ledger,
		movements:   movements,
		investments: investments,
	}
}

func (c *OperationsController) RegisterRoutes(mux *http.ServeMux, adminMiddleware func(http.Handler) http.Handler) {
	mux.Handle("/operations/deposit", http.HandlerFunc(c.deposit))
	mux.Handle("/operations/withdraw", http.HandlerFunc(c.withdraw))
	mux.Handle("/operations/transfer", http.HandlerFunc(c.transfer))
	mux.Handle("/operations/invest", http.HandlerFunc(c.invest))
	mux.Handle("/operations/savings-account", http.HandlerFunc(c.openSavingsAccount))
	mux.Handle("/operations/balance/", http.HandlerFunc(c.balance))

	accrue := http.Handler(http.HandlerFunc(c.accrueYield))
	if adminMiddleware != nil {
		accrue = adminMiddleware(accrue)
	}
	mux.Handle("/operations/accrue-yield", accrue)
}

func (c *OperationsController) deposit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.AccountResponse]("method not allowed"))
		return
	}

	var req models.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()))
		return
	}

	account, err := c.movements.Deposit(r.Context(), req.AccountNumber, req.Amount)
	if err != nil {
		logError(r, err, nil)
		writeJSON(w, statusForError(err), errorEnvelope[models.AccountResponse](err))
		return
	}

	response := commons.SuccessResponse("deposit applied successfully", models.NewAccountResponse(account))
	logResponse(r, http.StatusOK, response, start)
	writeJSON(w, http.StatusOK, response)
}

func (c *OperationsController) withdraw(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.AccountResponse]("method not allowed"))
		return
	}

	var req models.WithdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()))
		return
	}

	account, err := c.movements.Withdraw(r.Context(), req.AccountNumber, req.Amount)
	if err != nil {
		logError(r, err, nil)
		writeJSON(w, statusForError(err), errorEnvelope[models.AccountResponse](err))
		return
	}

	response := commons.SuccessResponse("withdrawal applied successfully", models.NewAccountResponse(account))
	logResponse(r, http.StatusOK, response, start)
	writeJSON(w, http.StatusOK, response)
}

func (c *OperationsController) transfer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.TransferResponse]("method not allowed"))
		return
	}

	var req models.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TransferResponse]("invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TransferResponse]("validation failed", err.Error()))
		return
	}

	source, dest, err := c.movements.Transfer(r.Context(), req.SourceAccountNumber, req.DestAccountNumber, req.Amount)
	if err != nil {
		logError(r, err, nil)
		writeJSON(w, statusForError(err), errorEnvelope[models.TransferResponse](err))
		return
	}

	response := commons.SuccessResponse("transfer applied successfully", models.TransferResponse{
		Source: models.NewAccountResponse(source),
		Dest:   models.NewAccountResponse(dest),
	})
	logResponse(r, http.StatusOK, response, start)
	writeJSON(w, http.StatusOK, response)
}

func (c *OperationsController) invest(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.AccountResponse]("method not allowed"))
		return
	}

	var req models.InvestmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()))
		return
	}

	account, err := c.investments.Invest(r.Context(), req.Document, req.Amount)
	if err != nil {
		logError(r, err, nil)
		writeJSON(w, statusForError(err), errorEnvelope[models.AccountResponse](err))
		return
	}

	response := commons.SuccessResponse("investment applied successfully", models.NewAccountResponse(account))
	logResponse(r, http.StatusOK, response, start)
	writeJSON(w, http.StatusOK, response)
}

func (c *OperationsController) openSavingsAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.AccountResponse]("method not allowed"))
		return
	}

	var req models.OpenSavingsAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()))
		return
	}

	account, err := c.ledger.OpenSavingsAccount(r.Context(), req.Document)
	if err != nil {
		logError(r, err, nil)
		writeJSON(w, statusForError(err), errorEnvelope[models.AccountResponse](err))
		return
	}

	response := commons.SuccessResponse("savings account opened successfully", models.NewAccountResponse(account))
	logResponse(r, http.StatusCreated, response, start)
	writeJSON(w, http.StatusCreated, response)
}

func (c *OperationsController) balance(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.BalanceResponse]("method not allowed"))
		return
	}
	logRequest(r, nil)

	raw := strings.TrimPrefix(r.URL.Path, "/operations/balance/")
	number, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || number <= 0 {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.BalanceResponse]("validation failed", "accountNumber must be a positive integer"))
		return
	}

	account, err := c.movements.GetBalance(r.Context(), number)
	if err != nil {
		logError(r, err, nil)
		writeJSON(w, statusForError(err), errorEnvelope[models.BalanceResponse](err))
		return
	}

	response := commons.SuccessResponse("balance fetched successfully", models.BalanceResponse{
		AccountNumber: account.Number,
		Balance:       account.Balance,
	})
	logResponse(r, http.StatusOK, response, start)
	writeJSON(w, http.StatusOK, response)
}

func (c *OperationsController) accrueYield(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[services.AccrualReport]("method not allowed"))
		return
	}
	logRequest(r, nil)

	report, err := c.investments.AccrueAll(r.Context())
	if err != nil {
		logError(r, err, nil)
		writeJSON(w, statusForError(err), errorEnvelope[services.AccrualReport](err))
		return
	}

	response := commons.SuccessResponse("yield accrual finished", report)
	logResponse(r, http.StatusOK, response, start)
	writeJSON(w, http.StatusOK, response)
}

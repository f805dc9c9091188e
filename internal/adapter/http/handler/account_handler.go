package handler

import (
	"context"
	"net/http"

	"github.com/iho/ledgerclient/internal/adapter/http/dto"
	"github.com/iho/ledgerclient/internal/domain"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	GetAccount(ctx context.Context, id int64) (*domain.Account, error)
}

// AccountHandler serves the chart of accounts.
type AccountHandler struct {
	accounts AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accounts AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// List returns the chart of accounts, optionally narrowed to one function type.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	var req dto.AccountListRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	accounts, err := h.accounts.ListAccounts(r.Context())
	if err != nil {
		writeDomainError(w, "failed to list accounts", err)
		return
	}

	if req.Filters != nil && req.Filters.FunctionType != nil {
		want := domain.AccountFunctionType(req.Filters.FunctionType.ID)
		filtered := accounts[:0]
		for _, a := range accounts {
			if a.FunctionType != nil && *a.FunctionType == want {
				filtered = append(filtered, a)
			}
		}
		accounts = filtered
	}

	writeJSON(w, http.StatusOK, dto.AccountsFromDomain(accounts))
}

// Detail returns one account.
func (h *AccountHandler) Detail(w http.ResponseWriter, r *http.Request) {
	var req dto.IDRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	account, err := h.accounts.GetAccount(r.Context(), req.ID)
	if err != nil {
		writeDomainError(w, "failed to get account", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(*account))
}

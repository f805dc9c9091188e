package handler

import (
	"net/http"

	"github.com/iho/ledgerclient/internal/adapter/http/dto"
	"github.com/iho/ledgerclient/internal/usecase"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	usecase.BalanceGateway
	usecase.LockGateway
}

// LedgerHandler handles ledger-wide operations: balances, the integrity check and locks.
type LedgerHandler struct {
	ledger LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledger LedgerService) *LedgerHandler {
	return &LedgerHandler{ledger: ledger}
}

// Balances returns per-account balances over one window.
func (h *LedgerHandler) Balances(w http.ResponseWriter, r *http.Request) {
	var req dto.BalanceRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	start, end, err := req.Window()
	if err != nil {
		writeDomainError(w, "invalid window", err)
		return
	}

	snapshots, err := h.ledger.Balances(r.Context(), usecase.BalanceQuery{
		Start:   start,
		End:     end,
		Filters: req.Filters.ToDomain(),
	})
	if err != nil {
		writeDomainError(w, "failed to compute balances", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BalancesFromDomain(snapshots))
}

// BalancesMulti returns one balance set per end date.
func (h *LedgerHandler) BalancesMulti(w http.ResponseWriter, r *http.Request) {
	var req dto.BalanceMultiRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	start, ends, err := req.Window()
	if err != nil {
		writeDomainError(w, "invalid window", err)
		return
	}

	sets, err := h.ledger.BalancesMulti(r.Context(), usecase.BalanceMultiQuery{
		Start:    start,
		EndDates: ends,
		Filters:  req.Filters.ToDomain(),
	})
	if err != nil {
		writeDomainError(w, "failed to compute balances", err)
		return
	}

	resp := make([][]dto.BalanceResponse, len(sets))
	for i, set := range sets {
		resp[i] = dto.BalancesFromDomain(set)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Check reports the ledger-wide total and the entries that do not balance.
func (h *LedgerHandler) Check(w http.ResponseWriter, r *http.Request) {
	check, err := h.ledger.CheckBalance(r.Context())
	if err != nil {
		writeDomainError(w, "failed to check balance", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceCheckResponse{
		Total:             check.Total,
		EntryCount:        check.EntryCount,
		UnbalancedEntries: check.UnbalancedEntries,
	})
}

// Lock locks an entry against modification.
func (h *LedgerHandler) Lock(w http.ResponseWriter, r *http.Request) {
	var req dto.LockInsertRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	uuid, err := h.ledger.LockEntry(r.Context(), req.EndEntry.ID)
	if err != nil {
		writeDomainError(w, "failed to lock entry", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.UUIDResponse{UUID: uuid})
}

// ListLocks returns every lock.
func (h *LedgerHandler) ListLocks(w http.ResponseWriter, r *http.Request) {
	locks, err := h.ledger.ListLocks(r.Context())
	if err != nil {
		writeDomainError(w, "failed to list locks", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.LocksFromDomain(locks))
}

// Unlock deletes a lock.
func (h *LedgerHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	var req dto.UUIDRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	if err := h.ledger.DeleteLock(r.Context(), req.UUID); err != nil {
		writeDomainError(w, "failed to delete lock", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Success: true, Updated: 1})
}


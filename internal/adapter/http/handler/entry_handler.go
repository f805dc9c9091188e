package handler

import (
	"context"
	"net/http"

	"github.com/iho/ledgerclient/internal/adapter/http/dto"
	"github.com/iho/ledgerclient/internal/domain"
)

// EntryService defines the behavior needed by EntryHandler.
type EntryService interface {
	InsertEntry(ctx context.Context, entry *domain.Entry) (int64, error)
	UpdateEntry(ctx context.Context, id int64, entry *domain.Entry) error
	GetEntry(ctx context.Context, id int64) (*domain.Entry, error)
	DeleteEntry(ctx context.Context, id int64) error
	ListPostedLegs(ctx context.Context, filter domain.LegFilter) ([]domain.PostedLeg, error)
	InsertEntryGroup(ctx context.Context, description string) (int64, error)
	ListEntryGroups(ctx context.Context) ([]domain.EntryGroup, error)
}

// EntryHandler handles entry and entry group requests.
type EntryHandler struct {
	entries EntryService
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(entries EntryService) *EntryHandler {
	return &EntryHandler{entries: entries}
}

// Insert records a new entry.
func (h *EntryHandler) Insert(w http.ResponseWriter, r *http.Request) {
	var req dto.EntryPayload
	if !decodeRequest(w, r, &req) {
		return
	}

	entry, err := req.ToDomain()
	if err != nil {
		writeDomainError(w, "invalid entry", err)
		return
	}

	id, err := h.entries.InsertEntry(r.Context(), entry)
	if err != nil {
		writeDomainError(w, "failed to insert entry", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryInsertResponse{Entry: dto.IDRef{ID: id}})
}

// Update replaces an entry.
func (h *EntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.EntryUpdateRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	entry, err := req.Data.ToDomain()
	if err != nil {
		writeDomainError(w, "invalid entry", err)
		return
	}

	if err := h.entries.UpdateEntry(r.Context(), req.ID, entry); err != nil {
		writeDomainError(w, "failed to update entry", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Success: true, Updated: 1})
}

// Detail returns one entry.
func (h *EntryHandler) Detail(w http.ResponseWriter, r *http.Request) {
	var req dto.IDRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	entry, err := h.entries.GetEntry(r.Context(), req.ID)
	if err != nil {
		writeDomainError(w, "failed to get entry", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryToPayload(entry))
}

// Delete removes an entry.
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req dto.IDRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	if err := h.entries.DeleteEntry(r.Context(), req.ID); err != nil {
		writeDomainError(w, "failed to delete entry", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Success: true, Updated: 1})
}

// ListLegs returns posted legs filtered by account and ledger date.
func (h *EntryHandler) ListLegs(w http.ResponseWriter, r *http.Request) {
	var req dto.EntryAccountListRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	filter, err := req.Filters.ToDomain()
	if err != nil {
		writeDomainError(w, "invalid filters", err)
		return
	}

	legs, err := h.entries.ListPostedLegs(r.Context(), filter)
	if err != nil {
		writeDomainError(w, "failed to list legs", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.PostedLegsFromDomain(legs))
}

// InsertGroup creates an entry group.
func (h *EntryHandler) InsertGroup(w http.ResponseWriter, r *http.Request) {
	var req dto.EntryGroupPayload
	if !decodeRequest(w, r, &req) {
		return
	}

	id, err := h.entries.InsertEntryGroup(r.Context(), req.Description)
	if err != nil {
		writeDomainError(w, "failed to insert entry group", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.IDResponse{ID: id})
}

// ListGroups returns every entry group.
func (h *EntryHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.entries.ListEntryGroups(r.Context())
	if err != nil {
		writeDomainError(w, "failed to list entry groups", err)
		return
	}

	resp := make([]dto.EntryGroupPayload, len(groups))
	for i, g := range groups {
		resp[i] = dto.EntryGroupPayload{ID: g.ID, Description: g.Description}
	}
	writeJSON(w, http.StatusOK, resp)
}

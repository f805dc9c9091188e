package handler

import (
	"context"
	"net/http"

	"github.com/iho/ledgerclient/internal/adapter/http/dto"
	"github.com/iho/ledgerclient/internal/domain"
	"github.com/iho/ledgerclient/internal/usecase"
)

// CompanyService defines the behavior needed by CompanyHandler.
type CompanyService interface {
	usecase.CompanyGateway
	usecase.InvoiceGateway
	ListAddresses(ctx context.Context, companyUUID string) ([]domain.Address, error)
	InsertAddress(ctx context.Context, companyUUID string, address domain.Address) (int64, error)
}

// CompanyHandler handles companies, their addresses and payment profiles, and invoice
// imports addressed to them.
type CompanyHandler struct {
	companies CompanyService
}

// NewCompanyHandler creates a new CompanyHandler.
func NewCompanyHandler(companies CompanyService) *CompanyHandler {
	return &CompanyHandler{companies: companies}
}

// List returns every company.
func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	companies, err := h.companies.ListCompanies(r.Context())
	if err != nil {
		writeDomainError(w, "failed to list companies", err)
		return
	}

	resp := make([]dto.CompanyResponse, len(companies))
	for i, c := range companies {
		resp[i] = dto.CompanyResponse{UUID: c.UUID, Name: c.Name}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Insert creates a company.
func (h *CompanyHandler) Insert(w http.ResponseWriter, r *http.Request) {
	var req dto.CompanyInsertRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	uuid, err := h.companies.InsertCompany(r.Context(), req.Data.Name)
	if err != nil {
		writeDomainError(w, "failed to insert company", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.UUIDResponse{UUID: uuid})
}

// ListAddresses returns the addresses of a company.
func (h *CompanyHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	var req dto.AddressListRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	addresses, err := h.companies.ListAddresses(r.Context(), req.Company.UUID)
	if err != nil {
		writeDomainError(w, "failed to list addresses", err)
		return
	}

	resp := make([]dto.AddressResponse, len(addresses))
	for i, a := range addresses {
		resp[i] = dto.AddressFromDomain(a)
	}
	writeJSON(w, http.StatusOK, resp)
}

// InsertAddress creates an address.
func (h *CompanyHandler) InsertAddress(w http.ResponseWriter, r *http.Request) {
	var req dto.AddressInsertRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	id, err := h.companies.InsertAddress(r.Context(), req.Data.Company.UUID, domain.Address{
		Street:  req.Data.Street,
		City:    req.Data.City,
		Zip:     req.Data.Zip,
		Country: domain.Country(req.Data.Country.ID),
	})
	if err != nil {
		writeDomainError(w, "failed to insert address", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.IDResponse{ID: id})
}

// ListPaymentProfiles returns the payment profiles of a company.
func (h *CompanyHandler) ListPaymentProfiles(w http.ResponseWriter, r *http.Request) {
	var req dto.PaymentProfileListRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	profiles, err := h.companies.ListPaymentProfiles(r.Context(), req.Filters.Company.UUID)
	if err != nil {
		writeDomainError(w, "failed to list payment profiles", err)
		return
	}

	resp := make([]dto.PaymentProfilePayload, len(profiles))
	for i, p := range profiles {
		resp[i] = dto.PaymentProfileFromDomain(p)
	}
	writeJSON(w, http.StatusOK, resp)
}

// InsertPaymentProfile creates a payment profile.
func (h *CompanyHandler) InsertPaymentProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.PaymentProfileInsertRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	id, err := h.companies.InsertPaymentProfile(r.Context(), req.Data.ToDomain())
	if err != nil {
		writeDomainError(w, "failed to insert payment profile", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.IDResponse{ID: id})
}

// ImportInvoices stores a batch of invoice drafts.
func (h *CompanyHandler) ImportInvoices(w http.ResponseWriter, r *http.Request) {
	var req dto.InvoiceImportRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	imported, err := h.companies.ImportInvoices(r.Context(), req.ToDomain())
	if err != nil {
		writeDomainError(w, "failed to import invoices", err)
		return
	}

	resp := dto.InvoiceImportResponse{Response: make([]dto.ImportedInvoicePayload, len(imported))}
	for i, inv := range imported {
		resp.Response[i] = dto.ImportedInvoicePayload{UUID: inv.UUID, Items: inv.Items}
	}
	writeJSON(w, http.StatusOK, resp)
}

package domain

import "github.com/shopspring/decimal"

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus int

const (
	InvoiceStatusPending InvoiceStatus = 1
	InvoiceStatusSent    InvoiceStatus = 2
)

// InvoiceImport is one externally sourced invoice row.
type InvoiceImport struct {
	RefNumberInt int64
	Client       ImportClient
	Project      ImportProject
	Type         string
	Total        decimal.Decimal
	Vat          decimal.Decimal
}

// ImportClient identifies the billed client by name.
type ImportClient struct {
	Name string
}

// ImportProject identifies the project the row was billed for.
type ImportProject struct {
	ID   string
	Name string
}

// InvoiceItem is a line of an invoice draft.
type InvoiceItem struct {
	Label    string
	Quantity decimal.Decimal
	Rate     decimal.Decimal
	VatRate  *decimal.Decimal
}

// InvoiceDraft is the mapped form of an import row, ready to be sent to the invoice
// import endpoint. It is not an entry; ledger legs are built once the invoice exists.
type InvoiceDraft struct {
	RefNumberInt   int64
	Address        int64
	PaymentProfile PaymentProfileRef
	Items          []InvoiceItem
}

// CompanyDirectory maps company names to company uuids.
type CompanyDirectory map[string]string

// AddressDirectory maps company uuids to address ids.
type AddressDirectory map[string]int64

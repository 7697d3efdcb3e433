package port

import (
	"context"

	"github.com/google/uuid"

	"lekha/internal/domain"
)

// InvoiceRepository defines the contract for invoice persistence. The engine
// only receives and returns in-memory records; fetching and saving live behind
// this boundary.
type InvoiceRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	Update(ctx context.Context, id uuid.UUID, input *UpdateInvoiceInput) error
	Submit(ctx context.Context, id uuid.UUID) error
	ApproveOrReject(ctx context.Context, id uuid.UUID, input ActionInput) error
}

// ItemRepository provides bulk access to the item/HSN master table.
type ItemRepository interface {
	List(ctx context.Context, limit, offset int) ([]domain.ItemMaster, error)
}

// TaxRepository provides bulk access to the GST tax code table.
type TaxRepository interface {
	List(ctx context.Context, limit, offset int) ([]domain.TaxCode, error)
}

// TDSRepository provides bulk access to the TDS code table.
type TDSRepository interface {
	List(ctx context.Context, limit, offset int) ([]domain.TDSCode, error)
}

// ActionInput carries an approve/reject decision with reviewer notes.
type ActionInput struct {
	Action domain.ReviewAction `json:"action"`
	Notes  string              `json:"notes"`
}

// UpdateInvoiceInput is the wire payload for saving the review screen's state.
// Header fields are nullable strings; blank edits are sent as nulls.
type UpdateInvoiceInput struct {
	InvoiceNumber   *string              `json:"invoice_number"`
	InvoiceDate     *string              `json:"invoice_date"`
	GSTNumber       *string              `json:"gst_number"`
	VendorID        *string              `json:"vendor_id"`
	VendorName      *string              `json:"vendor_name"`
	VendorPAN       *string              `json:"vendor_pan"`
	VendorEmail     *string              `json:"vendor_email"`
	BillingAddress  *string              `json:"billing_address"`
	ShippingAddress *string              `json:"shipping_address"`
	Currency        *string              `json:"currency"`
	LineItems       []UpdateLineItemItem `json:"invoice_lineitems"`
}

// UpdateLineItemItem is one row of the update payload. Quantity and rate are
// 4-decimal strings; subtotal and total are 2-decimal strings; discount is
// always "0.0000" (the review screen has no discount entry).
type UpdateLineItemItem struct {
	LineNum     int    `json:"line_num"`
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	Rate        string `json:"rate"`
	HSNSAC      string `json:"hsn_sac"`
	CGSTAmount  string `json:"cgst_amount"`
	SGSTAmount  string `json:"sgst_amount"`
	IGSTAmount  string `json:"igst_amount"`
	UTGSTAmount string `json:"utgst_amount"`
	Discount    string `json:"discount"`
	TaxCode     string `json:"tax_code"`
	TDSCode     string `json:"tds_code"`
	TDSAmount   string `json:"tds_amount"`
	Subtotal    string `json:"subtotal"`
	Total       string `json:"total"`
	ID          *int64 `json:"id,omitempty"`
}

package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Invoice is the full editable state of an invoice under review: header fields,
// line items, the raw OCR extraction snapshot, and workflow/file references.
// The OCR payload is immutable for the lifetime of the editing session.
type Invoice struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	Header        InvoiceHeader   `json:"header"`
	LineItems     []LineItem      `json:"line_items"`
	OCRPayload    json.RawMessage `db:"ocr_payload" json:"ocr_payload"`
	Status        InvoiceStatus   `db:"status" json:"status"`
	Workflow      json.RawMessage `db:"workflow" json:"workflow"`
	FileReference string          `db:"file_reference" json:"file_reference"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

// InvoiceHeader holds the editable header fields of an invoice.
// Subtotal, tax totals, grand total, TDS and payable are derived only
// (see recon.Totals) and are deliberately absent here.
type InvoiceHeader struct {
	InvoiceNumber   string `db:"invoice_number" json:"invoice_number"`
	InvoiceDate     string `db:"invoice_date" json:"invoice_date"`
	GSTNumber       string `db:"gst_number" json:"gst_number"`
	VendorID        string `db:"vendor_id" json:"vendor_id"`
	VendorName      string `db:"vendor_name" json:"vendor_name"`
	VendorPAN       string `db:"vendor_pan" json:"vendor_pan"`
	VendorEmail     string `db:"vendor_email" json:"vendor_email"`
	BillingAddress  string `db:"billing_address" json:"billing_address"`
	ShippingAddress string `db:"shipping_address" json:"shipping_address"`
	Currency        string `db:"currency" json:"currency"`
}

// LineItem is one billable row of an invoice. Quantity and Rate are decimal
// strings as entered; the tax amount fields and NetAmount are fixed 2-decimal
// strings maintained by the tax computation engine and must never be edited
// without a recompute.
type LineItem struct {
	ID                uuid.UUID `db:"id" json:"id"`
	LineNum           int       `db:"line_num" json:"line_num"`
	Description       string    `db:"description" json:"description"`
	Quantity          string    `db:"quantity" json:"quantity"`
	Rate              string    `db:"rate" json:"rate"`
	HSNCode           string    `db:"hsn_code" json:"hsn_code"`
	TaxCode           string    `db:"tax_code" json:"tax_code"`
	TDSCode           string    `db:"tds_code" json:"tds_code"`
	TDSAmount         string    `db:"tds_amount" json:"tds_amount"`
	IGSTAmount        string    `db:"igst_amount" json:"igst_amount"`
	CGSTAmount        string    `db:"cgst_amount" json:"cgst_amount"`
	SGSTAmount        string    `db:"sgst_amount" json:"sgst_amount"`
	UTGSTAmount       string    `db:"utgst_amount" json:"utgst_amount"`
	NetAmount         string    `db:"net_amount" json:"net_amount"`
	InvoiceLineItemID *int64    `db:"invoice_line_item_id" json:"invoice_line_item_id"`
}

// TaxCode is an immutable reference record mapping a GST code to its
// component percentages. Percentages are stored as decimal strings; unset or
// non-numeric values compute as zero.
type TaxCode struct {
	Code         string `db:"code" json:"code"`
	CGSTPercent  string `db:"cgst_percent" json:"cgst_percent"`
	SGSTPercent  string `db:"sgst_percent" json:"sgst_percent"`
	IGSTPercent  string `db:"igst_percent" json:"igst_percent"`
	UTGSTPercent string `db:"utgst_percent" json:"utgst_percent"`
	Description  string `db:"description" json:"description"`
}

// TDSCode is an immutable reference record mapping a TDS section code to its
// withholding percentage.
type TDSCode struct {
	Code        string `db:"code" json:"code"`
	Percent     string `db:"percent" json:"percent"`
	Description string `db:"description" json:"description"`
}

// ItemMaster is an immutable reference record keyed by normalized
// (trimmed, upper-cased) HSN/SAC code, carrying the canonical description and
// the tax/TDS codes to backfill onto matched line items.
type ItemMaster struct {
	HSNCode     string `db:"hsn_code" json:"hsn_code"`
	Description string `db:"description" json:"description"`
	TaxCode     string `db:"tax_code" json:"tax_code"`
	TDSCode     string `db:"tds_code" json:"tds_code"`
}

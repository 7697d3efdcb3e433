package recon

import (
	"lekha/internal/domain"
)

// fieldKind selects the comparison policy the diff engine applies to a field.
type fieldKind int

const (
	kindText fieldKind = iota
	kindNumeric
	kindDate
)

// Editable header fields by wire name, with their comparison kinds.
var headerFieldKinds = map[string]fieldKind{
	"invoice_number":   kindText,
	"invoice_date":     kindDate,
	"gst_number":       kindText,
	"vendor_id":        kindText,
	"vendor_name":      kindText,
	"vendor_pan":       kindText,
	"vendor_email":     kindText,
	"billing_address":  kindText,
	"shipping_address": kindText,
	"currency":         kindText,
}

// Row fields by wire name, with their comparison kinds. The computed amount
// fields appear here because the diff engine compares them against extraction;
// only the subset in editableRowFields may be set directly.
var rowFieldKinds = map[string]fieldKind{
	"description":  kindText,
	"quantity":     kindNumeric,
	"rate":         kindNumeric,
	"hsn_code":     kindText,
	"tax_code":     kindText,
	"tds_code":     kindText,
	"tds_amount":   kindNumeric,
	"igst_amount":  kindNumeric,
	"cgst_amount":  kindNumeric,
	"sgst_amount":  kindNumeric,
	"utgst_amount": kindNumeric,
	"net_amount":   kindNumeric,
}

// Fields a user may edit on a row. Amount fields are derived only: editing
// quantity, rate, tax_code, or tds_code triggers a recompute instead.
var editableRowFields = map[string]bool{
	"description": true,
	"quantity":    true,
	"rate":        true,
	"hsn_code":    true,
	"tax_code":    true,
	"tds_code":    true,
}

// recomputeOnEdit marks the row fields whose change invalidates the computed
// tax amounts.
var recomputeOnEdit = map[string]bool{
	"quantity": true,
	"rate":     true,
	"tax_code": true,
	"tds_code": true,
}

func rowField(row *domain.LineItem, field string) (string, bool) {
	switch field {
	case "description":
		return row.Description, true
	case "quantity":
		return row.Quantity, true
	case "rate":
		return row.Rate, true
	case "hsn_code":
		return row.HSNCode, true
	case "tax_code":
		return row.TaxCode, true
	case "tds_code":
		return row.TDSCode, true
	case "tds_amount":
		return row.TDSAmount, true
	case "igst_amount":
		return row.IGSTAmount, true
	case "cgst_amount":
		return row.CGSTAmount, true
	case "sgst_amount":
		return row.SGSTAmount, true
	case "utgst_amount":
		return row.UTGSTAmount, true
	case "net_amount":
		return row.NetAmount, true
	}
	return "", false
}

func setRowField(row *domain.LineItem, field, value string) bool {
	switch field {
	case "description":
		row.Description = value
	case "quantity":
		row.Quantity = value
	case "rate":
		row.Rate = value
	case "hsn_code":
		row.HSNCode = NormalizeHSN(value)
	case "tax_code":
		row.TaxCode = value
	case "tds_code":
		row.TDSCode = value
	default:
		return false
	}
	return true
}

func headerField(h *domain.InvoiceHeader, field string) (string, bool) {
	switch field {
	case "invoice_number":
		return h.InvoiceNumber, true
	case "invoice_date":
		return h.InvoiceDate, true
	case "gst_number":
		return h.GSTNumber, true
	case "vendor_id":
		return h.VendorID, true
	case "vendor_name":
		return h.VendorName, true
	case "vendor_pan":
		return h.VendorPAN, true
	case "vendor_email":
		return h.VendorEmail, true
	case "billing_address":
		return h.BillingAddress, true
	case "shipping_address":
		return h.ShippingAddress, true
	case "currency":
		return h.Currency, true
	}
	return "", false
}

func setHeaderField(h *domain.InvoiceHeader, field, value string) bool {
	switch field {
	case "invoice_number":
		h.InvoiceNumber = value
	case "invoice_date":
		h.InvoiceDate = value
	case "gst_number":
		h.GSTNumber = value
	case "vendor_id":
		h.VendorID = value
	case "vendor_name":
		h.VendorName = value
	case "vendor_pan":
		h.VendorPAN = value
	case "vendor_email":
		h.VendorEmail = value
	case "billing_address":
		h.BillingAddress = value
	case "shipping_address":
		h.ShippingAddress = value
	case "currency":
		h.Currency = value
	default:
		return false
	}
	return true
}

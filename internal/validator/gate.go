// Package validator implements the pre-submission validation gate for the
// invoice review screen. Validation is purely advisory gating: it never
// mutates the invoice, it only produces header and per-row error maps that
// block update/submit while non-empty.
package validator

import (
	"strings"

	"github.com/shopspring/decimal"

	"lekha/internal/domain"
)

// Result aggregates validation failures. Header maps field name to message;
// Rows maps row id to a field→message map. Submission proceeds only when both
// are empty.
type Result struct {
	Header map[string]string            `json:"header"`
	Rows   map[string]map[string]string `json:"rows"`
}

// OK reports whether the gate passed.
func (r *Result) OK() bool {
	return len(r.Header) == 0 && len(r.Rows) == 0
}

// headerRule checks one header field; it returns an empty message on pass.
type headerRule struct {
	field string
	check func(*domain.InvoiceHeader) string
}

// rowRule checks one field of a line item.
type rowRule struct {
	field string
	check func(*domain.LineItem) string
}

// ValidateForSubmission runs every header and row rule. At least one line
// item must exist; each row is checked independently so one bad row never
// masks another.
func ValidateForSubmission(header *domain.InvoiceHeader, rows []domain.LineItem) *Result {
	res := &Result{
		Header: make(map[string]string),
		Rows:   make(map[string]map[string]string),
	}

	for _, rule := range headerRules() {
		if msg := rule.check(header); msg != "" {
			res.Header[rule.field] = msg
		}
	}

	if len(rows) == 0 {
		res.Header["invoice_lineitems"] = "at least one line item is required"
	}

	for i := range rows {
		row := &rows[i]
		for _, rule := range rowRules() {
			if msg := rule.check(row); msg != "" {
				id := row.ID.String()
				if res.Rows[id] == nil {
					res.Rows[id] = make(map[string]string)
				}
				res.Rows[id][rule.field] = msg
			}
		}
	}
	return res
}

func headerRules() []headerRule {
	return []headerRule{
		{field: "invoice_number", check: requireHeader("invoice number", func(h *domain.InvoiceHeader) string { return h.InvoiceNumber })},
		{field: "invoice_date", check: requireHeader("invoice date", func(h *domain.InvoiceHeader) string { return h.InvoiceDate })},
		{field: "gst_number", check: func(h *domain.InvoiceHeader) string {
			v := strings.TrimSpace(h.GSTNumber)
			if v == "" {
				return "gst number is required"
			}
			if len(v) != 15 {
				return "gst number must be exactly 15 characters"
			}
			return ""
		}},
		{field: "vendor_id", check: requireHeader("vendor id", func(h *domain.InvoiceHeader) string { return h.VendorID })},
		{field: "vendor_name", check: requireHeader("vendor name", func(h *domain.InvoiceHeader) string { return h.VendorName })},
		{field: "vendor_pan", check: requireHeader("vendor PAN", func(h *domain.InvoiceHeader) string { return h.VendorPAN })},
		{field: "vendor_email", check: requireHeader("vendor email", func(h *domain.InvoiceHeader) string { return h.VendorEmail })},
		{field: "billing_address", check: requireHeader("billing address", func(h *domain.InvoiceHeader) string { return h.BillingAddress })},
		{field: "shipping_address", check: requireHeader("shipping address", func(h *domain.InvoiceHeader) string { return h.ShippingAddress })},
	}
}

func rowRules() []rowRule {
	return []rowRule{
		{field: "description", check: func(r *domain.LineItem) string {
			if strings.TrimSpace(r.Description) == "" {
				return "description is required"
			}
			return ""
		}},
		{field: "quantity", check: requirePositive("quantity", func(r *domain.LineItem) string { return r.Quantity })},
		{field: "rate", check: requirePositive("rate", func(r *domain.LineItem) string { return r.Rate })},
		{field: "tax_code", check: func(r *domain.LineItem) string {
			if strings.TrimSpace(r.TaxCode) == "" {
				return "gst code is required"
			}
			return ""
		}},
		{field: "tds_code", check: func(r *domain.LineItem) string {
			if strings.TrimSpace(r.TDSCode) == "" {
				return "tds code is required"
			}
			return ""
		}},
		{field: "tds_amount", check: requireNonNegative("tds amount", func(r *domain.LineItem) string { return r.TDSAmount })},
		{field: "igst_amount", check: requireNonNegative("igst amount", func(r *domain.LineItem) string { return r.IGSTAmount })},
		{field: "cgst_amount", check: requireNonNegative("cgst amount", func(r *domain.LineItem) string { return r.CGSTAmount })},
		{field: "sgst_amount", check: requireNonNegative("sgst amount", func(r *domain.LineItem) string { return r.SGSTAmount })},
		{field: "utgst_amount", check: requireNonNegative("utgst amount", func(r *domain.LineItem) string { return r.UTGSTAmount })},
		{field: "net_amount", check: requirePositive("net amount", func(r *domain.LineItem) string { return r.NetAmount })},
	}
}

func requireHeader(name string, extract func(*domain.InvoiceHeader) string) func(*domain.InvoiceHeader) string {
	return func(h *domain.InvoiceHeader) string {
		if strings.TrimSpace(extract(h)) == "" {
			return name + " is required"
		}
		return ""
	}
}

func requirePositive(name string, extract func(*domain.LineItem) string) func(*domain.LineItem) string {
	return func(r *domain.LineItem) string {
		d, err := decimal.NewFromString(strings.TrimSpace(extract(r)))
		if err != nil {
			return name + " is required"
		}
		if !d.IsPositive() {
			return name + " must be greater than zero"
		}
		return ""
	}
}

func requireNonNegative(name string, extract func(*domain.LineItem) string) func(*domain.LineItem) string {
	return func(r *domain.LineItem) string {
		d, err := decimal.NewFromString(strings.TrimSpace(extract(r)))
		if err != nil {
			return name + " is required"
		}
		if d.IsNegative() {
			return name + " must not be negative"
		}
		return ""
	}
}

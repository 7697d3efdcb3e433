// Package ocr defines the typed schema for machine-extracted invoice payloads.
// The payload is untrusted and possibly incomplete: every field is optional,
// numbers may arrive as JSON numbers or as quoted strings, and a payload that
// fails to decode degrades to nil rather than failing the review session.
package ocr

import (
	"encoding/json"
	"log"
	"strconv"
	"strings"
)

// FlexNumber is a numeric OCR field tolerant of both JSON number and string
// encodings. Nil Valid means the extractor produced nothing usable.
type FlexNumber struct {
	Value float64
	Valid bool
}

// UnmarshalJSON accepts 12.5, "12.5", "", and null.
func (n *FlexNumber) UnmarshalJSON(data []byte) error {
	n.Value, n.Valid = 0, false
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == `""` {
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil
		}
		n.Value, n.Valid = f, true
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return nil
	}
	n.Value, n.Valid = f, true
	return nil
}

// MarshalJSON round-trips the value, emitting null when unset.
func (n FlexNumber) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// Payload is the immutable extraction snapshot for one invoice, captured once
// at load time. It is the primary diffing baseline for the editing session.
type Payload struct {
	InvoiceNumber   *string `json:"invoice_number"`
	InvoiceDate     *string `json:"invoice_date"`
	GSTNumber       *string `json:"gst_number"`
	VendorID        *string `json:"vendor_id"`
	VendorName      *string `json:"vendor_name"`
	VendorPAN       *string `json:"vendor_pan"`
	VendorEmail     *string `json:"vendor_email"`
	BillingAddress  *string `json:"billing_address"`
	ShippingAddress *string `json:"shipping_address"`
	Currency        *string `json:"currency"`
	LineItems       []Line  `json:"line_items"`
}

// Line is one raw extracted line item, in extraction order.
type Line struct {
	Description string     `json:"description"`
	HSNSAC      string     `json:"hsn_sac"`
	Quantity    FlexNumber `json:"quantity"`
	UnitPrice   FlexNumber `json:"unit_price"`
	CGSTAmount  FlexNumber `json:"cgst_amount"`
	SGSTAmount  FlexNumber `json:"sgst_amount"`
	IGSTAmount  FlexNumber `json:"igst_amount"`
	UTGSTAmount FlexNumber `json:"utgst_amount"`
	TDSAmount   FlexNumber `json:"tds_amount"`
	Total       FlexNumber `json:"total"`
}

// Decode parses a raw OCR payload at the repository boundary. A missing or
// malformed payload yields nil: the review screen still renders, diffing just
// has no extraction baseline.
func Decode(raw json.RawMessage) *Payload {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		log.Printf("ocr.Decode: discarding malformed payload: %v", err)
		return nil
	}
	return &p
}

// HeaderField returns the extracted value for a header field name, with the
// vendor_id fallback: a payload without vendor_id compares against gst_number.
// The second return is false when the payload carries no baseline at all.
func (p *Payload) HeaderField(name string) (string, bool) {
	if p == nil {
		return "", false
	}
	var v *string
	switch name {
	case "invoice_number":
		v = p.InvoiceNumber
	case "invoice_date":
		v = p.InvoiceDate
	case "gst_number":
		v = p.GSTNumber
	case "vendor_id":
		v = p.VendorID
		if v == nil {
			v = p.GSTNumber
		}
	case "vendor_name":
		v = p.VendorName
	case "vendor_pan":
		v = p.VendorPAN
	case "vendor_email":
		v = p.VendorEmail
	case "billing_address":
		v = p.BillingAddress
	case "shipping_address":
		v = p.ShippingAddress
	case "currency":
		v = p.Currency
	default:
		return "", false
	}
	if v == nil {
		return "", false
	}
	return *v, true
}

// LineByDescription finds the extracted line whose normalized description
// matches, or nil. Used by the diff engine before positional fallback.
func (p *Payload) LineByDescription(desc string) *Line {
	if p == nil {
		return nil
	}
	want := normalizeDesc(desc)
	if want == "" {
		return nil
	}
	for i := range p.LineItems {
		if normalizeDesc(p.LineItems[i].Description) == want {
			return &p.LineItems[i]
		}
	}
	return nil
}

// LineAt returns the extracted line at the given position, or nil.
func (p *Payload) LineAt(idx int) *Line {
	if p == nil || idx < 0 || idx >= len(p.LineItems) {
		return nil
	}
	return &p.LineItems[idx]
}

func normalizeDesc(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

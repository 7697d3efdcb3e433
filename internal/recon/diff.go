package recon

import (
	"math"
	"strconv"
	"strings"

	"lekha/internal/domain"
	"lekha/internal/ocr"
)

// diffTolerance is the absolute difference below which numeric values are
// considered unchanged from extraction.
const diffTolerance = 0.01

// Differ decides whether a field's current value differs from its extraction
// baseline, to drive "changed since extraction" highlighting. The OCR payload
// is the primary baseline; the first-observed snapshot is the fallback for
// rows and fields the payload cannot resolve. Re-evaluating with unchanged
// inputs always returns the same boolean.
type Differ struct {
	payload  *ocr.Payload
	snapshot *Snapshot
}

// NewDiffer builds a Differ over an extraction payload (may be nil) and a
// first-observed snapshot (may be nil).
func NewDiffer(payload *ocr.Payload, snapshot *Snapshot) *Differ {
	return &Differ{payload: payload, snapshot: snapshot}
}

// HeaderChanged reports whether a header field's current value differs from
// the extraction. A missing vendor_id in the payload falls back to comparing
// against the payload's gst_number; a field with no baseline at all is
// unchanged.
func (d *Differ) HeaderChanged(field, current string) bool {
	kind, known := headerFieldKinds[field]
	if !known {
		return false
	}
	base, ok := d.payload.HeaderField(field)
	if !ok {
		return false
	}
	return valueChanged(base, current, kind)
}

// RowChanged reports whether a row field's current value differs from its
// baseline. The matching OCR line is located by normalized description first,
// positional index second. Fields with no OCR equivalent (tax_code, tds_code)
// and rows absent from the payload fall back to the snapshot.
func (d *Differ) RowChanged(row *domain.LineItem, idx int, field string) bool {
	kind, known := rowFieldKinds[field]
	if !known {
		return false
	}
	current, _ := rowField(row, field)

	if baseNum, baseText, ok := d.ocrBaseline(row, idx, field); ok {
		if kind == kindNumeric {
			return numberChanged(baseNum, current)
		}
		return valueChanged(baseText, current, kind)
	}

	if base, ok := d.snapshot.Field(row.ID, field); ok {
		return valueChanged(base, current, kind)
	}
	return false
}

// ocrBaseline resolves the extraction value for a row field. For numeric
// fields the float value is returned; for text fields the string.
func (d *Differ) ocrBaseline(row *domain.LineItem, idx int, field string) (float64, string, bool) {
	line := d.payload.LineByDescription(row.Description)
	if line == nil {
		line = d.payload.LineAt(idx)
	}
	if line == nil {
		return 0, "", false
	}

	switch field {
	case "description":
		return 0, line.Description, true
	case "hsn_code":
		return 0, line.HSNSAC, true
	case "quantity":
		return flexBaseline(line.Quantity)
	case "rate":
		return flexBaseline(line.UnitPrice)
	case "cgst_amount":
		return flexBaseline(line.CGSTAmount)
	case "sgst_amount":
		return flexBaseline(line.SGSTAmount)
	case "igst_amount":
		return flexBaseline(line.IGSTAmount)
	case "utgst_amount":
		return flexBaseline(line.UTGSTAmount)
	case "tds_amount":
		return flexBaseline(line.TDSAmount)
	case "net_amount":
		return flexBaseline(line.Total)
	}
	// tax_code / tds_code have no extraction equivalent
	return 0, "", false
}

func flexBaseline(n ocr.FlexNumber) (float64, string, bool) {
	if !n.Valid {
		return 0, "", false
	}
	return n.Value, "", true
}

// valueChanged applies the comparison policy for a kind to two string values.
func valueChanged(base, current string, kind fieldKind) bool {
	switch kind {
	case kindDate:
		return normalizeDate(base) != normalizeDate(current)
	case kindNumeric:
		bf, bok := parseNumber(base)
		cf, cok := parseNumber(current)
		if bok && cok {
			return math.Abs(cf-bf) > diffTolerance
		}
		return textChanged(base, current)
	default:
		return textChanged(base, current)
	}
}

// numberChanged compares a numeric extraction value against the parsed
// current value; a non-numeric current value compares as zero.
func numberChanged(base float64, current string) bool {
	cur, _ := parseNumber(current)
	return math.Abs(cur-base) > diffTolerance
}

func textChanged(base, current string) bool {
	return strings.TrimSpace(base) != strings.TrimSpace(current)
}

func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// normalizeDate canonicalizes dates to YYYY-MM-DD, accepting DD/MM/YYYY as an
// alternate input format. Anything else compares as a trimmed string.
func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) == 10 && s[2] == '/' && s[5] == '/' {
		day, dErr := strconv.Atoi(s[0:2])
		month, mErr := strconv.Atoi(s[3:5])
		if dErr == nil && mErr == nil && day >= 1 && day <= 31 && month >= 1 && month <= 12 {
			return s[6:10] + "-" + s[3:5] + "-" + s[0:2]
		}
	}
	return s
}

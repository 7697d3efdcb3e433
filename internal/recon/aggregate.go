package recon

import (
	"github.com/shopspring/decimal"

	"lekha/internal/domain"
)

// Totals holds the invoice-level aggregates derived from the current row set.
// All values are fixed 2-decimal strings. TotalAmount follows the source
// behavior: subtotal plus CGST, SGST, and IGST; the UTGST total is carried but
// excluded from the grand total.
type Totals struct {
	Subtotal    string `json:"subtotal"`
	CGSTTotal   string `json:"cgst_total"`
	SGSTTotal   string `json:"sgst_total"`
	IGSTTotal   string `json:"igst_total"`
	UTGSTTotal  string `json:"utgst_total"`
	TDSTotal    string `json:"tds_total"`
	TotalAmount string `json:"total_amount"`
	Payable     string `json:"payable"`
}

// Aggregate sums the line-level amounts into invoice totals. Blank and
// non-numeric fields contribute zero. The sums are pure and order-independent
// and are recomputed in full on every call rather than cached incrementally.
func Aggregate(rows []domain.LineItem) Totals {
	var subtotal, cgst, sgst, igst, utgst, tds decimal.Decimal
	for i := range rows {
		row := &rows[i]
		subtotal = subtotal.Add(decOrZero(row.NetAmount))
		cgst = cgst.Add(decOrZero(row.CGSTAmount))
		sgst = sgst.Add(decOrZero(row.SGSTAmount))
		igst = igst.Add(decOrZero(row.IGSTAmount))
		utgst = utgst.Add(decOrZero(row.UTGSTAmount))
		tds = tds.Add(decOrZero(row.TDSAmount))
	}
	total := subtotal.Add(cgst).Add(sgst).Add(igst)
	return Totals{
		Subtotal:    fixed2(subtotal),
		CGSTTotal:   fixed2(cgst),
		SGSTTotal:   fixed2(sgst),
		IGSTTotal:   fixed2(igst),
		UTGSTTotal:  fixed2(utgst),
		TDSTotal:    fixed2(tds),
		TotalAmount: fixed2(total),
		Payable:     fixed2(total.Sub(tds)),
	}
}

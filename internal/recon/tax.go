package recon

import (
	"github.com/shopspring/decimal"

	"lekha/internal/domain"
)

// Recompute derives NetAmount and every tax amount on a row from its current
// quantity, rate, tax code, and TDS code. It is a pure function of those
// inputs: recomputing with identical inputs always writes identical values,
// with no dependence on the previous computed state.
//
//	base  = quantity × rate
//	cgst  = round(base × cgst% / 100, 2)   (likewise sgst/igst/utgst)
//	tds   = round(base × tds% / 100, 2)
//
// Unknown codes and non-numeric percentages compute as zero.
func Recompute(row *domain.LineItem, md *MasterData) {
	base := decOrZero(row.Quantity).Mul(decOrZero(row.Rate))
	row.NetAmount = fixed2(base)

	var tax domain.TaxCode
	if t, ok := md.TaxByCode(row.TaxCode); ok {
		tax = t
	}
	row.CGSTAmount = fixed2(percentOf(base, tax.CGSTPercent))
	row.SGSTAmount = fixed2(percentOf(base, tax.SGSTPercent))
	row.IGSTAmount = fixed2(percentOf(base, tax.IGSTPercent))
	row.UTGSTAmount = fixed2(percentOf(base, tax.UTGSTPercent))

	var tds domain.TDSCode
	if t, ok := md.TDSByCode(row.TDSCode); ok {
		tds = t
	}
	row.TDSAmount = fixed2(percentOf(base, tds.Percent))
}

func percentOf(base decimal.Decimal, percent string) decimal.Decimal {
	return base.Mul(decOrZero(percent)).Div(hundred)
}

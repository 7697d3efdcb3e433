package recon

import (
	"strings"

	"lekha/internal/domain"
	"lekha/internal/port"
)

// BuildUpdateInput renders the session's current state into the update wire
// payload: nullable header strings, 4-decimal quantity/rate, 2-decimal
// amounts, and a fixed zero discount.
func BuildUpdateInput(header domain.InvoiceHeader, rows []domain.LineItem) *port.UpdateInvoiceInput {
	input := &port.UpdateInvoiceInput{
		InvoiceNumber:   nullable(header.InvoiceNumber),
		InvoiceDate:     nullable(header.InvoiceDate),
		GSTNumber:       nullable(header.GSTNumber),
		VendorID:        nullable(header.VendorID),
		VendorName:      nullable(header.VendorName),
		VendorPAN:       nullable(header.VendorPAN),
		VendorEmail:     nullable(header.VendorEmail),
		BillingAddress:  nullable(header.BillingAddress),
		ShippingAddress: nullable(header.ShippingAddress),
		Currency:        nullable(header.Currency),
		LineItems:       make([]port.UpdateLineItemItem, 0, len(rows)),
	}

	for i := range rows {
		row := &rows[i]
		base := decOrZero(row.Quantity).Mul(decOrZero(row.Rate))

		total := fixed2(base)
		if strings.TrimSpace(row.NetAmount) != "" {
			total = fixed2(decOrZero(row.NetAmount))
		}

		input.LineItems = append(input.LineItems, port.UpdateLineItemItem{
			LineNum:     row.LineNum,
			Description: row.Description,
			Quantity:    fixed4(decOrZero(row.Quantity)),
			Rate:        fixed4(decOrZero(row.Rate)),
			HSNSAC:      row.HSNCode,
			CGSTAmount:  fixed2(decOrZero(row.CGSTAmount)),
			SGSTAmount:  fixed2(decOrZero(row.SGSTAmount)),
			IGSTAmount:  fixed2(decOrZero(row.IGSTAmount)),
			UTGSTAmount: fixed2(decOrZero(row.UTGSTAmount)),
			Discount:    "0.0000",
			TaxCode:     row.TaxCode,
			TDSCode:     row.TDSCode,
			TDSAmount:   fixed2(decOrZero(row.TDSAmount)),
			Subtotal:    fixed2(base),
			Total:       total,
			ID:          row.InvoiceLineItemID,
		})
	}
	return input
}

func nullable(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

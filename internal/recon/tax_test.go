package recon_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"lekha/internal/domain"
	"lekha/internal/recon"
)

func testMasterData() *recon.MasterData {
	items := []domain.ItemMaster{
		{HSNCode: "9983", Description: "Consulting services", TaxCode: "GST18", TDSCode: "194J"},
		{HSNCode: "8471", Description: "Laptops", TaxCode: "IGST18", TDSCode: ""},
	}
	taxes := []domain.TaxCode{
		{Code: "GST18", CGSTPercent: "9", SGSTPercent: "9", IGSTPercent: "0", UTGSTPercent: "0"},
		{Code: "IGST18", CGSTPercent: "0", SGSTPercent: "0", IGSTPercent: "18", UTGSTPercent: "0"},
		{Code: "UT18", CGSTPercent: "9", SGSTPercent: "0", IGSTPercent: "0", UTGSTPercent: "9"},
	}
	tdsCodes := []domain.TDSCode{
		{Code: "194J", Percent: "10"},
		{Code: "194C", Percent: "2"},
	}
	return recon.NewMasterData(items, taxes, tdsCodes)
}

func TestRecompute_IntraStateSplit(t *testing.T) {
	md := testMasterData()
	row := domain.LineItem{
		ID:       uuid.New(),
		Quantity: "2",
		Rate:     "150.50",
		TaxCode:  "GST18",
		TDSCode:  "194C",
	}

	recon.Recompute(&row, md)

	assert.Equal(t, "301.00", row.NetAmount)
	assert.Equal(t, "27.09", row.CGSTAmount)
	assert.Equal(t, "27.09", row.SGSTAmount)
	assert.Equal(t, "0.00", row.IGSTAmount)
	assert.Equal(t, "0.00", row.UTGSTAmount)
	assert.Equal(t, "6.02", row.TDSAmount)
}

func TestRecompute_InterState(t *testing.T) {
	md := testMasterData()
	row := domain.LineItem{
		ID:       uuid.New(),
		Quantity: "1",
		Rate:     "50000",
		TaxCode:  "IGST18",
		TDSCode:  "",
	}

	recon.Recompute(&row, md)

	assert.Equal(t, "50000.00", row.NetAmount)
	assert.Equal(t, "0.00", row.CGSTAmount)
	assert.Equal(t, "0.00", row.SGSTAmount)
	assert.Equal(t, "9000.00", row.IGSTAmount)
	assert.Equal(t, "0.00", row.TDSAmount)
}

func TestRecompute_RoundsHalfAwayFromZero(t *testing.T) {
	md := testMasterData()
	// base = 0.25 × 1 → cgst = 0.0225 → rounds to 0.02; sgst likewise
	row := domain.LineItem{ID: uuid.New(), Quantity: "0.25", Rate: "1", TaxCode: "GST18"}

	recon.Recompute(&row, md)

	assert.Equal(t, "0.25", row.NetAmount)
	assert.Equal(t, "0.02", row.CGSTAmount)

	// base = 0.5 × 0.5 = 0.25, tds at 10% = 0.025 → rounds up to 0.03
	row2 := domain.LineItem{ID: uuid.New(), Quantity: "0.5", Rate: "0.5", TDSCode: "194J"}
	recon.Recompute(&row2, md)
	assert.Equal(t, "0.03", row2.TDSAmount)
}

func TestRecompute_NonNumericInputsComputeAsZero(t *testing.T) {
	md := testMasterData()
	row := domain.LineItem{
		ID:       uuid.New(),
		Quantity: "abc",
		Rate:     "150",
		TaxCode:  "GST18",
		TDSCode:  "194C",
	}

	recon.Recompute(&row, md)

	assert.Equal(t, "0.00", row.NetAmount)
	assert.Equal(t, "0.00", row.CGSTAmount)
	assert.Equal(t, "0.00", row.SGSTAmount)
	assert.Equal(t, "0.00", row.TDSAmount)
}

func TestRecompute_UnknownCodesComputeAsZero(t *testing.T) {
	md := testMasterData()
	row := domain.LineItem{
		ID:       uuid.New(),
		Quantity: "3",
		Rate:     "100",
		TaxCode:  "NOPE",
		TDSCode:  "NOPE",
	}

	recon.Recompute(&row, md)

	assert.Equal(t, "300.00", row.NetAmount)
	assert.Equal(t, "0.00", row.CGSTAmount)
	assert.Equal(t, "0.00", row.SGSTAmount)
	assert.Equal(t, "0.00", row.IGSTAmount)
	assert.Equal(t, "0.00", row.UTGSTAmount)
	assert.Equal(t, "0.00", row.TDSAmount)
}

func TestRecompute_Idempotent(t *testing.T) {
	md := testMasterData()
	row := domain.LineItem{
		ID:       uuid.New(),
		Quantity: "2.5",
		Rate:     "199.99",
		TaxCode:  "GST18",
		TDSCode:  "194J",
	}

	recon.Recompute(&row, md)
	first := row
	recon.Recompute(&row, md)

	assert.Equal(t, first, row)
}

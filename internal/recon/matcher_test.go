package recon_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"lekha/internal/domain"
	"lekha/internal/ocr"
	"lekha/internal/recon"
)

func TestMatchHSN_RowCodeHit(t *testing.T) {
	md := testMasterData()
	rows := []domain.LineItem{
		{ID: uuid.New(), LineNum: 1, Description: "some consulting", Quantity: "10", Rate: "1000", HSNCode: "9983"},
	}

	res := recon.MatchHSN(rows, nil, md)

	assert.Empty(t, res.Unmatched)
	row := res.Rows[0]
	assert.Equal(t, "Consulting services", row.Description)
	assert.Equal(t, "GST18", row.TaxCode)
	assert.Equal(t, "194J", row.TDSCode)
	assert.Equal(t, "10000.00", row.NetAmount)
	assert.Equal(t, "900.00", row.CGSTAmount)
	assert.Equal(t, "900.00", row.SGSTAmount)
	assert.Equal(t, "1000.00", row.TDSAmount)
}

func TestMatchHSN_PositionalOCRFallback(t *testing.T) {
	md := testMasterData()
	rows := []domain.LineItem{
		{ID: uuid.New(), LineNum: 1, Description: "thing one", Quantity: "1", Rate: "100"},
		{ID: uuid.New(), LineNum: 2, Description: "thing two", Quantity: "2", Rate: "200"},
	}
	payload := &ocr.Payload{LineItems: []ocr.Line{
		{Description: "thing one", HSNSAC: " 8471 "},
		{Description: "thing two", HSNSAC: ""},
	}}

	res := recon.MatchHSN(rows, payload, md)

	// Row 0: blank HSN backfilled from the normalized OCR code.
	assert.Equal(t, "8471", res.Rows[0].HSNCode)
	assert.Equal(t, "Laptops", res.Rows[0].Description)
	assert.Equal(t, "IGST18", res.Rows[0].TaxCode)
	assert.Equal(t, "18.00", res.Rows[0].IGSTAmount)
	assert.False(t, res.Unmatched[rows[0].ID])

	// Row 1: no key anywhere, untouched and flagged.
	assert.Equal(t, "", res.Rows[1].HSNCode)
	assert.Equal(t, "thing two", res.Rows[1].Description)
	assert.True(t, res.Unmatched[rows[1].ID])
}

func TestMatchHSN_NormalizesCase(t *testing.T) {
	md := recon.NewMasterData(
		[]domain.ItemMaster{{HSNCode: "sac99", Description: "Services", TaxCode: "GST18"}},
		[]domain.TaxCode{{Code: "GST18", CGSTPercent: "9", SGSTPercent: "9"}},
		nil,
	)
	rows := []domain.LineItem{
		{ID: uuid.New(), HSNCode: "  Sac99 ", Quantity: "1", Rate: "1"},
	}

	res := recon.MatchHSN(rows, nil, md)

	assert.Empty(t, res.Unmatched)
	assert.Equal(t, "Services", res.Rows[0].Description)
}

func TestMatchHSN_MissLeavesRowUntouched(t *testing.T) {
	md := testMasterData()
	rows := []domain.LineItem{
		{ID: uuid.New(), Description: "mystery item", Quantity: "1", Rate: "50", HSNCode: "0000", NetAmount: "50.00"},
	}

	res := recon.MatchHSN(rows, nil, md)

	assert.True(t, res.Unmatched[rows[0].ID])
	assert.Equal(t, rows[0], res.Rows[0])
}

func TestMatchHSN_DoesNotMutateInputs(t *testing.T) {
	md := testMasterData()
	rows := []domain.LineItem{
		{ID: uuid.New(), Description: "original", Quantity: "1", Rate: "100", HSNCode: "9983"},
	}
	before := rows[0]

	recon.MatchHSN(rows, nil, md)

	assert.Equal(t, before, rows[0])
}

func TestMatchHSN_Idempotent(t *testing.T) {
	md := testMasterData()
	rows := []domain.LineItem{
		{ID: uuid.New(), Description: "x", Quantity: "2", Rate: "75", HSNCode: "9983"},
		{ID: uuid.New(), Description: "y", Quantity: "1", Rate: "10"},
	}

	first := recon.MatchHSN(rows, nil, md)
	second := recon.MatchHSN(first.Rows, nil, md)

	assert.Equal(t, first.Rows, second.Rows)
	assert.Equal(t, first.Unmatched, second.Unmatched)
}

func TestMatchHSN_EmptyMasterFlagsEverything(t *testing.T) {
	md := recon.NewMasterData(nil, nil, nil)
	rows := []domain.LineItem{
		{ID: uuid.New(), HSNCode: "9983"},
		{ID: uuid.New(), HSNCode: "8471"},
	}

	res := recon.MatchHSN(rows, nil, md)

	assert.Len(t, res.Unmatched, 2)
}

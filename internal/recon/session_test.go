package recon_test

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lekha/internal/domain"
	"lekha/internal/recon"
)

func testInvoice() *domain.Invoice {
	return &domain.Invoice{
		ID: uuid.New(),
		Header: domain.InvoiceHeader{
			InvoiceNumber: "INV-42",
			InvoiceDate:   "2025-03-15",
			GSTNumber:     "27AAPFU0939F1ZV",
		},
		LineItems: []domain.LineItem{
			{ID: uuid.New(), LineNum: 1, Description: "consulting", Quantity: "10", Rate: "1000", HSNCode: "9983"},
			{ID: uuid.New(), LineNum: 2, Description: "mystery", Quantity: "1", Rate: "50"},
		},
		OCRPayload: json.RawMessage(`{"invoice_number":"INV-42","line_items":[{"description":"consulting","quantity":10,"unit_price":1000},{"description":"mystery","quantity":1,"unit_price":50}]}`),
		Status:     domain.InvoiceStatusDraft,
	}
}

func TestSession_UnloadedRejectsEverything(t *testing.T) {
	s := recon.NewSession(testMasterData())

	assert.ErrorIs(t, s.Match(), domain.ErrSessionNotLoaded)
	assert.ErrorIs(t, s.SetHeaderField("invoice_number", "x"), domain.ErrSessionNotLoaded)
	assert.ErrorIs(t, s.SetRowField(uuid.New(), "quantity", "1"), domain.ErrSessionNotLoaded)

	_, err := s.AddRow()
	assert.ErrorIs(t, err, domain.ErrSessionNotLoaded)
	_, err = s.Reconcile()
	assert.ErrorIs(t, err, domain.ErrSessionNotLoaded)
}

func TestSession_LoadThenMatch(t *testing.T) {
	s := recon.NewSession(testMasterData())
	inv := testInvoice()

	s.Load(inv)
	assert.Equal(t, recon.StateLoaded, s.State())

	require.NoError(t, s.Match())
	assert.Equal(t, recon.StateMatched, s.State())

	res, err := s.Reconcile()
	require.NoError(t, err)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, "Consulting services", res.Rows[0].Description)
	assert.Equal(t, "GST18", res.Rows[0].TaxCode)
	assert.Equal(t, []uuid.UUID{inv.LineItems[1].ID}, res.Unmatched)
}

func TestSession_AllRowsUnmatchedBeforeMatch(t *testing.T) {
	s := recon.NewSession(testMasterData())
	inv := testInvoice()
	s.Load(inv)

	res, err := s.Reconcile()
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{inv.LineItems[0].ID, inv.LineItems[1].ID}, res.Unmatched)
	// No backfill has happened yet either.
	assert.Equal(t, "consulting", res.Rows[0].Description)
	assert.Equal(t, "", res.Rows[0].TaxCode)

	require.NoError(t, s.Match())
	res, err = s.Reconcile()
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{inv.LineItems[1].ID}, res.Unmatched)
}

func TestSession_MatchRunsOncePerIdentity(t *testing.T) {
	s := recon.NewSession(testMasterData())
	inv := testInvoice()
	s.Load(inv)
	require.NoError(t, s.Match())

	// A post-match edit must survive a second Match call.
	rowID := inv.LineItems[0].ID
	require.NoError(t, s.SetRowField(rowID, "description", "hand edited"))
	require.NoError(t, s.Match())

	res, err := s.Reconcile()
	require.NoError(t, err)
	assert.Equal(t, "hand edited", res.Rows[0].Description)
}

func TestSession_ReloadSameIdentityKeepsGuard(t *testing.T) {
	s := recon.NewSession(testMasterData())
	inv := testInvoice()
	s.Load(inv)
	require.NoError(t, s.Match())

	s.Load(inv)
	assert.Equal(t, recon.StateMatched, s.State())
}

func TestSession_LoadDifferentIdentityResets(t *testing.T) {
	s := recon.NewSession(testMasterData())
	s.Load(testInvoice())
	require.NoError(t, s.Match())

	other := testInvoice()
	s.Load(other)

	assert.Equal(t, recon.StateLoaded, s.State())
	assert.Equal(t, other.ID, s.InvoiceID())
	require.NoError(t, s.Match())
	assert.Equal(t, recon.StateMatched, s.State())
}

func TestSession_EditQuantityRecomputes(t *testing.T) {
	s := recon.NewSession(testMasterData())
	inv := testInvoice()
	s.Load(inv)
	require.NoError(t, s.Match())

	rowID := inv.LineItems[0].ID
	require.NoError(t, s.SetRowField(rowID, "quantity", "5"))

	res, err := s.Reconcile()
	require.NoError(t, err)
	assert.Equal(t, "5000.00", res.Rows[0].NetAmount)
	assert.Equal(t, "450.00", res.Rows[0].CGSTAmount)
	assert.True(t, res.RowDiffs[rowID.String()]["quantity"])
	assert.True(t, res.RowDiffs[rowID.String()]["net_amount"])
}

func TestSession_EditDescriptionDoesNotRecompute(t *testing.T) {
	s := recon.NewSession(testMasterData())
	inv := testInvoice()
	s.Load(inv)
	require.NoError(t, s.Match())

	before, err := s.Reconcile()
	require.NoError(t, err)

	rowID := inv.LineItems[0].ID
	require.NoError(t, s.SetRowField(rowID, "description", "renamed"))

	after, err := s.Reconcile()
	require.NoError(t, err)
	assert.Equal(t, before.Rows[0].NetAmount, after.Rows[0].NetAmount)
	assert.Equal(t, before.Totals, after.Totals)
}

func TestSession_AmountFieldsNotEditable(t *testing.T) {
	s := recon.NewSession(testMasterData())
	inv := testInvoice()
	s.Load(inv)
	require.NoError(t, s.Match())

	err := s.SetRowField(inv.LineItems[0].ID, "cgst_amount", "999")
	assert.ErrorIs(t, err, domain.ErrUnknownField)
}

func TestSession_UnknownRowAndField(t *testing.T) {
	s := recon.NewSession(testMasterData())
	s.Load(testInvoice())

	assert.ErrorIs(t, s.SetRowField(uuid.New(), "quantity", "1"), domain.ErrRowNotFound)
	assert.ErrorIs(t, s.SetHeaderField("bogus", "x"), domain.ErrUnknownField)
}

func TestSession_AddRow(t *testing.T) {
	s := recon.NewSession(testMasterData())
	inv := testInvoice()
	s.Load(inv)
	require.NoError(t, s.Match())

	row, err := s.AddRow()
	require.NoError(t, err)
	assert.Equal(t, 3, row.LineNum)
	assert.Equal(t, "0.00", row.NetAmount)

	// The new row diffs against its blank initial state, not extraction.
	require.NoError(t, s.SetRowField(row.ID, "quantity", "4"))
	require.NoError(t, s.SetRowField(row.ID, "rate", "25"))

	res, err := s.Reconcile()
	require.NoError(t, err)
	require.Len(t, res.Rows, 3)
	assert.Equal(t, "100.00", res.Rows[2].NetAmount)
	assert.True(t, res.RowDiffs[row.ID.String()]["quantity"])
}

func TestSession_HeaderDiffTracking(t *testing.T) {
	s := recon.NewSession(testMasterData())
	inv := testInvoice()
	s.Load(inv)
	require.NoError(t, s.Match())

	res, err := s.Reconcile()
	require.NoError(t, err)
	assert.False(t, res.HeaderDiffs["invoice_number"])

	require.NoError(t, s.SetHeaderField("invoice_number", "INV-43"))
	res, err = s.Reconcile()
	require.NoError(t, err)
	assert.True(t, res.HeaderDiffs["invoice_number"])
}

func TestSession_ReconcileDoesNotMutate(t *testing.T) {
	s := recon.NewSession(testMasterData())
	s.Load(testInvoice())
	require.NoError(t, s.Match())

	first, err := s.Reconcile()
	require.NoError(t, err)
	second, err := s.Reconcile()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

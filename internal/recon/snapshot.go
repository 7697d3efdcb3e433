package recon

import (
	"github.com/google/uuid"

	"lekha/internal/domain"
)

// Snapshot records each row's field values the first time the row is seen
// after matching. It is the secondary diff baseline for rows that cannot be
// located in the OCR payload, and is write-once per row: re-observing an
// already-recorded row is a no-op.
type Snapshot struct {
	rows map[uuid.UUID]map[string]string
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{rows: make(map[uuid.UUID]map[string]string)}
}

// Observe captures the row's current values if the row has not been seen yet.
func (s *Snapshot) Observe(row *domain.LineItem) {
	if _, seen := s.rows[row.ID]; seen {
		return
	}
	s.rows[row.ID] = map[string]string{
		"description":  row.Description,
		"quantity":     row.Quantity,
		"rate":         row.Rate,
		"hsn_code":     row.HSNCode,
		"tax_code":     row.TaxCode,
		"tds_code":     row.TDSCode,
		"tds_amount":   row.TDSAmount,
		"igst_amount":  row.IGSTAmount,
		"cgst_amount":  row.CGSTAmount,
		"sgst_amount":  row.SGSTAmount,
		"utgst_amount": row.UTGSTAmount,
		"net_amount":   row.NetAmount,
	}
}

// Field returns the first-observed value for a row field, if recorded.
func (s *Snapshot) Field(rowID uuid.UUID, field string) (string, bool) {
	if s == nil {
		return "", false
	}
	fields, ok := s.rows[rowID]
	if !ok {
		return "", false
	}
	v, ok := fields[field]
	return v, ok
}

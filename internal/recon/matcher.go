package recon

import (
	"github.com/google/uuid"

	"lekha/internal/domain"
	"lekha/internal/ocr"
)

// MatchResult is the output of one matcher pass. Rows is a resolved copy of
// the input rows; Unmatched holds the ids of rows with no usable match key or
// no item master hit, for UI flagging.
type MatchResult struct {
	Rows      []domain.LineItem
	Unmatched map[uuid.UUID]bool
}

// MatchHSN reconciles each row against the item master. The match key is the
// row's own HSN code when present, otherwise the HSN field of the positionally
// corresponding OCR line. On a hit the row's blank HSN code is backfilled with
// the normalized key, the description is overwritten from the master when the
// master has one, the tax and TDS codes are resolved from the master, and the
// row's taxes are recomputed at its current quantity and rate. On a miss the
// row is left untouched.
//
// MatchHSN is a pure function of (rows, payload, master): it never mutates its
// inputs and repeated application yields the same result. The once-per-invoice
// guard lives in the Session, not here.
func MatchHSN(rows []domain.LineItem, payload *ocr.Payload, md *MasterData) MatchResult {
	out := MatchResult{
		Rows:      make([]domain.LineItem, len(rows)),
		Unmatched: make(map[uuid.UUID]bool),
	}
	copy(out.Rows, rows)

	for i := range out.Rows {
		row := &out.Rows[i]

		key := row.HSNCode
		if NormalizeHSN(key) == "" {
			if line := payload.LineAt(i); line != nil {
				key = line.HSNSAC
			}
		}
		key = NormalizeHSN(key)
		if key == "" {
			out.Unmatched[row.ID] = true
			continue
		}

		item, ok := md.ItemByHSN(key)
		if !ok {
			out.Unmatched[row.ID] = true
			continue
		}

		if NormalizeHSN(row.HSNCode) == "" {
			row.HSNCode = key
		}
		if item.Description != "" {
			row.Description = item.Description
		}
		row.TaxCode = item.TaxCode
		row.TDSCode = item.TDSCode
		Recompute(row, md)
	}
	return out
}

package recon

import (
	"github.com/google/uuid"

	"lekha/internal/domain"
	"lekha/internal/ocr"
)

// State is the lifecycle of a review session for one invoice identity.
type State string

const (
	StateUnloaded State = "unloaded"
	StateLoaded   State = "loaded"
	StateMatched  State = "matched"
)

// Session owns the editable state of one invoice review: rows, the immutable
// OCR payload, the first-observed snapshot, and the once-per-invoice matching
// guard. It is the session-scoped state machine
// Unloaded → Loaded(rows, payload) → Matched; loading a different invoice
// identity resets to Unloaded and clears the guard.
//
// All methods are synchronous; callers serialize access.
type Session struct {
	invoiceID uuid.UUID
	state     State
	header    domain.InvoiceHeader
	rows      []domain.LineItem
	payload   *ocr.Payload
	snapshot  *Snapshot
	unmatched map[uuid.UUID]bool
	master    *MasterData
}

// NewSession creates an Unloaded session over loaded master data.
func NewSession(master *MasterData) *Session {
	return &Session{
		state:     StateUnloaded,
		master:    master,
		snapshot:  NewSnapshot(),
		unmatched: make(map[uuid.UUID]bool),
	}
}

// Load installs an invoice into the session. Loading a different invoice
// identity discards all prior state, including the matching guard and the
// snapshot; reloading the same identity refreshes rows without re-arming the
// matcher.
func (s *Session) Load(inv *domain.Invoice) {
	if s.state == StateUnloaded || inv.ID != s.invoiceID {
		s.invoiceID = inv.ID
		s.snapshot = NewSnapshot()
		s.unmatched = make(map[uuid.UUID]bool)
		s.state = StateLoaded
	}
	s.header = inv.Header
	s.rows = make([]domain.LineItem, len(inv.LineItems))
	copy(s.rows, inv.LineItems)
	s.payload = ocr.Decode(inv.OCRPayload)
}

// InvoiceID returns the identity of the loaded invoice.
func (s *Session) InvoiceID() uuid.UUID { return s.invoiceID }

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Header returns the current header values.
func (s *Session) Header() domain.InvoiceHeader { return s.header }

// Rows returns a copy of the current row set.
func (s *Session) Rows() []domain.LineItem {
	out := make([]domain.LineItem, len(s.rows))
	copy(out, s.rows)
	return out
}

// Match runs the HSN matcher exactly once per invoice identity. A second call
// is a no-op, so user edits made after the initial pass are never stomped.
// Rows are snapshot immediately after matching, merging extraction values and
// any backfill into the first-observed baseline.
func (s *Session) Match() error {
	switch s.state {
	case StateUnloaded:
		return domain.ErrSessionNotLoaded
	case StateMatched:
		return nil
	}

	res := MatchHSN(s.rows, s.payload, s.master)
	s.rows = res.Rows
	s.unmatched = res.Unmatched
	for i := range s.rows {
		s.snapshot.Observe(&s.rows[i])
	}
	s.state = StateMatched
	return nil
}

// SetHeaderField applies a header edit.
func (s *Session) SetHeaderField(field, value string) error {
	if s.state == StateUnloaded {
		return domain.ErrSessionNotLoaded
	}
	if !setHeaderField(&s.header, field, value) {
		return domain.ErrUnknownField
	}
	return nil
}

// SetRowField applies a row edit. Changing quantity, rate, tax code, or TDS
// code recomputes that row's taxes; amount fields are never set directly.
func (s *Session) SetRowField(rowID uuid.UUID, field, value string) error {
	if s.state == StateUnloaded {
		return domain.ErrSessionNotLoaded
	}
	if !editableRowFields[field] {
		return domain.ErrUnknownField
	}
	row := s.row(rowID)
	if row == nil {
		return domain.ErrRowNotFound
	}
	setRowField(row, field, value)
	if recomputeOnEdit[field] {
		Recompute(row, s.master)
	}
	return nil
}

// AddRow appends a blank row and records it in the snapshot so later edits
// diff against its empty initial state. Row removal is not supported.
func (s *Session) AddRow() (*domain.LineItem, error) {
	if s.state == StateUnloaded {
		return nil, domain.ErrSessionNotLoaded
	}
	row := domain.LineItem{
		ID:      uuid.New(),
		LineNum: len(s.rows) + 1,
	}
	Recompute(&row, s.master)
	s.rows = append(s.rows, row)
	s.snapshot.Observe(&s.rows[len(s.rows)-1])
	return &s.rows[len(s.rows)-1], nil
}

// Result is the output of one reconcile pass: the current rows, the invoice
// aggregates, the unmatched-row set, and the full changed-field maps.
type Result struct {
	Rows        []domain.LineItem          `json:"rows"`
	Totals      Totals                     `json:"totals"`
	Unmatched   []uuid.UUID                `json:"unmatched_hsn_rows"`
	HeaderDiffs map[string]bool            `json:"header_diffs"`
	RowDiffs    map[string]map[string]bool `json:"row_diffs"`
}

// Reconcile is the explicit synchronous pipeline invoked after every mutating
// action: it aggregates the current rows and evaluates every diff against the
// extraction baselines. It never mutates session state and is deterministic
// for fixed inputs.
func (s *Session) Reconcile() (*Result, error) {
	if s.state == StateUnloaded {
		return nil, domain.ErrSessionNotLoaded
	}

	d := NewDiffer(s.payload, s.snapshot)

	headerDiffs := make(map[string]bool, len(headerFieldKinds))
	for field := range headerFieldKinds {
		current, _ := headerField(&s.header, field)
		headerDiffs[field] = d.HeaderChanged(field, current)
	}

	rowDiffs := make(map[string]map[string]bool, len(s.rows))
	for i := range s.rows {
		row := &s.rows[i]
		fields := make(map[string]bool, len(rowFieldKinds))
		for field := range rowFieldKinds {
			fields[field] = d.RowChanged(row, i, field)
		}
		rowDiffs[row.ID.String()] = fields
	}

	// Before matching has run no row has a master resolution, so every row
	// reports unmatched.
	unmatched := make([]uuid.UUID, 0, len(s.rows))
	for i := range s.rows {
		if s.state != StateMatched || s.unmatched[s.rows[i].ID] {
			unmatched = append(unmatched, s.rows[i].ID)
		}
	}

	return &Result{
		Rows:        s.Rows(),
		Totals:      Aggregate(s.rows),
		Unmatched:   unmatched,
		HeaderDiffs: headerDiffs,
		RowDiffs:    rowDiffs,
	}, nil
}

func (s *Session) row(id uuid.UUID) *domain.LineItem {
	for i := range s.rows {
		if s.rows[i].ID == id {
			return &s.rows[i]
		}
	}
	return nil
}

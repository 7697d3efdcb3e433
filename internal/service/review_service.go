package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"lekha/internal/domain"
	"lekha/internal/port"
	"lekha/internal/recon"
	"lekha/internal/validator"
)

// ReviewView is the full state of the review screen after an operation:
// header, reconciled rows with totals and changed-field maps, and, when an
// update or submit was blocked, the validation error maps.
type ReviewView struct {
	InvoiceID     uuid.UUID            `json:"invoice_id"`
	Status        domain.InvoiceStatus `json:"status"`
	Header        domain.InvoiceHeader `json:"header"`
	Workflow      json.RawMessage      `json:"workflow,omitempty"`
	FileReference string               `json:"file_reference,omitempty"`
	Result        *recon.Result        `json:"result"`
	Validation    *validator.Result    `json:"validation,omitempty"`
}

// ReviewService orchestrates review sessions: opening an invoice, applying
// edits, and saving or deciding it.
type ReviewService interface {
	Open(ctx context.Context, invoiceID uuid.UUID) (*ReviewView, error)
	EditHeaderField(ctx context.Context, invoiceID uuid.UUID, field, value string) (*ReviewView, error)
	EditRowField(ctx context.Context, invoiceID, rowID uuid.UUID, field, value string) (*ReviewView, error)
	AddRow(ctx context.Context, invoiceID uuid.UUID) (*ReviewView, error)
	Update(ctx context.Context, invoiceID uuid.UUID) (*ReviewView, error)
	Submit(ctx context.Context, invoiceID uuid.UUID) (*ReviewView, error)
	Action(ctx context.Context, invoiceID uuid.UUID, input port.ActionInput) error
}

type reviewService struct {
	invoices    port.InvoiceRepository
	items       port.ItemRepository
	taxes       port.TaxRepository
	tdsCodes    port.TDSRepository
	masterLimit int

	mu         sync.Mutex
	master     *recon.MasterData
	session    *recon.Session
	invoice    *domain.Invoice
	gen        uint64
	cancelOpen context.CancelFunc
}

// NewReviewService creates a ReviewService. Master data is fetched once, on
// the first Open, with the given bulk-fetch limit.
func NewReviewService(
	invoices port.InvoiceRepository,
	items port.ItemRepository,
	taxes port.TaxRepository,
	tdsCodes port.TDSRepository,
	masterLimit int,
) ReviewService {
	return &reviewService{
		invoices:    invoices,
		items:       items,
		taxes:       taxes,
		tdsCodes:    tdsCodes,
		masterLimit: masterLimit,
	}
}

// Open loads an invoice into a review session. The invoice fetch and the
// one-time master data load are issued concurrently; an invoice fetch failure
// is fatal, a master data failure degrades to empty maps. Opening a different
// invoice identity replaces the session; the fetches of an Open superseded by
// a newer one are cancelled and its results discarded rather than installed
// over it.
func (s *reviewService) Open(ctx context.Context, invoiceID uuid.UUID) (*ReviewView, error) {
	openCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	s.gen++
	gen := s.gen
	if s.cancelOpen != nil {
		s.cancelOpen()
	}
	s.cancelOpen = cancel
	needMaster := s.master == nil
	s.mu.Unlock()

	var (
		wg     sync.WaitGroup
		inv    *domain.Invoice
		invErr error
		md     *recon.MasterData
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		inv, invErr = s.invoices.GetByID(openCtx, invoiceID)
	}()
	if needMaster {
		wg.Add(1)
		go func() {
			defer wg.Done()
			md = recon.LoadMasterData(openCtx, s.items, s.taxes, s.tdsCodes, s.masterLimit)
		}()
	}
	wg.Wait()

	if invErr != nil {
		return nil, fmt.Errorf("reviewService.Open: fetching invoice %s: %w", invoiceID, invErr)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gen != gen {
		log.Printf("reviewService.Open: discarding stale load of invoice %s", invoiceID)
		return nil, domain.ErrStaleSession
	}
	if md != nil {
		s.master = md
	}

	if s.session == nil || s.session.InvoiceID() != inv.ID {
		s.session = recon.NewSession(s.master)
	}
	s.session.Load(inv)
	s.invoice = inv

	// Matching waits for full reference data: if any master table came up
	// empty the session stays in Loaded, every row reports unmatched, and
	// the codes stay blank for the validation gate to catch at submit time.
	if len(inv.LineItems) > 0 && s.master.Ready() {
		if err := s.session.Match(); err != nil {
			return nil, fmt.Errorf("reviewService.Open: matching invoice %s: %w", invoiceID, err)
		}
	}
	return s.view(nil)
}

func (s *reviewService) EditHeaderField(ctx context.Context, invoiceID uuid.UUID, field, value string) (*ReviewView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireSession(invoiceID); err != nil {
		return nil, err
	}
	if err := s.session.SetHeaderField(field, value); err != nil {
		return nil, err
	}
	return s.view(nil)
}

func (s *reviewService) EditRowField(ctx context.Context, invoiceID, rowID uuid.UUID, field, value string) (*ReviewView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireSession(invoiceID); err != nil {
		return nil, err
	}
	if err := s.session.SetRowField(rowID, field, value); err != nil {
		return nil, err
	}
	return s.view(nil)
}

func (s *reviewService) AddRow(ctx context.Context, invoiceID uuid.UUID) (*ReviewView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireSession(invoiceID); err != nil {
		return nil, err
	}
	if _, err := s.session.AddRow(); err != nil {
		return nil, err
	}
	return s.view(nil)
}

// Update validates the current state and persists it. A failed gate blocks
// the save and returns the error maps alongside domain.ErrValidationFailed;
// session state is left unchanged either way so the user can retry.
func (s *reviewService) Update(ctx context.Context, invoiceID uuid.UUID) (*ReviewView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireSession(invoiceID); err != nil {
		return nil, err
	}

	header := s.session.Header()
	rows := s.session.Rows()
	if gate := validator.ValidateForSubmission(&header, rows); !gate.OK() {
		view, verr := s.view(gate)
		if verr != nil {
			return nil, verr
		}
		return view, domain.ErrValidationFailed
	}

	input := recon.BuildUpdateInput(header, rows)
	if err := s.invoices.Update(ctx, invoiceID, input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUpdateFailed, err)
	}
	return s.view(nil)
}

// Submit runs the validation gate and submits the invoice for approval.
func (s *reviewService) Submit(ctx context.Context, invoiceID uuid.UUID) (*ReviewView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireSession(invoiceID); err != nil {
		return nil, err
	}

	header := s.session.Header()
	rows := s.session.Rows()
	if gate := validator.ValidateForSubmission(&header, rows); !gate.OK() {
		view, verr := s.view(gate)
		if verr != nil {
			return nil, verr
		}
		return view, domain.ErrValidationFailed
	}

	if err := s.invoices.Update(ctx, invoiceID, recon.BuildUpdateInput(header, rows)); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUpdateFailed, err)
	}
	if err := s.invoices.Submit(ctx, invoiceID); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrActionFailed, err)
	}
	return s.view(nil)
}

// Action records an approve/reject decision. Failures surface the server
// message and leave the session untouched for retry.
func (s *reviewService) Action(ctx context.Context, invoiceID uuid.UUID, input port.ActionInput) error {
	if !input.Action.Valid() {
		return domain.ErrInvalidAction
	}
	if err := s.invoices.ApproveOrReject(ctx, invoiceID, input); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrActionFailed, err)
	}
	return nil
}

// requireSession checks that the given invoice is the one loaded. Callers
// hold s.mu.
func (s *reviewService) requireSession(invoiceID uuid.UUID) error {
	if s.session == nil || s.session.State() == recon.StateUnloaded {
		return domain.ErrSessionNotLoaded
	}
	if s.session.InvoiceID() != invoiceID {
		return domain.ErrSessionNotLoaded
	}
	return nil
}

// view runs the reconcile pipeline and assembles the response. Callers hold
// s.mu.
func (s *reviewService) view(gate *validator.Result) (*ReviewView, error) {
	result, err := s.session.Reconcile()
	if err != nil {
		return nil, err
	}
	return &ReviewView{
		InvoiceID:     s.session.InvoiceID(),
		Status:        s.invoice.Status,
		Header:        s.session.Header(),
		Workflow:      s.invoice.Workflow,
		FileReference: s.invoice.FileReference,
		Result:        result,
		Validation:    gate,
	}, nil
}

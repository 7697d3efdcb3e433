package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"lekha/internal/domain"
	"lekha/internal/port"
)

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

// invoiceRow is the flat scan target for the invoices table.
type invoiceRow struct {
	ID              uuid.UUID       `db:"id"`
	InvoiceNumber   string          `db:"invoice_number"`
	InvoiceDate     string          `db:"invoice_date"`
	GSTNumber       string          `db:"gst_number"`
	VendorID        string          `db:"vendor_id"`
	VendorName      string          `db:"vendor_name"`
	VendorPAN       string          `db:"vendor_pan"`
	VendorEmail     string          `db:"vendor_email"`
	BillingAddress  string          `db:"billing_address"`
	ShippingAddress string          `db:"shipping_address"`
	Currency        string          `db:"currency"`
	OCRPayload      json.RawMessage `db:"ocr_payload"`
	Status          string          `db:"status"`
	Workflow        json.RawMessage `db:"workflow"`
	FileReference   string          `db:"file_reference"`
	ReviewerNotes   string          `db:"reviewer_notes"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

// lineItemRow is the flat scan target for the invoice_line_items table.
type lineItemRow struct {
	ID          int64  `db:"id"`
	LineNum     int    `db:"line_num"`
	Description string `db:"description"`
	Quantity    string `db:"quantity"`
	Rate        string `db:"rate"`
	HSNCode     string `db:"hsn_code"`
	TaxCode     string `db:"tax_code"`
	TDSCode     string `db:"tds_code"`
	TDSAmount   string `db:"tds_amount"`
	IGSTAmount  string `db:"igst_amount"`
	CGSTAmount  string `db:"cgst_amount"`
	SGSTAmount  string `db:"sgst_amount"`
	UTGSTAmount string `db:"utgst_amount"`
	NetAmount   string `db:"net_amount"`
}

func (r *invoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	var row invoiceRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM invoices WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByID: %w", err)
	}

	var lineRows []lineItemRow
	err = r.db.SelectContext(ctx, &lineRows,
		`SELECT id, line_num, description, quantity, rate, hsn_code, tax_code, tds_code,
		        tds_amount, igst_amount, cgst_amount, sgst_amount, utgst_amount, net_amount
		 FROM invoice_line_items
		 WHERE invoice_id = $1
		 ORDER BY line_num`, id)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.GetByID: loading line items: %w", err)
	}

	inv := &domain.Invoice{
		ID: row.ID,
		Header: domain.InvoiceHeader{
			InvoiceNumber:   row.InvoiceNumber,
			InvoiceDate:     row.InvoiceDate,
			GSTNumber:       row.GSTNumber,
			VendorID:        row.VendorID,
			VendorName:      row.VendorName,
			VendorPAN:       row.VendorPAN,
			VendorEmail:     row.VendorEmail,
			BillingAddress:  row.BillingAddress,
			ShippingAddress: row.ShippingAddress,
			Currency:        row.Currency,
		},
		OCRPayload:    row.OCRPayload,
		Status:        domain.InvoiceStatus(row.Status),
		Workflow:      row.Workflow,
		FileReference: row.FileReference,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
	inv.LineItems = make([]domain.LineItem, 0, len(lineRows))
	for i := range lineRows {
		lr := &lineRows[i]
		persistedID := lr.ID
		inv.LineItems = append(inv.LineItems, domain.LineItem{
			ID:                uuid.New(),
			LineNum:           lr.LineNum,
			Description:       lr.Description,
			Quantity:          lr.Quantity,
			Rate:              lr.Rate,
			HSNCode:           lr.HSNCode,
			TaxCode:           lr.TaxCode,
			TDSCode:           lr.TDSCode,
			TDSAmount:         lr.TDSAmount,
			IGSTAmount:        lr.IGSTAmount,
			CGSTAmount:        lr.CGSTAmount,
			SGSTAmount:        lr.SGSTAmount,
			UTGSTAmount:       lr.UTGSTAmount,
			NetAmount:         lr.NetAmount,
			InvoiceLineItemID: &persistedID,
		})
	}
	return inv, nil
}

func (r *invoiceRepo) Update(ctx context.Context, id uuid.UUID, input *port.UpdateInvoiceInput) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Update: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`UPDATE invoices SET
			invoice_number = COALESCE($2, ''),
			invoice_date = COALESCE($3, ''),
			gst_number = COALESCE($4, ''),
			vendor_id = COALESCE($5, ''),
			vendor_name = COALESCE($6, ''),
			vendor_pan = COALESCE($7, ''),
			vendor_email = COALESCE($8, ''),
			billing_address = COALESCE($9, ''),
			shipping_address = COALESCE($10, ''),
			currency = COALESCE($11, ''),
			updated_at = $12
		 WHERE id = $1`,
		id, input.InvoiceNumber, input.InvoiceDate, input.GSTNumber, input.VendorID,
		input.VendorName, input.VendorPAN, input.VendorEmail, input.BillingAddress,
		input.ShippingAddress, input.Currency, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("invoiceRepo.Update: header: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}

	for i := range input.LineItems {
		item := &input.LineItems[i]
		if item.ID != nil {
			_, err = tx.ExecContext(ctx,
				`UPDATE invoice_line_items SET
					line_num = $3, description = $4, quantity = $5, rate = $6, hsn_code = $7,
					tax_code = $8, tds_code = $9, tds_amount = $10, igst_amount = $11,
					cgst_amount = $12, sgst_amount = $13, utgst_amount = $14, net_amount = $15
				 WHERE id = $1 AND invoice_id = $2`,
				*item.ID, id, item.LineNum, item.Description, item.Quantity, item.Rate,
				item.HSNSAC, item.TaxCode, item.TDSCode, item.TDSAmount, item.IGSTAmount,
				item.CGSTAmount, item.SGSTAmount, item.UTGSTAmount, item.Total)
		} else {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO invoice_line_items
					(invoice_id, line_num, description, quantity, rate, hsn_code, tax_code,
					 tds_code, tds_amount, igst_amount, cgst_amount, sgst_amount, utgst_amount, net_amount)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
				id, item.LineNum, item.Description, item.Quantity, item.Rate, item.HSNSAC,
				item.TaxCode, item.TDSCode, item.TDSAmount, item.IGSTAmount, item.CGSTAmount,
				item.SGSTAmount, item.UTGSTAmount, item.Total)
		}
		if err != nil {
			return fmt.Errorf("invoiceRepo.Update: line %d: %w", item.LineNum, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("invoiceRepo.Update: commit: %w", err)
	}
	return nil
}

func (r *invoiceRepo) Submit(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE invoices SET status = $2, updated_at = $3 WHERE id = $1`,
		id, domain.InvoiceStatusSubmitted, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("invoiceRepo.Submit: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *invoiceRepo) ApproveOrReject(ctx context.Context, id uuid.UUID, input port.ActionInput) error {
	status := domain.InvoiceStatusApproved
	if input.Action == domain.ActionReject {
		status = domain.InvoiceStatusRejected
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE invoices SET status = $2, reviewer_notes = $3, updated_at = $4 WHERE id = $1`,
		id, status, input.Notes, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("invoiceRepo.ApproveOrReject: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

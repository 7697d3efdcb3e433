package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"lekha/internal/domain"
	"lekha/internal/port"
)

type itemRepo struct {
	db *sqlx.DB
}

// NewItemRepo creates a new PostgreSQL-backed ItemRepository.
func NewItemRepo(db *sqlx.DB) port.ItemRepository {
	return &itemRepo{db: db}
}

func (r *itemRepo) List(ctx context.Context, limit, offset int) ([]domain.ItemMaster, error) {
	var items []domain.ItemMaster
	err := r.db.SelectContext(ctx, &items,
		`SELECT hsn_code, description, tax_code, tds_code
		 FROM item_master
		 ORDER BY hsn_code
		 LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("itemRepo.List: %w", err)
	}
	return items, nil
}

type taxRepo struct {
	db *sqlx.DB
}

// NewTaxRepo creates a new PostgreSQL-backed TaxRepository.
func NewTaxRepo(db *sqlx.DB) port.TaxRepository {
	return &taxRepo{db: db}
}

func (r *taxRepo) List(ctx context.Context, limit, offset int) ([]domain.TaxCode, error) {
	var codes []domain.TaxCode
	err := r.db.SelectContext(ctx, &codes,
		`SELECT code, cgst_percent, sgst_percent, igst_percent, utgst_percent, description
		 FROM tax_codes
		 ORDER BY code
		 LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("taxRepo.List: %w", err)
	}
	return codes, nil
}

type tdsRepo struct {
	db *sqlx.DB
}

// NewTDSRepo creates a new PostgreSQL-backed TDSRepository.
func NewTDSRepo(db *sqlx.DB) port.TDSRepository {
	return &tdsRepo{db: db}
}

func (r *tdsRepo) List(ctx context.Context, limit, offset int) ([]domain.TDSCode, error) {
	var codes []domain.TDSCode
	err := r.db.SelectContext(ctx, &codes,
		`SELECT code, percent, description
		 FROM tds_codes
		 ORDER BY code
		 LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("tdsRepo.List: %w", err)
	}
	return codes, nil
}

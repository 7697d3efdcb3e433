package recon

import (
	"context"
	"log"
	"strings"

	"lekha/internal/domain"
	"lekha/internal/port"
)

// NormalizeHSN canonicalizes an HSN/SAC code for lookup: trimmed, upper-cased.
func NormalizeHSN(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// MasterData indexes the item, tax, and TDS reference tables by code.
// It is read-only after load and safe for concurrent access.
type MasterData struct {
	items map[string]domain.ItemMaster
	taxes map[string]domain.TaxCode
	tds   map[string]domain.TDSCode
}

// NewMasterData builds a MasterData from already-fetched records. Item keys
// are normalized; later duplicates win, matching load order.
func NewMasterData(items []domain.ItemMaster, taxes []domain.TaxCode, tdsCodes []domain.TDSCode) *MasterData {
	md := &MasterData{
		items: make(map[string]domain.ItemMaster, len(items)),
		taxes: make(map[string]domain.TaxCode, len(taxes)),
		tds:   make(map[string]domain.TDSCode, len(tdsCodes)),
	}
	for i := range items {
		md.items[NormalizeHSN(items[i].HSNCode)] = items[i]
	}
	for i := range taxes {
		md.taxes[taxes[i].Code] = taxes[i]
	}
	for i := range tdsCodes {
		md.tds[tdsCodes[i].Code] = tdsCodes[i]
	}
	return md
}

// LoadMasterData performs one bounded bulk fetch per reference table and
// indexes the results. A failed fetch is logged and leaves that table's map
// empty: the review screen still renders, matching simply finds no matches.
func LoadMasterData(
	ctx context.Context,
	itemRepo port.ItemRepository,
	taxRepo port.TaxRepository,
	tdsRepo port.TDSRepository,
	limit int,
) *MasterData {
	items, err := itemRepo.List(ctx, limit, 0)
	if err != nil {
		log.Printf("recon.LoadMasterData: item master fetch failed: %v", err)
		items = nil
	}
	taxes, err := taxRepo.List(ctx, limit, 0)
	if err != nil {
		log.Printf("recon.LoadMasterData: tax code fetch failed: %v", err)
		taxes = nil
	}
	tdsCodes, err := tdsRepo.List(ctx, limit, 0)
	if err != nil {
		log.Printf("recon.LoadMasterData: tds code fetch failed: %v", err)
		tdsCodes = nil
	}
	return NewMasterData(items, taxes, tdsCodes)
}

// ItemByHSN looks up an item by HSN/SAC code, normalizing the key first.
func (md *MasterData) ItemByHSN(code string) (domain.ItemMaster, bool) {
	if md == nil {
		return domain.ItemMaster{}, false
	}
	item, ok := md.items[NormalizeHSN(code)]
	return item, ok
}

// TaxByCode looks up a GST tax code record.
func (md *MasterData) TaxByCode(code string) (domain.TaxCode, bool) {
	if md == nil {
		return domain.TaxCode{}, false
	}
	tax, ok := md.taxes[code]
	return tax, ok
}

// TDSByCode looks up a TDS code record.
func (md *MasterData) TDSByCode(code string) (domain.TDSCode, bool) {
	if md == nil {
		return domain.TDSCode{}, false
	}
	t, ok := md.tds[code]
	return t, ok
}

// Ready reports whether all three reference tables loaded non-empty. The HSN
// matcher is gated on this plus a non-empty row set.
func (md *MasterData) Ready() bool {
	return md != nil && len(md.items) > 0 && len(md.taxes) > 0 && len(md.tds) > 0
}

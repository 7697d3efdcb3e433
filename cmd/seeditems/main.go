// Command seeditems converts an item master Excel workbook into a SQL seed
// file for the item_master table.
// Expected columns: A=HSN/SAC code, B=description, C=tax code, D=TDS code.
// Data starts at row index 1 (row 0 is the header).
// Usage: go run ./cmd/seeditems <workbook.xlsx>
// Output: db/seeds/item_master.sql
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

const batchSize = 500

type itemEntry struct {
	hsnCode     string
	description string
	taxCode     string
	tdsCode     string
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if len(os.Args) < 2 {
		return fmt.Errorf("usage: seeditems <workbook.xlsx>")
	}
	xlsxPath := os.Args[1]
	outPath := "db/seeds/item_master.sql"

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	entries, err := parseItemSheet(f)
	if err != nil {
		return fmt.Errorf("parse item sheet: %w", err)
	}
	log.Printf("item sheet: %d entries", len(entries))

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = out.Close() }()

	w := func(s string) error { _, werr := fmt.Fprintln(out, s); return werr }

	for _, line := range []string{
		"-- Item master seed data generated from Excel.",
		fmt.Sprintf("-- %d entries in batches of %d.", len(entries), batchSize),
		"-- Run: make seed-items",
		"BEGIN;",
		"",
	} {
		if werr := w(line); werr != nil {
			return fmt.Errorf("write header: %w", werr)
		}
	}

	for i := 0; i < len(entries); i += batchSize {
		end := i + batchSize
		if end > len(entries) {
			end = len(entries)
		}
		if err := writeBatch(out, entries[i:end]); err != nil {
			return fmt.Errorf("write batch at offset %d: %w", i, err)
		}
	}

	for _, line := range []string{"", "COMMIT;"} {
		if werr := w(line); werr != nil {
			return fmt.Errorf("write footer: %w", werr)
		}
	}

	log.Printf("Generated %d entries (%d batches) in %s",
		len(entries), (len(entries)+batchSize-1)/batchSize, outPath)
	return nil
}

// parseItemSheet reads the first sheet of the workbook. Rows without an
// HSN/SAC code or tax code are skipped; codes are normalized the same way the
// matcher normalizes them (trimmed, upper-cased). Duplicate codes keep the
// first occurrence.
func parseItemSheet(f *excelize.File) ([]itemEntry, error) {
	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var entries []itemEntry
	for i := 1; i < len(rows); i++ {
		row := rows[i]

		code := strings.ToUpper(strings.TrimSpace(cellVal(row, 0)))
		taxCode := strings.TrimSpace(cellVal(row, 2))
		if code == "" || taxCode == "" {
			continue
		}
		if seen[code] {
			continue
		}
		seen[code] = true

		entries = append(entries, itemEntry{
			hsnCode:     code,
			description: strings.TrimSpace(cellVal(row, 1)),
			taxCode:     taxCode,
			tdsCode:     strings.TrimSpace(cellVal(row, 3)),
		})
	}
	return entries, nil
}

func writeBatch(out *os.File, batch []itemEntry) error {
	if len(batch) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("INSERT INTO item_master (hsn_code, description, tax_code, tds_code) VALUES\n")

	for i := range batch {
		e := &batch[i]
		if i > 0 {
			b.WriteString(",\n")
		}
		fmt.Fprintf(&b, "  ('%s', '%s', '%s', '%s')",
			escapeSQL(e.hsnCode), escapeSQL(e.description),
			escapeSQL(e.taxCode), escapeSQL(e.tdsCode))
	}

	b.WriteString("\nON CONFLICT (hsn_code) DO NOTHING;\n")

	_, err := out.WriteString(b.String())
	return err
}

func cellVal(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

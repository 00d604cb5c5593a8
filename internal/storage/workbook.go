package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/pavanTkumar/watch-price-app/internal/common"
	"github.com/pavanTkumar/watch-price-app/internal/model"
	"github.com/pavanTkumar/watch-price-app/internal/service"
)

// extendedSheet is the single table used by the extended layout.
const extendedSheet = "Services"

// simpleSheets are the per-band tables of the simple layout.
var simpleSheets = []string{"Category 1", "Category 2", "Category 3", "Category 4", "Category 5"}

// WorkbookStore persists records in an .xlsx workbook. The workbook is
// loaded once at open; every mutation rewrites the file within the call and
// no handle is held between calls.
type WorkbookStore struct {
	path    string
	records []model.ServiceRecord
	layout  Layout
	mu      sync.Mutex
}

// NewWorkbookStore opens the workbook at path, creating it with header rows
// if it does not exist. Existing files are read as-is with no schema
// validation; malformed cells yield zero-value fields.
func NewWorkbookStore(path string, layout Layout) (*WorkbookStore, error) {
	if err := validateString(path, "path"); err != nil {
		return nil, err
	}

	s := &WorkbookStore{path: path, layout: layout}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.flush(nil); err != nil {
			return nil, err
		}
		slog.Info("created ledger workbook", "path", path)
		return s, nil
	}

	records, err := s.load()
	if err != nil {
		return nil, err
	}
	s.records = records

	slog.Debug("opened ledger workbook", "path", path, "records", len(records))
	return s, nil
}

// All returns a snapshot of every record in file order.
func (s *WorkbookStore) All(ctx context.Context) ([]model.ServiceRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.records), nil
}

// Append persists a new record at the end of the table.
func (s *WorkbookStore) Append(ctx context.Context, record *model.ServiceRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRecord(record); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stampRecord(record)

	next := append(snapshot(s.records), *record)
	if err := s.flush(next); err != nil {
		return err
	}
	s.records = next

	slog.Debug("appended record", "brand", record.Brand, "category", record.Category)
	return nil
}

// Update rewrites the fields of the record with the given ID in place,
// leaving its creation timestamp untouched.
func (s *WorkbookStore) Update(ctx context.Context, id string, fields service.Fields) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := findIndex(s.records, id)
	if idx < 0 {
		return fmt.Errorf("update record %s: %w", id, common.ErrNotFound)
	}

	next := snapshot(s.records)
	applyFields(&next[idx], fields)
	if err := s.flush(next); err != nil {
		return err
	}
	s.records = next

	slog.Debug("updated record", "id", id, "brand", fields.Brand)
	return nil
}

// Remove deletes the record with the given ID.
func (s *WorkbookStore) Remove(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := findIndex(s.records, id)
	if idx < 0 {
		return fmt.Errorf("remove record %s: %w", id, common.ErrNotFound)
	}

	next := append(snapshot(s.records)[:idx], s.records[idx+1:]...)
	if err := s.flush(next); err != nil {
		return err
	}
	s.records = next

	slog.Debug("removed record", "id", id)
	return nil
}

// FindByKey locates a record by its (brand, created_at) natural key. When
// corrupt data holds several rows with the same key, the first in file
// order wins. Returns nil when nothing matches.
func (s *WorkbookStore) FindByKey(ctx context.Context, brand string, createdAt time.Time) (*model.ServiceRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].MatchesKey(brand, createdAt) {
			rec := s.records[i]
			return &rec, nil
		}
	}
	return nil, nil
}

// Count returns the number of stored records.
func (s *WorkbookStore) Count(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records), nil
}

// load reads every row from the workbook, assigning surrogate IDs.
func (s *WorkbookStore) load() ([]model.ServiceRecord, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open workbook %s: %v", common.ErrStorageUnavailable, s.path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			slog.Warn("failed to close workbook", "path", s.path, "error", cerr)
		}
	}()

	var records []model.ServiceRecord
	if s.layout == LayoutSimple {
		for _, sheet := range f.GetSheetList() {
			rows, err := f.GetRows(sheet)
			if err != nil {
				return nil, fmt.Errorf("%w: read sheet %s: %v", common.ErrStorageUnavailable, sheet, err)
			}
			records = append(records, decodeSimpleRows(sheet, rows)...)
		}
		return records, nil
	}

	rows, err := f.GetRows(extendedSheet)
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %s: %v", common.ErrStorageUnavailable, extendedSheet, err)
	}
	return decodeExtendedRows(rows), nil
}

// decodeExtendedRows converts raw sheet rows into records, skipping the
// header and any row without a brand.
func decodeExtendedRows(rows [][]string) []model.ServiceRecord {
	var records []model.ServiceRecord
	for i, row := range rows {
		if i == 0 {
			continue
		}
		rec := model.ServiceRecord{ID: model.NewID()}
		if len(row) > 0 {
			rec.Brand = strings.TrimSpace(row[0])
		}
		if rec.Brand == "" {
			continue
		}
		if len(row) > 1 {
			rec.Price = parseStoredPrice(row[1])
		}
		if len(row) > 2 {
			rec.Category = strings.TrimSpace(row[2])
		}
		if len(row) > 3 {
			rec.ServiceType = model.ParseServiceType(row[3])
		}
		if len(row) > 4 {
			rec.CreatedAt = parseStoredDate(row[4])
		}
		records = append(records, rec)
	}
	return records
}

// decodeSimpleRows converts rows of a per-category sheet; the sheet name is
// the category label.
func decodeSimpleRows(sheet string, rows [][]string) []model.ServiceRecord {
	var records []model.ServiceRecord
	for i, row := range rows {
		if i == 0 {
			continue
		}
		rec := model.ServiceRecord{ID: model.NewID(), Category: sheet}
		if len(row) > 0 {
			rec.Brand = strings.TrimSpace(row[0])
		}
		if rec.Brand == "" {
			continue
		}
		if len(row) > 1 {
			rec.Price = parseStoredPrice(row[1])
		}
		if len(row) > 2 {
			rec.CreatedAt = parseStoredDate(row[2])
		}
		records = append(records, rec)
	}
	return records
}

// parseStoredPrice reads a price cell; malformed cells yield zero.
func parseStoredPrice(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// flush rebuilds the workbook from the given records and writes it to disk.
// The in-memory state is only advanced by the caller after a successful
// flush, so a failed write leaves the store matching the unmodified file.
func (s *WorkbookStore) flush(records []model.ServiceRecord) error {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil {
			slog.Warn("failed to close workbook", "path", s.path, "error", cerr)
		}
	}()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("%w: create header style: %v", common.ErrStorageUnavailable, err)
	}

	if s.layout == LayoutSimple {
		err = writeSimpleSheets(f, records, headerStyle)
	} else {
		err = writeExtendedSheet(f, records, headerStyle)
	}
	if err != nil {
		return err
	}

	if err := f.SaveAs(s.path); err != nil {
		return fmt.Errorf("%w: save workbook %s: %v", common.ErrStorageUnavailable, s.path, err)
	}
	return nil
}

func writeExtendedSheet(f *excelize.File, records []model.ServiceRecord, headerStyle int) error {
	if err := f.SetSheetName("Sheet1", extendedSheet); err != nil {
		return fmt.Errorf("%w: name sheet: %v", common.ErrStorageUnavailable, err)
	}

	header := make([]any, len(extendedHeader))
	for i, h := range extendedHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(extendedSheet, "A1", &header); err != nil {
		return fmt.Errorf("%w: write header: %v", common.ErrStorageUnavailable, err)
	}
	if err := f.SetRowStyle(extendedSheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("%w: style header: %v", common.ErrStorageUnavailable, err)
	}

	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("%w: row coordinates: %v", common.ErrStorageUnavailable, err)
		}
		row := []any{rec.Brand, rec.Price.InexactFloat64(), rec.Category, rec.ServiceType.String(), rec.DateAdded()}
		if err := f.SetSheetRow(extendedSheet, cell, &row); err != nil {
			return fmt.Errorf("%w: write row: %v", common.ErrStorageUnavailable, err)
		}
	}
	return nil
}

func writeSimpleSheets(f *excelize.File, records []model.ServiceRecord, headerStyle int) error {
	// The five band sheets always exist; any other category label gets its
	// own sheet on demand.
	sheets := append([]string{}, simpleSheets...)
	for _, rec := range records {
		if !slices.Contains(sheets, rec.Category) {
			sheets = append(sheets, rec.Category)
		}
	}

	nextRow := make(map[string]int, len(sheets))
	for _, sheet := range sheets {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("%w: create sheet %s: %v", common.ErrStorageUnavailable, sheet, err)
		}
		header := make([]any, len(simpleHeader))
		for i, h := range simpleHeader {
			header[i] = h
		}
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return fmt.Errorf("%w: write header: %v", common.ErrStorageUnavailable, err)
		}
		if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
			return fmt.Errorf("%w: style header: %v", common.ErrStorageUnavailable, err)
		}
		nextRow[sheet] = 2
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("%w: delete default sheet: %v", common.ErrStorageUnavailable, err)
	}

	for _, rec := range records {
		sheet := rec.Category
		cell, err := excelize.CoordinatesToCellName(1, nextRow[sheet])
		if err != nil {
			return fmt.Errorf("%w: row coordinates: %v", common.ErrStorageUnavailable, err)
		}
		row := []any{rec.Brand, rec.Price.InexactFloat64(), rec.DateAdded()}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%w: write row: %v", common.ErrStorageUnavailable, err)
		}
		nextRow[sheet]++
	}
	return nil
}

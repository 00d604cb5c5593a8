package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/jszwec/csvutil"
	"github.com/shopspring/decimal"

	"github.com/pavanTkumar/watch-price-app/internal/common"
	"github.com/pavanTkumar/watch-price-app/internal/model"
	"github.com/pavanTkumar/watch-price-app/internal/service"
)

// csvRow maps a record onto the CSV header columns.
type csvRow struct {
	Brand       string          `csv:"Brand"`
	Price       decimal.Decimal `csv:"Price"`
	Category    string          `csv:"Category"`
	ServiceType string          `csv:"Service Type"`
	DateAdded   string          `csv:"Date Added"`
}

// CSVStore persists records in a single CSV table with the extended-layout
// header. Like the workbook store, every mutation rewrites the file within
// the call.
type CSVStore struct {
	path    string
	records []model.ServiceRecord
	mu      sync.Mutex
}

// NewCSVStore opens the CSV file at path, creating it with a header row if
// it does not exist.
func NewCSVStore(path string) (*CSVStore, error) {
	if err := validateString(path, "path"); err != nil {
		return nil, err
	}

	s := &CSVStore{path: path}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.flush(nil); err != nil {
			return nil, err
		}
		slog.Info("created ledger file", "path", path)
		return s, nil
	}

	records, err := s.load()
	if err != nil {
		return nil, err
	}
	s.records = records

	slog.Debug("opened ledger file", "path", path, "records", len(records))
	return s, nil
}

// All returns a snapshot of every record in file order.
func (s *CSVStore) All(ctx context.Context) ([]model.ServiceRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.records), nil
}

// Append persists a new record at the end of the table.
func (s *CSVStore) Append(ctx context.Context, record *model.ServiceRecord) error {
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

// Update rewrites the fields of the record with the given ID in place.
func (s *CSVStore) Update(ctx context.Context, id string, fields service.Fields) error {
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
func (s *CSVStore) Remove(ctx context.Context, id string) error {
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

// FindByKey locates a record by its (brand, created_at) natural key, first
// match in file order. Returns nil when nothing matches.
func (s *CSVStore) FindByKey(ctx context.Context, brand string, createdAt time.Time) (*model.ServiceRecord, error) {
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
func (s *CSVStore) Count(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records), nil
}

// load reads every row from the CSV file, assigning surrogate IDs.
func (s *CSVStore) load() ([]model.ServiceRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", common.ErrStorageUnavailable, s.path, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var rows []csvRow
	if err := csvutil.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", common.ErrStorageUnavailable, s.path, err)
	}

	var records []model.ServiceRecord
	for _, row := range rows {
		if row.Brand == "" {
			continue
		}
		records = append(records, model.ServiceRecord{
			ID:          model.NewID(),
			Brand:       row.Brand,
			Price:       row.Price,
			Category:    row.Category,
			ServiceType: model.ParseServiceType(row.ServiceType),
			CreatedAt:   parseStoredDate(row.DateAdded),
		})
	}
	return records, nil
}

// flush rewrites the whole file from the given records. In-memory state is
// only advanced by the caller after a successful flush.
func (s *CSVStore) flush(records []model.ServiceRecord) error {
	rows := make([]csvRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, csvRow{
			Brand:       rec.Brand,
			Price:       rec.Price,
			Category:    rec.Category,
			ServiceType: rec.ServiceType.String(),
			DateAdded:   rec.DateAdded(),
		})
	}

	data, err := csvutil.Marshal(rows)
	if err != nil {
		return fmt.Errorf("%w: encode rows: %v", common.ErrStorageUnavailable, err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("%w: write %s: %v", common.ErrStorageUnavailable, s.path, err)
	}
	return nil
}

package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pavanTkumar/watch-price-app/internal/common"
	"github.com/pavanTkumar/watch-price-app/internal/model"
	"github.com/pavanTkumar/watch-price-app/internal/service"
)

func newTestWorkbook(t *testing.T, layout Layout) *WorkbookStore {
	t.Helper()
	store, err := NewWorkbookStore(filepath.Join(t.TempDir(), "ledger.xlsx"), layout)
	require.NoError(t, err)
	return store
}

func testRecord(brand, price string) *model.ServiceRecord {
	return &model.ServiceRecord{
		Brand:       brand,
		Price:       decimal.RequireFromString(price),
		Category:    "Category 1",
		ServiceType: model.ServiceFiveYearBattery,
		CreatedAt:   time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
	}
}

func TestWorkbookStore_CreatesFileWithHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.xlsx")
	_, err := NewWorkbookStore(path, LayoutExtended)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Services")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"Brand", "Price", "Category", "Service Type", "Date Added"}, rows[0])
}

func TestWorkbookStore_SimpleLayoutCreatesBandSheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.xlsx")
	_, err := NewWorkbookStore(path, LayoutSimple)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"Category 1", "Category 2", "Category 3", "Category 4", "Category 5"}, f.GetSheetList())

	rows, err := f.GetRows("Category 3")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"Brand", "Price", "Date Added"}, rows[0])
}

func TestWorkbookStore_AppendRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.xlsx")

	store, err := NewWorkbookStore(path, LayoutExtended)
	require.NoError(t, err)

	rec := testRecord("Seiko", "50.00")
	require.NoError(t, store.Append(ctx, rec))
	assert.NotEmpty(t, rec.ID)

	// Reopen from disk to prove the row survived the round trip.
	reopened, err := NewWorkbookStore(path, LayoutExtended)
	require.NoError(t, err)

	records, err := reopened.All(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, "Seiko", got.Brand)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("50.00")), "price %s", got.Price)
	assert.Equal(t, "Category 1", got.Category)
	assert.Equal(t, model.ServiceFiveYearBattery, got.ServiceType)
	assert.Equal(t, rec.CreatedAt, got.CreatedAt)
}

func TestWorkbookStore_AppendValidation(t *testing.T) {
	ctx := context.Background()
	store := newTestWorkbook(t, LayoutExtended)

	tests := []struct {
		record *model.ServiceRecord
		name   string
	}{
		{name: "nil record", record: nil},
		{name: "empty brand", record: testRecord("  ", "10.00")},
		{name: "zero price", record: testRecord("Casio", "0")},
		{name: "negative price", record: testRecord("Casio", "-5")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, store.Append(ctx, tt.record))
			count, err := store.Count(ctx)
			require.NoError(t, err)
			assert.Zero(t, count, "nothing may be written on a rejected append")
		})
	}
}

func TestWorkbookStore_UpdatePreservesCreatedAt(t *testing.T) {
	ctx := context.Background()
	store := newTestWorkbook(t, LayoutExtended)

	rec := testRecord("Seiko", "50.00")
	require.NoError(t, store.Append(ctx, rec))
	before := rec.CreatedAt

	err := store.Update(ctx, rec.ID, service.Fields{
		Brand:       "Seiko",
		Price:       decimal.RequireFromString("70.00"),
		Category:    "Category 2",
		ServiceType: model.ServiceFiveYearBattery,
	})
	require.NoError(t, err)

	records, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].Price.Equal(decimal.RequireFromString("70.00")))
	assert.Equal(t, before, records[0].CreatedAt, "created_at is immutable")
}

func TestWorkbookStore_UpdateNotFound(t *testing.T) {
	ctx := context.Background()
	store := newTestWorkbook(t, LayoutExtended)

	err := store.Update(ctx, "stale-id", service.Fields{Brand: "Seiko", Price: decimal.New(1, 0)})
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestWorkbookStore_Remove(t *testing.T) {
	ctx := context.Background()
	store := newTestWorkbook(t, LayoutExtended)

	first := testRecord("Seiko", "50.00")
	second := testRecord("Casio", "45.00")
	require.NoError(t, store.Append(ctx, first))
	require.NoError(t, store.Append(ctx, second))

	require.NoError(t, store.Remove(ctx, first.ID))

	records, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Casio", records[0].Brand, "the other record is untouched")
	assert.Equal(t, second.CreatedAt, records[0].CreatedAt)

	err = store.Remove(ctx, first.ID)
	assert.True(t, errors.Is(err, common.ErrNotFound), "second remove of the same id is NotFound")
}

func TestWorkbookStore_FailedWriteLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.xlsx")

	store, err := NewWorkbookStore(path, LayoutExtended)
	require.NoError(t, err)

	first := testRecord("Seiko", "50.00")
	require.NoError(t, store.Append(ctx, first))

	// Replace the ledger file with a directory so the next save fails.
	require.NoError(t, os.Remove(path))
	require.NoError(t, os.Mkdir(path, 0o700))

	err = store.Append(ctx, testRecord("Casio", "45.00"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrStorageUnavailable))

	err = store.Update(ctx, first.ID, service.Fields{
		Brand:       "Seiko",
		Price:       decimal.RequireFromString("70.00"),
		Category:    "Category 2",
		ServiceType: model.ServiceFiveYearBattery,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrStorageUnavailable))

	// Memory still matches the last successful write.
	records, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Seiko", records[0].Brand)
	assert.True(t, records[0].Price.Equal(decimal.RequireFromString("50.00")))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestWorkbookStore_FindByKey(t *testing.T) {
	ctx := context.Background()
	store := newTestWorkbook(t, LayoutExtended)

	rec := testRecord("Seiko", "50.00")
	require.NoError(t, store.Append(ctx, rec))

	// Brand matching is case-insensitive; timestamps compare at minute
	// precision.
	found, err := store.FindByKey(ctx, "  SEIKO ", rec.CreatedAt.Add(20*time.Second))
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, rec.ID, found.ID)

	missing, err := store.FindByKey(ctx, "Seiko", rec.CreatedAt.Add(time.Hour))
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestWorkbookStore_FindByKeyAfterSameSessionAppend(t *testing.T) {
	ctx := context.Background()
	store := newTestWorkbook(t, LayoutExtended)

	// A record created in a non-UTC zone must still be reachable through the
	// date string it displays, which carries no zone.
	rec := testRecord("Seiko", "50.00")
	rec.CreatedAt = time.Date(2024, 3, 1, 10, 30, 0, 0, time.FixedZone("UTC+5", 5*3600))
	require.NoError(t, store.Append(ctx, rec))

	key, err := time.Parse(model.DateLayout, rec.DateAdded())
	require.NoError(t, err)

	found, err := store.FindByKey(ctx, "Seiko", key)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, rec.ID, found.ID)
}

func TestWorkbookStore_FindByKeyFirstMatchWins(t *testing.T) {
	ctx := context.Background()
	store := newTestWorkbook(t, LayoutExtended)

	// Two records sharing brand and minute-precision timestamp, as corrupt
	// source data can produce.
	first := testRecord("Seiko", "50.00")
	second := testRecord("Seiko", "90.00")
	second.CreatedAt = first.CreatedAt
	require.NoError(t, store.Append(ctx, first))
	require.NoError(t, store.Append(ctx, second))

	found, err := store.FindByKey(ctx, "Seiko", first.CreatedAt)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, first.ID, found.ID)
}

func TestWorkbookStore_SimpleLayoutRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.xlsx")

	store, err := NewWorkbookStore(path, LayoutSimple)
	require.NoError(t, err)

	rec := &model.ServiceRecord{
		Brand:     "Casio",
		Price:     decimal.RequireFromString("45.00"),
		Category:  "Category 5",
		CreatedAt: time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
	}
	require.NoError(t, store.Append(ctx, rec))

	reopened, err := NewWorkbookStore(path, LayoutSimple)
	require.NoError(t, err)

	records, err := reopened.All(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Casio", records[0].Brand)
	assert.Equal(t, "Category 5", records[0].Category, "category comes from the sheet the row lives in")
	assert.True(t, records[0].Price.Equal(rec.Price))
}

func TestWorkbookStore_MalformedCellsYieldZeroValues(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Services"))
	header := []any{"Brand", "Price", "Category", "Service Type", "Date Added"}
	require.NoError(t, f.SetSheetRow("Services", "A1", &header))
	row := []any{"Seiko", "not a price", "Category 1", "5 Year Battery", "yesterday"}
	require.NoError(t, f.SetSheetRow("Services", "A2", &row))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	store, err := NewWorkbookStore(path, LayoutExtended)
	require.NoError(t, err)

	records, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Seiko", records[0].Brand)
	assert.True(t, records[0].Price.IsZero(), "unparseable price reads as zero")
	assert.True(t, records[0].CreatedAt.IsZero(), "unparseable date reads as zero time")
}

func TestOpen_DispatchesByExtension(t *testing.T) {
	dir := t.TempDir()

	wb, err := Open(filepath.Join(dir, "ledger.xlsx"), LayoutExtended)
	require.NoError(t, err)
	assert.IsType(t, &WorkbookStore{}, wb)

	csvStore, err := Open(filepath.Join(dir, "ledger.csv"), LayoutExtended)
	require.NoError(t, err)
	assert.IsType(t, &CSVStore{}, csvStore)

	_, err = Open(filepath.Join(dir, "other.csv"), LayoutSimple)
	assert.True(t, errors.Is(err, ErrInvalidLayout), "csv cannot hold one table per category")
}

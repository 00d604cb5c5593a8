// Package engine implements the reconciliation controller that keeps the
// on-screen view, form input and the backing file consistent.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pavanTkumar/watch-price-app/internal/category"
	"github.com/pavanTkumar/watch-price-app/internal/common"
	"github.com/pavanTkumar/watch-price-app/internal/model"
	"github.com/pavanTkumar/watch-price-app/internal/service"
)

// Variant selects the categorization policy.
type Variant int

const (
	// VariantSimple derives the category from the price bands and tracks no
	// service types.
	VariantSimple Variant = iota
	// VariantExtended lets the user pick a category from the
	// service-type-scoped label set.
	VariantExtended
)

// Request carries the user-entered form fields for an add or update.
// Category and ServiceType are ignored by the simple variant. Confirm is
// the caller's answer to an earlier duplicate warning.
type Request struct {
	Brand       string
	Price       string
	Category    string
	ServiceType string
	Confirm     bool
}

// Result is what an operation hands back for the presentation layer to
// render. When NeedsConfirmation is set nothing was persisted; the caller
// should re-issue the request with Confirm once the user agrees.
type Result struct {
	Record            *model.ServiceRecord
	Message           string
	Records           []model.ServiceRecord
	NeedsConfirmation bool
}

// Reconciler orchestrates add, update and remove requests against the
// record store. It owns the canonical record state and the current
// selection; presentation layers render only the snapshots it returns.
type Reconciler struct {
	store      service.Store
	categories *category.Registry
	selected   string
	variant    Variant
}

// New creates a reconciler over the given store. The category registry is
// seeded from the records already on file so session labels survive a
// restart.
func New(ctx context.Context, store service.Store, variant Variant) (*Reconciler, error) {
	records, err := store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}

	registry := category.NewRegistry()
	if variant == VariantExtended {
		registry.MergeRecords(records)
	}

	return &Reconciler{
		store:      store,
		categories: registry,
		variant:    variant,
	}, nil
}

// Categories exposes the category registry read-only to presentation
// layers.
func (r *Reconciler) Categories() *category.Registry {
	return r.categories
}

// Variant reports the active categorization policy.
func (r *Reconciler) Variant() Variant {
	return r.variant
}

// Records returns the current record set for rendering.
func (r *Reconciler) Records(ctx context.Context) ([]model.ServiceRecord, error) {
	return r.store.All(ctx)
}

// Select marks the record with the given ID as the target of the next
// update or remove.
func (r *Reconciler) Select(ctx context.Context, id string) error {
	records, err := r.store.All(ctx)
	if err != nil {
		return err
	}
	for i := range records {
		if records[i].ID == id {
			r.selected = id
			return nil
		}
	}
	return fmt.Errorf("select record %s: %w", id, common.ErrNotFound)
}

// SelectByKey resolves a (brand, created_at) natural key to a selection.
// On corrupt data with key collisions the first row in file order wins.
func (r *Reconciler) SelectByKey(ctx context.Context, brand string, createdAt time.Time) error {
	rec, err := r.store.FindByKey(ctx, brand, createdAt)
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("select %s @ %s: %w", brand, createdAt.Format(model.DateLayout), common.ErrNotFound)
	}
	r.selected = rec.ID
	return nil
}

// Selected returns the currently selected record, or nil.
func (r *Reconciler) Selected(ctx context.Context) (*model.ServiceRecord, error) {
	if r.selected == "" {
		return nil, nil
	}
	records, err := r.store.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == r.selected {
			rec := records[i]
			return &rec, nil
		}
	}
	return nil, nil
}

// ClearSelection drops the current selection.
func (r *Reconciler) ClearSelection() {
	r.selected = ""
}

// Add validates a new record, checks for duplicates and appends it to the
// store.
func (r *Reconciler) Add(ctx context.Context, req Request) (*Result, error) {
	fields, err := r.validate(req)
	if err != nil {
		return nil, err
	}

	records, err := r.store.All(ctx)
	if err != nil {
		return nil, err
	}

	if dup := findDuplicate(records, fields.Brand, fields.ServiceType, ""); dup != nil && !req.Confirm {
		return duplicateResult(dup), nil
	}

	rec := &model.ServiceRecord{
		Brand:       fields.Brand,
		Price:       fields.Price,
		Category:    fields.Category,
		ServiceType: fields.ServiceType,
		CreatedAt:   time.Now(),
	}
	if err := r.store.Append(ctx, rec); err != nil {
		return nil, err
	}
	if r.variant == VariantExtended {
		r.categories.Add(rec.ServiceType, rec.Category)
	}

	slog.Info("record added", "brand", rec.Brand, "category", rec.Category)
	return r.result(ctx, rec, fmt.Sprintf("Added %s to %s", rec.Brand, rec.Category))
}

// Update applies the request to the currently selected record. The stored
// creation timestamp is carried over unchanged, and the selection is
// cleared on success because the row backing it has been rewritten.
func (r *Reconciler) Update(ctx context.Context, req Request) (*Result, error) {
	selected, err := r.Selected(ctx)
	if err != nil {
		return nil, err
	}
	if selected == nil {
		return nil, common.ErrNoSelection
	}

	fields, err := r.validate(req)
	if err != nil {
		return nil, err
	}

	// The duplicate scan only re-runs when the identity fields changed;
	// editing the price of an existing duplicate must not re-warn.
	if !selected.SameBrand(fields.Brand) || selected.ServiceType != fields.ServiceType {
		records, err := r.store.All(ctx)
		if err != nil {
			return nil, err
		}
		if dup := findDuplicate(records, fields.Brand, fields.ServiceType, selected.ID); dup != nil && !req.Confirm {
			return duplicateResult(dup), nil
		}
	}

	if err := r.store.Update(ctx, selected.ID, fields); err != nil {
		return nil, err
	}
	if r.variant == VariantExtended {
		r.categories.Add(fields.ServiceType, fields.Category)
	}

	updated := *selected
	applyUpdate(&updated, fields)
	r.ClearSelection()

	slog.Info("record updated", "brand", updated.Brand)
	return r.result(ctx, &updated, fmt.Sprintf("Updated %s", updated.Brand))
}

// Remove deletes the currently selected record after explicit confirmation
// and clears the selection.
func (r *Reconciler) Remove(ctx context.Context, confirmed bool) (*Result, error) {
	selected, err := r.Selected(ctx)
	if err != nil {
		return nil, err
	}
	if selected == nil {
		return nil, common.ErrNoSelection
	}

	if !confirmed {
		return &Result{
			Record:            selected,
			NeedsConfirmation: true,
			Message:           fmt.Sprintf("Delete %s (%s)?", selected.Brand, selected.DateAdded()),
		}, nil
	}

	if err := r.store.Remove(ctx, selected.ID); err != nil {
		return nil, err
	}
	r.ClearSelection()

	slog.Info("record removed", "brand", selected.Brand)
	return r.result(ctx, nil, fmt.Sprintf("Removed %s", selected.Brand))
}

// validate turns raw form input into typed fields, enforcing the record
// invariants. Nothing is persisted when it fails.
func (r *Reconciler) validate(req Request) (service.Fields, error) {
	var fields service.Fields

	brand := strings.TrimSpace(req.Brand)
	if brand == "" {
		return fields, common.NewValidationError("brand", "cannot be empty")
	}

	priceText := strings.TrimSpace(req.Price)
	if priceText == "" {
		return fields, common.NewValidationError("price", "cannot be empty")
	}
	price, err := decimal.NewFromString(priceText)
	if err != nil {
		return fields, common.NewValidationError("price", fmt.Sprintf("%q is not a number", priceText))
	}
	if !price.IsPositive() {
		return fields, common.NewValidationError("price", "must be greater than 0")
	}

	fields.Brand = brand
	fields.Price = price

	if r.variant == VariantSimple {
		fields.Category = category.LabelForPrice(price)
		fields.ServiceType = model.ServiceTypeNone
		return fields, nil
	}

	serviceType := model.ParseServiceType(req.ServiceType)
	if serviceType == model.ServiceTypeNone {
		return fields, common.NewValidationError("service type", "must be chosen")
	}

	cat := strings.TrimSpace(req.Category)
	if cat == "" {
		return fields, common.NewValidationError("category", "must be chosen")
	}

	fields.Category = cat
	fields.ServiceType = serviceType
	return fields, nil
}

// result builds a success result with a fresh snapshot for rendering.
func (r *Reconciler) result(ctx context.Context, rec *model.ServiceRecord, message string) (*Result, error) {
	records, err := r.store.All(ctx)
	if err != nil {
		return nil, err
	}
	return &Result{Record: rec, Records: records, Message: message}, nil
}

func duplicateResult(dup *model.ServiceRecord) *Result {
	msg := fmt.Sprintf("%s already has a %s entry from %s. Proceed anyway?",
		dup.Brand, dup.ServiceType, dup.DateAdded())
	if dup.ServiceType == model.ServiceTypeNone {
		msg = fmt.Sprintf("%s already has an entry from %s. Proceed anyway?", dup.Brand, dup.DateAdded())
	}
	return &Result{Record: dup, NeedsConfirmation: true, Message: msg}
}

func applyUpdate(rec *model.ServiceRecord, fields service.Fields) {
	rec.Brand = fields.Brand
	rec.Price = fields.Price
	rec.Category = fields.Category
	rec.ServiceType = fields.ServiceType
}

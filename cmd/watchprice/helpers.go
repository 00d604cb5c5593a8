package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/pavanTkumar/watch-price-app/internal/common"
	"github.com/pavanTkumar/watch-price-app/internal/config"
	"github.com/pavanTkumar/watch-price-app/internal/engine"
	"github.com/pavanTkumar/watch-price-app/internal/model"
	"github.com/pavanTkumar/watch-price-app/internal/storage"
)

// ledgerVariant resolves the configured categorization variant.
func ledgerVariant() (engine.Variant, error) {
	switch v := viper.GetString("ledger.variant"); v {
	case "simple":
		return engine.VariantSimple, nil
	case "extended", "":
		return engine.VariantExtended, nil
	default:
		return 0, fmt.Errorf("%w: variant %q (want simple or extended)", common.ErrInvalidConfig, v)
	}
}

// openReconciler opens the configured ledger file and builds the
// reconciliation engine over it.
func openReconciler(ctx context.Context) (*engine.Reconciler, error) {
	variant, err := ledgerVariant()
	if err != nil {
		return nil, err
	}

	path := viper.GetString("ledger.file")
	if path == "" {
		path = config.DefaultLedgerPath()
	}
	path = config.ExpandPath(path)

	layout := storage.LayoutExtended
	if variant == engine.VariantSimple {
		layout = storage.LayoutSimple
	}

	store, err := storage.Open(path, layout)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger %s: %w", path, err)
	}

	return engine.New(ctx, store, variant)
}

// parseRecordDate parses the date argument used to identify a record on the
// command line.
func parseRecordDate(s string) (time.Time, error) {
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want %s)", s, model.DateLayout)
	}
	return t, nil
}

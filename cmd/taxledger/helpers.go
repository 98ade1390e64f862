package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/marchwood/taxledger/internal/confidence"
	"github.com/marchwood/taxledger/internal/engine"
	"github.com/marchwood/taxledger/internal/model"
	"github.com/marchwood/taxledger/internal/service"
	"github.com/marchwood/taxledger/internal/storage"
)

// openStorage opens (and migrates) the ledger database.
func openStorage() (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".config", "taxledger", "taxledger.db")
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return store, nil
}

// engineOptions reads the tunable thresholds from configuration. Zero values
// fall back to the engine defaults.
func engineOptions() engine.Options {
	return engine.Options{
		MatchThreshold:  viper.GetInt("categorize.match_threshold"),
		ReviewThreshold: viper.GetInt("categorize.review_threshold"),
		HighConfidence:  viper.GetInt("categorize.high_confidence"),
	}
}

// buildEngine snapshots the reference data and historical activity, then
// constructs a categorization engine over those snapshots. The snapshots are
// taken up front so a rule edit mid-batch can never be observed.
func buildEngine(ctx context.Context, store service.Storage) (*engine.Engine, error) {
	merchants, err := store.GetAllMerchants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load merchants: %w", err)
	}
	if merchants == nil {
		merchants = []model.MerchantRecord{}
	}

	ruleSet, err := store.GetAllRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}
	if ruleSet == nil {
		ruleSet = []model.CategorizationRule{}
	}

	existing, err := store.GetAllTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction history: %w", err)
	}
	history := confidence.BuildHistory(existing)

	return engine.New(merchants, ruleSet, history, engineOptions())
}

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/marchwood/taxledger/internal/cli"
	"github.com/marchwood/taxledger/internal/engine"
	"github.com/marchwood/taxledger/internal/model"
)

func categorizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categorize",
		Short: "Re-run categorization over stored transactions",
		Long: `Re-run the categorization engine over the ledger, for example after
editing rules or adding a custom merchant.

Transactions you have confirmed during review keep their categorization and
are never touched.`,
		RunE: runCategorize,
	}

	cmd.Flags().Bool("review-only", false, "Only recategorize transactions flagged for review")

	_ = viper.BindPFlag("categorize.review_only", cmd.Flags().Lookup("review-only"))

	return cmd
}

func runCategorize(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	var transactions []model.Transaction
	if viper.GetBool("categorize.review_only") {
		transactions, err = store.GetTransactionsForReview(ctx)
	} else {
		transactions, err = store.GetAllTransactions(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}

	if len(transactions) == 0 {
		slog.Info(cli.FormatWarning("No transactions to categorize"))
		return nil
	}

	eng, err := buildEngine(ctx, store)
	if err != nil {
		return err
	}

	results, err := eng.CategorizeBatch(ctx, transactions)
	if err != nil {
		return fmt.Errorf("categorization aborted: %w", err)
	}

	bar := cli.NewProgressBar(os.Stderr, len(transactions), "Updating ledger...")
	updated := 0
	for i := range transactions {
		_ = bar.Add(1)
		if transactions[i].UserConfirmed {
			continue
		}
		engine.Apply(&transactions[i], results[i])
		if err := store.UpdateCategorization(ctx, &transactions[i]); err != nil {
			return err
		}
		updated++
	}

	slog.Info(cli.FormatSuccess(fmt.Sprintf("Recategorized %d transactions", updated)))

	return nil
}

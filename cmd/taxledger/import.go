package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/marchwood/taxledger/internal/cli"
	"github.com/marchwood/taxledger/internal/common"
	"github.com/marchwood/taxledger/internal/engine"
	"github.com/marchwood/taxledger/internal/importer"
	"github.com/marchwood/taxledger/internal/model"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <statement.csv>",
		Short: "Import and categorize a bank statement CSV",
		Long: `Import transactions from a bank statement CSV export.

Each new transaction is categorized automatically: user rules are checked
first, then the known merchant table, and a confidence score decides whether
the result needs manual review. Re-importing the same statement is safe;
duplicate rows are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().Bool("dry-run", false, "Parse and categorize without saving")

	_ = viper.BindPFlag("import.dry_run", cmd.Flags().Lookup("dry-run"))

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open statement: %w", err)
	}
	defer func() { _ = file.Close() }()

	transactions, err := importer.ParseStatement(file)
	if err != nil {
		return common.NewUserError(fmt.Sprintf("Could not read %s as a bank statement", args[0]), err)
	}

	slog.Info("Parsed statement", "file", args[0], "transactions", len(transactions))

	store, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	// Skip rows already in the ledger before categorizing, so history
	// snapshots reflect only genuinely prior activity.
	fresh := make([]model.Transaction, 0, len(transactions))
	for i := range transactions {
		exists, err := store.TransactionExists(ctx, transactions[i].Hash)
		if err != nil {
			return err
		}
		if !exists {
			fresh = append(fresh, transactions[i])
		}
	}

	if len(fresh) == 0 {
		slog.Info(cli.FormatWarning("Nothing to import; all rows already in the ledger"))
		return nil
	}

	eng, err := buildEngine(ctx, store)
	if err != nil {
		return err
	}

	bar := cli.NewProgressBar(os.Stderr, len(fresh), "Categorizing transactions...")
	reviewCount := 0
	for i := range fresh {
		result := eng.Categorize(fresh[i])
		engine.Apply(&fresh[i], result)
		if result.RequiresReview {
			reviewCount++
		}
		if result.MatchedMerchant != "" {
			// Advisory only; a failure here never blocks the import.
			if err := store.IncrementMerchantUseCount(ctx, result.MatchedMerchant); err != nil {
				slog.Debug("Failed to increment merchant use count",
					"merchant", result.MatchedMerchant, "error", err)
			}
		}
		_ = bar.Add(1)
	}

	if viper.GetBool("import.dry_run") {
		slog.Info(cli.FormatWarning("Dry run mode - not saving to database"))
		displayImportSummary(fresh, reviewCount)
		return nil
	}

	if err := store.SaveTransactions(ctx, fresh); err != nil {
		return fmt.Errorf("failed to save transactions: %w", err)
	}

	slog.Info(cli.FormatSuccess("Import complete"))
	displayImportSummary(fresh, reviewCount)

	return nil
}

func displayImportSummary(transactions []model.Transaction, reviewCount int) {
	byType := make(map[model.TransactionType]int)
	for i := range transactions {
		byType[transactions[i].GuessedType]++
	}

	content := fmt.Sprintf("Imported:      %d\n", len(transactions))
	content += fmt.Sprintf("Income:        %d\n", byType[model.TypeIncome])
	content += fmt.Sprintf("Expense:       %d\n", byType[model.TypeExpense])
	content += fmt.Sprintf("Ignored:       %d\n", byType[model.TypeIgnore])
	content += fmt.Sprintf("Unclassified:  %d\n", byType[model.TypeUnclassified])
	content += fmt.Sprintf("Need review:   %d", reviewCount)

	fmt.Fprintln(os.Stdout, cli.RenderBox("Import Summary", content))
}

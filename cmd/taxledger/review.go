package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marchwood/taxledger/internal/cli"
	"github.com/marchwood/taxledger/internal/model"
)

func reviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review transactions the engine was not confident about",
		Long: `List transactions flagged for manual review, with the confidence score
broken down by component so you can see why the engine hesitated.

Confirm a transaction with "review confirm" once you are happy with its
categorization; confirmed transactions are never recategorized.`,
		RunE: runReview,
	}

	cmd.AddCommand(reviewConfirmCmd())

	return cmd
}

func runReview(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	transactions, err := store.GetTransactionsForReview(ctx)
	if err != nil {
		return err
	}

	if len(transactions) == 0 {
		slog.Info(cli.FormatSuccess("Nothing to review"))
		return nil
	}

	eng, err := buildEngine(ctx, store)
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, cli.FormatTitle(fmt.Sprintf("%d transactions need review", len(transactions))))

	// The score breakdown is not persisted, so re-run the evaluation for
	// each flagged transaction to explain it.
	for i := range transactions {
		result := eng.Categorize(transactions[i])
		fmt.Fprintln(os.Stdout, renderReviewEntry(&transactions[i], result))
	}

	return nil
}

func renderReviewEntry(txn *model.Transaction, result model.Categorization) string {
	var b strings.Builder

	sign := "-"
	if txn.Direction == model.DirectionIn {
		sign = "+"
	}

	fmt.Fprintf(&b, "Date:        %s\n", txn.Date)
	fmt.Fprintf(&b, "Description: %s\n", txn.Description)
	fmt.Fprintf(&b, "Amount:      %s£%s\n", sign, txn.Amount.StringFixed(2))
	fmt.Fprintf(&b, "Guess:       %s / %s\n", displayType(txn.GuessedType), displayCategory(txn.GuessedCategory))
	fmt.Fprintf(&b, "Confidence:  %s\n", cli.ConfidenceBadge(txn.ConfidenceScore))
	if txn.PatternType != model.PatternNone {
		fmt.Fprintf(&b, "Pattern:     %s\n", txn.PatternType.Description())
	}
	fmt.Fprintf(&b, "Why:         %s", result.Explanation)

	return cli.RenderBox(cli.ReviewStyle.Render(cli.ReviewIcon+" "+txn.ID), b.String())
}

func displayType(t model.TransactionType) string {
	if t == model.TypeUnclassified {
		return "unclassified"
	}
	return strings.ToLower(string(t))
}

func displayCategory(category string) string {
	if category == "" {
		return "(none)"
	}
	return category
}

func reviewConfirmCmd() *cobra.Command {
	var (
		txnType  string
		category string
		personal bool
	)

	cmd := &cobra.Command{
		Use:   "confirm <transaction-id>",
		Short: "Confirm a flagged transaction's categorization",
		Long: `Confirm a flagged transaction, optionally correcting its type and
category first. Confirmed transactions keep their categorization across
future recategorization runs.`,
		Example: `  taxledger review confirm 7d4c2a1e-...
  taxledger review confirm 7d4c2a1e-... --type expense --category "Office costs"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := openStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			pending, err := store.GetTransactionsForReview(ctx)
			if err != nil {
				return err
			}

			var txn *model.Transaction
			for i := range pending {
				if pending[i].ID == args[0] {
					txn = &pending[i]
					break
				}
			}
			if txn == nil {
				return fmt.Errorf("no transaction %s awaiting review", args[0])
			}

			if txnType != "" {
				switch strings.ToLower(txnType) {
				case "income":
					txn.GuessedType = model.TypeIncome
				case "expense":
					txn.GuessedType = model.TypeExpense
				case "ignore":
					txn.GuessedType = model.TypeIgnore
				default:
					return fmt.Errorf("invalid type %q (income, expense, ignore)", txnType)
				}
			}
			if category != "" {
				txn.GuessedCategory = category
			}
			if cmd.Flags().Changed("personal") {
				txn.IsPersonal = personal
			}

			txn.UserConfirmed = true
			txn.RequiresReview = false

			if err := store.UpdateCategorization(ctx, txn); err != nil {
				return err
			}

			slog.Info(cli.FormatSuccess(fmt.Sprintf("Confirmed transaction %s", txn.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&txnType, "type", "", "Correct the type: income, expense or ignore")
	cmd.Flags().StringVar(&category, "category", "", "Correct the category")
	cmd.Flags().BoolVar(&personal, "personal", false, "Mark as personal rather than business")

	return cmd
}

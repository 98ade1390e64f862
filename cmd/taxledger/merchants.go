package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/marchwood/taxledger/internal/cli"
	"github.com/marchwood/taxledger/internal/model"
	"github.com/marchwood/taxledger/internal/normalize"
)

func merchantsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merchants",
		Short: "Manage the known merchant table",
	}

	cmd.AddCommand(merchantsListCmd())
	cmd.AddCommand(merchantsAddCmd())

	return cmd
}

func merchantsListCmd() *cobra.Command {
	var customOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List known merchants",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			merchants, err := store.GetAllMerchants(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "MERCHANT\tCATEGORY\tTYPE\tBOOST\tUSED\tCUSTOM")
			for i := range merchants {
				m := &merchants[i]
				if customOnly && !m.IsCustom {
					continue
				}
				custom := ""
				if m.IsCustom {
					custom = cli.SuccessIcon
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
					m.CanonicalName, m.DefaultCategory, m.DefaultType,
					m.ConfidenceBoost, m.UseCount, custom)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&customOnly, "custom", false, "Only show user-added merchants")

	return cmd
}

func merchantsAddCmd() *cobra.Command {
	var (
		name     string
		category string
		txnType  string
		aliases  []string
		boost    int
		industry string
		business bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a custom merchant",
		Long: `Add a custom merchant to the lookup table. The name is normalized the
same way statement descriptions are, so future imports match it.`,
		Example: `  taxledger merchants add --name "VILLAGE PLUMBING" --category "Trade income" --type income --business
  taxledger merchants add --name "ACME HOSTING" --category "Office costs" --aliases "ACMEHOST,ACME.IO" --boost 20`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			record := &model.MerchantRecord{
				CanonicalName:       normalize.Description(name),
				DefaultCategory:     category,
				ConfidenceBoost:     boost,
				Industry:            industry,
				IsPersonalByDefault: !business,
				IsCustom:            true,
			}

			for _, alias := range aliases {
				if trimmed := strings.TrimSpace(alias); trimmed != "" {
					record.Aliases = append(record.Aliases, trimmed)
				}
			}

			switch strings.ToLower(txnType) {
			case "income":
				record.DefaultType = model.TypeIncome
			case "expense":
				record.DefaultType = model.TypeExpense
			default:
				return fmt.Errorf("invalid type %q (income, expense)", txnType)
			}

			store, err := openStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.SaveMerchant(cmd.Context(), record); err != nil {
				return err
			}

			slog.Info(cli.FormatSuccess(fmt.Sprintf("Added merchant %s", record.CanonicalName)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Merchant name")
	cmd.Flags().StringVar(&category, "category", "", "Default category")
	cmd.Flags().StringVar(&txnType, "type", "expense", "Default type: income or expense")
	cmd.Flags().StringSliceVar(&aliases, "aliases", nil, "Alternate names (comma-separated)")
	cmd.Flags().IntVar(&boost, "boost", 15, "Confidence boost 0-30")
	cmd.Flags().StringVar(&industry, "industry", "", "Industry tag")
	cmd.Flags().BoolVar(&business, "business", false, "Default to business rather than personal")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

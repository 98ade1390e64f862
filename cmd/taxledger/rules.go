package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/marchwood/taxledger/internal/cli"
	"github.com/marchwood/taxledger/internal/model"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage categorization rules",
		Long: `Manage the ordered rule list the engine evaluates before merchant
matching. Rules match the raw statement description; lower priority values
are evaluated first.`,
	}

	cmd.AddCommand(rulesListCmd())
	cmd.AddCommand(rulesAddCmd())
	cmd.AddCommand(rulesDeleteCmd())
	cmd.AddCommand(rulesToggleCmd("enable", true))
	cmd.AddCommand(rulesToggleCmd("disable", false))

	return cmd
}

func rulesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all rules in evaluation order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			ruleSet, err := store.GetAllRules(cmd.Context())
			if err != nil {
				return err
			}

			if len(ruleSet) == 0 {
				slog.Info(cli.FormatWarning("No rules defined"))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPRIORITY\tMODE\tPATTERN\tMAPS TO\tCATEGORY\tACTIVE")
			for i := range ruleSet {
				r := &ruleSet[i]
				active := cli.SuccessIcon
				if !r.Active {
					active = cli.ErrorIcon
				}
				fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\t%s\t%s\n",
					r.ID, r.Priority, r.MatchMode, r.Pattern, r.MapsTo, r.Category(), active)
			}
			return w.Flush()
		},
	}
}

func rulesAddCmd() *cobra.Command {
	var (
		mode     string
		pattern  string
		mapsTo   string
		category string
		priority int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a categorization rule",
		Example: `  taxledger rules add --pattern "CLIENT" --maps-to income --category "Self-employment"
  taxledger rules add --mode regex --pattern "^AMZN" --maps-to expense --category "Office costs" --priority 5
  taxledger rules add --pattern "TFR TO SAVINGS" --maps-to ignore`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rule := &model.CategorizationRule{
				Pattern:  pattern,
				Priority: priority,
				Active:   true,
			}

			switch strings.ToLower(mode) {
			case "contains":
				rule.MatchMode = model.MatchContains
			case "equals":
				rule.MatchMode = model.MatchEquals
			case "regex":
				rule.MatchMode = model.MatchRegex
			default:
				return fmt.Errorf("invalid match mode %q (contains, equals, regex)", mode)
			}

			switch strings.ToLower(mapsTo) {
			case "income":
				rule.MapsTo = model.MapsToIncome
				rule.IncomeType = category
			case "expense":
				rule.MapsTo = model.MapsToExpense
				rule.ExpenseCategory = category
			case "ignore":
				rule.MapsTo = model.MapsToIgnore
			default:
				return fmt.Errorf("invalid mapping %q (income, expense, ignore)", mapsTo)
			}

			store, err := openStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.CreateRule(cmd.Context(), rule); err != nil {
				return err
			}

			slog.Info(cli.FormatSuccess(fmt.Sprintf("Created rule %d", rule.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "contains", "Match mode: contains, equals or regex")
	cmd.Flags().StringVar(&pattern, "pattern", "", "Pattern to match against the description")
	cmd.Flags().StringVar(&mapsTo, "maps-to", "", "Mapping: income, expense or ignore")
	cmd.Flags().StringVar(&category, "category", "", "Income type or expense category")
	cmd.Flags().IntVar(&priority, "priority", 100, "Evaluation priority (lower evaluates first)")
	_ = cmd.MarkFlagRequired("pattern")
	_ = cmd.MarkFlagRequired("maps-to")

	return cmd
}

func rulesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid rule ID %q", args[0])
			}

			store, err := openStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteRule(cmd.Context(), id); err != nil {
				return err
			}

			slog.Info(cli.FormatSuccess(fmt.Sprintf("Deleted rule %d", id)))
			return nil
		},
	}
}

func rulesToggleCmd(verb string, active bool) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <id>",
		Short: strings.ToUpper(verb[:1]) + verb[1:] + " a rule without deleting it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid rule ID %q", args[0])
			}

			store, err := openStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.SetRuleActive(cmd.Context(), id, active); err != nil {
				return err
			}

			slog.Info(cli.FormatSuccess(fmt.Sprintf("Rule %d %sd", id, verb)))
			return nil
		},
	}
}

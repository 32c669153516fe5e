package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/export"
	"github.com/mmynk/tripsplit/internal/money"
)

func newStatsCmd(opts *options) *cobra.Command {
	var csvPath string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show what each participant paid, spent and is owed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ledger, stats, err := opts.load()
			if err != nil {
				return err
			}
			currency := ledger.Trip.BaseCurrency

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(tw, "PARTICIPANT\tPAID\tSPENT\tBALANCE\t")
			for _, l := range stats {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", l.Name,
					money.Format(l.PaidTotal, currency),
					money.Format(l.SpentTotal, currency),
					money.Format(l.Balance, currency))
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if csvPath != "" {
				return writeCSV(csvPath, func(w io.Writer) error {
					return export.WriteStats(w, stats, currency)
				})
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&csvPath, "csv", "", "also write the table to this CSV file")
	return cmd
}

func newSettleCmd(opts *options) *cobra.Command {
	var csvPath string
	cmd := &cobra.Command{
		Use:   "settle",
		Short: "Suggest the payments that settle all balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ledger, stats, err := opts.load()
			if err != nil {
				return err
			}
			currency := ledger.Trip.BaseCurrency
			settlements := calculator.ComputeSettlements(stats)
			slog.Info("Settlements computed", "count", len(settlements))

			out := cmd.OutOrStdout()
			if len(settlements) == 0 {
				fmt.Fprintln(out, "Everyone is settled up.")
			}
			for _, s := range settlements {
				fmt.Fprintf(out, "%s pays %s %s\n", s.FromName, s.ToName, money.Format(s.Amount, currency))
			}

			if csvPath != "" {
				return writeCSV(csvPath, func(w io.Writer) error {
					return export.WriteSettlements(w, settlements, currency)
				})
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&csvPath, "csv", "", "also write the settlements to this CSV file")
	return cmd
}

func newSummaryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show total spending, budget progress and categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ledger, stats, err := opts.load()
			if err != nil {
				return err
			}
			currency := ledger.Trip.BaseCurrency
			summary := calculator.Summarize(ledger.Trip, stats, ledger.Receipts)

			out := cmd.OutOrStdout()
			title := ledger.Trip.Name
			if title == "" {
				title = "Trip"
			}
			fmt.Fprintf(out, "%s: %s spent\n", title, money.Format(summary.TotalSpent, currency))
			if summary.Budget != nil {
				fmt.Fprintf(out, "Budget: %s (%.0f%% used)\n", money.Format(*summary.Budget, currency), summary.Progress*100)
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "CATEGORY\tAMOUNT")
			for _, c := range summary.Categories {
				fmt.Fprintf(tw, "%s\t%s\n", c.Category, money.Format(c.Amount, currency))
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			for _, b := range summary.BudgetStatus {
				if b.Over {
					fmt.Fprintf(out, "%s is over budget by %s\n", b.Name, money.Format(-*b.Remaining, currency))
				}
			}
			return nil
		},
	}
}

func writeCSV(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}

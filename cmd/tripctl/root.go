package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/tripfile"
	"github.com/mmynk/tripsplit/pkg/logging"
)

// options are the flags shared by every command.
type options struct {
	file     string
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "tripctl",
		Short: "Balances and settlements for shared trip expenses",
		Long: `tripctl reads a trip file (participants and itemized receipts) and reports
what everyone paid, what they consumed, and who should pay whom to settle up.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			slog.SetDefault(logging.New(cmd.ErrOrStderr(), opts.logLevel, logging.Text))
		},
	}
	cmd.PersistentFlags().StringVarP(&opts.file, "file", "f", "trip.yaml", "trip file to read")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	cmd.AddCommand(
		newStatsCmd(opts),
		newSettleCmd(opts),
		newSummaryCmd(opts),
	)
	return cmd
}

// load reads the trip file and computes participant stats.
func (o *options) load() (*tripfile.Ledger, []models.ParticipantStats, error) {
	ledger, err := tripfile.Load(o.file)
	if err != nil {
		return nil, nil, err
	}
	slog.Debug("Trip file loaded", "file", o.file,
		"participants", len(ledger.Participants), "receipts", len(ledger.Receipts))

	if len(ledger.Participants) == 0 {
		return nil, nil, fmt.Errorf("%s: trip has no participants", o.file)
	}
	return ledger, calculator.ComputeStats(ledger.Participants, ledger.Receipts), nil
}

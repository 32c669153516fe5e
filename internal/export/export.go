// Package export writes balances and settlements as CSV.
package export

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/money"
)

// SettlementRow is one CSV line of a settlement plan.
type SettlementRow struct {
	From     string `csv:"from"`
	To       string `csv:"to"`
	Amount   string `csv:"amount"`
	Currency string `csv:"currency"`
}

// StatsRow is one CSV line of participant balances.
type StatsRow struct {
	Participant string `csv:"participant"`
	Paid        string `csv:"paid"`
	Spent       string `csv:"spent"`
	Balance     string `csv:"balance"`
	Currency    string `csv:"currency"`
}

// WriteSettlements writes settlements with a header row.
func WriteSettlements(w io.Writer, settlements []models.Settlement, currency string) error {
	rows := make([]*SettlementRow, len(settlements))
	for i, s := range settlements {
		rows[i] = &SettlementRow{
			From:     s.FromName,
			To:       s.ToName,
			Amount:   fixed(s.Amount),
			Currency: currency,
		}
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("write settlements csv: %w", err)
	}
	return nil
}

// WriteStats writes per-participant totals with a header row.
func WriteStats(w io.Writer, stats []models.ParticipantStats, currency string) error {
	rows := make([]*StatsRow, len(stats))
	for i, s := range stats {
		rows[i] = &StatsRow{
			Participant: s.Name,
			Paid:        fixed(s.PaidTotal),
			Spent:       fixed(s.SpentTotal),
			Balance:     fixed(s.Balance),
			Currency:    currency,
		}
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("write stats csv: %w", err)
	}
	return nil
}

// fixed renders an amount with exactly two decimals, e.g. "16.70".
func fixed(amount float64) string {
	return decimal.NewFromFloat(money.Round(amount)).StringFixed(money.Places)
}

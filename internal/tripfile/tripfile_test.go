package tripfile

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/tripsplit/internal/calculator"
)

func TestLoad(t *testing.T) {
	l, err := Load("testdata/kyoto.yaml")
	require.NoError(t, err)

	assert.Equal(t, "Kyoto", l.Trip.Name)
	assert.Equal(t, "JPY", l.Trip.BaseCurrency)
	assert.Equal(t, 10000.0, *l.Trip.TotalBudget)
	assert.Equal(t, "2026-04-01", l.Trip.StartDate)

	require.Len(t, l.Participants, 3)
	assert.True(t, l.Participants[0].IsSelf)
	assert.Equal(t, 1500.0, *l.Participants[1].BudgetTotal)

	require.Len(t, l.Receipts, 2)
	dinner := l.Receipts[0]
	assert.Equal(t, "me", dinner.PaidByParticipantID, "payer defaults to self")
	assert.Equal(t, 3000.0, dinner.TotalAmount)
	assert.Equal(t, time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC), dinner.Date)
	require.Len(t, dinner.Items[0].Shares, 3)
	assert.Equal(t, 1000.0, dinner.Items[0].Shares[2].ShareAmount)
	assert.Equal(t, "dinner-1", dinner.Items[0].Shares[0].ReceiptItemID)

	taxi := l.Receipts[1]
	assert.Equal(t, "bob", taxi.PaidByParticipantID)
	assert.Equal(t, 600.0, taxi.ShareOf("me"))

	settlements := calculator.ComputeSettlements(calculator.ComputeStats(l.Participants, l.Receipts))
	require.Len(t, settlements, 2)
	assert.Equal(t, "Carol", settlements[0].FromName)
	assert.Equal(t, 1000.0, settlements[0].Amount)
}

func TestParse_Defaults(t *testing.T) {
	l, err := Parse(strings.NewReader(`
participants:
  - id: a
  - id: b
receipts:
  - payer: a
    total: 12.5
    items:
      - {name: Snacks, amount: 10, split: [a, b]}
      - {name: Juice, amount: 2.5, shares: [{participant: b, amount: 2.5}]}
`))
	require.NoError(t, err)

	assert.Equal(t, "JPY", l.Trip.BaseCurrency)
	assert.Equal(t, "a", l.Participants[0].Name)
	r := l.Receipts[0]
	assert.Equal(t, "receipt-1", r.ID)
	assert.Equal(t, 12.5, r.TotalAmount)
	assert.Equal(t, "receipt-1-2", r.Items[1].Shares[0].ReceiptItemID)
	assert.True(t, r.Date.IsZero())
	assert.Equal(t, "Other", r.Items[0].Category)
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"empty":             ``,
		"unknown key":       "nmae: typo\n",
		"missing id":        "participants: [{name: A}]\n",
		"duplicate id":      "participants: [{id: a}, {id: a}]\n",
		"two selves":        "participants: [{id: a, self: true}, {id: b, self: true}]\n",
		"unknown payer":     "participants: [{id: a}]\nreceipts: [{payer: z, items: []}]\n",
		"no payer, no self": "participants: [{id: a}]\nreceipts: [{items: []}]\n",
		"unknown splitter":  "participants: [{id: a}]\nreceipts: [{payer: a, items: [{name: x, amount: 1, split: [z]}]}]\n",
		"unknown sharer":    "participants: [{id: a}]\nreceipts: [{payer: a, items: [{name: x, amount: 1, shares: [{participant: z, amount: 1}]}]}]\n",
		"bad date":          "participants: [{id: a}]\nreceipts: [{payer: a, date: tomorrow}]\n",
		"total differs":     "participants: [{id: a}]\nreceipts: [{payer: a, total: 1200, items: [{name: x, amount: 1000, split: [a]}]}]\n",
		"split and shares":  "participants: [{id: a}, {id: b}]\nreceipts: [{payer: a, items: [{name: x, amount: 10, split: [a, b], shares: [{participant: b, amount: 10}]}]}]\n",
		"shares short":      "participants: [{id: a}, {id: b}]\nreceipts: [{payer: a, items: [{name: x, amount: 10, shares: [{participant: b, amount: 9}]}]}]\n",
		"sub-cent shares":   "participants: [{id: a}, {id: b}]\nreceipts: [{payer: a, items: [{name: x, amount: 1, shares: [{participant: a, amount: 0.334}, {participant: b, amount: 0.333}, {participant: b, amount: 0.333}]}]}]\n",
		"nobody shares":     "participants: [{id: a}]\nreceipts: [{payer: a, items: [{name: x, amount: 1}]}]\n",
		"zero amount":       "participants: [{id: a}]\nreceipts: [{payer: a, items: [{name: x, amount: 0, split: [a]}]}]\n",
		"negative share":    "participants: [{id: a}, {id: b}]\nreceipts: [{payer: a, items: [{name: x, amount: 1, shares: [{participant: a, amount: 2}, {participant: b, amount: -1}]}]}]\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

func TestParse_BalancesSumToZero(t *testing.T) {
	l, err := Parse(strings.NewReader(`
participants:
  - {id: me, self: true}
  - {id: bob}
  - {id: carol}
receipts:
  - items:
      - {name: Crackers, amount: 100, split: [me, bob, carol]}
      - name: Gum
        amount: 1
        shares:
          - {participant: me, amount: 0.34}
          - {participant: bob, amount: 0.33}
          - {participant: carol, amount: 0.33}
  - payer: carol
    total: 1052.67
    items:
      - {name: Ryokan, amount: 1000, split: [me, bob, carol]}
      - {name: Sake, amount: 45.67, shares: [{participant: bob, amount: 20}, {participant: me, amount: 25.67}]}
      - {name: Mochi, amount: 7, split: [me, bob, carol]}
`))
	require.NoError(t, err)

	stats := calculator.ComputeStats(l.Participants, l.Receipts)
	sum := 0.0
	for _, s := range stats {
		sum += s.Balance
	}
	assert.InDelta(t, 0, sum, 1e-6)

	remaining := make(map[string]float64, len(stats))
	for _, s := range stats {
		remaining[s.ID] = s.Balance
	}
	for _, s := range calculator.ComputeSettlements(stats) {
		remaining[s.FromParticipantID] += s.Amount
		remaining[s.ToParticipantID] -= s.Amount
	}
	for id, balance := range remaining {
		assert.InDelta(t, 0, balance, calculator.SettledEpsilon, "participant %s is left unsettled", id)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("testdata/nope.yaml")
	assert.Error(t, err)
}

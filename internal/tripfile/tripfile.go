// Package tripfile reads a trip, its participants and receipts from YAML.
//
// A trip file looks like:
//
//	name: Kyoto
//	currency: JPY
//	budget: 100000
//	participants:
//	  - {id: me, name: You, self: true}
//	  - {id: bob, name: Bob, budget: 40000}
//	receipts:
//	  - id: dinner
//	    payer: me
//	    date: 2026-04-02
//	    items:
//	      - {name: Kaiseki, category: Food, amount: 3000, split: [me, bob]}
//	      - name: Sake
//	        amount: 800
//	        shares: [{participant: bob, amount: 800}]
package tripfile

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/money"
)

// File is the YAML document.
type File struct {
	Name         string        `yaml:"name"`
	Currency     string        `yaml:"currency"`
	Budget       *float64      `yaml:"budget"`
	StartDate    string        `yaml:"start_date"`
	EndDate      string        `yaml:"end_date"`
	Participants []Participant `yaml:"participants"`
	Receipts     []Receipt     `yaml:"receipts"`
}

type Participant struct {
	ID     string   `yaml:"id"`
	Name   string   `yaml:"name"`
	Self   bool     `yaml:"self"`
	Budget *float64 `yaml:"budget"`
}

type Receipt struct {
	ID    string   `yaml:"id"`
	Payer string   `yaml:"payer"`
	Date  string   `yaml:"date"`
	Store string   `yaml:"store"`
	Memo  string   `yaml:"memo"`
	Total *float64 `yaml:"total"`
	Items []Item   `yaml:"items"`
}

// Item carries either explicit Shares or a Split list divided evenly.
type Item struct {
	Name     string   `yaml:"name"`
	Category string   `yaml:"category"`
	Amount   float64  `yaml:"amount"`
	Memo     string   `yaml:"memo"`
	Split    []string `yaml:"split"`
	Shares   []Share  `yaml:"shares"`
}

type Share struct {
	Participant string  `yaml:"participant"`
	Amount      float64 `yaml:"amount"`
}

// Ledger is a trip file converted to domain models.
type Ledger struct {
	Trip         models.Trip
	Participants []models.Participant
	Receipts     []models.ReceiptWithItems
}

// Load reads and converts the trip file at path.
func Load(path string) (*Ledger, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trip file: %w", err)
	}
	defer f.Close()

	ledger, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ledger, nil
}

// Parse decodes a trip file. Unknown keys are rejected.
func Parse(r io.Reader) (*Ledger, error) {
	var file File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("trip file is empty")
		}
		return nil, fmt.Errorf("decode trip file: %w", err)
	}
	return file.Ledger()
}

// Ledger validates references and converts the file to domain models.
func (f File) Ledger() (*Ledger, error) {
	currency := strings.ToUpper(strings.TrimSpace(f.Currency))
	if currency == "" {
		currency = models.DefaultCurrency
	}
	l := &Ledger{Trip: models.Trip{
		ID:           "trip",
		Name:         f.Name,
		StartDate:    f.StartDate,
		EndDate:      f.EndDate,
		BaseCurrency: currency,
		TotalBudget:  f.Budget,
	}}

	known := make(map[string]bool, len(f.Participants))
	selfID := ""
	for i, p := range f.Participants {
		if p.ID == "" {
			return nil, fmt.Errorf("participant %d: id required", i+1)
		}
		if known[p.ID] {
			return nil, fmt.Errorf("participant %q: duplicate id", p.ID)
		}
		known[p.ID] = true
		name := p.Name
		if name == "" {
			name = p.ID
		}
		if p.Self {
			if selfID != "" {
				return nil, fmt.Errorf("participant %q: only one participant can be self", p.ID)
			}
			selfID = p.ID
		}
		l.Participants = append(l.Participants, models.Participant{
			ID:          p.ID,
			TripID:      l.Trip.ID,
			Name:        name,
			BudgetTotal: p.Budget,
			IsSelf:      p.Self,
		})
	}

	for i, r := range f.Receipts {
		receipt, err := r.convert(i, l.Trip, selfID, known)
		if err != nil {
			return nil, err
		}
		l.Receipts = append(l.Receipts, receipt)
	}
	return l, nil
}

func (r Receipt) convert(i int, trip models.Trip, selfID string, known map[string]bool) (models.ReceiptWithItems, error) {
	id := r.ID
	if id == "" {
		id = fmt.Sprintf("receipt-%d", i+1)
	}
	payer := r.Payer
	if payer == "" {
		payer = selfID
	}
	if !known[payer] {
		return models.ReceiptWithItems{}, fmt.Errorf("receipt %q: unknown payer %q", id, payer)
	}

	date, err := parseDate(r.Date)
	if err != nil {
		return models.ReceiptWithItems{}, fmt.Errorf("receipt %q: %w", id, err)
	}

	out := models.ReceiptWithItems{Receipt: models.Receipt{
		ID:                  id,
		TripID:              trip.ID,
		Currency:            trip.BaseCurrency,
		PaidByParticipantID: payer,
		Date:                date,
		StoreName:           r.Store,
		Memo:                r.Memo,
		CreatedAt:           int64(i),
	}}

	amounts := make([]float64, len(r.Items))
	for j, it := range r.Items {
		item, err := it.convert(id, j, known)
		if err != nil {
			return models.ReceiptWithItems{}, fmt.Errorf("receipt %q item %q: %w", id, it.Name, err)
		}
		out.Items = append(out.Items, item)
		amounts[j] = item.Amount
	}

	out.TotalAmount = money.Sum(amounts...)
	if r.Total != nil && !money.Equal(*r.Total, out.TotalAmount) {
		return models.ReceiptWithItems{}, fmt.Errorf("receipt %q: total %.2f does not match the item sum %.2f", id, *r.Total, out.TotalAmount)
	}
	return out, nil
}

// convert builds the j-th item of receipt rid. An item is split evenly over
// Split or divided by explicit Shares, never both, and its shares must add up
// to its amount.
func (it Item) convert(rid string, j int, known map[string]bool) (models.ReceiptItem, error) {
	if !(it.Amount > 0) || math.IsInf(it.Amount, 0) {
		return models.ReceiptItem{}, errors.New("amount must be positive")
	}
	item := models.ReceiptItem{
		ID:         fmt.Sprintf("%s-%d", rid, j+1),
		ReceiptID:  rid,
		Name:       it.Name,
		Category:   it.Category,
		Amount:     money.Round(it.Amount),
		Memo:       it.Memo,
		OrderIndex: j,
	}
	if item.Category == "" {
		item.Category = models.DefaultCategory
	}

	switch {
	case len(it.Split) > 0 && len(it.Shares) > 0:
		return models.ReceiptItem{}, errors.New("set either split or shares, not both")
	case len(it.Split) > 0:
		for _, pid := range it.Split {
			if !known[pid] {
				return models.ReceiptItem{}, fmt.Errorf("unknown participant %q", pid)
			}
		}
		item.Shares = calculator.EvenShares(item.Amount, it.Split)
	case len(it.Shares) > 0:
		rounded := make([]float64, len(it.Shares))
		for k, sh := range it.Shares {
			if !known[sh.Participant] {
				return models.ReceiptItem{}, fmt.Errorf("unknown participant %q", sh.Participant)
			}
			if !(sh.Amount >= 0) || math.IsInf(sh.Amount, 0) {
				return models.ReceiptItem{}, fmt.Errorf("share of %q must not be negative", sh.Participant)
			}
			rounded[k] = money.Round(sh.Amount)
			item.Shares = append(item.Shares, models.ReceiptItemShare{
				ParticipantID: sh.Participant,
				ShareAmount:   rounded[k],
			})
		}
		if sum := money.Sum(rounded...); !money.Equal(sum, item.Amount) {
			return models.ReceiptItem{}, fmt.Errorf("shares add up to %.2f, not %.2f", sum, item.Amount)
		}
	default:
		return models.ReceiptItem{}, errors.New("needs split or shares")
	}

	for k := range item.Shares {
		item.Shares[k].ReceiptItemID = item.ID
	}
	return item, nil
}

// parseDate accepts YYYY-MM-DD or RFC 3339; empty leaves the receipt undated.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q is neither YYYY-MM-DD nor RFC 3339", value)
	}
	return t, nil
}

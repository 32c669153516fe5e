package calculator

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/tripsplit/internal/models"
)

func stat(id, name string, balance float64) models.ParticipantStats {
	return models.ParticipantStats{Participant: participant(id, name), Balance: balance}
}

func TestComputeSettlements(t *testing.T) {
	tests := []struct {
		name  string
		stats []models.ParticipantStats
		want  []models.Settlement
	}{
		{
			name:  "one debtor one creditor",
			stats: []models.ParticipantStats{stat("a", "Alice", 500), stat("b", "Bob", -500)},
			want: []models.Settlement{
				{FromParticipantID: "b", ToParticipantID: "a", Amount: 500, FromName: "Bob", ToName: "Alice"},
			},
		},
		{
			name: "one creditor receives from two debtors",
			stats: []models.ParticipantStats{
				stat("a", "Alice", 200), stat("b", "Bob", -100), stat("c", "Carol", -100),
			},
			want: []models.Settlement{
				{FromParticipantID: "b", ToParticipantID: "a", Amount: 100, FromName: "Bob", ToName: "Alice"},
				{FromParticipantID: "c", ToParticipantID: "a", Amount: 100, FromName: "Carol", ToName: "Alice"},
			},
		},
		{
			name: "largest debt pays largest credit first",
			stats: []models.ParticipantStats{
				stat("a", "Alice", 30), stat("b", "Bob", -10), stat("c", "Carol", 50), stat("d", "Dan", -70),
			},
			want: []models.Settlement{
				{FromParticipantID: "d", ToParticipantID: "c", Amount: 50, FromName: "Dan", ToName: "Carol"},
				{FromParticipantID: "d", ToParticipantID: "a", Amount: 20, FromName: "Dan", ToName: "Alice"},
				{FromParticipantID: "b", ToParticipantID: "a", Amount: 10, FromName: "Bob", ToName: "Alice"},
			},
		},
		{
			name: "rounding leaves no residual debt",
			stats: []models.ParticipantStats{
				stat("d", "Dan", -100.0/3), stat("x", "Xia", 16.6665), stat("y", "Yuki", 16.6665),
			},
			want: []models.Settlement{
				{FromParticipantID: "d", ToParticipantID: "x", Amount: 16.67, FromName: "Dan", ToName: "Xia"},
				{FromParticipantID: "d", ToParticipantID: "y", Amount: 16.66, FromName: "Dan", ToName: "Yuki"},
			},
		},
		{
			name:  "all balances within epsilon",
			stats: []models.ParticipantStats{stat("a", "Alice", 0.009), stat("b", "Bob", -0.005), stat("c", "Carol", 0)},
			want:  []models.Settlement{},
		},
		{
			name:  "only creditors",
			stats: []models.ParticipantStats{stat("a", "Alice", 10), stat("b", "Bob", 5)},
			want:  []models.Settlement{},
		},
		{
			name:  "no stats",
			stats: nil,
			want:  []models.Settlement{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeSettlements(tt.stats)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeSettlements_FromStats(t *testing.T) {
	t.Run("even split", func(t *testing.T) {
		participants := []models.Participant{participant("a", "A"), participant("b", "B")}
		receipts := []models.ReceiptWithItems{receipt("r1", "a", evenItem("Dinner", 1000, "a", "b"))}

		got := ComputeSettlements(ComputeStats(participants, receipts))
		assert.Equal(t, []models.Settlement{
			{FromParticipantID: "b", ToParticipantID: "a", Amount: 500, FromName: "B", ToName: "A"},
		}, got)
	})

	t.Run("uneven split", func(t *testing.T) {
		participants := []models.Participant{participant("a", "A"), participant("b", "B")}
		receipts := []models.ReceiptWithItems{
			receipt("r1", "a", item("Hotel", 1000, map[string]float64{"a": 600, "b": 400})),
		}

		got := ComputeSettlements(ComputeStats(participants, receipts))
		assert.Equal(t, []models.Settlement{
			{FromParticipantID: "b", ToParticipantID: "a", Amount: 400, FromName: "B", ToName: "A"},
		}, got)
	})

	t.Run("idle participant appears in no settlement", func(t *testing.T) {
		participants := []models.Participant{participant("a", "A"), participant("b", "B"), participant("z", "Z")}
		receipts := []models.ReceiptWithItems{receipt("r1", "a", evenItem("Lunch", 90, "a", "b"))}

		for _, s := range ComputeSettlements(ComputeStats(participants, receipts)) {
			assert.NotEqual(t, "z", s.FromParticipantID)
			assert.NotEqual(t, "z", s.ToParticipantID)
		}
	})
}

func TestComputeSettlements_DoesNotMutateInput(t *testing.T) {
	stats := []models.ParticipantStats{
		stat("a", "Alice", 120.5), stat("b", "Bob", -60.25), stat("c", "Carol", -60.25),
	}
	original := slices.Clone(stats)

	first := ComputeSettlements(stats)
	second := ComputeSettlements(stats)

	assert.Equal(t, original, stats)
	assert.Equal(t, first, second)
}

func TestComputeSettlements_Properties(t *testing.T) {
	r := rand.New(rand.NewPCG(42, 7))
	for range 300 {
		participants, receipts := randomTrip(r)
		stats := ComputeStats(participants, receipts)
		settlements := ComputeSettlements(stats)

		byID := make(map[string]float64, len(stats))
		var credit float64
		var parties int
		for _, s := range stats {
			byID[s.ID] = s.Balance
			if s.Balance > SettledEpsilon {
				credit += s.Balance
				parties++
			}
			if s.Balance < -SettledEpsilon {
				parties++
			}
		}

		var paid float64
		for _, s := range settlements {
			assert.Greater(t, s.Amount, 0.0)
			assert.Less(t, byID[s.FromParticipantID], -SettledEpsilon)
			assert.Greater(t, byID[s.ToParticipantID], SettledEpsilon)
			paid += s.Amount
		}

		if parties > 0 {
			assert.LessOrEqual(t, len(settlements), parties-1)
		}
		// Participants inside the epsilon band and per-party rounding residuals
		// each account for less than one cent.
		assert.InDelta(t, credit, paid, SettledEpsilon*float64(len(stats))+1e-6)
		assert.Equal(t, settlements, ComputeSettlements(stats))
	}
}

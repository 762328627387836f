package split_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/finwise/internal/split"
)

func TestPerPerson(t *testing.T) {
	tests := []struct {
		amount  int64
		members int
		want    int64
	}{
		{10000, 3, 3333},
		{10000, 4, 2500},
		{1001, 2, 501}, // 5.005 rounds away from zero
		{200, 3, 67},
		{1, 3, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, split.PerPerson(tt.amount, tt.members), "%d/%d", tt.amount, tt.members)
	}
}

func TestPerPerson_WithinOneCentPerMember(t *testing.T) {
	for amount := int64(1); amount <= 5000; amount += 7 {
		for members := 2; members <= 9; members++ {
			share := split.PerPerson(amount, members)
			diff := share*int64(members) - amount

			assert.LessOrEqual(t, abs(diff), int64(members), "%d/%d", amount, members)
		}
	}
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}

	return v
}

func TestAggregate_NeverNets(t *testing.T) {
	created := []*split.Expense{
		{ID: 1, CreatedBy: "alice", Balances: map[string]int64{"bob": 500, "carol": 500}},
		{ID: 2, CreatedBy: "alice", Balances: map[string]int64{"bob": 300}},
		{ID: 3, CreatedBy: "alice", Balances: map[string]int64{"bob": 900}, Settled: true},
	}
	involved := []*split.Expense{
		{ID: 4, CreatedBy: "bob", Balances: map[string]int64{"alice": 200, "dave": 200}},
		{ID: 5, CreatedBy: "carol", Balances: map[string]int64{"alice": 50}, Settled: true},
	}

	owedToYou, youOwe := split.Aggregate("alice", created, involved)

	assert.Equal(t, map[string]int64{"bob": 800, "carol": 500}, owedToYou)
	assert.Equal(t, map[string]int64{"bob": 200}, youOwe)
}

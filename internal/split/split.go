package split

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finwise/internal/apperr"
)

var (
	ErrNotFound       = fmt.Errorf("split expense %w", apperr.ErrNotFound)
	ErrNotCreator     = fmt.Errorf("only the creator can settle an expense: %w", apperr.ErrForbidden)
	ErrAlreadySettled = fmt.Errorf("expense already settled: %w", apperr.ErrConflict)
	ErrNotFriend      = fmt.Errorf("can only split with friends: %w", apperr.ErrValidation)
)

// Expense is a cost shared equally between its creator and the participants.
type Expense struct {
	ID              int64
	CreatedBy       string
	Description     string
	TotalAmount     int64
	AmountPerPerson int64
	Participants    []string
	// Balances holds what each participant owes the creator. The creator is never a key.
	Balances  map[string]int64
	Settled   bool
	SettledAt *time.Time
	CreatedAt time.Time
}

// Members returns the creator followed by the participants.
func (e *Expense) Members() []string {
	return append([]string{e.CreatedBy}, e.Participants...)
}

type CreateParams struct {
	Amount       int64
	Description  string
	Participants []string
}

// PerPerson divides amount cents between members, rounding half away from zero.
// The shares may differ from amount by less than one cent per member.
func PerPerson(amount int64, members int) int64 {
	return decimal.NewFromInt(amount).
		Div(decimal.NewFromInt(int64(members))).
		Round(0).
		IntPart()
}

// Listing is a user's view of the expenses they take part in.
type Listing struct {
	Created   []*Expense
	Involved  []*Expense
	OwedToYou map[string]int64
	YouOwe    map[string]int64
}

// Aggregate sums the unsettled balances in both directions. The two maps are
// never netted against each other.
func Aggregate(username string, created, involved []*Expense) (owedToYou, youOwe map[string]int64) {
	owedToYou = map[string]int64{}
	youOwe = map[string]int64{}

	for _, e := range created {
		if e.Settled {
			continue
		}

		for p, amount := range e.Balances {
			owedToYou[p] += amount
		}
	}

	for _, e := range involved {
		if e.Settled {
			continue
		}

		if amount, ok := e.Balances[username]; ok {
			youOwe[e.CreatedBy] += amount
		}
	}

	return owedToYou, youOwe
}

package gamification

import "slices"

// with adds b to the notice under a fresh id. A notice the client already saw is
// replaced instead of extended.
func (n Notice) with(b Bonus, id, shown string) Notice {
	if n.ID == "" || n.ID == shown {
		return Notice{ID: id, Bonuses: []Bonus{b}}
	}

	return Notice{ID: id, Bonuses: append(slices.Clone(n.Bonuses), b)}
}

func (n Notice) unseen(shown string) bool {
	return n.ID != "" && n.ID != shown
}

func (s *State) noteStreakBonus(b Bonus, id string) {
	s.StreakNotice = s.StreakNotice.with(b, id, s.LastBonusID)
}

func (s *State) noteTransactionBonus(b Bonus, id string) {
	s.TransactionNotice = s.TransactionNotice.with(b, id, s.LastShownTransactionBonusID)
}

// TakeNotices returns the bonuses of both slots that have not been shown yet and
// marks them as shown. The slots are independent so one family never hides the other.
func (s *State) TakeNotices() (streak, txn []Bonus) {
	if s.StreakNotice.unseen(s.LastBonusID) {
		streak = s.StreakNotice.Bonuses
		s.LastBonusID = s.StreakNotice.ID
	}

	if s.TransactionNotice.unseen(s.LastShownTransactionBonusID) {
		txn = s.TransactionNotice.Bonuses
		s.LastShownTransactionBonusID = s.TransactionNotice.ID
	}

	return streak, txn
}

package gamification

const (
	TransactionBonus     int64 = 10
	PenaltyPoints        int64 = -30
	WeeklyBonus          int64 = 25
	TimelyRepaymentBonus int64 = 50
)

// Policy selects which bonus rules are active. Earlier releases differed on these
// knobs, so they are configuration rather than code.
type Policy struct {
	FirstNBonusThreshold int
	PenaltyEnabled       bool
	AchievementsEnabled  bool
}

func DefaultPolicy() Policy {
	return Policy{
		FirstNBonusThreshold: 20,
		PenaltyEnabled:       true,
		AchievementsEnabled:  true,
	}
}

package gamification

const (
	StreakStar AchievementID = "streak_star"
	BudgetBoss AchievementID = "budget_boss"
	LoanLegend AchievementID = "loan_legend"
)

type Achievement struct {
	ID          AchievementID `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Requirement int           `json:"requirement"`

	counter func(*State) int
}

// Achievements is the static catalogue, in display order.
var Achievements = []Achievement{
	{
		ID:          StreakStar,
		Name:        "Streak Star",
		Description: "Stay within your limits for 4 weeks in a row",
		Requirement: 4,
		counter:     func(s *State) int { return s.ConsecutiveWeeklyStreaks },
	},
	{
		ID:          BudgetBoss,
		Name:        "Budget Boss",
		Description: "Keep every category under its limit for 3 months in a row",
		Requirement: 3,
		counter:     func(s *State) int { return s.ConsecutiveMonthlyBonuses },
	},
	{
		ID:          LoanLegend,
		Name:        "Loan Legend",
		Description: "Repay 5 loans on time",
		Requirement: 5,
		counter:     func(s *State) int { return s.TimelyLoanRepayments },
	},
}

// CheckUnlocks adds every achievement whose counter reached its requirement and
// returns the ones that were not unlocked before. Counters are never modified.
func CheckUnlocks(st *State) []Achievement {
	var unlocked []Achievement

	for _, a := range Achievements {
		if st.HasAchievement(a.ID) || a.counter(st) < a.Requirement {
			continue
		}

		st.Achievements = append(st.Achievements, a.ID)
		unlocked = append(unlocked, a)
	}

	return unlocked
}

type AchievementProgress struct {
	Achievement
	Unlocked bool `json:"unlocked"`
	Current  int  `json:"current"`
	Percent  int  `json:"percent"`
}

func Progress(st *State) []AchievementProgress {
	out := make([]AchievementProgress, 0, len(Achievements))

	for _, a := range Achievements {
		current := min(a.counter(st), a.Requirement)
		unlocked := st.HasAchievement(a.ID)

		if unlocked {
			current = a.Requirement
		}

		out = append(out, AchievementProgress{
			Achievement: a,
			Unlocked:    unlocked,
			Current:     current,
			Percent:     100 * current / a.Requirement,
		})
	}

	return out
}

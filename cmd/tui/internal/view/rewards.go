package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/finwise/internal/gamification"
)

type RewardsModel struct {
	CommonModel
	engine *gamification.Service

	rewards  *gamification.Rewards
	standing *gamification.Standing
	loading  bool
	err      error
}

func NewRewardsModel(common CommonModel, engine *gamification.Service) RewardsModel {
	return RewardsModel{CommonModel: common, engine: engine, loading: true}
}

func (m RewardsModel) Title() string     { return "Rewards" }
func (m RewardsModel) ShortHelp() string { return "Esc: back | r: refresh" }

type rewardsLoadedMsg struct {
	rewards  *gamification.Rewards
	standing *gamification.Standing
	err      error
}

func (m RewardsModel) Init() tea.Cmd {
	return m.loadCmd()
}

// loadCmd polls first so that the standing reflects any bonus the poll awarded.
func (m RewardsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		rw, err := m.engine.PollRewards(ctx, m.Username)
		if err != nil {
			return rewardsLoadedMsg{err: err}
		}

		st, err := m.engine.Standing(ctx, m.Username)

		return rewardsLoadedMsg{rewards: rw, standing: st, err: err}
	}
}

func (m RewardsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case rewardsLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.rewards = msg.rewards
		m.standing = msg.standing

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func describeBonus(b gamification.Bonus) string {
	label := map[gamification.BonusKind]string{
		gamification.BonusWeekly:          "Weekly streak",
		gamification.BonusMonthly:         "Monthly budget",
		gamification.BonusTransaction:     "Transaction logged",
		gamification.BonusPenalty:         "Limit exceeded",
		gamification.BonusTimelyRepayment: "Loan repaid on time",
		gamification.BonusAchievement:     "Achievement",
	}[b.Kind]

	if b.Ref != "" {
		label += " (" + b.Ref + ")"
	}

	points := goodStyle.Render(fmt.Sprintf("%+d", b.Points))
	if b.Points < 0 {
		points = errorStyle.Render(fmt.Sprintf("%+d", b.Points))
	}

	return fmt.Sprintf("  %s %s", points, label)
}

var rankBar = progress.New(progress.WithDefaultGradient(), progress.WithWidth(24), progress.WithoutPercentage())

func progressBar(percent int) string {
	return rankBar.ViewAs(float64(min(max(percent, 0), 100)) / 100)
}

func (m RewardsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading rewards...")
	}

	if m.err != nil {
		return errorView(m.err)
	}

	var sb strings.Builder

	rank := m.standing.Rank
	fmt.Fprintf(&sb, "%s %s  %s points\n", rank.Emoji, titleStyle.Render(rank.Name), activeStyle(fmt.Sprint(m.standing.Points)))

	if next := m.standing.Next; next != nil {
		fmt.Fprintf(&sb, "%s %d%% to %s (%d points to go)\n", progressBar(next.Percent), next.Percent, next.Next.Name, next.PointsToNext)
	} else {
		sb.WriteString("Top rank reached\n")
	}

	fmt.Fprintf(&sb, "\nWeekly streak: %d  Monthly streak: %d  On-time repayments: %d\n",
		m.rewards.ConsecutiveWeeklyStreaks, m.rewards.ConsecutiveMonthlyBonuses, m.rewards.TimelyLoanRepayments)

	bonuses := append(append([]gamification.Bonus{}, m.rewards.StreakBonuses...), m.rewards.TransactionBonuses...)
	if len(bonuses) > 0 {
		sb.WriteString("\nNew since last visit:\n")

		for _, b := range bonuses {
			sb.WriteString(describeBonus(b) + "\n")
		}
	}

	sb.WriteString("\nAchievements:\n")

	for _, a := range m.standing.Achievements {
		mark := faintStyle.Render("[ ]")
		if a.Unlocked {
			mark = goodStyle.Render("[x]")
		}

		fmt.Fprintf(&sb, "  %s %s  %d/%d  %s\n", mark, a.Name, a.Current, a.Requirement, faintStyle.Render(a.Description))
	}

	for _, a := range m.rewards.NewAchievements {
		fmt.Fprintf(&sb, "\n%s %s", goodStyle.Render("Unlocked:"), a.Name)
	}

	return lipgloss.NewStyle().Padding(1).Render(panelStyle.Render(sb.String()))
}

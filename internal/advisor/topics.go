package advisor

import "slices"

// Topics is the fixed taxonomy community posts are tagged with and user
// interests are weighted over.
var Topics = []string{
	"Corporate finance and capital structure",
	"Investment analysis and portfolio management",
	"Personal finance and financial literacy",
	"Public finance and government expenditure",
	"Banking and financial intermediation",
	"Financial markets and institutions",
	"Risk management and insurance",
	"Derivatives and options",
	"Treasury management",
	"Cash flow management",
	"Credit risk assessment and management",
	"Mutual funds and investment funds",
	"Mergers and acquisitions",
	"Financial technology (Fintech)",
	"Blockchain and cryptocurrencies",
	"Financial regulation and compliance",
	"Valuation of securities and companies",
	"Behavioral finance",
	"ESG and sustainable finance",
	"International finance and foreign exchange",
	"Financial econometrics and modeling",
	"Budgeting and financial planning",
	"Working capital management",
	"Taxation and tax planning",
	"Real estate finance",
	"Microfinance and financial inclusion",
	"Wealth management",
	"Financial statement analysis and reporting",
	"Dividend policy and payout strategies",
	"Green bonds and impact investing",
}

const (
	minKeywords = 3
	maxKeywords = 7
)

// ZeroInterests returns a weight of zero for every topic.
func ZeroInterests() map[string]float64 {
	out := make(map[string]float64, len(Topics))
	for _, t := range Topics {
		out[t] = 0
	}

	return out
}

// FilterTopics keeps the known topics of raw, without duplicates, capped at maxKeywords.
func FilterTopics(raw []string) []string {
	var out []string

	for _, k := range raw {
		if !slices.Contains(Topics, k) || slices.Contains(out, k) {
			continue
		}

		out = append(out, k)
		if len(out) == maxKeywords {
			break
		}
	}

	return out
}

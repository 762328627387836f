package csvledger

import "strings"

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountTyped means a positive amount plus an explicit type column.
	amountTyped amountMode = iota
	// amountSigned means one signed column, negative for money going out.
	amountSigned
	// amountSplit means separate debit and credit columns.
	amountSplit
)

type numberStyle int

const (
	// dotDecimal reads "1,234.56".
	dotDecimal numberStyle = iota
	// commaDecimal reads "1.234,56".
	commaDecimal
)

// Profile describes the column layout of one supported statement format.
// Column names are matched case-insensitively after trimming.
type Profile struct {
	Name        string
	DateCol     string
	DateLayouts []string
	DescCol     string
	TypeCol     string
	PaidCol     string
	AmountMode  amountMode
	AmountCol   string
	DebitCol    string
	CreditCol   string
	Numbers     numberStyle
}

func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.DescCol}

	switch p.AmountMode {
	case amountTyped:
		cols = append(cols, p.TypeCol, p.AmountCol)
	case amountSigned:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.DebitCol, p.CreditCol)
	}

	return cols
}

// profiles are tried in order; the ones with more required columns go first.
var profiles = []Profile{
	{
		Name:        "finwise",
		DateCol:     "date",
		DateLayouts: []string{"2006-01-02"},
		DescCol:     "label",
		TypeCol:     "type",
		PaidCol:     "paid_on_time",
		AmountMode:  amountTyped,
		AmountCol:   "amount",
		Numbers:     dotDecimal,
	},
	{
		Name:        "cgd-cartao",
		DateCol:     "data",
		DateLayouts: []string{"02-01-2006"},
		DescCol:     "descrição",
		AmountMode:  amountSplit,
		DebitCol:    "débito",
		CreditCol:   "crédito",
		Numbers:     commaDecimal,
	},
	{
		Name:        "cgd-extrato",
		DateCol:     "data mov.",
		DateLayouts: []string{"02-01-2006"},
		DescCol:     "descrição",
		AmountMode:  amountSigned,
		AmountCol:   "movimento",
		Numbers:     commaDecimal,
	},
	{
		Name:        "cgd-conta",
		DateCol:     "data mov.",
		DateLayouts: []string{"02-01-2006"},
		DescCol:     "descrição",
		AmountMode:  amountSigned,
		AmountCol:   "montante",
		Numbers:     commaDecimal,
	},
	{
		Name:        "bank",
		DateCol:     "date",
		DateLayouts: []string{"2006-01-02", "02/01/2006", "01/02/2006"},
		DescCol:     "description",
		AmountMode:  amountSigned,
		AmountCol:   "amount",
		Numbers:     dotDecimal,
	},
}

func normalize(col string) string {
	return strings.ToLower(strings.TrimSpace(col))
}

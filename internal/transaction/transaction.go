package transaction

import (
	"fmt"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/finwise/internal/apperr"
)

// Type identifies which variant of Details a Record carries.
type Type string

const (
	TypeDebit         Type = "debit"
	TypeIncome        Type = "income"
	TypeLoanTaken     Type = "loan_taken"
	TypeLoanRepayment Type = "loan_repayment"
)

// SplitCategory is the debit category used for shares of a split expense.
const SplitCategory = "Split Expense"

var ErrNotFound = fmt.Errorf("transaction %w", apperr.ErrNotFound)

// Details is the type-specific part of a ledger record.
type Details interface {
	Type() Type
	// Label is the category, source or lender depending on the variant.
	Label() string
}

type Debit struct {
	Category       string
	SplitExpenseID *int64
}

type Income struct {
	Source string
}

type LoanTaken struct {
	Lender string
}

type LoanRepayment struct {
	Lender     string
	PaidOnTime bool
}

func (Debit) Type() Type         { return TypeDebit }
func (Income) Type() Type        { return TypeIncome }
func (LoanTaken) Type() Type     { return TypeLoanTaken }
func (LoanRepayment) Type() Type { return TypeLoanRepayment }

func (d Debit) Label() string         { return d.Category }
func (i Income) Label() string        { return i.Source }
func (l LoanTaken) Label() string     { return l.Lender }
func (l LoanRepayment) Label() string { return l.Lender }

// Record is one immutable entry of a user's ledger.
type Record struct {
	ID        int64
	Username  string
	Date      time.Time
	Amount    int64 // Amount in cents, always positive
	Details   Details
	CreatedAt time.Time
}

func (r *Record) Type() Type {
	if r.Details == nil {
		return ""
	}

	return r.Details.Type()
}

func (r *Record) Label() string {
	if r.Details == nil {
		return ""
	}

	return r.Details.Label()
}

// Validate checks the fields every variant requires.
func (r *Record) Validate() error {
	if r.Amount <= 0 {
		return apperr.Invalid("amount must be positive")
	}

	if r.Details == nil {
		return apperr.Invalid("transaction type is required")
	}

	if strings.TrimSpace(r.Details.Label()) == "" {
		switch r.Details.(type) {
		case Debit:
			return apperr.Invalid("category is required")
		case Income:
			return apperr.Invalid("source is required")
		default:
			return apperr.Invalid("lender is required")
		}
	}

	return nil
}

// NewDetails rebuilds a variant from its flat representation.
func NewDetails(t Type, label string, paidOnTime *bool, splitExpenseID *int64) (Details, error) {
	switch t {
	case TypeDebit:
		return Debit{Category: label, SplitExpenseID: splitExpenseID}, nil
	case TypeIncome:
		return Income{Source: label}, nil
	case TypeLoanTaken:
		return LoanTaken{Lender: label}, nil
	case TypeLoanRepayment:
		onTime := false
		if paidOnTime != nil {
			onTime = *paidOnTime
		}

		return LoanRepayment{Lender: label, PaidOnTime: onTime}, nil
	}

	return nil, apperr.Invalid("unknown transaction type %q", t)
}

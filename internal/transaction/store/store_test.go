package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finwise/internal/transaction"
)

type fakeRow struct {
	values []any
}

func (r fakeRow) Scan(dest ...any) error {
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = r.values[i].(int64)
		case *string:
			*p = r.values[i].(string)
		case *time.Time:
			*p = r.values[i].(time.Time)
		default:
			if s, ok := d.(interface{ Scan(any) error }); ok {
				if err := s.Scan(r.values[i]); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func TestScanRecord_LoanRepayment(t *testing.T) {
	date := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)

	rec, err := scanRecord(fakeRow{values: []any{
		int64(7), "alice", date, "loan_repayment", int64(5000), "Bank", true, nil, date,
	}})
	require.NoError(t, err)

	assert.Equal(t, int64(7), rec.ID)
	assert.Equal(t, transaction.LoanRepayment{Lender: "Bank", PaidOnTime: true}, rec.Details)
}

func TestScanRecord_SplitDebit(t *testing.T) {
	date := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)

	rec, err := scanRecord(fakeRow{values: []any{
		int64(8), "bob", date, "debit", int64(3333), transaction.SplitCategory, nil, int64(12), date,
	}})
	require.NoError(t, err)

	debit, ok := rec.Details.(transaction.Debit)
	require.True(t, ok)
	require.NotNil(t, debit.SplitExpenseID)
	assert.Equal(t, int64(12), *debit.SplitExpenseID)
}

func TestScanRecord_UnknownType(t *testing.T) {
	date := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)

	_, err := scanRecord(fakeRow{values: []any{
		int64(9), "bob", date, "gift", int64(100), "x", nil, nil, date,
	}})
	assert.Error(t, err)
}

func TestFlatten(t *testing.T) {
	id := int64(3)

	onTime, split := flatten(transaction.Debit{Category: "Food", SplitExpenseID: &id})
	assert.Nil(t, onTime)
	assert.Equal(t, &id, split)

	onTime, split = flatten(transaction.LoanRepayment{Lender: "Bank", PaidOnTime: true})
	require.NotNil(t, onTime)
	assert.True(t, *onTime)
	assert.Nil(t, split)

	onTime, split = flatten(transaction.Income{Source: "Salary"})
	assert.Nil(t, onTime)
	assert.Nil(t, split)
}

package store

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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
		case *bool:
			*p = r.values[i].(bool)
		case *time.Time:
			*p = r.values[i].(time.Time)
		case *sql.NullTime:
			if err := p.Scan(r.values[i]); err != nil {
				return err
			}
		default:
			return errors.New("unexpected destination")
		}
	}

	return nil
}

func TestScanExpense(t *testing.T) {
	created := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	settled := created.Add(time.Hour)

	exp, err := scanExpense(fakeRow{values: []any{
		int64(3), "alice", "Dinner", int64(10000), int64(3333), true, settled, created,
	}})
	require.NoError(t, err)

	assert.Equal(t, int64(3), exp.ID)
	assert.Equal(t, int64(3333), exp.AmountPerPerson)
	assert.True(t, exp.Settled)
	require.NotNil(t, exp.SettledAt)
	assert.Equal(t, settled, *exp.SettledAt)
	assert.NotNil(t, exp.Balances)

	open, err := scanExpense(fakeRow{values: []any{
		int64(4), "alice", "", int64(500), int64(250), false, nil, created,
	}})
	require.NoError(t, err)
	assert.Nil(t, open.SettledAt)
}

package store

import (
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
	if len(dest) != len(r.values) {
		return errors.New("column count mismatch")
	}

	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = r.values[i].(int64)
		case *string:
			*p = r.values[i].(string)
		case *[]byte:
			*p = []byte(r.values[i].(string))
		case *time.Time:
			*p = r.values[i].(time.Time)
		default:
			return errors.New("unexpected destination")
		}
	}

	return nil
}

func TestScanPost(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		keywords string
		want     []string
	}{
		{name: "Tagged", keywords: `["Saving", "Budgeting"]`, want: []string{"Saving", "Budgeting"}},
		{name: "EmptyArray", keywords: `[]`, want: []string{}},
		{name: "NoColumnValue", keywords: ``, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post, err := scanPost(fakeRow{values: []any{int64(3), "alice", "hi", tt.keywords, created}})
			require.NoError(t, err)

			assert.Equal(t, int64(3), post.ID)
			assert.Equal(t, tt.want, post.Keywords)
			assert.Equal(t, created, post.CreatedAt)
		})
	}
}

func TestScanPost_BadKeywords(t *testing.T) {
	_, err := scanPost(fakeRow{values: []any{int64(3), "alice", "hi", `{"a":1}`, time.Now()}})
	assert.ErrorContains(t, err, "decoding keywords of post 3")
}

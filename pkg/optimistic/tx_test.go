package optimistic

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	Status string
	Note   string
}

func TestTx_CommitKeepsValue(t *testing.T) {
	r := row{Status: "pending"}

	tx := Begin(&r, nil)
	require.NoError(t, tx.Apply(row{Status: "resolved", Note: "spam"}))
	assert.Equal(t, "resolved", r.Status)

	require.NoError(t, tx.Commit())
	assert.Equal(t, "resolved", r.Status)
	assert.Equal(t, "pending", tx.Previous().Status)
}

func TestTx_RollbackRestores(t *testing.T) {
	r := row{Status: "pending"}

	tx := Begin(&r, &sync.Mutex{})
	require.NoError(t, tx.Apply(row{Status: "dismissed"}))
	require.NoError(t, tx.Rollback())

	assert.Equal(t, row{Status: "pending"}, r)
}

func TestTx_FinishedTwice(t *testing.T) {
	r := row{}
	tx := Begin(&r, nil)
	require.NoError(t, tx.Commit())

	assert.ErrorIs(t, tx.Rollback(), ErrFinished)
	assert.ErrorIs(t, tx.Apply(row{Status: "x"}), ErrFinished)
	assert.Equal(t, row{}, r)
}

func TestRun(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name   string
		fnErr  error
		want   string
		seenFn string
	}{
		{"success commits", nil, "reviewing", "pending"},
		{"failure rolls back", boom, "pending", "pending"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := row{Status: "pending"}
			var during, previous string

			err := Run(&r, nil, row{Status: "reviewing"}, func(prev row) error {
				during = r.Status
				previous = prev.Status
				return tt.fnErr
			})

			assert.ErrorIs(t, err, tt.fnErr)
			assert.Equal(t, "reviewing", during)
			assert.Equal(t, tt.seenFn, previous)
			assert.Equal(t, tt.want, r.Status)
		})
	}
}

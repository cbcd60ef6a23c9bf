package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTally(t *testing.T) {
	counts := DefaultLabelSet().Count([]int{0, 0, 3})
	tally := NewTally(7, counts, 5)
	require.Equal(t, int64(7), tally.UserID)
	require.Equal(t, 5, tally.Total)
	require.Equal(t, 2, tally.Unclassified)
	require.False(t, tally.CreatedAt.IsZero())

	require.Zero(t, NewTally(7, counts, 1).Unclassified)
}

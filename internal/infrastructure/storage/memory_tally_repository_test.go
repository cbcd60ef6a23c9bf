package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"coffee-bot/internal/domain/entity"
)

func TestMemoryTallyRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTallyRepository()

	for i := 1; i <= 3; i++ {
		tally := entity.NewTally(1, entity.LabelCount{"sadio": i}, i+1)
		require.NoError(t, repo.Save(ctx, tally))
		require.Equal(t, int64(i), tally.ID)
	}
	require.NoError(t, repo.Save(ctx, entity.NewTally(2, entity.LabelCount{"verde": 7}, 7)))

	got, err := repo.ListByUser(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, int64(3), got[0].ID)
	require.Equal(t, int64(2), got[1].ID)
	require.Equal(t, 1, got[0].Unclassified)

	all, err := repo.ListByUser(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)

	// изменение результата не портит хранилище
	all[0].Counts["sadio"] = 100
	again, err := repo.ListByUser(ctx, 1, 1)
	require.NoError(t, err)
	require.Equal(t, 3, again[0].Counts["sadio"])

	none, err := repo.ListByUser(ctx, 42, 5)
	require.NoError(t, err)
	require.Empty(t, none)
}

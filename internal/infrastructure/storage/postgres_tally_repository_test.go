package storage

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"coffee-bot/internal/domain/entity"
)

// Требует живую базу: TEST_DATABASE_URL=postgres://...
func TestPostgresTallyRepository(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	repo, err := NewPostgresTallyRepository(ctx, url)
	require.NoError(t, err)
	defer repo.Close()

	userID := int64(900000001)
	_, err = repo.pool.Exec(ctx, `DELETE FROM bean_tallies WHERE user_id = $1`, userID)
	require.NoError(t, err)

	first := entity.NewTally(userID, entity.LabelCount{"sadio": 2, "verde": 1}, 4)
	require.NoError(t, repo.Save(ctx, first))
	require.NotZero(t, first.ID)

	second := entity.NewTally(userID, entity.LabelCount{"sadio": 5}, 5)
	require.NoError(t, repo.Save(ctx, second))

	got, err := repo.ListByUser(ctx, userID, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, second.ID, got[0].ID)
	require.Equal(t, 5, got[0].Counts["sadio"])

	all, err := repo.ListByUser(ctx, userID, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, 1, all[1].Unclassified)
}

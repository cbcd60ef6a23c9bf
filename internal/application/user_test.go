package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"coffee-bot/internal/domain/entity"
	"coffee-bot/internal/infrastructure/storage"
)

func TestUserService_BeginCountAndCancel(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	user, ok, err := svc.BeginCount(ctx, 1, 10)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, entity.StateAwaitingPhoto, user.State)

	user, ok, err = svc.Cancel(ctx, 1, 10)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, entity.StateMainMenu, user.State)
}

func TestUserService_SetState(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	user, err := svc.SetState(ctx, 2, 20, entity.StateAwaitingPhoto)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingPhoto, user.State)

	user, err = svc.Get(ctx, 2, 20)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingPhoto, user.State)
}

func TestUserService_Processing(t *testing.T) {
	svc := NewUserService(storage.NewMemoryUserRepository())
	ctx := context.Background()

	user, ok, err := svc.BeginProcessing(ctx, 3, 30)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, entity.StateProcessing, user.State)

	_, ok, err = svc.BeginProcessing(ctx, 3, 30)
	require.NoError(t, err)
	require.False(t, ok)

	user, err = svc.FinishProcessing(ctx, 3, 30)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, user.State)

	_, ok, err = svc.BeginProcessing(ctx, 3, 30)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestUserService_CancelKeepsProcessingLock(t *testing.T) {
	svc := NewUserService(storage.NewMemoryUserRepository())
	ctx := context.Background()

	_, ok, err := svc.BeginProcessing(ctx, 4, 40)
	require.NoError(t, err)
	require.True(t, ok)

	user, ok, err := svc.Cancel(ctx, 4, 40)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, entity.StateProcessing, user.State)

	_, ok, err = svc.BeginCount(ctx, 4, 40)
	require.NoError(t, err)
	require.False(t, ok)

	// второе фото не стартует, пока первое не обработано
	_, ok, err = svc.BeginProcessing(ctx, 4, 40)
	require.NoError(t, err)
	require.False(t, ok)

	_, err = svc.FinishProcessing(ctx, 4, 40)
	require.NoError(t, err)
	_, ok, err = svc.Cancel(ctx, 4, 40)
	require.NoError(t, err)
	require.True(t, ok)
}

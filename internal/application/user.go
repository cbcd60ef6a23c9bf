package app

import (
	"context"

	"coffee-bot/internal/domain/entity"
	"coffee-bot/internal/domain/port"
)

type UserService struct {
	repo port.UserRepository
}

func NewUserService(repo port.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.repo.Get(ctx, userID, chatID)
}

func (s *UserService) SetState(ctx context.Context, userID, chatID int64, state entity.UserState) (*entity.User, error) {
	user, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	user.SetState(state)
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// BeginCount переводит пользователя в ожидание фото зёрен.
// Во время обработки фото состояние не меняется, false сообщает об этом.
func (s *UserService) BeginCount(ctx context.Context, userID, chatID int64) (*entity.User, bool, error) {
	return s.repo.SetStateIfIdle(ctx, userID, chatID, entity.StateAwaitingPhoto)
}

// BeginProcessing занимает пользователя на время обработки фото.
// false, если предыдущее фото ещё не обработано.
func (s *UserService) BeginProcessing(ctx context.Context, userID, chatID int64) (*entity.User, bool, error) {
	return s.repo.BeginProcessing(ctx, userID, chatID)
}

// FinishProcessing возвращает пользователя в главное меню после обработки
func (s *UserService) FinishProcessing(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.SetState(ctx, userID, chatID, entity.StateMainMenu)
}

// Cancel возвращает пользователя в главное меню. Обработку фото не прерывает:
// пока она идёт, состояние не меняется и возвращается false.
func (s *UserService) Cancel(ctx context.Context, userID, chatID int64) (*entity.User, bool, error) {
	return s.repo.SetStateIfIdle(ctx, userID, chatID, entity.StateMainMenu)
}

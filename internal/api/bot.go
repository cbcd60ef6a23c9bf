package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"coffee-bot/internal/container"
	"coffee-bot/internal/domain/entity"
)

const historyLimit = 5

const (
	msgStart = `👋 Привет! Я бот для подсчёта кофейных зёрен по классам дефектов.

📸 Отправьте мне фото зёрен на однотонном фоне, и я посчитаю их.

📋 Команды:
/count — посчитать зёрна на фото
/history — последние подсчёты
/help — справка
/cancel — отменить текущую операцию`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Разложите зёрна на светлом однотонном фоне, чтобы они не лежали друг на друге
2️⃣ Отправьте фото
3️⃣ Вы получите результат: количество зёрен по классам + фото с контурами

📋 Команды:
/count — посчитать зёрна
/history — последние подсчёты
/cancel — отменить операцию`

	msgAwaitingPhoto   = "📸 Отправьте фото зёрен для подсчёта."
	msgCancelled       = "❌ Операция отменена. Отправьте /count для нового подсчёта."
	msgSendPhoto       = "📸 Пожалуйста, отправьте фото зёрен для подсчёта."
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing      = "⏳ Обрабатываю изображение..."
	msgBusy            = "⏳ Предыдущее фото ещё обрабатывается, подождите."
	msgNoBeans         = "🤷 Зёрна не найдены. Попробуйте снять при лучшем освещении на однотонном фоне."
	msgNoHistory       = "📭 Подсчётов пока нет."
	msgBadImage        = "⚠️ Не удалось прочитать изображение. Отправьте фото в формате JPEG или PNG."
	msgProcessingError = "⚠️ Не удалось обработать изображение. Попробуйте сделать другое фото."
)

// Bot представляет Telegram-бота
type Bot struct {
	api    *tgbotapi.BotAPI
	app    *container.Container
	logger *zap.SugaredLogger
}

// NewBot создаёт нового бота
func NewBot(token string, app *container.Container, logger *zap.SugaredLogger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	logger.Infow("authorized", "account", api.Self.UserName)

	return &Bot{
		api:    api,
		app:    app,
		logger: logger,
	}, nil
}

// Run запускает основной цикл обработки сообщений до отмены контекста
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			// фото обрабатываются долго, не блокируем остальных пользователей
			go b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}

	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	// Обработка фото
	if len(msg.Photo) > 0 {
		b.handlePhoto(ctx, msg, msg.Photo[len(msg.Photo)-1].FileID)
		return
	}

	// Фото, отправленное файлом
	if msg.Document != nil && isImageDocument(msg.Document) {
		b.handlePhoto(ctx, msg, msg.Document.FileID)
		return
	}

	// Текстовое сообщение (не команда)
	b.sendMessage(msg.Chat.ID, msgSendPhoto)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	users := b.app.UserService
	userID, chatID := msg.From.ID, msg.Chat.ID

	var (
		err  error
		idle bool
	)
	switch msg.Command() {
	case "start":
		_, idle, err = users.Cancel(ctx, userID, chatID)
		if err == nil {
			b.sendMessage(chatID, stateReply(idle, msgStart))
		}

	case "help":
		b.sendMessage(chatID, msgHelp)

	case "count":
		_, idle, err = users.BeginCount(ctx, userID, chatID)
		if err == nil {
			b.sendMessage(chatID, stateReply(idle, msgAwaitingPhoto))
		}

	case "history":
		var tallies []*entity.Tally
		tallies, err = b.app.SortingService.History(ctx, userID, historyLimit)
		if err == nil {
			b.sendMessage(chatID, formatHistory(tallies, b.app.SortingService.Labels()))
		}

	case "cancel":
		_, idle, err = users.Cancel(ctx, userID, chatID)
		if err == nil {
			b.sendMessage(chatID, stateReply(idle, msgCancelled))
		}

	default:
		b.sendMessage(chatID, msgUnknownCommand)
	}

	if err != nil {
		b.logger.Errorw("command failed", "command", msg.Command(), "user", userID, "error", err)
		b.sendMessage(chatID, msgProcessingError)
	}
}

// handlePhoto считает зёрна на фото и отвечает итогом и картинкой с контурами
func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message, fileID string) {
	users := b.app.UserService
	userID, chatID := msg.From.ID, msg.Chat.ID

	_, ok, err := users.BeginProcessing(ctx, userID, chatID)
	if err != nil {
		b.logger.Errorw("begin processing", "user", userID, "error", err)
		b.sendMessage(chatID, msgProcessingError)
		return
	}
	if !ok {
		b.sendMessage(chatID, msgBusy)
		return
	}
	defer func() {
		if _, err := users.FinishProcessing(ctx, userID, chatID); err != nil {
			b.logger.Errorw("finish processing", "user", userID, "error", err)
		}
	}()

	b.sendMessage(chatID, msgProcessing)

	imageData, err := b.downloadFile(ctx, fileID)
	if err != nil {
		b.logger.Errorw("download photo", "user", userID, "error", err)
		b.sendMessage(chatID, msgProcessingError)
		return
	}

	analysis, err := b.app.SortingService.Analyze(ctx, userID, imageData)
	if err != nil {
		b.logger.Errorw("analyze photo", "user", userID, "bytes", len(imageData), "error", err)
		if errors.Is(err, entity.ErrInvalidInput) {
			b.sendMessage(chatID, msgBadImage)
		} else {
			b.sendMessage(chatID, msgProcessingError)
		}
		return
	}

	if analysis.Tally.Total == 0 {
		b.sendMessage(chatID, msgNoBeans)
		return
	}

	b.sendPhoto(chatID, analysis.Overlay, formatTally(analysis.Tally, b.app.SortingService.Labels()))
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(b.api.Token), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Warnw("send message", "chat", chatID, "error", err)
	}
}

// sendPhoto отправляет JPEG с подписью
func (b *Bot) sendPhoto(chatID int64, jpeg []byte, caption string) {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "beans.jpg", Bytes: jpeg})
	photo.Caption = caption
	if _, err := b.api.Send(photo); err != nil {
		b.logger.Warnw("send photo", "chat", chatID, "error", err)
		// картинка не ушла, итог всё равно нужен
		b.sendMessage(chatID, caption)
	}
}

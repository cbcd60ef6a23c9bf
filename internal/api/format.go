package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"coffee-bot/internal/domain/entity"
)

// formatTally итог подсчёта: классы в порядке набора меток
func formatTally(t *entity.Tally, labels entity.LabelSet) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "☕ Найдено зёрен: %d\n", t.Total)

	if classified := t.Counts.Total(); classified > 0 {
		sb.WriteString("\n")
		for _, name := range labels.Names() {
			if n := t.Counts[name]; n > 0 {
				fmt.Fprintf(&sb, "• %s: %d\n", name, n)
			}
		}
	}

	if t.Unclassified > 0 {
		fmt.Fprintf(&sb, "\n❔ Без класса: %d", t.Unclassified)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// formatHistory список последних подсчётов, новые первыми
func formatHistory(tallies []*entity.Tally, labels entity.LabelSet) string {
	if len(tallies) == 0 {
		return msgNoHistory
	}

	var sb strings.Builder
	sb.WriteString("🗂 Последние подсчёты:\n")
	for _, t := range tallies {
		fmt.Fprintf(&sb, "\n%s — %d зёрен", t.CreatedAt.Format("02.01.2006 15:04"), t.Total)

		var parts []string
		for _, name := range labels.Names() {
			if n := t.Counts[name]; n > 0 {
				parts = append(parts, fmt.Sprintf("%s %d", name, n))
			}
		}
		if t.Unclassified > 0 {
			parts = append(parts, fmt.Sprintf("без класса %d", t.Unclassified))
		}
		if len(parts) > 0 {
			fmt.Fprintf(&sb, " (%s)", strings.Join(parts, ", "))
		}
	}
	return sb.String()
}

// stateReply ответ на команду смены состояния; во время обработки фото состояние не меняется
func stateReply(idle bool, text string) string {
	if !idle {
		return msgBusy
	}
	return text
}

// isImageDocument фото, отправленное без сжатия
func isImageDocument(doc *tgbotapi.Document) bool {
	return strings.HasPrefix(doc.MimeType, "image/")
}

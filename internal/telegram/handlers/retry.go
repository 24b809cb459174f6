package handlers

import (
	"time"

	"github.com/avast/retry-go/v4"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const (
	maxSendRetries = 3
	retrySleepBase = time.Second
)

// sendCriticalMessage sends a message that must reach the user (questions,
// results, confirmations) and retries transient Telegram failures.
func sendCriticalMessage(
	bot *tgbotapi.BotAPI,
	chatID int64,
	text string,
	markup interface{},
	logger *zap.Logger,
) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup != nil {
		msg.ReplyMarkup = markup
	}

	err := retry.Do(
		func() error {
			_, err := bot.Send(msg)
			return err
		},
		retry.Attempts(maxSendRetries),
		retry.Delay(retrySleepBase),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(attempt uint, err error) {
			logger.Warn("failed to send message, retrying",
				zap.Error(err),
				zap.Uint("attempt", attempt+1),
				zap.Int64("chat_id", chatID),
			)
		}),
	)
	if err != nil {
		logger.Error("failed to send message after all retries",
			zap.Error(err),
			zap.Int("max_retries", maxSendRetries),
			zap.Int64("chat_id", chatID),
		)
	}

	return err
}

package keyboard

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/nicheroot/wizard-backend/internal/entity"
)

// Builder creates inline keyboards
type Builder struct{}

// NewBuilder creates a keyboard builder
func NewBuilder() *Builder {
	return &Builder{}
}

// StartKeyboard creates the initial start button
func (b *Builder) StartKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🚀 Start", EncodeCallback(ActionStart, "start")),
		),
	)
}

// QuestionKeyboard creates the A/B choice buttons plus detail expanders
// for the current question.
func (b *Builder) QuestionKeyboard(q *entity.Question) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{}

	for _, opt := range q.Options {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				opt.Key+") "+opt.Label,
				EncodeCallback(ActionChoice, opt.Key),
			),
		))
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("ℹ️ More about A", EncodeCallback(ActionDetails, entity.OptionKeyA)),
		tgbotapi.NewInlineKeyboardButtonData("ℹ️ More about B", EncodeCallback(ActionDetails, entity.OptionKeyB)),
	))

	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// ResultKeyboard creates download buttons for the finished blueprint.
func (b *Builder) ResultKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📄 Markdown", EncodeCallback(ActionExport, string(entity.FormatMarkdown))),
			tgbotapi.NewInlineKeyboardButtonData("📕 PDF", EncodeCallback(ActionExport, string(entity.FormatPDF))),
			tgbotapi.NewInlineKeyboardButtonData("📘 DOCX", EncodeCallback(ActionExport, string(entity.FormatDOCX))),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Start over", EncodeCallback(ActionStart, "restart")),
		),
	)
}

// RetryKeyboard creates the retry button shown after a generation failure.
func (b *Builder) RetryKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔁 Try again", EncodeCallback(ActionStart, "retry")),
			tgbotapi.NewInlineKeyboardButtonData("🔄 Start over", EncodeCallback(ActionStart, "restart")),
		),
	)
}

// ConfirmKeyboard asks the user to confirm a destructive action.
func (b *Builder) ConfirmKeyboard(action string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Yes", EncodeCallback(ActionConfirm, action)),
			tgbotapi.NewInlineKeyboardButtonData("❌ No, keep going", EncodeCallback(ActionConfirm, "keep")),
		),
	)
}

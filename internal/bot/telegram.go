package bot

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/gratefultolord/survey_bot/internal/chat"
	"github.com/gratefultolord/survey_bot/internal/survey"
)

// Telegram rejects longer message texts.
const maxMessageLength = 4096

// API is the part of *tgbotapi.BotAPI the bot uses.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type Handler interface {
	Route(ctx context.Context, ev chat.Event) (chat.Response, error)
}

type BotService struct {
	botAPI  API
	handler Handler
	logger  *slog.Logger
}

func New(botAPI API, handler Handler, logger *slog.Logger) *BotService {
	return &BotService{
		botAPI:  botAPI,
		handler: handler,
		logger:  logger,
	}
}

// Start long-polls for updates until ctx is cancelled.
func (b *BotService) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.botAPI.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.botAPI.StopReceivingUpdates()
			b.logger.Info("update loop stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

func (b *BotService) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	if cq := update.CallbackQuery; cq != nil {
		if cq.From == nil {
			return
		}
		resp, err := b.handler.Route(ctx, chat.CallbackEvent{SenderID: cq.From.ID, Data: cq.Data})
		b.logOutcome(cq.From.ID, err)
		b.answerCallback(cq, resp)
		return
	}

	msg := update.Message
	if msg == nil || msg.From == nil || msg.Chat == nil {
		return
	}

	var ev chat.Event = chat.TextEvent{SenderID: msg.From.ID, Text: msg.Text}
	if msg.Contact != nil {
		ev = chat.ContactEvent{SenderID: msg.From.ID, PhoneNumber: msg.Contact.PhoneNumber}
	}

	resp, err := b.handler.Route(ctx, ev)
	b.logOutcome(msg.From.ID, err)
	b.reply(msg.Chat.ID, resp)
}

func (b *BotService) logOutcome(senderID int64, err error) {
	if err == nil {
		return
	}

	outcome := survey.Outcome(err)
	switch outcome {
	case "store", "error":
		b.logger.Error("event failed", "sender", senderID, "outcome", outcome, "err", err)
	default:
		b.logger.Info("event rejected", "sender", senderID, "outcome", outcome, "err", err)
	}
}

func (b *BotService) send(c tgbotapi.Chattable) {
	if _, err := b.botAPI.Send(c); err != nil {
		b.logger.Error("failed to send message", "err", err)
	}
}

// reply sends resp as new messages to chatID.
func (b *BotService) reply(chatID int64, resp chat.Response) {
	if resp == nil {
		return
	}

	chunks := splitText(resp.Message(), maxMessageLength)
	last := len(chunks) - 1

	for i, chunk := range chunks {
		msg := tgbotapi.NewMessage(chatID, chunk)
		if i == last {
			msg.ReplyMarkup = replyMarkup(resp)
		}
		b.send(msg)
	}
}

// answerCallback edits the message the pressed button belongs to and answers the
// callback. Alerts are shown as a popup instead.
func (b *BotService) answerCallback(cq *tgbotapi.CallbackQuery, resp chat.Response) {
	if alert, ok := resp.(chat.AlertMessage); ok {
		if _, err := b.botAPI.Request(tgbotapi.NewCallbackWithAlert(cq.ID, alert.Text)); err != nil {
			b.logger.Error("failed to answer callback", "err", err)
		}
		return
	}

	if cq.Message == nil || cq.Message.Chat == nil {
		b.reply(cq.From.ID, resp)
	} else if resp != nil {
		b.edit(cq.Message.Chat.ID, cq.Message.MessageID, resp)
	}

	if _, err := b.botAPI.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		b.logger.Error("failed to answer callback", "err", err)
	}
}

// edit replaces the text of messageID with the first chunk of resp. Further chunks
// follow as new messages and the inline keyboard goes on the last one.
func (b *BotService) edit(chatID int64, messageID int, resp chat.Response) {
	chunks := splitText(resp.Message(), maxMessageLength)
	menu, hasMenu := inlineMarkup(resp)

	if len(chunks) == 1 && hasMenu {
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, chunks[0], menu))
		return
	}

	b.send(tgbotapi.NewEditMessageText(chatID, messageID, chunks[0]))

	for i, chunk := range chunks[1:] {
		msg := tgbotapi.NewMessage(chatID, chunk)
		if hasMenu && i == len(chunks)-2 {
			msg.ReplyMarkup = menu
		}
		b.send(msg)
	}
}

func replyMarkup(resp chat.Response) interface{} {
	switch r := resp.(type) {
	case chat.ChoiceMessage:
		rows := make([][]tgbotapi.KeyboardButton, 0, len(r.Choices))
		for _, choice := range r.Choices {
			rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(choice)))
		}
		return oneTimeKeyboard(rows...)
	case chat.ContactRequestMessage:
		return oneTimeKeyboard(tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButtonContact(r.ButtonLabel)))
	case chat.MenuMessage:
		markup, _ := inlineMarkup(r)
		return markup
	default:
		return tgbotapi.NewRemoveKeyboard(true)
	}
}

func oneTimeKeyboard(rows ...[]tgbotapi.KeyboardButton) tgbotapi.ReplyKeyboardMarkup {
	keyboard := tgbotapi.NewReplyKeyboard(rows...)
	keyboard.OneTimeKeyboard = true
	keyboard.ResizeKeyboard = true

	return keyboard
}

func inlineMarkup(resp chat.Response) (tgbotapi.InlineKeyboardMarkup, bool) {
	menu, ok := resp.(chat.MenuMessage)
	if !ok || len(menu.Items) == 0 {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(menu.Items))
	for _, item := range menu.Items {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(item.Label, item.Action)))
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...), true
}

// splitText cuts text into chunks of at most limit characters, preferring line
// boundaries.
func splitText(text string, limit int) []string {
	if utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	var (
		chunks  []string
		current strings.Builder
		size    int
	)

	flush := func() {
		if chunk := strings.TrimRight(current.String(), "\n"); chunk != "" {
			chunks = append(chunks, chunk)
		}
		current.Reset()
		size = 0
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		runes := []rune(line)

		for len(runes) > limit {
			flush()
			chunks = append(chunks, string(runes[:limit]))
			runes = runes[limit:]
		}

		if size+len(runes) > limit {
			flush()
		}

		current.WriteString(string(runes))
		size += len(runes)
	}
	flush()

	return chunks
}

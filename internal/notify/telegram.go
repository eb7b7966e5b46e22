package notify

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramSender broadcasts messages to a household group chat instead
// of per-user SMS. It satisfies the same MessageSender contract: the
// recipient address is ignored beyond logging, since everyone shares
// one chat.
type TelegramSender struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramSender(token string, chatID int64) (*TelegramSender, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	log.Printf("[info] telegram notifier authorized as %s", api.Self.UserName)
	return &TelegramSender{api: api, chatID: chatID}, nil
}

func (s *TelegramSender) Send(recipient, body string) bool {
	msg := tgbotapi.NewMessage(s.chatID, body)
	if _, err := s.api.Send(msg); err != nil {
		log.Printf("[error] telegram send (for %s): %v", recipient, err)
		return false
	}
	return true
}

package telegram

import (
	"fmt"
	"sync"

	tg "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/panjf2000/ants/v2"
	log "github.com/sirupsen/logrus"
)

// Telegram delivers the same message to every configured chat. Deliveries are
// independent: one failing chat never blocks the others.
type Telegram struct {
	bot     *tg.BotAPI
	chatIDs []int64
	pool    *ants.Pool
}

func New(token string, chatIDs []int64) (*Telegram, error) {
	return newWithEndpoint(tg.APIEndpoint, token, chatIDs)
}

func newWithEndpoint(endpoint string, token string, chatIDs []int64) (*Telegram, error) {
	bot, err := tg.NewBotAPIWithAPIEndpoint(token, endpoint)
	if err != nil {
		return nil, err
	}

	pool, err := ants.NewPool(4)
	if err != nil {
		return nil, err
	}

	return &Telegram{
		bot:     bot,
		chatIDs: chatIDs,
		pool:    pool,
	}, nil
}

// Webhook fans the message out to every chat. Delivery failures are logged
// and swallowed, never returned to the reconcile path.
func (t *Telegram) Webhook(title string, content string) error {
	var wg sync.WaitGroup

	for i := range t.chatIDs {
		chatID := t.chatIDs[i]
		wg.Add(1)

		if err := t.pool.Submit(func() {
			defer wg.Done()

			msg := tg.NewMessage(chatID, fmt.Sprintf("#cfddns\n%s\n%s", title, content))
			if _, err := t.bot.Send(msg); err != nil {
				log.Errorf("[telegram] send to chat %d: %v", chatID, err)
			} else {
				log.Infof("[telegram] message sent to chat %d", chatID)
			}
		}); err != nil {
			wg.Done()
			log.Errorf("[telegram] submit send task: %v", err)
		}
	}

	wg.Wait()
	return nil
}

func (t *Telegram) Close() {
	t.pool.Release()
}

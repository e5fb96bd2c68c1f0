// Package bot contains the Telegram transport and the command dispatcher
// sitting between chat updates and the ledger.
package bot

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"tgexp/internal/cache"
	"tgexp/internal/core"
	"tgexp/internal/log"
	"tgexp/internal/store"
)

const (
	memberCacheSize = 512
	memberCacheTTL  = time.Hour

	updateTimeout = 30 // long-poll timeout, seconds

	failureReply = "Something went wrong, please try again."
)

type Bot struct {
	api        *tgbotapi.BotAPI
	dispatcher *Dispatcher
	members    *cache.MemberCache
	logger     *log.Logger
}

func New(token string, st store.Store, parser *core.Parser, events EventPublisher, logger *log.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	b := &Bot{
		api:     api,
		members: cache.NewMemberCache(memberCacheSize, memberCacheTTL),
		logger:  logger,
	}
	b.dispatcher = NewDispatcher(st, parser, b, events, logger)
	return b, nil
}

// Username returns the bot account name reported by Telegram.
func (b *Bot) Username() string {
	return b.api.Self.UserName
}

// Run consumes updates until ctx is done. Messages are handled strictly
// sequentially so a chat's read-modify-write never interleaves with itself.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = updateTimeout
	updates := b.api.GetUpdatesChan(u)

	b.logger.Info("Bot is running", "username", b.Username())

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	m := update.Message
	if m == nil || m.Text == "" || m.From == nil || m.From.IsBot {
		return
	}

	in := Inbound{
		ChatID:     m.Chat.ID,
		Text:       m.Text,
		SenderID:   m.From.ID,
		SenderName: m.From.FirstName,
		SentAt:     int64(m.Date),
	}

	reply, err := b.dispatcher.Handle(ctx, in)
	if err != nil {
		b.logger.Error("Failed to handle message",
			log.FieldChatID, in.ChatID,
			log.FieldUserID, in.SenderID,
			log.FieldError, err)
		reply = Reply{Text: failureReply}
	}

	b.send(in.ChatID, reply)
}

func (b *Bot) send(chatID int64, reply Reply) {
	msg := tgbotapi.NewMessage(chatID, reply.Text)
	if reply.Preformatted {
		msg.ParseMode = tgbotapi.ModeHTML
	} else {
		msg.ParseMode = tgbotapi.ModeMarkdown
	}

	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send reply",
			log.FieldChatID, chatID,
			log.FieldError, err)
	}
}

// ResolveMember looks up a chat member's name, preferring the username and
// falling back to the first name. Results are cached.
func (b *Bot) ResolveMember(ctx context.Context, chatID, userID int64) (string, error) {
	if name, ok := b.members.Get(chatID, userID); ok {
		return name, nil
	}

	member, err := b.api.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
			ChatID: chatID,
			UserID: userID,
		},
	})
	if err != nil {
		return "", fmt.Errorf("get chat member %d: %w", userID, err)
	}
	if member.User == nil {
		return "", fmt.Errorf("chat member %d has no user", userID)
	}

	name := member.User.UserName
	if name == "" {
		name = member.User.FirstName
	}

	b.members.Set(chatID, userID, name)
	return name, nil
}

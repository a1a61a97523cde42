// Package bot runs the Telegram transport: long-polling updates, command
// handling, and routed message replies.
package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/mythwatch/mythwatch/internal/model"
	"github.com/mythwatch/mythwatch/internal/oracle"
)

const startMessage = "Hi there! I'm your personal mpox news verifier.\n\n" +
	"Just send me a news headline or short paragraph, and I'll check if it sounds real or suspicious.\n" +
	"Let's stop the spread of misinformation together!\n" +
	"Send /help for more info about me."

const helpMessage = "How to use this bot:\n" +
	"- Send a message: paste any mpox-related news or claim.\n" +
	"- Get instant analysis: I'll show how likely it's real or fake.\n" +
	"- /summarize <text>: condense a long paragraph.\n" +
	"- /start restarts the conversation.\n\n" +
	"Let's stay informed and safe!"

// MessageRouter handles a routed conversation message.
type MessageRouter interface {
	Process(ctx context.Context, userID, message string) model.Response
}

// Bot is the Telegram transport.
type Bot struct {
	api        *tgbotapi.BotAPI
	router     MessageRouter
	summarizer oracle.Summarizer
}

// New connects to the Telegram API. The summarizer may be nil, which
// degrades /summarize to truncation.
func New(cfg model.TelegramConfig, router MessageRouter, summarizer oracle.Summarizer) (*Bot, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("telegram bot token is required")
	}

	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("connect to telegram: %w", err)
	}

	log.Info().Str("username", api.Self.UserName).Msg("telegram bot authorized")
	return &Bot{api: api, router: router, summarizer: summarizer}, nil
}

// Run polls for updates until the context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30

	updates := b.api.GetUpdatesChan(updateConfig)
	log.Info().Msg("telegram bot polling for updates")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			b.handleUpdate(ctx, update.Message)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, msg *tgbotapi.Message) {
	userID := strconv.FormatInt(msg.From.ID, 10)

	var reply string
	switch command(msg.Text) {
	case "start":
		reply = startMessage
	case "help":
		reply = helpMessage
	case "summarize":
		reply = b.summarize(ctx, commandArgument(msg.Text))
	default:
		// Routing can take a moment when the oracles are cold.
		if _, err := b.api.Request(tgbotapi.NewChatAction(msg.Chat.ID, tgbotapi.ChatTyping)); err != nil {
			log.Debug().Err(err).Msg("typing action failed")
		}
		resp := b.router.Process(ctx, userID, msg.Text)
		reply = resp.Text
	}

	out := tgbotapi.NewMessage(msg.Chat.ID, reply)
	out.DisableWebPagePreview = true
	if _, err := b.api.Send(out); err != nil {
		log.Warn().Err(err).Str("user", userID).Msg("telegram send failed")
	}
}

func (b *Bot) summarize(ctx context.Context, text string) string {
	if text == "" {
		return "Please provide some text to summarize. Example:\n/summarize Mpox is..."
	}
	return "Summary:\n" + oracle.ShortAnswer(ctx, b.summarizer, text)
}

// command extracts a leading slash-command name, without any @botname
// suffix. Returns "" for plain messages.
func command(text string) string {
	if !strings.HasPrefix(text, "/") {
		return ""
	}
	name := strings.Fields(text)[0][1:]
	if at := strings.Index(name, "@"); at >= 0 {
		name = name[:at]
	}
	return name
}

// commandArgument returns everything after the command token.
func commandArgument(text string) string {
	fields := strings.SplitN(text, " ", 2)
	if len(fields) < 2 {
		return ""
	}
	return strings.TrimSpace(fields[1])
}

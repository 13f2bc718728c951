// Package telegram is the Telegram transport: it maps updates onto the
// dialogue engine and engine replies onto Telegram messages and reply
// keyboards.
package telegram

import (
	"context"
	"fmt"
	"os"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/config"
	"github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/dialogue"
	logx "github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/log"
)

type Bot struct {
	api         *tgbotapi.BotAPI
	engine      *dialogue.Engine
	logger      *logx.Logger
	pollTimeout int
	logoPath    string
}

func New(cfg *config.TelegramConfig, engine *dialogue.Engine, logger *logx.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	logger.Info(context.Background(), "telegram bot authorized", logx.KV("username", api.Self.UserName))

	return &Bot{
		api:         api,
		engine:      engine,
		logger:      logger,
		pollTimeout: cfg.PollTimeout,
		logoPath:    cfg.LogoPath,
	}, nil
}

// Start long-polls for updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.pollTimeout

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update := <-updates:
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			go b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	userID := strconv.FormatInt(msg.From.ID, 10)
	chatID := msg.Chat.ID
	ctx = logx.WithUserID(ctx, userID)

	if msg.IsCommand() {
		b.handleCommand(ctx, chatID, userID, msg.Command())
		return
	}

	replies, err := b.engine.HandleMessage(ctx, userID, msg.Text)
	if err != nil {
		b.logger.Error(ctx, "telegram message handling failed", logx.KV("error", err.Error()))
		return
	}
	b.sendReplies(ctx, chatID, replies)
}

func (b *Bot) handleCommand(ctx context.Context, chatID int64, userID, command string) {
	switch command {
	case "start", "reset":
		if err := b.engine.Reset(ctx, userID); err != nil {
			b.logger.Error(ctx, "session reset failed", logx.KV("error", err.Error()))
		}
		if command == "start" {
			b.sendLogo(ctx, chatID)
		}
		b.sendReplies(ctx, chatID, []dialogue.Reply{{Text: dialogue.WelcomeText, Menu: dialogue.MenuStart}})
	case "menu":
		replies, err := b.engine.HandleMessage(ctx, userID, "/menu")
		if err != nil {
			b.logger.Error(ctx, "telegram menu command failed", logx.KV("error", err.Error()))
			return
		}
		b.sendReplies(ctx, chatID, replies)
	case "help":
		b.sendReplies(ctx, chatID, []dialogue.Reply{{Text: dialogue.HelpText}})
	}
}

// sendLogo posts the greeting image when one is configured. Missing
// files are not an error: deployments without branding just skip it.
func (b *Bot) sendLogo(ctx context.Context, chatID int64) {
	if b.logoPath == "" {
		return
	}
	if _, err := os.Stat(b.logoPath); err != nil {
		return
	}
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FilePath(b.logoPath))
	if _, err := b.api.Send(photo); err != nil {
		b.logger.Warn(ctx, "telegram logo send failed", logx.KV("error", err.Error()))
	}
}

func (b *Bot) sendReplies(ctx context.Context, chatID int64, replies []dialogue.Reply) {
	for _, reply := range replies {
		msg := tgbotapi.NewMessage(chatID, reply.Text)
		switch reply.Menu {
		case dialogue.MenuStart:
			msg.ReplyMarkup = startKeyboard()
		case dialogue.MenuMain:
			msg.ReplyMarkup = mainKeyboard()
		case dialogue.MenuPostComparison:
			msg.ReplyMarkup = postComparisonKeyboard()
		}
		if _, err := b.api.Send(msg); err != nil {
			b.logger.Warn(ctx, "telegram send failed", logx.KV("error", err.Error()))
		}
	}
}

// startKeyboard is shown once after /start, before the user opted into
// the guided dialogue. It collapses after the first tap.
func startKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(dialogue.ButtonStartChat),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func mainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(dialogue.ButtonShowAll),
			tgbotapi.NewKeyboardButton(dialogue.ButtonCompare),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(dialogue.ButtonHelp),
			tgbotapi.NewKeyboardButton(dialogue.ButtonLeaveContact),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

func postComparisonKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(dialogue.ButtonMoreDetails),
			tgbotapi.NewKeyboardButton(dialogue.ButtonBookViewing),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(dialogue.ButtonMainMenu),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"personal-finance-bot/internal/command"
	"personal-finance-bot/internal/service"
	"personal-finance-bot/pkg/logger"
)

const (
	menuLabelBalance    = "💰 Баланс"
	menuLabelBudget     = "📊 Бюджет"
	menuLabelCategories = "📂 Категории"
	menuLabelHelp       = "ℹ️ Помощь"

	msgNotACommand = "Я понимаю только команды. Список команд: /help"
)

// menuCommands maps reply keyboard buttons to the commands they run.
var menuCommands = map[string]string{
	strings.ToLower(menuLabelBalance):    "balance",
	strings.ToLower(menuLabelBudget):     "budget",
	strings.ToLower(menuLabelCategories): "list_categories",
	strings.ToLower(menuLabelHelp):       "help",
}

// Dispatcher executes commands and builds scheduled digests.
type Dispatcher interface {
	Handle(ctx context.Context, cmd command.Command) string
	Recipients(ctx context.Context) ([]int64, error)
	MonthlyDigest(ctx context.Context, chatID int64, month service.YearMonth) (string, bool, error)
}

type telegramAPI interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Bot struct {
	api        telegramAPI
	dispatcher Dispatcher
	log        logger.Logger
	clock      service.Clock
}

func New(token string, dispatcher Dispatcher, log logger.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	log.Info("bot authorized", "account", api.Self.UserName)

	return newBot(api, dispatcher, log, time.Now), nil
}

func newBot(api telegramAPI, dispatcher Dispatcher, log logger.Logger, clock service.Clock) *Bot {
	return &Bot{
		api:        api,
		dispatcher: dispatcher,
		log:        log,
		clock:      clock,
	}
}

// Start begins polling updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	b.log.Info("start polling updates")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		if update.Message == nil {
			continue
		}
		if update.Message.Chat == nil || !update.Message.Chat.IsPrivate() {
			continue
		}
		if err := b.handleMessage(ctx, update.Message); err != nil {
			b.log.Error("handle message", "chat_id", update.Message.Chat.ID, "error", err)
		}
	}

	return nil
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.From == nil {
		return nil
	}

	cmd, ok := commandFromMessage(msg)
	if !ok {
		return b.sendText(msg.Chat.ID, msgNotACommand)
	}

	b.log.Debug("command received", "chat_id", cmd.ChatID, "command", cmd.Name, "args", len(cmd.Args))
	return b.sendText(msg.Chat.ID, b.dispatcher.Handle(ctx, cmd))
}

// commandFromMessage reads "/name arg1 arg2" or a menu button press.
func commandFromMessage(msg *tgbotapi.Message) (command.Command, bool) {
	if msg.IsCommand() {
		return command.Command{
			Name:   msg.Command(),
			Args:   strings.Fields(msg.CommandArguments()),
			ChatID: msg.Chat.ID,
		}, true
	}
	name, ok := menuCommands[strings.ToLower(strings.TrimSpace(msg.Text))]
	if !ok {
		return command.Command{}, false
	}
	return command.Command{Name: name, ChatID: msg.Chat.ID}, true
}

// SendMonthlyDigests sends last month's budget summary to every user who planned it.
func (b *Bot) SendMonthlyDigests(ctx context.Context) error {
	chatIDs, err := b.dispatcher.Recipients(ctx)
	if err != nil {
		return err
	}
	month := service.YearMonthOf(b.clock()).AddMonths(-1)
	sent := 0
	for _, chatID := range chatIDs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		text, ok, err := b.dispatcher.MonthlyDigest(ctx, chatID, month)
		if err != nil {
			b.log.Error("build digest", "chat_id", chatID, "error", err)
			continue
		}
		if !ok {
			continue
		}
		if err := b.sendText(chatID, text); err != nil {
			b.log.Error("send digest", "chat_id", chatID, "error", err)
			continue
		}
		sent++
	}
	b.log.Info("monthly digests sent", "month", month.String(), "sent", sent)
	return nil
}

func (b *Bot) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = mainMenuKeyboard()
	_, err := b.api.Send(msg)
	return err
}

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelBalance),
			tgbotapi.NewKeyboardButton(menuLabelBudget),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelCategories),
			tgbotapi.NewKeyboardButton(menuLabelHelp),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = false
	return kb
}

package bot

import (
	"context"
	"errors"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"personal-finance-bot/internal/command"
	"personal-finance-bot/internal/service"
	"personal-finance-bot/pkg/logger"
)

type fakeAPI struct {
	updates chan tgbotapi.Update
	sent    []tgbotapi.MessageConfig
	sendErr error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{updates: make(chan tgbotapi.Update, 10)}
}

func (a *fakeAPI) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return a.updates
}

func (a *fakeAPI) StopReceivingUpdates() {}

func (a *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if a.sendErr != nil {
		return tgbotapi.Message{}, a.sendErr
	}
	a.sent = append(a.sent, c.(tgbotapi.MessageConfig))
	return tgbotapi.Message{}, nil
}

type fakeDispatcher struct {
	commands   []command.Command
	recipients []int64
	digests    map[int64]string
	months     []service.YearMonth
}

func (d *fakeDispatcher) Handle(_ context.Context, cmd command.Command) string {
	d.commands = append(d.commands, cmd)
	return "reply to " + cmd.Name
}

func (d *fakeDispatcher) Recipients(context.Context) ([]int64, error) {
	return d.recipients, nil
}

func (d *fakeDispatcher) MonthlyDigest(_ context.Context, chatID int64, month service.YearMonth) (string, bool, error) {
	d.months = append(d.months, month)
	if chatID < 0 {
		return "", false, errors.New("broken")
	}
	text, ok := d.digests[chatID]
	return text, ok, nil
}

func commandMessage(chatID int64, text, name string) *tgbotapi.Message {
	return &tgbotapi.Message{
		From: &tgbotapi.User{ID: chatID},
		Chat: &tgbotapi.Chat{ID: chatID, Type: "private"},
		Text: text,
		Entities: []tgbotapi.MessageEntity{
			{Type: "bot_command", Offset: 0, Length: len(name) + 1},
		},
	}
}

func TestHandleMessageCommand(t *testing.T) {
	api := newFakeAPI()
	dispatcher := &fakeDispatcher{}
	b := newBot(api, dispatcher, logger.Nop(), time.Now)

	msg := commandMessage(7, "/add_expense 150   Коммунальные платежи", "add_expense")
	if err := b.handleMessage(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(dispatcher.commands) != 1 {
		t.Fatalf("expected one command, got %d", len(dispatcher.commands))
	}
	cmd := dispatcher.commands[0]
	if cmd.Name != "add_expense" || cmd.ChatID != 7 {
		t.Fatalf("unexpected command: %+v", cmd)
	}
	wantArgs := []string{"150", "Коммунальные", "платежи"}
	if len(cmd.Args) != len(wantArgs) {
		t.Fatalf("expected args %v, got %v", wantArgs, cmd.Args)
	}
	for i := range wantArgs {
		if cmd.Args[i] != wantArgs[i] {
			t.Fatalf("expected args %v, got %v", wantArgs, cmd.Args)
		}
	}
	if len(api.sent) != 1 || api.sent[0].Text != "reply to add_expense" || api.sent[0].ChatID != 7 {
		t.Fatalf("unexpected replies: %+v", api.sent)
	}
}

func TestHandleMessageMenuButton(t *testing.T) {
	api := newFakeAPI()
	dispatcher := &fakeDispatcher{}
	b := newBot(api, dispatcher, logger.Nop(), time.Now)

	msg := &tgbotapi.Message{
		From: &tgbotapi.User{ID: 7},
		Chat: &tgbotapi.Chat{ID: 7, Type: "private"},
		Text: menuLabelBudget,
	}
	if err := b.handleMessage(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dispatcher.commands) != 1 || dispatcher.commands[0].Name != "budget" {
		t.Fatalf("unexpected commands: %+v", dispatcher.commands)
	}
}

func TestHandleMessagePlainText(t *testing.T) {
	api := newFakeAPI()
	dispatcher := &fakeDispatcher{}
	b := newBot(api, dispatcher, logger.Nop(), time.Now)

	msg := &tgbotapi.Message{
		From: &tgbotapi.User{ID: 7},
		Chat: &tgbotapi.Chat{ID: 7, Type: "private"},
		Text: "привет",
	}
	if err := b.handleMessage(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dispatcher.commands) != 0 {
		t.Fatalf("plain text must not reach the dispatcher")
	}
	if len(api.sent) != 1 || api.sent[0].Text != msgNotACommand {
		t.Fatalf("unexpected replies: %+v", api.sent)
	}
}

func TestStartSkipsGroupChats(t *testing.T) {
	api := newFakeAPI()
	dispatcher := &fakeDispatcher{}
	b := newBot(api, dispatcher, logger.Nop(), time.Now)

	group := commandMessage(-100, "/balance", "balance")
	group.Chat.Type = "group"
	api.updates <- tgbotapi.Update{Message: group}
	api.updates <- tgbotapi.Update{Message: commandMessage(7, "/balance", "balance")}
	close(api.updates)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := b.Start(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dispatcher.commands) != 1 || dispatcher.commands[0].ChatID != 7 {
		t.Fatalf("unexpected commands: %+v", dispatcher.commands)
	}
}

func TestSendMonthlyDigests(t *testing.T) {
	api := newFakeAPI()
	dispatcher := &fakeDispatcher{
		recipients: []int64{1, 2, -3},
		digests:    map[int64]string{1: "digest for 1"},
	}
	now := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)
	b := newBot(api, dispatcher, logger.Nop(), func() time.Time { return now })

	if err := b.SendMonthlyDigests(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(api.sent) != 1 || api.sent[0].ChatID != 1 || api.sent[0].Text != "digest for 1" {
		t.Fatalf("unexpected messages: %+v", api.sent)
	}
	december := service.YearMonth{Year: 2023, Month: time.December}
	for _, month := range dispatcher.months {
		if month != december {
			t.Fatalf("expected digest for %v, got %v", december, month)
		}
	}
}

func TestSendMonthlyDigestsStopsOnCancel(t *testing.T) {
	api := newFakeAPI()
	dispatcher := &fakeDispatcher{recipients: []int64{1}}
	b := newBot(api, dispatcher, logger.Nop(), time.Now)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := b.SendMonthlyDigests(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

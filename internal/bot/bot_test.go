package bot

import (
	"context"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/adliharahap/OffmodeStore-sub001/internal/ai"
)

type fakeSender struct {
	sent    []tgbotapi.MessageConfig
	actions int
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	if _, ok := c.(tgbotapi.ChatActionConfig); ok {
		f.actions++
	}
	return &tgbotapi.APIResponse{Ok: true}, nil
}

type fakeAnswerer struct {
	answer string
	err    error
	calls  int
}

func (f *fakeAnswerer) Answer(context.Context, string) (string, error) {
	f.calls++
	return f.answer, f.err
}

func update(chatID int64, text string) *tgbotapi.Update {
	return &tgbotapi.Update{
		Message: &tgbotapi.Message{
			Chat: &tgbotapi.Chat{ID: chatID},
			From: &tgbotapi.User{FirstName: "Adli"},
			Text: text,
		},
	}
}

func TestStrangerGetsFixedRejection(t *testing.T) {
	api := &fakeSender{}
	answerer := &fakeAnswerer{answer: "should never be used"}
	b := newWithSender(api, []int64{111}, answerer)

	b.HandleUpdate(context.Background(), update(999, "/start"))

	if answerer.calls != 0 {
		t.Errorf("stranger triggered %d AI calls, want 0", answerer.calls)
	}
	if len(api.sent) != 2 {
		t.Fatalf("stranger got %d messages, want the fixed 2", len(api.sent))
	}
	if api.sent[0].Text != rejectionLine1 || api.sent[1].Text != rejectionLine2 {
		t.Errorf("rejection messages = %q, %q", api.sent[0].Text, api.sent[1].Text)
	}
}

func TestOwnerQuestionGetsAnswer(t *testing.T) {
	api := &fakeSender{}
	answerer := &fakeAnswerer{answer: "Penjualan bulan ini Rp 5.000.000."}
	b := newWithSender(api, []int64{111}, answerer)

	b.HandleUpdate(context.Background(), update(111, "berapa penjualan bulan ini?"))

	if answerer.calls != 1 {
		t.Fatalf("AI called %d times, want 1", answerer.calls)
	}
	if api.actions != 1 {
		t.Errorf("typing action sent %d times, want 1", api.actions)
	}
	if len(api.sent) != 1 || api.sent[0].Text != answerer.answer {
		t.Fatalf("owner reply = %+v", api.sent)
	}
	if api.sent[0].ParseMode != tgbotapi.ModeMarkdown {
		t.Errorf("owner reply should use Markdown, got %q", api.sent[0].ParseMode)
	}
}

func TestQuotaExceededMapsToBusyMessage(t *testing.T) {
	api := &fakeSender{}
	answerer := &fakeAnswerer{err: ai.ErrQuotaExceeded}
	b := newWithSender(api, []int64{111}, answerer)

	b.HandleUpdate(context.Background(), update(111, "laporan hari ini"))

	if len(api.sent) != 1 || api.sent[0].Text != busyMessage {
		t.Fatalf("quota error reply = %+v, want busy message", api.sent)
	}
}

func TestOwnerStartSkipsAI(t *testing.T) {
	api := &fakeSender{}
	answerer := &fakeAnswerer{}
	b := newWithSender(api, []int64{111}, answerer)

	b.HandleUpdate(context.Background(), update(111, "/start"))

	if answerer.calls != 0 {
		t.Errorf("/start triggered %d AI calls, want 0", answerer.calls)
	}
	if len(api.sent) != 1 {
		t.Fatalf("/start got %d messages, want 1 greeting", len(api.sent))
	}
}

func TestEmptyUpdateIgnored(t *testing.T) {
	api := &fakeSender{}
	b := newWithSender(api, []int64{111}, &fakeAnswerer{})

	b.HandleUpdate(context.Background(), &tgbotapi.Update{})

	if len(api.sent) != 0 {
		t.Errorf("empty update produced %d messages", len(api.sent))
	}
}

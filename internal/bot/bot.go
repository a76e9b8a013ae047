package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/adliharahap/OffmodeStore-sub001/internal/ai"
	"github.com/gin-gonic/gin"
)

// The fixed two-message rejection for anyone not on the owner
// allow-list. Strangers never reach the AI.
const (
	rejectionLine1 = "Maaf, bot ini khusus untuk pemilik Offmode Store."
	rejectionLine2 = "Sorry, this assistant is private. Your chat is not on the owner list."

	busyMessage = "Sistem sedang sibuk, coba lagi sebentar lagi ya. (AI quota exceeded)"
)

// Answerer produces a free-text answer for an owner question. The AI
// service implements it; tests substitute a fake.
type Answerer interface {
	Answer(ctx context.Context, question string) (string, error)
}

// sender is the slice of the Telegram API the bot uses.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot answers owner questions over Telegram, backed by the AI service.
type Bot struct {
	api    sender
	ai     Answerer
	owners map[int64]bool
}

// New connects to the Telegram Bot API.
func New(token string, ownerChatIDs []int64, answerer Answerer) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Telegram: %w", err)
	}
	log.Printf("Telegram bot authorized as @%s", api.Self.UserName)
	return newWithSender(api, ownerChatIDs, answerer), nil
}

func newWithSender(api sender, ownerChatIDs []int64, answerer Answerer) *Bot {
	owners := make(map[int64]bool, len(ownerChatIDs))
	for _, id := range ownerChatIDs {
		owners[id] = true
	}
	return &Bot{api: api, ai: answerer, owners: owners}
}

// WebhookHandler receives Telegram update envelopes.
// POST /telegram/webhook
func (b *Bot) WebhookHandler(c *gin.Context) {
	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid update payload"})
		return
	}

	b.HandleUpdate(c.Request.Context(), &update)

	// Telegram only needs a 200 to stop retrying.
	c.Status(http.StatusOK)
}

// HandleUpdate processes one inbound update.
func (b *Bot) HandleUpdate(ctx context.Context, update *tgbotapi.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	chatID := update.Message.Chat.ID
	text := update.Message.Text

	if !b.owners[chatID] {
		b.sendText(chatID, rejectionLine1)
		b.sendText(chatID, rejectionLine2)
		return
	}

	if text == "/start" {
		name := ""
		if update.Message.From != nil {
			name = update.Message.From.FirstName
		}
		b.sendText(chatID, fmt.Sprintf("Halo %s! Tanyakan apa saja tentang toko: penjualan, stok, pesanan, pelanggan.", name))
		return
	}

	// Show "typing" while the snapshot is gathered and Gemini answers.
	if _, err := b.api.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		log.Printf("WARNING: Failed to send typing action: %v", err)
	}

	answer, err := b.ai.Answer(ctx, text)
	switch {
	case errors.Is(err, ai.ErrQuotaExceeded):
		b.sendText(chatID, busyMessage)
	case err != nil:
		// Raw error to the chat: this is an internal owner-only tool,
		// the owner wants to see what broke.
		b.sendText(chatID, "Error: "+err.Error())
	default:
		b.sendMarkdown(chatID, answer)
	}
}

func (b *Bot) sendText(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Printf("WARNING: Failed to send Telegram message: %v", err)
	}
}

func (b *Bot) sendMarkdown(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(msg); err != nil {
		// Markdown from the model can be malformed; retry as plain text.
		b.sendText(chatID, text)
	}
}
